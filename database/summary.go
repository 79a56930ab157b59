package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// ImageSetSummary holds the row counts reported for one image set.
type ImageSetSummary struct {
	ImageCount         int64 `json:"image_count"`
	AnnotationSetCount int64 `json:"annotation_set_count"`
	AnnotationCount    int64 `json:"annotation_count"`
}

// GetImageSetSummary counts the images of a set, the annotation sets that
// cover it, and the annotations placed on its images.
func GetImageSetSummary(db *gorm.DB, imageSetID uuid.UUID) (*ImageSetSummary, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	summary := &ImageSetSummary{}

	imageCount := psql.Select("COUNT(*)").
		From("images").
		Where(sq.Eq{"image_set_id": imageSetID})
	if err := scanCount(sqlDB, imageCount, &summary.ImageCount); err != nil {
		return nil, fmt.Errorf("failed to count images: %w", err)
	}

	annotationSetCount := psql.Select("COUNT(*)").
		From("annotation_set_image_sets").
		Where(sq.Eq{"image_set_id": imageSetID})
	if err := scanCount(sqlDB, annotationSetCount, &summary.AnnotationSetCount); err != nil {
		return nil, fmt.Errorf("failed to count annotation sets: %w", err)
	}

	annotationCount := psql.Select("COUNT(*)").
		From("annotations").
		Join("images ON images.id = annotations.image_id").
		Where(sq.Eq{"images.image_set_id": imageSetID})
	if err := scanCount(sqlDB, annotationCount, &summary.AnnotationCount); err != nil {
		return nil, fmt.Errorf("failed to count annotations: %w", err)
	}

	return summary, nil
}

func scanCount(db *sql.DB, builder sq.SelectBuilder, dest *int64) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return db.QueryRow(query, args...).Scan(dest)
}
