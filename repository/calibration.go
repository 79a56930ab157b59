package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/validation"
)

// CalibrationRepository handles database operations for one of the six
// camera calibration entity types. Column is the foreign key column name
// image sets and images use to reference rows of this type.
type CalibrationRepository[T any] struct {
	DB     *gorm.DB
	Entity string
	Column string
}

// NewCalibrationRepository creates a repository for one calibration entity.
func NewCalibrationRepository[T any](db *gorm.DB, entity, column string) *CalibrationRepository[T] {
	return &CalibrationRepository[T]{DB: db, Entity: entity, Column: column}
}

// Create inserts a new calibration row.
func (r *CalibrationRepository[T]) Create(rec *T) error {
	if err := r.DB.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", r.Entity, err)
	}
	return nil
}

// ListAll retrieves all rows.
func (r *CalibrationRepository[T]) ListAll() ([]T, error) {
	var rows []T
	if err := r.DB.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", r.Entity, err)
	}
	return rows, nil
}

// GetByID retrieves one row by its ID.
func (r *CalibrationRepository[T]) GetByID(id uuid.UUID) (*T, error) {
	rec := new(T)
	err := r.DB.First(rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get %s by ID %s: %w", r.Entity, id, err)
	}
	return rec, nil
}

// Save persists changes to an existing row.
func (r *CalibrationRepository[T]) Save(rec *T) error {
	if err := r.DB.Save(rec).Error; err != nil {
		return fmt.Errorf("failed to update %s: %w", r.Entity, err)
	}
	return nil
}

// Delete removes a row unless an image set or image still references it.
func (r *CalibrationRepository[T]) Delete(id uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var refs int64
		err := tx.Model(&models.ImageSet{}).Where(r.Column+" = ?", id).Count(&refs).Error
		if err != nil {
			return fmt.Errorf("failed to count image set references: %w", err)
		}
		var imageRefs int64
		err = tx.Model(&models.Image{}).Where(r.Column+" = ?", id).Count(&imageRefs).Error
		if err != nil {
			return fmt.Errorf("failed to count image references: %w", err)
		}
		if refs+imageRefs > 0 {
			return validation.NewError(validation.NonFieldErrors,
				fmt.Sprintf("Cannot delete %s: it is still referenced by image sets or images.", r.Entity))
		}

		rec := new(T)
		result := tx.Delete(rec, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete %s %s: %w", r.Entity, id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
