package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/database"
	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/validation"
)

// AnnotationRepository handles database operations for Annotation,
// AnnotationLabel and Annotator entities
type AnnotationRepository struct {
	DB *gorm.DB
}

// NewAnnotationRepository creates a new instance of AnnotationRepository
func NewAnnotationRepository(db *gorm.DB) *AnnotationRepository {
	return &AnnotationRepository{DB: db}
}

// Create inserts a new annotation. Shape and coordinates are validated by
// the caller; this checks only referential integrity.
func (r *AnnotationRepository) Create(in *models.AnnotationInput) (*models.Annotation, error) {
	errs := validation.Errors{}
	if in.ImageID == nil {
		errs.Add("image_id", validation.Required)
	}
	if in.AnnotationSetID == nil {
		errs.Add("annotation_set_id", validation.Required)
	}
	if in.Shape == nil || *in.Shape == "" {
		errs.Add("shape", validation.Required)
	}
	if errs.Any() {
		return nil, &validation.Error{Fields: errs}
	}
	if err := requireExists[models.Image](r.DB, "image_id", *in.ImageID); err != nil {
		return nil, err
	}
	if err := requireExists[models.AnnotationSet](r.DB, "annotation_set_id", *in.AnnotationSetID); err != nil {
		return nil, err
	}

	annotation := &models.Annotation{
		ImageID:            *in.ImageID,
		AnnotationSetID:    *in.AnnotationSetID,
		Shape:              *in.Shape,
		Coordinates:        in.Coordinates,
		AnnotationPlatform: in.AnnotationPlatform,
		DimensionPixels:    in.DimensionPixels,
	}
	if err := r.DB.Omit("Labels").Create(annotation).Error; err != nil {
		return nil, fmt.Errorf("failed to create annotation: %w", err)
	}
	return annotation, nil
}

// Update merges the supplied fields into an existing annotation.
func (r *AnnotationRepository) Update(id uuid.UUID, in *models.AnnotationInput) (*models.Annotation, error) {
	annotation, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.ImageID != nil && *in.ImageID != annotation.ImageID {
		if err := requireExists[models.Image](r.DB, "image_id", *in.ImageID); err != nil {
			return nil, err
		}
		annotation.ImageID = *in.ImageID
	}
	if in.AnnotationSetID != nil && *in.AnnotationSetID != annotation.AnnotationSetID {
		if err := requireExists[models.AnnotationSet](r.DB, "annotation_set_id", *in.AnnotationSetID); err != nil {
			return nil, err
		}
		annotation.AnnotationSetID = *in.AnnotationSetID
	}
	if in.Shape != nil && *in.Shape != "" {
		annotation.Shape = *in.Shape
	}
	if in.Coordinates != nil {
		annotation.Coordinates = in.Coordinates
	}
	if in.AnnotationPlatform != nil {
		annotation.AnnotationPlatform = in.AnnotationPlatform
	}
	if in.DimensionPixels != nil {
		annotation.DimensionPixels = in.DimensionPixels
	}

	if err := r.DB.Omit("Labels").Save(annotation).Error; err != nil {
		return nil, fmt.Errorf("failed to update annotation %s: %w", id, err)
	}
	return annotation, nil
}

// ListAll retrieves all annotations.
func (r *AnnotationRepository) ListAll() ([]models.Annotation, error) {
	var annotations []models.Annotation
	if err := r.DB.Find(&annotations).Error; err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	return annotations, nil
}

// GetByID retrieves an annotation by its ID.
func (r *AnnotationRepository) GetByID(id uuid.UUID) (*models.Annotation, error) {
	var annotation models.Annotation
	err := r.DB.First(&annotation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get annotation by ID %s: %w", id, err)
	}
	return &annotation, nil
}

// Delete removes an annotation and its label assignments.
func (r *AnnotationRepository) Delete(id uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("annotation_id = ?", id).Delete(&models.AnnotationLabel{}).Error; err != nil {
			return fmt.Errorf("failed to delete annotation labels: %w", err)
		}
		result := tx.Delete(&models.Annotation{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete annotation %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CreateAnnotationLabel attaches a label to an annotation. The annotator
// may arrive inline (get-or-create by name) or as an id. The
// (label, annotation, annotator) triple must be unique; the duplicate is
// reported before the constraint fires so the message is stable.
func (r *AnnotationRepository) CreateAnnotationLabel(in *models.AnnotationLabelInput) (*models.AnnotationLabel, error) {
	errs := validation.Errors{}
	if in.LabelID == nil {
		errs.Add("label_id", validation.Required)
	}
	if in.AnnotationID == nil {
		errs.Add("annotation_id", validation.Required)
	}
	if in.CreationDatetime == nil || *in.CreationDatetime == "" {
		errs.Add("creation_datetime", validation.Required)
	}
	if errs.Any() {
		return nil, &validation.Error{Fields: errs}
	}

	var row *models.AnnotationLabel
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists[models.Label](tx, "label_id", *in.LabelID); err != nil {
			return err
		}
		if err := requireExists[models.Annotation](tx, "annotation_id", *in.AnnotationID); err != nil {
			return err
		}

		annotatorID := in.AnnotatorID
		if in.Annotator != nil {
			annotator, err := r.getOrCreateAnnotator(tx, in.Annotator.Name)
			if err != nil {
				return err
			}
			annotatorID = &annotator.ID
		} else if annotatorID != nil {
			if err := requireExists[models.Annotator](tx, "annotator_id", *annotatorID); err != nil {
				return err
			}
		}

		dup := tx.Model(&models.AnnotationLabel{}).
			Where("label_id = ? AND annotation_id = ?", *in.LabelID, *in.AnnotationID)
		if annotatorID != nil {
			dup = dup.Where("annotator_id = ?", *annotatorID)
		} else {
			dup = dup.Where("annotator_id IS NULL")
		}
		var count int64
		if err := dup.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check annotation label uniqueness: %w", err)
		}
		if count > 0 {
			return validation.NewError(validation.NonFieldErrors,
				"The fields label, annotation, annotator must make a unique set.")
		}

		created := &models.AnnotationLabel{
			LabelID:          *in.LabelID,
			AnnotationID:     *in.AnnotationID,
			AnnotatorID:      annotatorID,
			CreationDatetime: *in.CreationDatetime,
		}
		if err := tx.Create(created).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return validation.NewError(validation.NonFieldErrors,
					"The fields label, annotation, annotator must make a unique set.")
			}
			return fmt.Errorf("failed to create annotation label: %w", err)
		}
		row = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateAnnotationLabel merges the supplied fields into an existing label
// assignment and re-checks the (label, annotation, annotator) triple against
// every other row.
func (r *AnnotationRepository) UpdateAnnotationLabel(id uuid.UUID, in *models.AnnotationLabelInput) (*models.AnnotationLabel, error) {
	var row *models.AnnotationLabel
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		existing := &models.AnnotationLabel{}
		if err := tx.First(existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return fmt.Errorf("failed to get annotation label by ID %s: %w", id, err)
		}

		if in.LabelID != nil && *in.LabelID != existing.LabelID {
			if err := requireExists[models.Label](tx, "label_id", *in.LabelID); err != nil {
				return err
			}
			existing.LabelID = *in.LabelID
		}
		if in.AnnotationID != nil && *in.AnnotationID != existing.AnnotationID {
			if err := requireExists[models.Annotation](tx, "annotation_id", *in.AnnotationID); err != nil {
				return err
			}
			existing.AnnotationID = *in.AnnotationID
		}
		if in.Annotator != nil {
			annotator, err := r.getOrCreateAnnotator(tx, in.Annotator.Name)
			if err != nil {
				return err
			}
			existing.AnnotatorID = &annotator.ID
		} else if in.AnnotatorID != nil {
			if err := requireExists[models.Annotator](tx, "annotator_id", *in.AnnotatorID); err != nil {
				return err
			}
			existing.AnnotatorID = in.AnnotatorID
		}
		if in.CreationDatetime != nil && *in.CreationDatetime != "" {
			existing.CreationDatetime = *in.CreationDatetime
		}

		dup := tx.Model(&models.AnnotationLabel{}).
			Where("label_id = ? AND annotation_id = ? AND id <> ?", existing.LabelID, existing.AnnotationID, id)
		if existing.AnnotatorID != nil {
			dup = dup.Where("annotator_id = ?", *existing.AnnotatorID)
		} else {
			dup = dup.Where("annotator_id IS NULL")
		}
		var count int64
		if err := dup.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check annotation label uniqueness: %w", err)
		}
		if count > 0 {
			return validation.NewError(validation.NonFieldErrors,
				"The fields label, annotation, annotator must make a unique set.")
		}

		if err := tx.Save(existing).Error; err != nil {
			return fmt.Errorf("failed to update annotation label %s: %w", id, err)
		}
		row = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ListAnnotationLabels retrieves all annotation label rows.
func (r *AnnotationRepository) ListAnnotationLabels() ([]models.AnnotationLabel, error) {
	var rows []models.AnnotationLabel
	if err := r.DB.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list annotation labels: %w", err)
	}
	return rows, nil
}

// GetAnnotationLabelByID retrieves one annotation label row.
func (r *AnnotationRepository) GetAnnotationLabelByID(id uuid.UUID) (*models.AnnotationLabel, error) {
	var row models.AnnotationLabel
	err := r.DB.First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get annotation label by ID %s: %w", id, err)
	}
	return &row, nil
}

// DeleteAnnotationLabel removes one annotation label row.
func (r *AnnotationRepository) DeleteAnnotationLabel(id uuid.UUID) error {
	result := r.DB.Delete(&models.AnnotationLabel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete annotation label %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateAnnotator inserts a new annotator with a unique name.
func (r *AnnotationRepository) CreateAnnotator(name string) (*models.Annotator, error) {
	if name == "" {
		return nil, validation.NewError("name", validation.Required)
	}
	annotator := &models.Annotator{Name: name}
	err := r.DB.Create(annotator).Error
	if database.IsDuplicateKey(err) {
		return nil, validation.NewError("name", "This field must be unique.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create annotator %s: %w", name, err)
	}
	return annotator, nil
}

// UpdateAnnotator renames an annotator.
func (r *AnnotationRepository) UpdateAnnotator(id uuid.UUID, name string) (*models.Annotator, error) {
	if name == "" {
		return nil, validation.NewError("name", validation.Required)
	}
	annotator, err := r.GetAnnotatorByID(id)
	if err != nil {
		return nil, err
	}
	annotator.Name = name
	err = r.DB.Save(annotator).Error
	if database.IsDuplicateKey(err) {
		return nil, validation.NewError("name", "This field must be unique.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update annotator %s: %w", id, err)
	}
	return annotator, nil
}

// ListAnnotators retrieves all annotators ordered by name.
func (r *AnnotationRepository) ListAnnotators() ([]models.Annotator, error) {
	var annotators []models.Annotator
	if err := r.DB.Order("name ASC").Find(&annotators).Error; err != nil {
		return nil, fmt.Errorf("failed to list annotators: %w", err)
	}
	return annotators, nil
}

// GetAnnotatorByID retrieves an annotator by its ID.
func (r *AnnotationRepository) GetAnnotatorByID(id uuid.UUID) (*models.Annotator, error) {
	var annotator models.Annotator
	err := r.DB.First(&annotator, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get annotator by ID %s: %w", id, err)
	}
	return &annotator, nil
}

// DeleteAnnotator removes an annotator; label assignments keep their row
// with the annotator reference cleared.
func (r *AnnotationRepository) DeleteAnnotator(id uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.AnnotationLabel{}).Where("annotator_id = ?", id).
			Update("annotator_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to clear annotator references: %w", err)
		}
		result := tx.Delete(&models.Annotator{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete annotator %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *AnnotationRepository) getOrCreateAnnotator(tx *gorm.DB, name string) (*models.Annotator, error) {
	if name == "" {
		return nil, validation.NewError("annotator", "name is required")
	}
	annotator := &models.Annotator{Name: name}
	err := tx.Create(annotator).Error
	if err == nil {
		return annotator, nil
	}
	if !database.IsDuplicateKey(err) {
		return nil, fmt.Errorf("failed to create annotator %s: %w", name, err)
	}
	existing := &models.Annotator{}
	if err := tx.Where("name = ?", name).First(existing).Error; err != nil {
		return nil, fmt.Errorf("failed to look up annotator %s: %w", name, err)
	}
	return existing, nil
}
