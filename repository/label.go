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

// LabelRepository handles database operations for Label entities. AphiaID
// verification against the taxonomy service happens before these calls.
type LabelRepository struct {
	DB *gorm.DB
}

// NewLabelRepository creates a new instance of LabelRepository
func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{DB: db}
}

// Create inserts a new label.
func (r *LabelRepository) Create(in *models.LabelInput) (*models.Label, error) {
	errs := validation.Errors{}
	if in.Name == nil || *in.Name == "" {
		errs.Add("name", validation.Required)
	}
	if in.ParentLabelName == nil || *in.ParentLabelName == "" {
		errs.Add("parent_label_name", validation.Required)
	}
	if in.AnnotationSetID == nil {
		errs.Add("annotation_set_id", validation.Required)
	}
	if errs.Any() {
		return nil, &validation.Error{Fields: errs}
	}
	if err := requireExists[models.AnnotationSet](r.DB, "annotation_set_id", *in.AnnotationSetID); err != nil {
		return nil, err
	}

	label := &models.Label{
		Name:                    *in.Name,
		ParentLabelName:         *in.ParentLabelName,
		LowestTaxonomicName:     in.LowestTaxonomicName,
		LowestAphiaID:           in.LowestAphiaID,
		IdentificationQualifier: in.IdentificationQualifier,
		AnnotationSetID:         *in.AnnotationSetID,
	}
	if in.NameIsLowest != nil {
		label.NameIsLowest = *in.NameIsLowest
	}

	err := r.DB.Create(label).Error
	if database.IsDuplicateKey(err) {
		return nil, validation.NewError("name", "This field must be unique.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create label %s: %w", label.Name, err)
	}
	return label, nil
}

// Update merges the supplied fields into an existing label.
func (r *LabelRepository) Update(id uuid.UUID, in *models.LabelInput) (*models.Label, error) {
	label, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != "" {
		label.Name = *in.Name
	}
	if in.ParentLabelName != nil && *in.ParentLabelName != "" {
		label.ParentLabelName = *in.ParentLabelName
	}
	if in.LowestTaxonomicName != nil {
		label.LowestTaxonomicName = in.LowestTaxonomicName
	}
	if in.LowestAphiaID != nil {
		label.LowestAphiaID = in.LowestAphiaID
	}
	if in.NameIsLowest != nil {
		label.NameIsLowest = *in.NameIsLowest
	}
	if in.IdentificationQualifier != nil {
		label.IdentificationQualifier = in.IdentificationQualifier
	}
	if in.AnnotationSetID != nil && *in.AnnotationSetID != label.AnnotationSetID {
		if err := requireExists[models.AnnotationSet](r.DB, "annotation_set_id", *in.AnnotationSetID); err != nil {
			return nil, err
		}
		label.AnnotationSetID = *in.AnnotationSetID
	}

	err = r.DB.Save(label).Error
	if database.IsDuplicateKey(err) {
		return nil, validation.NewError("name", "This field must be unique.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update label %s: %w", id, err)
	}
	return label, nil
}

// ListAll retrieves all labels ordered by name.
func (r *LabelRepository) ListAll() ([]models.Label, error) {
	var labels []models.Label
	if err := r.DB.Order("name ASC").Find(&labels).Error; err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// ListByAnnotationSet retrieves the labels of one annotation set.
func (r *LabelRepository) ListByAnnotationSet(annotationSetID uuid.UUID) ([]models.Label, error) {
	var labels []models.Label
	err := r.DB.Where("annotation_set_id = ?", annotationSetID).Order("name ASC").Find(&labels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list labels of annotation set %s: %w", annotationSetID, err)
	}
	return labels, nil
}

// GetByID retrieves a label by its ID.
func (r *LabelRepository) GetByID(id uuid.UUID) (*models.Label, error) {
	var label models.Label
	err := r.DB.First(&label, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get label by ID %s: %w", id, err)
	}
	return &label, nil
}

// Delete removes a label and the annotation label rows pointing at it.
func (r *LabelRepository) Delete(id uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id = ?", id).Delete(&models.AnnotationLabel{}).Error; err != nil {
			return fmt.Errorf("failed to delete annotation labels: %w", err)
		}
		result := tx.Delete(&models.Label{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete label %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
