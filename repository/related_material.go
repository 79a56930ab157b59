package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/validation"
)

// RelatedMaterialRepository handles database operations for
// RelatedMaterial entities
type RelatedMaterialRepository struct {
	DB *gorm.DB
}

// NewRelatedMaterialRepository creates a new instance of
// RelatedMaterialRepository
func NewRelatedMaterialRepository(db *gorm.DB) *RelatedMaterialRepository {
	return &RelatedMaterialRepository{DB: db}
}

// Create inserts a new related material entry.
func (r *RelatedMaterialRepository) Create(in *models.RelatedMaterialInput) (*models.RelatedMaterial, error) {
	if in.Title == "" {
		return nil, validation.NewError("title", validation.Required)
	}
	row := &models.RelatedMaterial{Title: in.Title, URI: in.URI, Relation: in.Relation}
	if err := r.DB.Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create related material %s: %w", in.Title, err)
	}
	return row, nil
}

// Update merges the supplied fields into an existing entry.
func (r *RelatedMaterialRepository) Update(id uuid.UUID, in *models.RelatedMaterialInput) (*models.RelatedMaterial, error) {
	row, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		row.Title = in.Title
	}
	if in.URI != nil {
		row.URI = in.URI
	}
	if in.Relation != nil {
		row.Relation = in.Relation
	}
	if err := r.DB.Save(row).Error; err != nil {
		return nil, fmt.Errorf("failed to update related material %s: %w", id, err)
	}
	return row, nil
}

// ListAll retrieves all related material entries ordered by title.
func (r *RelatedMaterialRepository) ListAll() ([]models.RelatedMaterial, error) {
	var rows []models.RelatedMaterial
	if err := r.DB.Order("title ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list related materials: %w", err)
	}
	return rows, nil
}

// GetByID retrieves one entry by its ID.
func (r *RelatedMaterialRepository) GetByID(id uuid.UUID) (*models.RelatedMaterial, error) {
	var row models.RelatedMaterial
	err := r.DB.First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get related material by ID %s: %w", id, err)
	}
	return &row, nil
}

// Delete removes an entry and any image set links pointing at it.
func (r *RelatedMaterialRepository) Delete(id uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("related_material_id = ?", id).Delete(&models.ImageSetRelatedMaterial{}).Error; err != nil {
			return fmt.Errorf("failed to delete image set links: %w", err)
		}
		result := tx.Delete(&models.RelatedMaterial{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete related material %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
