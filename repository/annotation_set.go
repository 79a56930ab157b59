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

// AnnotationSetRepository handles database operations for AnnotationSet
// entities
type AnnotationSetRepository struct {
	DB *gorm.DB
}

// NewAnnotationSetRepository creates a new instance of AnnotationSetRepository
func NewAnnotationSetRepository(db *gorm.DB) *AnnotationSetRepository {
	return &AnnotationSetRepository{DB: db}
}

// Create materializes an annotation set and its relations in one
// transaction.
func (r *AnnotationSetRepository) Create(in *models.AnnotationSetInput) (*models.AnnotationSet, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, validation.NewError("name", validation.Required)
	}

	var set *models.AnnotationSet
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		created := &models.AnnotationSet{Name: *in.Name, Version: in.Version}
		created.CommonFields = in.CommonFields

		if err := r.resolveRelations(tx, in, created); err != nil {
			return err
		}

		err := tx.Omit("Creators", "ImageSets").Create(created).Error
		if database.IsDuplicateKey(err) {
			return validation.NewError("name", "This field must be unique.")
		}
		if err != nil {
			return fmt.Errorf("failed to create annotation set %s: %w", created.Name, err)
		}

		creatorIDs, err := resolveCreators(tx, in.CreatorIDs, in.Creators)
		if err != nil {
			return err
		}
		if err := r.setCreators(tx, created.ID, creatorIDs); err != nil {
			return err
		}
		if err := r.setImageSets(tx, created.ID, in.ImageSetIDs); err != nil {
			return err
		}

		set = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Update merges the supplied fields into an existing annotation set.
func (r *AnnotationSetRepository) Update(id uuid.UUID, in *models.AnnotationSetInput) (*models.AnnotationSet, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.AnnotationSet
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return fmt.Errorf("failed to get annotation set by ID %s: %w", id, err)
		}

		if in.Name != nil && *in.Name != "" {
			existing.Name = *in.Name
		}
		if in.Version != nil {
			existing.Version = in.Version
		}
		mergeCommonFields(&existing.CommonFields, in.CommonFields)

		if err := r.resolveRelations(tx, in, &existing); err != nil {
			return err
		}

		err := tx.Omit("Creators", "ImageSets").Save(&existing).Error
		if database.IsDuplicateKey(err) {
			return validation.NewError("name", "This field must be unique.")
		}
		if err != nil {
			return fmt.Errorf("failed to update annotation set %s: %w", id, err)
		}

		if in.CreatorIDs != nil || in.Creators != nil {
			creatorIDs, err := resolveCreators(tx, in.CreatorIDs, in.Creators)
			if err != nil {
				return err
			}
			if err := tx.Where("annotation_set_id = ?", id).Delete(&models.AnnotationSetCreator{}).Error; err != nil {
				return fmt.Errorf("failed to clear annotation set creators: %w", err)
			}
			if err := r.setCreators(tx, id, creatorIDs); err != nil {
				return err
			}
		}

		if in.ImageSetIDs != nil {
			if err := tx.Where("annotation_set_id = ?", id).Delete(&models.AnnotationSetImageSet{}).Error; err != nil {
				return fmt.Errorf("failed to clear annotation set image sets: %w", err)
			}
			if err := r.setImageSets(tx, id, in.ImageSetIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// ListAll retrieves all annotation sets ordered by name.
func (r *AnnotationSetRepository) ListAll() ([]models.AnnotationSet, error) {
	var sets []models.AnnotationSet
	err := r.DB.Preload("Creators").Preload("ImageSets").Order("name ASC").Find(&sets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list annotation sets: %w", err)
	}
	return sets, nil
}

// GetByID retrieves an annotation set by its ID.
func (r *AnnotationSetRepository) GetByID(id uuid.UUID) (*models.AnnotationSet, error) {
	var set models.AnnotationSet
	err := r.DB.Preload("Creators").Preload("ImageSets").First(&set, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get annotation set by ID %s: %w", id, err)
	}
	return &set, nil
}

// Delete removes an annotation set along with its labels, annotations and
// join rows.
func (r *AnnotationSetRepository) Delete(id uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var annotationIDs []uuid.UUID
		if err := tx.Model(&models.Annotation{}).Where("annotation_set_id = ?", id).Pluck("id", &annotationIDs).Error; err != nil {
			return fmt.Errorf("failed to list annotations: %w", err)
		}
		if len(annotationIDs) > 0 {
			if err := tx.Where("annotation_id IN ?", annotationIDs).Delete(&models.AnnotationLabel{}).Error; err != nil {
				return fmt.Errorf("failed to delete annotation labels: %w", err)
			}
			if err := tx.Where("id IN ?", annotationIDs).Delete(&models.Annotation{}).Error; err != nil {
				return fmt.Errorf("failed to delete annotations: %w", err)
			}
		}
		if err := tx.Where("annotation_set_id = ?", id).Delete(&models.Label{}).Error; err != nil {
			return fmt.Errorf("failed to delete labels: %w", err)
		}
		if err := tx.Where("annotation_set_id = ?", id).Delete(&models.AnnotationSetCreator{}).Error; err != nil {
			return fmt.Errorf("failed to delete annotation set creators: %w", err)
		}
		if err := tx.Where("annotation_set_id = ?", id).Delete(&models.AnnotationSetImageSet{}).Error; err != nil {
			return fmt.Errorf("failed to delete annotation set image sets: %w", err)
		}

		result := tx.Delete(&models.AnnotationSet{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete annotation set %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *AnnotationSetRepository) resolveRelations(tx *gorm.DB, in *models.AnnotationSetInput, set *models.AnnotationSet) error {
	if id, err := resolveNamedRef[models.Context](tx, "Context", "context", in.ContextID, in.Context); err != nil {
		return err
	} else if id != nil {
		set.ContextID = id
	}
	if id, err := resolveNamedRef[models.Project](tx, "Project", "project", in.ProjectID, in.Project); err != nil {
		return err
	} else if id != nil {
		set.ProjectID = id
	}
	if id, err := resolveNamedRef[models.PI](tx, "PI", "pi", in.PIID, in.PI); err != nil {
		return err
	} else if id != nil {
		set.PIID = id
	}
	if id, err := resolveNamedRef[models.License](tx, "License", "license", in.LicenseID, in.License); err != nil {
		return err
	} else if id != nil {
		set.LicenseID = id
	}
	return nil
}

func (r *AnnotationSetRepository) setCreators(tx *gorm.DB, setID uuid.UUID, creatorIDs []uuid.UUID) error {
	seen := map[uuid.UUID]bool{}
	for _, creatorID := range creatorIDs {
		if seen[creatorID] {
			continue
		}
		seen[creatorID] = true
		link := models.AnnotationSetCreator{AnnotationSetID: setID, CreatorID: creatorID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link creator %s: %w", creatorID, err)
		}
	}
	return nil
}

func (r *AnnotationSetRepository) setImageSets(tx *gorm.DB, setID uuid.UUID, imageSetIDs []uuid.UUID) error {
	seen := map[uuid.UUID]bool{}
	for _, imageSetID := range imageSetIDs {
		if seen[imageSetID] {
			continue
		}
		seen[imageSetID] = true
		if err := requireExists[models.ImageSet](tx, "image_set_ids", imageSetID); err != nil {
			return err
		}
		link := models.AnnotationSetImageSet{AnnotationSetID: setID, ImageSetID: imageSetID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link image set %s: %w", imageSetID, err)
		}
	}
	return nil
}
