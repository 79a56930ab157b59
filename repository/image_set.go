package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/validation"
)

// DefaultLocalPath is used when an image set payload does not name one.
const DefaultLocalPath = "../raw"

// ImageSetRepository handles database operations for ImageSet entities
type ImageSetRepository struct {
	DB *gorm.DB
}

// NewImageSetRepository creates a new instance of ImageSetRepository
func NewImageSetRepository(db *gorm.DB) *ImageSetRepository {
	return &ImageSetRepository{DB: db}
}

// Create materializes an image set and its relations in one transaction.
func (r *ImageSetRepository) Create(in *models.ImageSetInput) (*models.ImageSet, error) {
	var set *models.ImageSet
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		created, err := r.CreateTx(tx, in)
		if err != nil {
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

// CreateTx is Create running inside a caller-owned transaction, used by the
// ingest pipeline so the header and all items commit or roll back together.
// Single-valued relations are resolved before the main insert; list
// relations become join rows afterwards.
func (r *ImageSetRepository) CreateTx(tx *gorm.DB, in *models.ImageSetInput) (*models.ImageSet, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, validation.NewError("name", validation.Required)
	}
	var count int64
	if err := tx.Model(&models.ImageSet{}).Where("name = ?", *in.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	if count > 0 {
		return nil, validation.NewError("name", "This field must be unique.")
	}
	if err := checkSHA256Unique[models.ImageSet](tx, in.SHA256Hash, uuid.Nil); err != nil {
		return nil, err
	}

	set := &models.ImageSet{Name: *in.Name}
	set.CommonFields = in.CommonFields
	set.CommonImageFields = in.CommonImageFields
	set.LocalPath = in.LocalPath
	if set.LocalPath == nil {
		p := DefaultLocalPath
		set.LocalPath = &p
	}
	set.MinLatitudeDegrees = in.MinLatitudeDegrees
	set.MaxLatitudeDegrees = in.MaxLatitudeDegrees
	set.MinLongitudeDegrees = in.MinLongitudeDegrees
	set.MaxLongitudeDegrees = in.MaxLongitudeDegrees

	if err := resolveCommonRelations(tx, in.RelationRefsInput, &set.CommonRelations); err != nil {
		return nil, err
	}

	if err := tx.Omit("Creators", "RelatedMaterials").Create(set).Error; err != nil {
		return nil, fmt.Errorf("failed to create image set %s: %w", set.Name, err)
	}

	creatorIDs, err := resolveCreators(tx, in.CreatorIDs, in.Creators)
	if err != nil {
		return nil, err
	}
	if err := r.setCreators(tx, set.ID, creatorIDs); err != nil {
		return nil, err
	}

	materialIDs, err := r.resolveRelatedMaterials(tx, in.RelatedMaterialIDs, in.RelatedMaterials)
	if err != nil {
		return nil, err
	}
	if err := r.setRelatedMaterials(tx, set.ID, materialIDs); err != nil {
		return nil, err
	}

	return set, nil
}

// Update merges the supplied fields into an existing image set. Absent
// fields are left untouched; list relations are replaced when supplied.
func (r *ImageSetRepository) Update(id uuid.UUID, in *models.ImageSetInput) (*models.ImageSet, error) {
	var set *models.ImageSet
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := r.getTx(tx, id)
		if err != nil {
			return err
		}

		if in.Name != nil && *in.Name != "" {
			existing.Name = *in.Name
		}
		if in.LocalPath != nil {
			existing.LocalPath = in.LocalPath
		}
		if in.MinLatitudeDegrees != nil {
			existing.MinLatitudeDegrees = in.MinLatitudeDegrees
		}
		if in.MaxLatitudeDegrees != nil {
			existing.MaxLatitudeDegrees = in.MaxLatitudeDegrees
		}
		if in.MinLongitudeDegrees != nil {
			existing.MinLongitudeDegrees = in.MinLongitudeDegrees
		}
		if in.MaxLongitudeDegrees != nil {
			existing.MaxLongitudeDegrees = in.MaxLongitudeDegrees
		}
		mergeCommonFields(&existing.CommonFields, in.CommonFields)
		mergeCommonImageFields(&existing.CommonImageFields, in.CommonImageFields)

		if in.Name != nil && *in.Name != "" {
			var count int64
			err := tx.Model(&models.ImageSet{}).
				Where("name = ? AND id <> ?", existing.Name, id).Count(&count).Error
			if err != nil {
				return fmt.Errorf("failed to check name uniqueness: %w", err)
			}
			if count > 0 {
				return validation.NewError("name", "This field must be unique.")
			}
		}
		if in.SHA256Hash != nil {
			if err := checkSHA256Unique[models.ImageSet](tx, existing.SHA256Hash, id); err != nil {
				return err
			}
		}

		if err := resolveCommonRelations(tx, in.RelationRefsInput, &existing.CommonRelations); err != nil {
			return err
		}

		if err := tx.Omit("Creators", "RelatedMaterials").Save(existing).Error; err != nil {
			return fmt.Errorf("failed to update image set %s: %w", id, err)
		}

		if in.CreatorIDs != nil || in.Creators != nil {
			creatorIDs, err := resolveCreators(tx, in.CreatorIDs, in.Creators)
			if err != nil {
				return err
			}
			if err := tx.Where("image_set_id = ?", id).Delete(&models.ImageSetCreator{}).Error; err != nil {
				return fmt.Errorf("failed to clear image set creators: %w", err)
			}
			if err := r.setCreators(tx, id, creatorIDs); err != nil {
				return err
			}
		}

		if in.RelatedMaterialIDs != nil || in.RelatedMaterials != nil {
			materialIDs, err := r.resolveRelatedMaterials(tx, in.RelatedMaterialIDs, in.RelatedMaterials)
			if err != nil {
				return err
			}
			if err := tx.Where("image_set_id = ?", id).Delete(&models.ImageSetRelatedMaterial{}).Error; err != nil {
				return fmt.Errorf("failed to clear image set related materials: %w", err)
			}
			if err := r.setRelatedMaterials(tx, id, materialIDs); err != nil {
				return err
			}
		}

		set = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(set.ID)
}

// ListAll retrieves all image sets ordered by name.
func (r *ImageSetRepository) ListAll() ([]models.ImageSet, error) {
	var sets []models.ImageSet
	err := r.DB.Preload("Creators").Preload("RelatedMaterials").Order("name ASC").Find(&sets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list image sets: %w", err)
	}
	return sets, nil
}

// GetByID retrieves an image set by its ID with its list relations loaded.
func (r *ImageSetRepository) GetByID(id uuid.UUID) (*models.ImageSet, error) {
	var set models.ImageSet
	err := r.DB.Preload("Creators").Preload("RelatedMaterials").First(&set, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get image set by ID %s: %w", id, err)
	}
	return &set, nil
}

// GetByName retrieves an image set by its unique name.
func (r *ImageSetRepository) GetByName(name string) (*models.ImageSet, error) {
	var set models.ImageSet
	err := r.DB.Where("name = ?", name).First(&set).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get image set by name %s: %w", name, err)
	}
	return &set, nil
}

// Delete removes an image set along with its images and join rows.
func (r *ImageSetRepository) Delete(id uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var imageIDs []uuid.UUID
		if err := tx.Model(&models.Image{}).Where("image_set_id = ?", id).Pluck("id", &imageIDs).Error; err != nil {
			return fmt.Errorf("failed to list images of image set %s: %w", id, err)
		}
		if len(imageIDs) > 0 {
			if err := tx.Where("image_id IN ?", imageIDs).Delete(&models.ImageCreator{}).Error; err != nil {
				return fmt.Errorf("failed to delete image creators: %w", err)
			}
			var annotationIDs []uuid.UUID
			if err := tx.Model(&models.Annotation{}).Where("image_id IN ?", imageIDs).Pluck("id", &annotationIDs).Error; err != nil {
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
			if err := tx.Where("image_set_id = ?", id).Delete(&models.Image{}).Error; err != nil {
				return fmt.Errorf("failed to delete images: %w", err)
			}
		}
		if err := tx.Where("image_set_id = ?", id).Delete(&models.ImageSetCreator{}).Error; err != nil {
			return fmt.Errorf("failed to delete image set creators: %w", err)
		}
		if err := tx.Where("image_set_id = ?", id).Delete(&models.ImageSetRelatedMaterial{}).Error; err != nil {
			return fmt.Errorf("failed to delete image set related materials: %w", err)
		}
		if err := tx.Where("image_set_id = ?", id).Delete(&models.AnnotationSetImageSet{}).Error; err != nil {
			return fmt.Errorf("failed to delete annotation set links: %w", err)
		}

		result := tx.Delete(&models.ImageSet{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete image set %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ImageSetRepository) getTx(tx *gorm.DB, id uuid.UUID) (*models.ImageSet, error) {
	var set models.ImageSet
	err := tx.First(&set, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get image set by ID %s: %w", id, err)
	}
	return &set, nil
}

func (r *ImageSetRepository) setCreators(tx *gorm.DB, setID uuid.UUID, creatorIDs []uuid.UUID) error {
	seen := map[uuid.UUID]bool{}
	for _, creatorID := range creatorIDs {
		if seen[creatorID] {
			continue
		}
		seen[creatorID] = true
		link := models.ImageSetCreator{ImageSetID: setID, CreatorID: creatorID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link creator %s: %w", creatorID, err)
		}
	}
	return nil
}

func (r *ImageSetRepository) setRelatedMaterials(tx *gorm.DB, setID uuid.UUID, materialIDs []uuid.UUID) error {
	seen := map[uuid.UUID]bool{}
	for _, materialID := range materialIDs {
		if seen[materialID] {
			continue
		}
		seen[materialID] = true
		link := models.ImageSetRelatedMaterial{ImageSetID: setID, RelatedMaterialID: materialID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link related material %s: %w", materialID, err)
		}
	}
	return nil
}

// resolveRelatedMaterials inserts inline related material entries, or
// verifies ids against existing rows. Related materials carry no unique
// key, so inline entries are always fresh inserts.
func (r *ImageSetRepository) resolveRelatedMaterials(tx *gorm.DB, ids []uuid.UUID, objs []models.RelatedMaterialInput) ([]uuid.UUID, error) {
	if objs != nil {
		out := make([]uuid.UUID, 0, len(objs))
		for _, obj := range objs {
			if obj.Title == "" {
				return nil, validation.NewError("related_materials", "title is required")
			}
			row := models.RelatedMaterial{Title: obj.Title, URI: obj.URI, Relation: obj.Relation}
			if err := tx.Create(&row).Error; err != nil {
				return nil, fmt.Errorf("failed to create related material %s: %w", obj.Title, err)
			}
			out = append(out, row.ID)
		}
		return out, nil
	}
	for _, id := range ids {
		if err := requireExists[models.RelatedMaterial](tx, "related_materials_ids", id); err != nil {
			return nil, err
		}
	}
	return ids, nil
}
