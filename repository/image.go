package repository

import (
	"errors"
	"fmt"
	"sort"

	"github.com/facette/natsort"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/validation"
)

// ImageRepository handles database operations for Image entities
type ImageRepository struct {
	DB *gorm.DB
}

// NewImageRepository creates a new instance of ImageRepository
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{DB: db}
}

// Create materializes an image and its relations in one transaction.
func (r *ImageRepository) Create(in *models.ImageInput) (*models.Image, error) {
	var img *models.Image
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		created, err := r.CreateTx(tx, in)
		if err != nil {
			return err
		}
		img = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// CreateTx is Create running inside a caller-owned transaction. The
// filename must be unique within its image set; the duplicate is reported
// as a field error before the constraint fires.
func (r *ImageRepository) CreateTx(tx *gorm.DB, in *models.ImageInput) (*models.Image, error) {
	if in.Filename == nil || *in.Filename == "" {
		return nil, validation.NewError("filename", validation.Required)
	}
	if in.ImageSetID == nil {
		return nil, validation.NewError("image_set_id", validation.Required)
	}
	if err := requireExists[models.ImageSet](tx, "image_set_id", *in.ImageSetID); err != nil {
		return nil, err
	}

	var count int64
	err := tx.Model(&models.Image{}).
		Where("image_set_id = ? AND filename = ?", *in.ImageSetID, *in.Filename).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check filename uniqueness: %w", err)
	}
	if count > 0 {
		return nil, validation.NewError("filename", "Image with this filename already exists in this image set.")
	}
	if err := checkSHA256Unique[models.Image](tx, in.SHA256Hash, uuid.Nil); err != nil {
		return nil, err
	}

	img := &models.Image{ImageSetID: *in.ImageSetID, Filename: *in.Filename}
	img.CommonFields = in.CommonFields
	img.CommonImageFields = in.CommonImageFields

	if err := resolveCommonRelations(tx, in.RelationRefsInput, &img.CommonRelations); err != nil {
		return nil, err
	}

	if err := tx.Omit("Creators", "ImageSet").Create(img).Error; err != nil {
		return nil, fmt.Errorf("failed to create image %s: %w", img.Filename, err)
	}

	creatorIDs, err := resolveCreators(tx, in.CreatorIDs, in.Creators)
	if err != nil {
		return nil, err
	}
	if err := r.setCreators(tx, img.ID, creatorIDs); err != nil {
		return nil, err
	}

	return img, nil
}

// Update merges the supplied fields into an existing image.
func (r *ImageRepository) Update(id uuid.UUID, in *models.ImageInput) (*models.Image, error) {
	var img *models.Image
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Image
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return fmt.Errorf("failed to get image by ID %s: %w", id, err)
		}

		if in.ImageSetID != nil && *in.ImageSetID != existing.ImageSetID {
			if err := requireExists[models.ImageSet](tx, "image_set_id", *in.ImageSetID); err != nil {
				return err
			}
			existing.ImageSetID = *in.ImageSetID
		}
		if in.Filename != nil && *in.Filename != "" {
			existing.Filename = *in.Filename
		}

		var count int64
		err := tx.Model(&models.Image{}).
			Where("image_set_id = ? AND filename = ? AND id <> ?", existing.ImageSetID, existing.Filename, id).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check filename uniqueness: %w", err)
		}
		if count > 0 {
			return validation.NewError("filename", "Image with this filename already exists in this image set.")
		}

		mergeCommonFields(&existing.CommonFields, in.CommonFields)
		mergeCommonImageFields(&existing.CommonImageFields, in.CommonImageFields)

		if in.SHA256Hash != nil {
			if err := checkSHA256Unique[models.Image](tx, existing.SHA256Hash, id); err != nil {
				return err
			}
		}

		if err := resolveCommonRelations(tx, in.RelationRefsInput, &existing.CommonRelations); err != nil {
			return err
		}

		if err := tx.Omit("Creators", "ImageSet").Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update image %s: %w", id, err)
		}

		if in.CreatorIDs != nil || in.Creators != nil {
			creatorIDs, err := resolveCreators(tx, in.CreatorIDs, in.Creators)
			if err != nil {
				return err
			}
			if err := tx.Where("image_id = ?", id).Delete(&models.ImageCreator{}).Error; err != nil {
				return fmt.Errorf("failed to clear image creators: %w", err)
			}
			if err := r.setCreators(tx, id, creatorIDs); err != nil {
				return err
			}
		}

		img = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(img.ID)
}

// ListAll retrieves all images.
func (r *ImageRepository) ListAll() ([]models.Image, error) {
	var images []models.Image
	if err := r.DB.Preload("Creators").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// ListByImageSet retrieves the images of one set, naturally sorted by
// filename so img2.png sorts before img10.png.
func (r *ImageRepository) ListByImageSet(imageSetID uuid.UUID) ([]models.Image, error) {
	var images []models.Image
	err := r.DB.Preload("Creators").Where("image_set_id = ?", imageSetID).Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images of image set %s: %w", imageSetID, err)
	}
	sort.SliceStable(images, func(i, j int) bool {
		return natsort.Compare(images[i].Filename, images[j].Filename)
	})
	return images, nil
}

// GetByID retrieves an image by its ID.
func (r *ImageRepository) GetByID(id uuid.UUID) (*models.Image, error) {
	var img models.Image
	err := r.DB.Preload("Creators").First(&img, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get image by ID %s: %w", id, err)
	}
	return &img, nil
}

// CountByImageSet returns the number of images in a set.
func (r *ImageRepository) CountByImageSet(tx *gorm.DB, imageSetID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&models.Image{}).Where("image_set_id = ?", imageSetID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count images of image set %s: %w", imageSetID, err)
	}
	return count, nil
}

// Delete removes an image, its join rows and its annotations.
func (r *ImageRepository) Delete(id uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", id).Delete(&models.ImageCreator{}).Error; err != nil {
			return fmt.Errorf("failed to delete image creators: %w", err)
		}
		var annotationIDs []uuid.UUID
		if err := tx.Model(&models.Annotation{}).Where("image_id = ?", id).Pluck("id", &annotationIDs).Error; err != nil {
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
		result := tx.Delete(&models.Image{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete image %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ImageRepository) setCreators(tx *gorm.DB, imageID uuid.UUID, creatorIDs []uuid.UUID) error {
	seen := map[uuid.UUID]bool{}
	for _, creatorID := range creatorIDs {
		if seen[creatorID] {
			continue
		}
		seen[creatorID] = true
		link := models.ImageCreator{ImageID: imageID, CreatorID: creatorID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link creator %s: %w", creatorID, err)
		}
	}
	return nil
}
