package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image is a single item row inside an image set. Filenames are unique per
// set, not globally.
type Image struct {
	Base
	CommonFields
	CommonImageFields
	CommonRelations

	ImageSetID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_images_set_filename" json:"image_set_id"`
	ImageSet   *ImageSet `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Filename   string    `gorm:"not null;uniqueIndex:idx_images_set_filename" json:"filename"`

	Creators []Creator `gorm:"many2many:image_creators" json:"creators,omitempty"`
}

func (Image) TableName() string { return "images" }

func (i *Image) BeforeSave(tx *gorm.DB) error {
	i.RecomputeGeom()
	return nil
}

// ImageCreator is the join row linking an image to a creator.
type ImageCreator struct {
	ImageID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatorID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (ImageCreator) TableName() string { return "image_creators" }
