package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageSet is the top-level catalog entity an iFDO header maps onto.
type ImageSet struct {
	Base
	CommonFields
	CommonImageFields
	CommonRelations

	Name      string  `gorm:"not null;uniqueIndex" json:"name"`
	LocalPath *string `json:"local_path,omitempty"`

	MinLatitudeDegrees  *float64 `json:"min_latitude_degrees,omitempty"`
	MaxLatitudeDegrees  *float64 `json:"max_latitude_degrees,omitempty"`
	MinLongitudeDegrees *float64 `json:"min_longitude_degrees,omitempty"`
	MaxLongitudeDegrees *float64 `json:"max_longitude_degrees,omitempty"`

	// Limits is the bounding polygon derived from the four min/max columns.
	Limits *Polygon `gorm:"serializer:json" json:"limits,omitempty"`

	Creators         []Creator         `gorm:"many2many:image_set_creators" json:"creators,omitempty"`
	RelatedMaterials []RelatedMaterial `gorm:"many2many:image_set_related_materials" json:"related_materials,omitempty"`
}

func (ImageSet) TableName() string { return "image_sets" }

// BeforeSave keeps the derived geometry columns consistent with the
// coordinate fields they are computed from.
func (s *ImageSet) BeforeSave(tx *gorm.DB) error {
	s.RecomputeGeom()
	s.RecomputeLimits()
	return nil
}

// RecomputeLimits rebuilds the bounding polygon. It is cleared unless all
// four min/max degree fields are present.
func (s *ImageSet) RecomputeLimits() {
	if s.MinLatitudeDegrees == nil || s.MaxLatitudeDegrees == nil ||
		s.MinLongitudeDegrees == nil || s.MaxLongitudeDegrees == nil {
		s.Limits = nil
		return
	}
	s.Limits = PolygonFromBBox(*s.MinLongitudeDegrees, *s.MinLatitudeDegrees,
		*s.MaxLongitudeDegrees, *s.MaxLatitudeDegrees)
}

// ImageSetCreator is the join row linking an image set to a creator.
type ImageSetCreator struct {
	ImageSetID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatorID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (ImageSetCreator) TableName() string { return "image_set_creators" }

// ImageSetRelatedMaterial is the join row linking an image set to a
// related material entry.
type ImageSetRelatedMaterial struct {
	ImageSetID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RelatedMaterialID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (ImageSetRelatedMaterial) TableName() string { return "image_set_related_materials" }
