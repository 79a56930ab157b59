package models

import "github.com/google/uuid"

// AnnotationSet groups annotations produced against one or more image sets.
type AnnotationSet struct {
	Base
	CommonFields

	Name    string  `gorm:"not null;uniqueIndex" json:"name"`
	Version *string `json:"version,omitempty"`

	ContextID *uuid.UUID `gorm:"type:uuid" json:"context_id,omitempty"`
	Context   *Context   `gorm:"constraint:OnDelete:SET NULL" json:"context,omitempty"`
	ProjectID *uuid.UUID `gorm:"type:uuid" json:"project_id,omitempty"`
	Project   *Project   `gorm:"constraint:OnDelete:SET NULL" json:"project,omitempty"`
	PIID      *uuid.UUID `gorm:"column:pi_id;type:uuid" json:"pi_id,omitempty"`
	PI        *PI        `gorm:"constraint:OnDelete:SET NULL" json:"pi,omitempty"`
	LicenseID *uuid.UUID `gorm:"type:uuid" json:"license_id,omitempty"`
	License   *License   `gorm:"constraint:OnDelete:SET NULL" json:"license,omitempty"`

	Creators  []Creator  `gorm:"many2many:annotation_set_creators" json:"creators,omitempty"`
	ImageSets []ImageSet `gorm:"many2many:annotation_set_image_sets" json:"image_sets,omitempty"`
}

func (AnnotationSet) TableName() string { return "annotation_sets" }

// AnnotationSetCreator is the join row linking an annotation set to a creator.
type AnnotationSetCreator struct {
	AnnotationSetID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatorID       uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (AnnotationSetCreator) TableName() string { return "annotation_set_creators" }

// AnnotationSetImageSet is the join row linking an annotation set to an
// image set it annotates.
type AnnotationSetImageSet struct {
	AnnotationSetID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ImageSetID      uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (AnnotationSetImageSet) TableName() string { return "annotation_set_image_sets" }
