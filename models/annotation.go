package models

import "github.com/google/uuid"

// Annotation is a shape drawn on an image within an annotation set.
type Annotation struct {
	Base

	ImageID         uuid.UUID      `gorm:"type:uuid;not null" json:"image_id"`
	Image           *Image         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AnnotationSetID uuid.UUID      `gorm:"type:uuid;not null" json:"annotation_set_id"`
	AnnotationSet   *AnnotationSet `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Shape              string      `gorm:"not null" json:"shape"`
	Coordinates        Coordinates `gorm:"serializer:json" json:"coordinates"`
	AnnotationPlatform *string     `json:"annotation_platform,omitempty"`
	DimensionPixels    *float64    `json:"dimension_pixels,omitempty"`

	Labels []Label `gorm:"many2many:annotation_labels" json:"labels,omitempty"`
}

func (Annotation) TableName() string { return "annotations" }

// AnnotationLabel attaches a label to an annotation, optionally attributed
// to an annotator. The (label, annotation, annotator) triple is unique.
type AnnotationLabel struct {
	Base

	LabelID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_annotation_label_triple" json:"label_id"`
	Label        *Label      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AnnotationID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_annotation_label_triple" json:"annotation_id"`
	Annotation   *Annotation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AnnotatorID  *uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_annotation_label_triple" json:"annotator_id,omitempty"`
	Annotator    *Annotator  `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	CreationDatetime string `gorm:"not null" json:"creation_datetime"`
}

func (AnnotationLabel) TableName() string { return "annotation_labels" }
