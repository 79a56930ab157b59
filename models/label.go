package models

import "github.com/google/uuid"

// Label is a taxonomic or morphologic vocabulary entry scoped to an
// annotation set.
type Label struct {
	Base

	Name                    string  `gorm:"not null;uniqueIndex" json:"name"`
	ParentLabelName         string  `gorm:"not null" json:"parent_label_name"`
	LowestTaxonomicName     *string `json:"lowest_taxonomic_name,omitempty"`
	LowestAphiaID           *string `gorm:"column:lowest_aphia_id" json:"lowest_aphia_id,omitempty"`
	NameIsLowest            bool    `gorm:"not null;default:false" json:"name_is_lowest"`
	IdentificationQualifier *string `json:"identification_qualifier,omitempty"`

	AnnotationSetID uuid.UUID      `gorm:"type:uuid;not null" json:"annotation_set_id"`
	AnnotationSet   *AnnotationSet `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Label) TableName() string { return "labels" }
