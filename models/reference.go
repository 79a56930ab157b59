package models

// NamedURI is embedded by every shared controlled-vocabulary entity: a
// globally unique name plus an optional URI. These rows are created
// idempotently by name when supplied as nested objects during ingestion.
type NamedURI struct {
	Base
	Name string  `gorm:"not null;uniqueIndex" json:"name"`
	URI  *string `json:"uri,omitempty"`
}

// NamedFields returns the name and URI for generic get-or-create handling.
func (n *NamedURI) NamedFields() (string, *string) { return n.Name, n.URI }

// SetNamedFields sets the name and URI for generic get-or-create handling.
func (n *NamedURI) SetNamedFields(name string, uri *string) {
	n.Name = name
	n.URI = uri
}

// Creator identifies a person or institution that created an image, image
// set or annotation set.
type Creator struct{ NamedURI }

func (Creator) TableName() string { return "creators" }

// Context is the overarching project context within which imagery was created.
type Context struct{ NamedURI }

func (Context) TableName() string { return "contexts" }

// Project is the specific project, expedition or cruise.
type Project struct{ NamedURI }

func (Project) TableName() string { return "projects" }

// PI is the principal investigator of a data set.
type PI struct{ NamedURI }

func (PI) TableName() string { return "pis" }

// License points to the license to use the data.
type License struct{ NamedURI }

func (License) TableName() string { return "licenses" }

// Event is one event of a project that led to the creation of imagery.
type Event struct{ NamedURI }

func (Event) TableName() string { return "events" }

// Platform describes the camera platform used to create imagery.
type Platform struct{ NamedURI }

func (Platform) TableName() string { return "platforms" }

// Sensor describes the sensor used to capture imagery.
type Sensor struct{ NamedURI }

func (Sensor) TableName() string { return "sensors" }

// RelatedMaterial points to a resource related to an image set. Unlike the
// named-reference entities it carries no uniqueness constraint; rows are
// plain inserts.
type RelatedMaterial struct {
	Base
	Title    string  `gorm:"not null" json:"title"`
	URI      *string `json:"uri,omitempty"`
	Relation *string `json:"relation,omitempty"`
}

func (RelatedMaterial) TableName() string { return "related_materials" }

// Annotator is a uniquely named person or machine that creates annotations.
type Annotator struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

func (Annotator) TableName() string { return "annotators" }
