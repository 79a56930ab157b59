package models

import "github.com/google/uuid"

// NamedRefInput creates or references a named entity by its unique name.
type NamedRefInput struct {
	Name string  `json:"name"`
	URI  *string `json:"uri,omitempty"`
}

// RelatedMaterialInput carries one related material entry.
type RelatedMaterialInput struct {
	Title    string  `json:"title"`
	URI      *string `json:"uri,omitempty"`
	Relation *string `json:"relation,omitempty"`
}

// RelationRefsInput holds the relation fields shared by image set and image
// payloads. Each relation accepts either an inline object or the id of an
// existing row, never both. Named references are get-or-create by name;
// inline calibration objects are plain inserts.
type RelationRefsInput struct {
	ContextID  *uuid.UUID     `json:"context_id,omitempty"`
	Context    *NamedRefInput `json:"context,omitempty"`
	ProjectID  *uuid.UUID     `json:"project_id,omitempty"`
	Project    *NamedRefInput `json:"project,omitempty"`
	EventID    *uuid.UUID     `json:"event_id,omitempty"`
	Event      *NamedRefInput `json:"event,omitempty"`
	PlatformID *uuid.UUID     `json:"platform_id,omitempty"`
	Platform   *NamedRefInput `json:"platform,omitempty"`
	SensorID   *uuid.UUID     `json:"sensor_id,omitempty"`
	Sensor     *NamedRefInput `json:"sensor,omitempty"`
	PIID       *uuid.UUID     `json:"pi_id,omitempty"`
	PI         *NamedRefInput `json:"pi,omitempty"`
	LicenseID  *uuid.UUID     `json:"license_id,omitempty"`
	License    *NamedRefInput `json:"license,omitempty"`

	CameraPoseID             *uuid.UUID                   `json:"camera_pose_id,omitempty"`
	CameraPose               *ImageCameraPose             `json:"camera_pose,omitempty"`
	CameraHousingViewportID  *uuid.UUID                   `json:"camera_housing_viewport_id,omitempty"`
	CameraHousingViewport    *ImageCameraHousingViewport  `json:"camera_housing_viewport,omitempty"`
	FlatportParameterID      *uuid.UUID                   `json:"flatport_parameter_id,omitempty"`
	FlatportParameter        *ImageFlatportParameter      `json:"flatport_parameter,omitempty"`
	DomeportParameterID      *uuid.UUID                   `json:"domeport_parameter_id,omitempty"`
	DomeportParameter        *ImageDomeportParameter      `json:"domeport_parameter,omitempty"`
	PhotometricCalibrationID *uuid.UUID                   `json:"photometric_calibration_id,omitempty"`
	PhotometricCalibration   *ImagePhotometricCalibration `json:"photometric_calibration,omitempty"`
	CameraCalibrationModelID *uuid.UUID                   `json:"camera_calibration_model_id,omitempty"`
	CameraCalibrationModel   *ImageCameraCalibrationModel `json:"camera_calibration_model,omitempty"`
}

// ImageSetInput is the write payload for image sets, both from the ingest
// header mapper and from the CRUD endpoints.
type ImageSetInput struct {
	CommonFields
	CommonImageFields
	RelationRefsInput

	Name      *string `json:"name,omitempty"`
	LocalPath *string `json:"local_path,omitempty"`

	MinLatitudeDegrees  *float64 `json:"min_latitude_degrees,omitempty"`
	MaxLatitudeDegrees  *float64 `json:"max_latitude_degrees,omitempty"`
	MinLongitudeDegrees *float64 `json:"min_longitude_degrees,omitempty"`
	MaxLongitudeDegrees *float64 `json:"max_longitude_degrees,omitempty"`

	CreatorIDs []uuid.UUID     `json:"creators_ids,omitempty"`
	Creators   []NamedRefInput `json:"creators,omitempty"`

	RelatedMaterialIDs []uuid.UUID            `json:"related_materials_ids,omitempty"`
	RelatedMaterials   []RelatedMaterialInput `json:"related_materials,omitempty"`
}

// ImageInput is the write payload for images.
type ImageInput struct {
	CommonFields
	CommonImageFields
	RelationRefsInput

	ImageSetID *uuid.UUID `json:"image_set_id,omitempty"`
	Filename   *string    `json:"filename,omitempty"`

	CreatorIDs []uuid.UUID     `json:"creators_ids,omitempty"`
	Creators   []NamedRefInput `json:"creators,omitempty"`
}

// AnnotationSetInput is the write payload for annotation sets.
type AnnotationSetInput struct {
	CommonFields

	Name    *string `json:"name,omitempty"`
	Version *string `json:"version,omitempty"`

	ContextID *uuid.UUID     `json:"context_id,omitempty"`
	Context   *NamedRefInput `json:"context,omitempty"`
	ProjectID *uuid.UUID     `json:"project_id,omitempty"`
	Project   *NamedRefInput `json:"project,omitempty"`
	PIID      *uuid.UUID     `json:"pi_id,omitempty"`
	PI        *NamedRefInput `json:"pi,omitempty"`
	LicenseID *uuid.UUID     `json:"license_id,omitempty"`
	License   *NamedRefInput `json:"license,omitempty"`

	CreatorIDs  []uuid.UUID     `json:"creators_ids,omitempty"`
	Creators    []NamedRefInput `json:"creators,omitempty"`
	ImageSetIDs []uuid.UUID     `json:"image_set_ids,omitempty"`
}

// LabelInput is the write payload for labels.
type LabelInput struct {
	Name                    *string    `json:"name,omitempty"`
	ParentLabelName         *string    `json:"parent_label_name,omitempty"`
	LowestTaxonomicName     *string    `json:"lowest_taxonomic_name,omitempty"`
	LowestAphiaID           *string    `json:"lowest_aphia_id,omitempty"`
	NameIsLowest            *bool      `json:"name_is_lowest,omitempty"`
	IdentificationQualifier *string    `json:"identification_qualifier,omitempty"`
	AnnotationSetID         *uuid.UUID `json:"annotation_set_id,omitempty"`
}

// AnnotationInput is the write payload for annotations.
type AnnotationInput struct {
	ImageID            *uuid.UUID  `json:"image_id,omitempty"`
	AnnotationSetID    *uuid.UUID  `json:"annotation_set_id,omitempty"`
	Shape              *string     `json:"shape,omitempty"`
	Coordinates        Coordinates `json:"coordinates,omitempty"`
	AnnotationPlatform *string     `json:"annotation_platform,omitempty"`
	DimensionPixels    *float64    `json:"dimension_pixels,omitempty"`
}

// AnnotationLabelInput is the write payload for annotation labels.
type AnnotationLabelInput struct {
	LabelID          *uuid.UUID     `json:"label_id,omitempty"`
	AnnotationID     *uuid.UUID     `json:"annotation_id,omitempty"`
	AnnotatorID      *uuid.UUID     `json:"annotator_id,omitempty"`
	Annotator        *NamedRefInput `json:"annotator,omitempty"`
	CreationDatetime *string        `json:"creation_datetime,omitempty"`
}
