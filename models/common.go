package models

import (
	"time"

	"github.com/google/uuid"
)

// CommonFields are the free-text descriptive columns shared by image sets,
// images and annotation sets.
type CommonFields struct {
	Handle            *string `json:"handle,omitempty"`
	Copyright         *string `json:"copyright,omitempty"`
	Abstract          *string `json:"abstract,omitempty"`
	Objective         *string `json:"objective,omitempty"`
	TargetEnvironment *string `json:"target_environment,omitempty"`
	TargetTimescale   *string `json:"target_timescale,omitempty"`
	CurationProtocol  *string `json:"curation_protocol,omitempty"`
}

// CommonImageFields are the acquisition metadata columns shared by image
// sets and images. Geom is derived from Latitude/Longitude on every save and
// must never be supplied by clients.
type CommonImageFields struct {
	SHA256Hash *string    `gorm:"column:sha256_hash;uniqueIndex" json:"sha256_hash,omitempty"`
	DateTime   *time.Time `json:"date_time,omitempty"`

	Geom      *Point   `gorm:"serializer:json" json:"geom,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	AltitudeMeters              *float64 `json:"altitude_meters,omitempty"`
	CoordinateUncertaintyMeters *float64 `json:"coordinate_uncertainty_meters,omitempty"`
	Entropy                     *float64 `json:"entropy,omitempty"`
	ParticleCount               *int     `json:"particle_count,omitempty"`

	AverageColor            FloatList `gorm:"serializer:json" json:"average_color,omitempty"`
	Mpeg7ColorLayout        FloatList `gorm:"serializer:json" json:"mpeg7_color_layout,omitempty"`
	Mpeg7ColorStatistic     FloatList `gorm:"serializer:json" json:"mpeg7_color_statistic,omitempty"`
	Mpeg7ColorStructure     FloatList `gorm:"serializer:json" json:"mpeg7_color_structure,omitempty"`
	Mpeg7DominantColor      FloatList `gorm:"serializer:json" json:"mpeg7_dominant_color,omitempty"`
	Mpeg7EdgeHistogram      FloatList `gorm:"serializer:json" json:"mpeg7_edge_histogram,omitempty"`
	Mpeg7HomogeneousTexture FloatList `gorm:"serializer:json" json:"mpeg7_homogeneous_texture,omitempty"`
	Mpeg7ScalableColor      FloatList `gorm:"serializer:json" json:"mpeg7_scalable_color,omitempty"`

	Acquisition        *string `json:"acquisition,omitempty"`
	Quality            *string `json:"quality,omitempty"`
	Deployment         *string `json:"deployment,omitempty"`
	Navigation         *string `json:"navigation,omitempty"`
	ScaleReference     *string `json:"scale_reference,omitempty"`
	Illumination       *string `json:"illumination,omitempty"`
	PixelMagnitude     *string `json:"pixel_magnitude,omitempty"`
	MarineZone         *string `json:"marine_zone,omitempty"`
	SpectralResolution *string `json:"spectral_resolution,omitempty"`
	CaptureMode        *string `json:"capture_mode,omitempty"`
	FaunaAttraction    *string `json:"fauna_attraction,omitempty"`

	AreaSquareMeters    *float64 `json:"area_square_meters,omitempty"`
	MetersAboveGround   *float64 `json:"meters_above_ground,omitempty"`
	AcquisitionSettings JSONMap  `gorm:"serializer:json" json:"acquisition_settings,omitempty"`

	CameraYawDegrees   *float64 `json:"camera_yaw_degrees,omitempty"`
	CameraPitchDegrees *float64 `json:"camera_pitch_degrees,omitempty"`
	CameraRollDegrees  *float64 `json:"camera_roll_degrees,omitempty"`
	OverlapFraction    *float64 `json:"overlap_fraction,omitempty"`

	SpatialConstraints       *string `json:"spatial_constraints,omitempty"`
	TemporalConstraints      *string `json:"temporal_constraints,omitempty"`
	TimeSynchronisation      *string `json:"time_synchronisation,omitempty"`
	ItemIdentificationScheme *string `json:"item_identification_scheme,omitempty"`
	VisualConstraints        *string `json:"visual_constraints,omitempty"`
}

// RecomputeGeom refreshes the derived point from latitude/longitude.
func (c *CommonImageFields) RecomputeGeom() {
	if c.Latitude != nil && c.Longitude != nil {
		c.Geom = &Point{Longitude: *c.Longitude, Latitude: *c.Latitude}
	}
}

// CommonRelations are the nullable named-reference and calibration foreign
// keys shared by image sets and images. Named references are cleared when
// the referenced row is deleted; calibration rows are delete-restricted.
type CommonRelations struct {
	ContextID  *uuid.UUID `gorm:"type:uuid" json:"context_id,omitempty"`
	Context    *Context   `gorm:"constraint:OnDelete:SET NULL" json:"context,omitempty"`
	ProjectID  *uuid.UUID `gorm:"type:uuid" json:"project_id,omitempty"`
	Project    *Project   `gorm:"constraint:OnDelete:SET NULL" json:"project,omitempty"`
	EventID    *uuid.UUID `gorm:"type:uuid" json:"event_id,omitempty"`
	Event      *Event     `gorm:"constraint:OnDelete:SET NULL" json:"event,omitempty"`
	PlatformID *uuid.UUID `gorm:"type:uuid" json:"platform_id,omitempty"`
	Platform   *Platform  `gorm:"constraint:OnDelete:SET NULL" json:"platform,omitempty"`
	SensorID   *uuid.UUID `gorm:"type:uuid" json:"sensor_id,omitempty"`
	Sensor     *Sensor    `gorm:"constraint:OnDelete:SET NULL" json:"sensor,omitempty"`
	PIID       *uuid.UUID `gorm:"column:pi_id;type:uuid" json:"pi_id,omitempty"`
	PI         *PI        `gorm:"constraint:OnDelete:SET NULL" json:"pi,omitempty"`
	LicenseID  *uuid.UUID `gorm:"type:uuid" json:"license_id,omitempty"`
	License    *License   `gorm:"constraint:OnDelete:SET NULL" json:"license,omitempty"`

	CameraPoseID              *uuid.UUID                   `gorm:"type:uuid" json:"camera_pose_id,omitempty"`
	CameraPose                *ImageCameraPose             `gorm:"constraint:OnDelete:RESTRICT" json:"camera_pose,omitempty"`
	CameraHousingViewportID   *uuid.UUID                   `gorm:"type:uuid" json:"camera_housing_viewport_id,omitempty"`
	CameraHousingViewport     *ImageCameraHousingViewport  `gorm:"constraint:OnDelete:RESTRICT" json:"camera_housing_viewport,omitempty"`
	FlatportParameterID       *uuid.UUID                   `gorm:"type:uuid" json:"flatport_parameter_id,omitempty"`
	FlatportParameter         *ImageFlatportParameter      `gorm:"constraint:OnDelete:RESTRICT" json:"flatport_parameter,omitempty"`
	DomeportParameterID       *uuid.UUID                   `gorm:"type:uuid" json:"domeport_parameter_id,omitempty"`
	DomeportParameter         *ImageDomeportParameter      `gorm:"constraint:OnDelete:RESTRICT" json:"domeport_parameter,omitempty"`
	PhotometricCalibrationID  *uuid.UUID                   `gorm:"type:uuid" json:"photometric_calibration_id,omitempty"`
	PhotometricCalibration    *ImagePhotometricCalibration `gorm:"constraint:OnDelete:RESTRICT" json:"photometric_calibration,omitempty"`
	CameraCalibrationModelID  *uuid.UUID                   `gorm:"type:uuid" json:"camera_calibration_model_id,omitempty"`
	CameraCalibrationModel    *ImageCameraCalibrationModel `gorm:"constraint:OnDelete:RESTRICT" json:"camera_calibration_model,omitempty"`
}
