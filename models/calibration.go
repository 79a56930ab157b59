package models

// Camera calibration entities. ImageSets and Images reference these rows
// restrictively: a row cannot be deleted while anything still points at it.

// ImageCameraPose holds the camera pose in UTM coordinates.
type ImageCameraPose struct {
	Base
	UTMZone                      *string   `json:"utm_zone,omitempty"`
	UTMEPSG                      *string   `json:"utm_epsg,omitempty"`
	UTMEastNorthUpMeters         FloatList `gorm:"serializer:json" json:"utm_east_north_up_meters,omitempty"`
	AbsoluteOrientationUTMMatrix FloatList `gorm:"serializer:json" json:"absolute_orientation_utm_matrix,omitempty"`
}

func (ImageCameraPose) TableName() string { return "image_camera_poses" }

// ImageCameraHousingViewport describes the viewport of the camera housing.
type ImageCameraHousingViewport struct {
	Base
	ViewportType         *string  `json:"viewport_type,omitempty"`
	OpticalDensity       *float64 `json:"optical_density,omitempty"`
	ThicknessMillimeters *float64 `json:"thickness_millimeters,omitempty"`
	ExtraDescription     *string  `json:"extra_description,omitempty"`
}

func (ImageCameraHousingViewport) TableName() string { return "image_camera_housing_viewports" }

// ImageFlatportParameter holds flat port optics parameters.
type ImageFlatportParameter struct {
	Base
	LensPortDistanceMillimeters *float64  `json:"lens_port_distance_millimeters,omitempty"`
	InterfaceNormalDirection    FloatList `gorm:"serializer:json" json:"interface_normal_direction,omitempty"`
	ExtraDescription            *string   `json:"extra_description,omitempty"`
}

func (ImageFlatportParameter) TableName() string { return "image_flatport_parameters" }

// ImageDomeportParameter holds dome port optics parameters.
type ImageDomeportParameter struct {
	Base
	OuterRadiusMillimeters         *float64  `json:"outer_radius_millimeters,omitempty"`
	DecenteringOffsetXYZMillimeter FloatList `gorm:"serializer:json" json:"decentering_offset_xyz_millimeters,omitempty"`
	ExtraDescription               *string   `json:"extra_description,omitempty"`
}

func (ImageDomeportParameter) TableName() string { return "image_domeport_parameters" }

// ImagePhotometricCalibration describes how pixel values relate to light.
type ImagePhotometricCalibration struct {
	Base
	SequenceWhiteBalancing          *string   `json:"sequence_white_balancing,omitempty"`
	ExposureFactorRGB               FloatList `gorm:"serializer:json" json:"exposure_factor_rgb,omitempty"`
	SequenceIlluminationType        *string   `json:"sequence_illumination_type,omitempty"`
	SequenceIlluminationDescription *string   `json:"sequence_illumination_description,omitempty"`
	IlluminationFactorRGB           FloatList `gorm:"serializer:json" json:"illumination_factor_rgb,omitempty"`
	WaterPropertiesDescription      *string   `json:"water_properties_description,omitempty"`
}

func (ImagePhotometricCalibration) TableName() string { return "image_photometric_calibrations" }

// ImageCameraCalibrationModel holds intrinsic camera calibration parameters.
type ImageCameraCalibrationModel struct {
	Base
	CalibrationModelType                 *string   `json:"calibration_model_type,omitempty"`
	FocalLengthXYPixel                   FloatList `gorm:"serializer:json" json:"focal_length_xy_pixel,omitempty"`
	PrincipalPointXYPixel                FloatList `gorm:"serializer:json" json:"principal_point_xy_pixel,omitempty"`
	DistortionCoefficients               FloatList `gorm:"serializer:json" json:"distortion_coefficients,omitempty"`
	ApproximateFieldOfViewWaterXYDegrees FloatList `gorm:"serializer:json" json:"approximate_field_of_view_water_xy_degree,omitempty"`
	ExtraDescription                     *string   `json:"extra_description,omitempty"`
}

func (ImageCameraCalibrationModel) TableName() string { return "image_camera_calibration_models" }
