package repository

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/validation"
)

// resolveCommonRelations materializes the relation fields shared by image
// set and image payloads onto dst. Named references supplied inline are
// get-or-create by name; inline calibration objects are inserted as new
// rows; ids must reference existing rows. Absent fields leave dst alone.
func resolveCommonRelations(tx *gorm.DB, in models.RelationRefsInput, dst *models.CommonRelations) error {
	if id, err := resolveNamedRef[models.Context](tx, "Context", "context", in.ContextID, in.Context); err != nil {
		return err
	} else if id != nil {
		dst.ContextID = id
	}
	if id, err := resolveNamedRef[models.Project](tx, "Project", "project", in.ProjectID, in.Project); err != nil {
		return err
	} else if id != nil {
		dst.ProjectID = id
	}
	if id, err := resolveNamedRef[models.Event](tx, "Event", "event", in.EventID, in.Event); err != nil {
		return err
	} else if id != nil {
		dst.EventID = id
	}
	if id, err := resolveNamedRef[models.Platform](tx, "Platform", "platform", in.PlatformID, in.Platform); err != nil {
		return err
	} else if id != nil {
		dst.PlatformID = id
	}
	if id, err := resolveNamedRef[models.Sensor](tx, "Sensor", "sensor", in.SensorID, in.Sensor); err != nil {
		return err
	} else if id != nil {
		dst.SensorID = id
	}
	if id, err := resolveNamedRef[models.PI](tx, "PI", "pi", in.PIID, in.PI); err != nil {
		return err
	} else if id != nil {
		dst.PIID = id
	}
	if id, err := resolveNamedRef[models.License](tx, "License", "license", in.LicenseID, in.License); err != nil {
		return err
	} else if id != nil {
		dst.LicenseID = id
	}

	if in.CameraPose != nil {
		if err := tx.Create(in.CameraPose).Error; err != nil {
			return fmt.Errorf("failed to create camera pose: %w", err)
		}
		dst.CameraPoseID = &in.CameraPose.ID
	} else if in.CameraPoseID != nil {
		if err := requireExists[models.ImageCameraPose](tx, "camera_pose_id", *in.CameraPoseID); err != nil {
			return err
		}
		dst.CameraPoseID = in.CameraPoseID
	}

	if in.CameraHousingViewport != nil {
		if err := tx.Create(in.CameraHousingViewport).Error; err != nil {
			return fmt.Errorf("failed to create camera housing viewport: %w", err)
		}
		dst.CameraHousingViewportID = &in.CameraHousingViewport.ID
	} else if in.CameraHousingViewportID != nil {
		if err := requireExists[models.ImageCameraHousingViewport](tx, "camera_housing_viewport_id", *in.CameraHousingViewportID); err != nil {
			return err
		}
		dst.CameraHousingViewportID = in.CameraHousingViewportID
	}

	if in.FlatportParameter != nil {
		if err := tx.Create(in.FlatportParameter).Error; err != nil {
			return fmt.Errorf("failed to create flatport parameter: %w", err)
		}
		dst.FlatportParameterID = &in.FlatportParameter.ID
	} else if in.FlatportParameterID != nil {
		if err := requireExists[models.ImageFlatportParameter](tx, "flatport_parameter_id", *in.FlatportParameterID); err != nil {
			return err
		}
		dst.FlatportParameterID = in.FlatportParameterID
	}

	if in.DomeportParameter != nil {
		if err := tx.Create(in.DomeportParameter).Error; err != nil {
			return fmt.Errorf("failed to create domeport parameter: %w", err)
		}
		dst.DomeportParameterID = &in.DomeportParameter.ID
	} else if in.DomeportParameterID != nil {
		if err := requireExists[models.ImageDomeportParameter](tx, "domeport_parameter_id", *in.DomeportParameterID); err != nil {
			return err
		}
		dst.DomeportParameterID = in.DomeportParameterID
	}

	if in.PhotometricCalibration != nil {
		if err := tx.Create(in.PhotometricCalibration).Error; err != nil {
			return fmt.Errorf("failed to create photometric calibration: %w", err)
		}
		dst.PhotometricCalibrationID = &in.PhotometricCalibration.ID
	} else if in.PhotometricCalibrationID != nil {
		if err := requireExists[models.ImagePhotometricCalibration](tx, "photometric_calibration_id", *in.PhotometricCalibrationID); err != nil {
			return err
		}
		dst.PhotometricCalibrationID = in.PhotometricCalibrationID
	}

	if in.CameraCalibrationModel != nil {
		if err := tx.Create(in.CameraCalibrationModel).Error; err != nil {
			return fmt.Errorf("failed to create camera calibration model: %w", err)
		}
		dst.CameraCalibrationModelID = &in.CameraCalibrationModel.ID
	} else if in.CameraCalibrationModelID != nil {
		if err := requireExists[models.ImageCameraCalibrationModel](tx, "camera_calibration_model_id", *in.CameraCalibrationModelID); err != nil {
			return err
		}
		dst.CameraCalibrationModelID = in.CameraCalibrationModelID
	}

	return nil
}

// resolveCreators turns the creators object-or-ids fields into creator row
// ids, creating inline entries idempotently by name.
func resolveCreators(tx *gorm.DB, ids []uuid.UUID, objs []models.NamedRefInput) ([]uuid.UUID, error) {
	if objs != nil {
		out := make([]uuid.UUID, 0, len(objs))
		for _, obj := range objs {
			rec, err := GetOrCreateNamed[models.Creator](tx, "Creator", "creators", obj)
			if err != nil {
				return nil, err
			}
			out = append(out, rec.ID)
		}
		return out, nil
	}
	for _, id := range ids {
		if err := requireExists[models.Creator](tx, "creators_ids", id); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func mergeCommonFields(dst *models.CommonFields, src models.CommonFields) {
	if src.Handle != nil {
		dst.Handle = src.Handle
	}
	if src.Copyright != nil {
		dst.Copyright = src.Copyright
	}
	if src.Abstract != nil {
		dst.Abstract = src.Abstract
	}
	if src.Objective != nil {
		dst.Objective = src.Objective
	}
	if src.TargetEnvironment != nil {
		dst.TargetEnvironment = src.TargetEnvironment
	}
	if src.TargetTimescale != nil {
		dst.TargetTimescale = src.TargetTimescale
	}
	if src.CurationProtocol != nil {
		dst.CurationProtocol = src.CurationProtocol
	}
}

func mergeCommonImageFields(dst *models.CommonImageFields, src models.CommonImageFields) {
	if src.SHA256Hash != nil {
		dst.SHA256Hash = src.SHA256Hash
	}
	if src.DateTime != nil {
		dst.DateTime = src.DateTime
	}
	if src.Latitude != nil {
		dst.Latitude = src.Latitude
	}
	if src.Longitude != nil {
		dst.Longitude = src.Longitude
	}
	if src.AltitudeMeters != nil {
		dst.AltitudeMeters = src.AltitudeMeters
	}
	if src.CoordinateUncertaintyMeters != nil {
		dst.CoordinateUncertaintyMeters = src.CoordinateUncertaintyMeters
	}
	if src.Entropy != nil {
		dst.Entropy = src.Entropy
	}
	if src.ParticleCount != nil {
		dst.ParticleCount = src.ParticleCount
	}
	if src.AverageColor != nil {
		dst.AverageColor = src.AverageColor
	}
	if src.Mpeg7ColorLayout != nil {
		dst.Mpeg7ColorLayout = src.Mpeg7ColorLayout
	}
	if src.Mpeg7ColorStatistic != nil {
		dst.Mpeg7ColorStatistic = src.Mpeg7ColorStatistic
	}
	if src.Mpeg7ColorStructure != nil {
		dst.Mpeg7ColorStructure = src.Mpeg7ColorStructure
	}
	if src.Mpeg7DominantColor != nil {
		dst.Mpeg7DominantColor = src.Mpeg7DominantColor
	}
	if src.Mpeg7EdgeHistogram != nil {
		dst.Mpeg7EdgeHistogram = src.Mpeg7EdgeHistogram
	}
	if src.Mpeg7HomogeneousTexture != nil {
		dst.Mpeg7HomogeneousTexture = src.Mpeg7HomogeneousTexture
	}
	if src.Mpeg7ScalableColor != nil {
		dst.Mpeg7ScalableColor = src.Mpeg7ScalableColor
	}
	if src.Acquisition != nil {
		dst.Acquisition = src.Acquisition
	}
	if src.Quality != nil {
		dst.Quality = src.Quality
	}
	if src.Deployment != nil {
		dst.Deployment = src.Deployment
	}
	if src.Navigation != nil {
		dst.Navigation = src.Navigation
	}
	if src.ScaleReference != nil {
		dst.ScaleReference = src.ScaleReference
	}
	if src.Illumination != nil {
		dst.Illumination = src.Illumination
	}
	if src.PixelMagnitude != nil {
		dst.PixelMagnitude = src.PixelMagnitude
	}
	if src.MarineZone != nil {
		dst.MarineZone = src.MarineZone
	}
	if src.SpectralResolution != nil {
		dst.SpectralResolution = src.SpectralResolution
	}
	if src.CaptureMode != nil {
		dst.CaptureMode = src.CaptureMode
	}
	if src.FaunaAttraction != nil {
		dst.FaunaAttraction = src.FaunaAttraction
	}
	if src.AreaSquareMeters != nil {
		dst.AreaSquareMeters = src.AreaSquareMeters
	}
	if src.MetersAboveGround != nil {
		dst.MetersAboveGround = src.MetersAboveGround
	}
	if src.AcquisitionSettings != nil {
		dst.AcquisitionSettings = src.AcquisitionSettings
	}
	if src.CameraYawDegrees != nil {
		dst.CameraYawDegrees = src.CameraYawDegrees
	}
	if src.CameraPitchDegrees != nil {
		dst.CameraPitchDegrees = src.CameraPitchDegrees
	}
	if src.CameraRollDegrees != nil {
		dst.CameraRollDegrees = src.CameraRollDegrees
	}
	if src.OverlapFraction != nil {
		dst.OverlapFraction = src.OverlapFraction
	}
	if src.SpatialConstraints != nil {
		dst.SpatialConstraints = src.SpatialConstraints
	}
	if src.TemporalConstraints != nil {
		dst.TemporalConstraints = src.TemporalConstraints
	}
	if src.TimeSynchronisation != nil {
		dst.TimeSynchronisation = src.TimeSynchronisation
	}
	if src.ItemIdentificationScheme != nil {
		dst.ItemIdentificationScheme = src.ItemIdentificationScheme
	}
	if src.VisualConstraints != nil {
		dst.VisualConstraints = src.VisualConstraints
	}
}

// checkSHA256Unique reports a duplicate sha256_hash as a field error
// before the unique index fires. A zero exclude checks every row.
func checkSHA256Unique[T any](tx *gorm.DB, hash *string, exclude uuid.UUID) error {
	if hash == nil || *hash == "" {
		return nil
	}
	var model T
	q := tx.Model(&model).Where("sha256_hash = ?", *hash)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check sha256_hash uniqueness: %w", err)
	}
	if count > 0 {
		return validation.NewError("sha256_hash", "This field must be unique.")
	}
	return nil
}
