package ifdo

import (
	"time"

	"github.com/google/uuid"

	"github.com/subseadata/ifdocatalog/models"
)

// mapper collects coercion helpers that remember the first error, so the
// field mappings below can stay flat.
type mapper struct {
	err error
}

func (m *mapper) str(v any) *string {
	if m.err != nil {
		return nil
	}
	return maybeString(v)
}

func (m *mapper) float(v any) *float64 {
	if m.err != nil {
		return nil
	}
	f, err := maybeFloat(v)
	if err != nil {
		m.err = err
	}
	return f
}

func (m *mapper) int(v any) *int {
	if m.err != nil {
		return nil
	}
	n, err := maybeInt(v)
	if err != nil {
		m.err = err
	}
	return n
}

func (m *mapper) floats(v any) models.FloatList {
	if m.err != nil {
		return nil
	}
	l, err := maybeFloatList(v)
	if err != nil {
		m.err = err
	}
	return l
}

func (m *mapper) dict(v any) models.JSONMap {
	if m.err != nil {
		return nil
	}
	d, err := maybeDict(v)
	if err != nil {
		m.err = err
	}
	return d
}

func (m *mapper) datetime(v any) *time.Time {
	if m.err != nil {
		return nil
	}
	t, err := maybeDatetime(v)
	if err != nil {
		m.err = err
	}
	return t
}

func (m *mapper) named(v any, path string) *models.NamedRefInput {
	if m.err != nil {
		return nil
	}
	ref, err := namedRef(v, path)
	if err != nil {
		m.err = err
	}
	return ref
}

// MapImageSetHeader converts the iFDO image-set-header into an image set
// write input. Unknown header keys are ignored.
func MapImageSetHeader(ifdoDoc map[string]any) (*models.ImageSetInput, error) {
	header, err := maybeDict(ifdoDoc["image-set-header"])
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return nil, adaptErrorf("ifdo.image-set-header is required")
	}

	name, err := requireString(header["image-set-name"], "ifdo.image-set-header.image-set-name")
	if err != nil {
		return nil, err
	}

	m := &mapper{}
	in := &models.ImageSetInput{Name: &name}

	in.Handle = m.str(header["image-set-handle"])
	in.Copyright = m.str(header["image-copyright"])
	in.Abstract = m.str(header["image-abstract"])
	in.TargetEnvironment = m.str(header["image-target-environment"])
	in.TimeSynchronisation = m.str(header["image-time-synchronisation"])
	in.ItemIdentificationScheme = m.str(header["image-item-identification-scheme"])
	in.VisualConstraints = m.str(header["image-visual-constraints"])
	in.SpatialConstraints = m.str(header["image-spatial-constraints"])
	in.TemporalConstraints = m.str(header["image-temporal-constraints"])
	in.LocalPath = m.str(header["image-set-local-path"])

	in.MinLatitudeDegrees = m.float(header["image-set-min-latitude-degrees"])
	in.MaxLatitudeDegrees = m.float(header["image-set-max-latitude-degrees"])
	in.MinLongitudeDegrees = m.float(header["image-set-min-longitude-degrees"])
	in.MaxLongitudeDegrees = m.float(header["image-set-max-longitude-degrees"])

	in.DateTime = m.datetime(header["image-set-start-datetime"])
	in.Latitude = m.float(header["image-latitude"])
	in.Longitude = m.float(header["image-longitude"])
	in.AltitudeMeters = m.float(header["image-altitude-meters"])
	in.CoordinateUncertaintyMeters = m.float(header["image-coordinate-uncertainty-meters"])
	in.Entropy = m.float(header["image-entropy"])
	in.ParticleCount = m.int(header["image-particle-count"])

	in.Acquisition = m.str(header["image-acquisition"])
	in.Quality = m.str(header["image-quality"])
	in.Deployment = m.str(header["image-deployment"])
	in.Navigation = m.str(header["image-navigation"])
	in.ScaleReference = m.str(header["image-scale-reference"])
	in.Illumination = m.str(header["image-illumination"])
	in.PixelMagnitude = m.str(header["image-pixel-magnitude"])
	in.MarineZone = m.str(header["image-marine-zone"])
	in.SpectralResolution = m.str(header["image-spectral-resolution"])
	in.CaptureMode = m.str(header["image-capture-mode"])
	in.FaunaAttraction = m.str(header["image-fauna-attraction"])

	in.AreaSquareMeters = m.float(header["image-area-square-meter"])
	in.MetersAboveGround = m.float(header["image-meters-above-ground"])
	in.AcquisitionSettings = m.dict(header["image-acquisition-settings"])
	in.CameraYawDegrees = m.float(header["image-camera-yaw-degrees"])
	in.CameraPitchDegrees = m.float(header["image-camera-pitch-degrees"])
	in.CameraRollDegrees = m.float(header["image-camera-roll-degrees"])
	in.OverlapFraction = m.float(header["image-overlap-fraction"])

	in.Context = m.named(header["image-context"], "ifdo.image-set-header.image-context")
	in.Project = m.named(header["image-project"], "ifdo.image-set-header.image-project")
	in.Event = m.named(header["image-event"], "ifdo.image-set-header.image-event")
	in.Platform = m.named(header["image-platform"], "ifdo.image-set-header.image-platform")
	in.Sensor = m.named(header["image-sensor"], "ifdo.image-set-header.image-sensor")
	in.PI = m.named(header["image-pi"], "ifdo.image-set-header.image-pi")
	in.License = m.named(header["image-license"], "ifdo.image-set-header.image-license")
	if m.err != nil {
		return nil, m.err
	}

	creators, err := creatorList(header["image-creators"], "ifdo.image-set-header.image-creators")
	if err != nil {
		return nil, err
	}
	in.Creators = creators

	related, err := relatedMaterials(header["image-set-related-material"], "ifdo.image-set-header.image-set-related-material")
	if err != nil {
		return nil, err
	}
	in.RelatedMaterials = related

	return in, nil
}

// MapImageSetItem converts one iFDO image-set-item into an image write
// input bound to the given image set.
func MapImageSetItem(item map[string]any, imageSetID uuid.UUID) (*models.ImageInput, error) {
	filename, err := requireString(item["image-filename"], "ifdo.image-set-items[].image-filename")
	if err != nil {
		return nil, err
	}

	m := &mapper{}
	setID := imageSetID
	in := &models.ImageInput{Filename: &filename, ImageSetID: &setID}

	in.Handle = m.str(item["image-handle"])
	in.Copyright = m.str(item["image-copyright"])
	in.SHA256Hash = m.str(item["image-hash-sha256"])
	in.DateTime = m.datetime(item["image-datetime"])
	in.Latitude = m.float(item["image-latitude"])
	in.Longitude = m.float(item["image-longitude"])
	in.AltitudeMeters = m.float(item["image-altitude-meters"])
	in.CoordinateUncertaintyMeters = m.float(item["image-coordinate-uncertainty-meters"])
	in.Entropy = m.float(item["image-entropy"])
	in.ParticleCount = m.int(item["image-particle-count"])

	in.AverageColor = m.floats(item["image-average-color"])
	in.Mpeg7ColorLayout = m.floats(item["image-mpeg7-colorlayout"])
	in.Mpeg7ColorStatistic = m.floats(item["image-mpeg7-colorstatistic"])
	in.Mpeg7ColorStructure = m.floats(item["image-mpeg7-colorstructure"])
	in.Mpeg7DominantColor = m.floats(item["image-mpeg7-dominantcolor"])
	in.Mpeg7EdgeHistogram = m.floats(item["image-mpeg7-edgehistogram"])
	in.Mpeg7HomogeneousTexture = m.floats(item["image-mpeg7-homogeneoustexture"])
	in.Mpeg7ScalableColor = m.floats(item["image-mpeg7-scalablecolor"])

	in.Acquisition = m.str(item["image-acquisition"])
	in.Quality = m.str(item["image-quality"])
	in.Deployment = m.str(item["image-deployment"])
	in.Navigation = m.str(item["image-navigation"])
	in.ScaleReference = m.str(item["image-scale-reference"])
	in.Illumination = m.str(item["image-illumination"])
	in.PixelMagnitude = m.str(item["image-pixel-magnitude"])
	in.MarineZone = m.str(item["image-marine-zone"])
	in.SpectralResolution = m.str(item["image-spectral-resolution"])
	in.CaptureMode = m.str(item["image-capture-mode"])
	in.FaunaAttraction = m.str(item["image-fauna-attraction"])

	in.AreaSquareMeters = m.float(item["image-area-square-meter"])
	in.MetersAboveGround = m.float(item["image-meters-above-ground"])
	in.AcquisitionSettings = m.dict(item["image-acquisition-settings"])
	in.CameraYawDegrees = m.float(item["image-camera-yaw-degrees"])
	in.CameraPitchDegrees = m.float(item["image-camera-pitch-degrees"])
	in.CameraRollDegrees = m.float(item["image-camera-roll-degrees"])
	in.OverlapFraction = m.float(item["image-overlap-fraction"])

	// Calibration references arrive in the same string-or-object shape as
	// named references. The calibration schema carries no name column, so a
	// supplied reference yields a fresh row linked to this image.
	if ref := m.named(item["image-camera-pose"], "ifdo.image-set-items[].image-camera-pose"); ref != nil {
		in.CameraPose = &models.ImageCameraPose{}
	}
	if ref := m.named(item["image-camera-housing-viewport"], "ifdo.image-set-items[].image-camera-housing-viewport"); ref != nil {
		in.CameraHousingViewport = &models.ImageCameraHousingViewport{}
	}
	if ref := m.named(item["image-flatport-parameters"], "ifdo.image-set-items[].image-flatport-parameters"); ref != nil {
		in.FlatportParameter = &models.ImageFlatportParameter{}
	}
	if ref := m.named(item["image-domeport-parameters"], "ifdo.image-set-items[].image-domeport-parameters"); ref != nil {
		in.DomeportParameter = &models.ImageDomeportParameter{}
	}
	if ref := m.named(item["image-photometric-calibration"], "ifdo.image-set-items[].image-photometric-calibration"); ref != nil {
		in.PhotometricCalibration = &models.ImagePhotometricCalibration{}
	}
	if ref := m.named(item["image-camera-calibration-model"], "ifdo.image-set-items[].image-camera-calibration-model"); ref != nil {
		in.CameraCalibrationModel = &models.ImageCameraCalibrationModel{}
	}

	in.Context = m.named(item["image-context"], "ifdo.image-set-items[].image-context")
	in.Project = m.named(item["image-project"], "ifdo.image-set-items[].image-project")
	in.Event = m.named(item["image-event"], "ifdo.image-set-items[].image-event")
	in.Platform = m.named(item["image-platform"], "ifdo.image-set-items[].image-platform")
	in.Sensor = m.named(item["image-sensor"], "ifdo.image-set-items[].image-sensor")
	in.PI = m.named(item["image-pi"], "ifdo.image-set-items[].image-pi")
	in.License = m.named(item["image-license"], "ifdo.image-set-items[].image-license")
	if m.err != nil {
		return nil, m.err
	}

	// image-annotation-creators wins over image-creators when both carry
	// values; an empty list does not shadow the fallback key.
	creatorsRaw := item["image-annotation-creators"]
	if isEmptyValue(creatorsRaw) {
		creatorsRaw = item["image-creators"]
	}
	creators, err := creatorList(creatorsRaw, "ifdo.image-set-items[].image-creators")
	if err != nil {
		return nil, err
	}
	in.Creators = creators

	return in, nil
}

func isEmptyValue(v any) bool {
	if isBlank(v) {
		return true
	}
	if l, ok := v.([]any); ok {
		return len(l) == 0
	}
	return false
}
