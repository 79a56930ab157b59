package validation

import (
	"fmt"

	"github.com/subseadata/ifdocatalog/models"
)

// Required is the message used for absent mandatory fields.
const Required = "This field is required."

type vocabField struct {
	name    string
	value   **string
	allowed []string
}

// CheckCommonImageFields canonicalizes the controlled-vocabulary fields in
// place and range-checks latitude and longitude.
func CheckCommonImageFields(f *models.CommonImageFields, errs Errors) {
	fields := []vocabField{
		{"acquisition", &f.Acquisition, models.AcquisitionValues},
		{"quality", &f.Quality, models.QualityValues},
		{"deployment", &f.Deployment, models.DeploymentValues},
		{"navigation", &f.Navigation, models.NavigationValues},
		{"scale_reference", &f.ScaleReference, models.ScaleReferenceValues},
		{"illumination", &f.Illumination, models.IlluminationValues},
		{"pixel_magnitude", &f.PixelMagnitude, models.PixelMagnitudeValues},
		{"marine_zone", &f.MarineZone, models.MarineZoneValues},
		{"spectral_resolution", &f.SpectralResolution, models.SpectralResolutionValues},
		{"capture_mode", &f.CaptureMode, models.CaptureModeValues},
		{"fauna_attraction", &f.FaunaAttraction, models.FaunaAttractionValues},
	}
	for _, vf := range fields {
		v := *vf.value
		if v == nil {
			continue
		}
		canonical, ok := models.CanonicalValue(*v, vf.allowed)
		if !ok {
			errs.Add(vf.name, fmt.Sprintf("%q is not a valid choice.", *v))
			continue
		}
		**vf.value = canonical
	}

	if f.Latitude != nil {
		checkRange("latitude", *f.Latitude, -90, 90, errs)
	}
	if f.Longitude != nil {
		checkRange("longitude", *f.Longitude, -180, 180, errs)
	}
}

func checkRange(field string, v, min, max float64, errs Errors) {
	if v < min {
		errs.Add(field, fmt.Sprintf("Ensure this value is greater than or equal to %g.", min))
	}
	if v > max {
		errs.Add(field, fmt.Sprintf("Ensure this value is less than or equal to %g.", max))
	}
}

// CheckBoundingBox enforces strict min < max for both degree pairs. On
// update, fields absent from the payload fall back to the persisted row, so
// patching one side below its stored counterpart is still rejected.
func CheckBoundingBox(in *models.ImageSetInput, existing *models.ImageSet, errs Errors) {
	pick := func(supplied, stored *float64) *float64 {
		if supplied != nil {
			return supplied
		}
		if existing != nil {
			return stored
		}
		return nil
	}

	var storedMinLat, storedMaxLat, storedMinLon, storedMaxLon *float64
	if existing != nil {
		storedMinLat = existing.MinLatitudeDegrees
		storedMaxLat = existing.MaxLatitudeDegrees
		storedMinLon = existing.MinLongitudeDegrees
		storedMaxLon = existing.MaxLongitudeDegrees
	}

	minLat := pick(in.MinLatitudeDegrees, storedMinLat)
	maxLat := pick(in.MaxLatitudeDegrees, storedMaxLat)
	minLon := pick(in.MinLongitudeDegrees, storedMinLon)
	maxLon := pick(in.MaxLongitudeDegrees, storedMaxLon)

	if minLat != nil && maxLat != nil && *minLat >= *maxLat {
		errs.Add("min_latitude_degrees", "Must be less than max_latitude_degrees.")
	}
	if minLon != nil && maxLon != nil && *minLon >= *maxLon {
		errs.Add("min_longitude_degrees", "Must be less than max_longitude_degrees.")
	}
}

// CheckAnnotationShape validates the shape keyword and the per-shape
// coordinate count rules. It returns the canonical shape value.
func CheckAnnotationShape(shape string, coords models.Coordinates, errs Errors) string {
	canonical, ok := models.CanonicalValue(shape, models.ShapeValues)
	if !ok {
		errs.Add("shape", fmt.Sprintf("%q is not a valid choice.", shape))
		return shape
	}

	exact := models.ShapeCoordinateCount(canonical)
	min := models.ShapeMinCoordinateCount(canonical)

	if canonical == models.ShapeWholeImage {
		for _, list := range coords {
			if len(list) != 0 {
				errs.Add("coordinates", "Shape 'whole-image' takes no coordinate values.")
				break
			}
		}
		return canonical
	}

	if len(coords) == 0 {
		errs.Add("coordinates", Required)
		return canonical
	}

	for _, list := range coords {
		if exact >= 0 && len(list) != exact {
			errs.Add("coordinates", fmt.Sprintf("Shape '%s' requires exactly %d coordinate values, got %d.", canonical, exact, len(list)))
			continue
		}
		if min > 0 {
			if len(list) < min {
				errs.Add("coordinates", fmt.Sprintf("Shape '%s' requires at least %d coordinate values, got %d.", canonical, min, len(list)))
				continue
			}
			if len(list)%2 != 0 {
				errs.Add("coordinates", "Coordinate values must come in x,y pairs.")
				continue
			}
		}
		if canonical == models.ShapePolygon {
			n := len(list)
			if list[0] != list[n-2] || list[1] != list[n-1] {
				errs.Add("coordinates", "The first and last coordinates of a polygon must be equal.")
			}
		}
	}
	return canonical
}
