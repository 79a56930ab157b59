package models

import "strings"

// Annotation shape keywords.
const (
	ShapeSinglePixel = "single-pixel"
	ShapePolyline    = "polyline"
	ShapePolygon     = "polygon"
	ShapeCircle      = "circle"
	ShapeRectangle   = "rectangle"
	ShapeEllipse     = "ellipse"
	ShapeWholeImage  = "whole-image"
)

// ShapeValues lists every valid annotation shape.
var ShapeValues = []string{
	ShapeSinglePixel,
	ShapePolyline,
	ShapePolygon,
	ShapeCircle,
	ShapeRectangle,
	ShapeEllipse,
	ShapeWholeImage,
}

// Controlled vocabularies from the iFDO convention. Matching is
// case-insensitive; the canonical value is what gets stored.
var (
	AcquisitionValues        = []string{"photo", "video", "slide"}
	QualityValues            = []string{"raw", "processed", "product"}
	DeploymentValues         = []string{"mapping", "stationary", "survey", "exploration", "experiment", "sampling"}
	NavigationValues         = []string{"satellite", "beacon", "transponder", "reconstructed"}
	ScaleReferenceValues     = []string{"3D camera", "calibrated camera", "laser marker", "optical flow"}
	IlluminationValues       = []string{"sunlight", "artificial light", "mixed light"}
	PixelMagnitudeValues     = []string{"km", "hm", "dam", "m", "cm", "mm", "µm"}
	MarineZoneValues         = []string{"seafloor", "water column", "sea surface", "atmosphere", "laboratory"}
	SpectralResolutionValues = []string{"grayscale", "rgb", "multi-spectral", "hyper-spectral"}
	CaptureModeValues        = []string{"timer", "manual", "mixed"}
	FaunaAttractionValues    = []string{"none", "baited", "light"}
)

// CanonicalValue matches raw against allowed case-insensitively and returns
// the canonical spelling.
func CanonicalValue(raw string, allowed []string) (string, bool) {
	for _, v := range allowed {
		if strings.EqualFold(raw, v) {
			return v, true
		}
	}
	return "", false
}

// ShapeCoordinateCount returns the exact number of coordinate values a shape
// requires per frame, or -1 when the shape takes a variable count.
func ShapeCoordinateCount(shape string) int {
	switch shape {
	case ShapeWholeImage:
		return 0
	case ShapeSinglePixel:
		return 2
	case ShapeCircle:
		return 3
	case ShapeRectangle, ShapeEllipse:
		return 8
	default:
		return -1
	}
}

// ShapeMinCoordinateCount returns the minimum coordinate count for
// variable-length shapes.
func ShapeMinCoordinateCount(shape string) int {
	switch shape {
	case ShapePolyline:
		return 4
	case ShapePolygon:
		return 8
	default:
		return 0
	}
}
