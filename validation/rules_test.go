package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subseadata/ifdocatalog/models"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCheckCommonImageFieldsCanonicalizes(t *testing.T) {
	f := models.CommonImageFields{
		Acquisition: strPtr("PHOTO"),
		MarineZone:  strPtr("Seafloor"),
	}
	errs := Errors{}
	CheckCommonImageFields(&f, errs)
	require.False(t, errs.Any())
	assert.Equal(t, "photo", *f.Acquisition)
	assert.Equal(t, "seafloor", *f.MarineZone)
}

func TestCheckCommonImageFieldsBadChoice(t *testing.T) {
	f := models.CommonImageFields{Quality: strPtr("pristine")}
	errs := Errors{}
	CheckCommonImageFields(&f, errs)
	require.True(t, errs.Any())
	assert.Equal(t, []string{`"pristine" is not a valid choice.`}, errs["quality"])
}

func TestCheckCommonImageFieldsCoordinateRange(t *testing.T) {
	f := models.CommonImageFields{
		Latitude:  floatPtr(91),
		Longitude: floatPtr(-181),
	}
	errs := Errors{}
	CheckCommonImageFields(&f, errs)
	assert.Equal(t, []string{"Ensure this value is less than or equal to 90."}, errs["latitude"])
	assert.Equal(t, []string{"Ensure this value is greater than or equal to -180."}, errs["longitude"])
}

func TestCheckBoundingBoxCreate(t *testing.T) {
	in := models.ImageSetInput{
		MinLatitudeDegrees: floatPtr(12),
		MaxLatitudeDegrees: floatPtr(11),
	}
	errs := Errors{}
	CheckBoundingBox(&in, nil, errs)
	assert.Equal(t, []string{"Must be less than max_latitude_degrees."}, errs["min_latitude_degrees"])
}

func TestCheckBoundingBoxPartialUpdate(t *testing.T) {
	existing := models.ImageSet{
		MinLatitudeDegrees:  floatPtr(10),
		MaxLatitudeDegrees:  floatPtr(12),
		MinLongitudeDegrees: floatPtr(-118),
		MaxLongitudeDegrees: floatPtr(-117),
	}
	// patching only max below the stored min must still be rejected
	in := models.ImageSetInput{MaxLatitudeDegrees: floatPtr(9)}
	errs := Errors{}
	CheckBoundingBox(&in, &existing, errs)
	assert.Equal(t, []string{"Must be less than max_latitude_degrees."}, errs["min_latitude_degrees"])

	in = models.ImageSetInput{MinLongitudeDegrees: floatPtr(-116)}
	errs = Errors{}
	CheckBoundingBox(&in, &existing, errs)
	assert.Equal(t, []string{"Must be less than max_longitude_degrees."}, errs["min_longitude_degrees"])
}

func TestCheckBoundingBoxValid(t *testing.T) {
	in := models.ImageSetInput{
		MinLatitudeDegrees:  floatPtr(10),
		MaxLatitudeDegrees:  floatPtr(12),
		MinLongitudeDegrees: floatPtr(-118),
		MaxLongitudeDegrees: floatPtr(-117),
	}
	errs := Errors{}
	CheckBoundingBox(&in, nil, errs)
	assert.False(t, errs.Any())
}

func TestCheckAnnotationShape(t *testing.T) {
	tests := []struct {
		name    string
		shape   string
		coords  models.Coordinates
		want    string
		wantErr string
	}{
		{"canonicalizes case", "POLYGON", models.Coordinates{{0, 0, 1, 0, 1, 1, 0, 0}}, "polygon", ""},
		{"unknown shape", "triangle", nil, "triangle", `"triangle" is not a valid choice.`},
		{"whole image no coords", "whole-image", nil, "whole-image", ""},
		{"whole image with coords", "whole-image", models.Coordinates{{1, 2}}, "whole-image", "Shape 'whole-image' takes no coordinate values."},
		{"single pixel ok", "single-pixel", models.Coordinates{{4, 5}}, "single-pixel", ""},
		{"single pixel wrong count", "single-pixel", models.Coordinates{{4, 5, 6}}, "single-pixel", "Shape 'single-pixel' requires exactly 2 coordinate values, got 3."},
		{"circle ok", "circle", models.Coordinates{{4, 5, 2}}, "circle", ""},
		{"rectangle ok", "rectangle", models.Coordinates{{0, 0, 1, 0, 1, 1, 0, 1}}, "rectangle", ""},
		{"ellipse wrong count", "ellipse", models.Coordinates{{0, 0, 1, 1}}, "ellipse", "Shape 'ellipse' requires exactly 8 coordinate values, got 4."},
		{"polyline too short", "polyline", models.Coordinates{{0, 0}}, "polyline", "Shape 'polyline' requires at least 4 coordinate values, got 2."},
		{"polyline odd count", "polyline", models.Coordinates{{0, 0, 1, 1, 2}}, "polyline", "Coordinate values must come in x,y pairs."},
		{"polygon not closed", "polygon", models.Coordinates{{0, 0, 1, 0, 1, 1, 2, 2}}, "polygon", "The first and last coordinates of a polygon must be equal."},
		{"missing coords", "circle", nil, "circle", Required},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Errors{}
			got := CheckAnnotationShape(tt.shape, tt.coords, errs)
			assert.Equal(t, tt.want, got)
			if tt.wantErr == "" {
				assert.False(t, errs.Any())
			} else {
				require.True(t, errs.Any())
				found := false
				for _, msgs := range errs {
					for _, m := range msgs {
						if m == tt.wantErr {
							found = true
						}
					}
				}
				assert.True(t, found, "expected error %q in %v", tt.wantErr, errs)
			}
		})
	}
}
