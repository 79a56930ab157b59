package ifdo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapImageSetHeader(t *testing.T) {
	doc := map[string]any{
		"image-set-header": map[string]any{
			"image-set-name":                  "SO268-1_021-1_OFOS",
			"image-set-handle":                "20.500.12085/abc",
			"image-abstract":                  "Seafloor photo transect",
			"image-set-min-latitude-degrees":  11.0,
			"image-set-max-latitude-degrees":  "11.5",
			"image-set-min-longitude-degrees": -117.5,
			"image-set-max-longitude-degrees": -117.0,
			"image-set-start-datetime":        "2019-04-06 11:46:22",
			"image-acquisition":               "photo",
			"image-area-square-meter":         4.2,
			"image-particle-count":            3.0,
			"image-context":                   "Clarion-Clipperton Zone",
			"image-project":                   map[string]any{"name": "SO268", "uri": "https://example.org/so268"},
			"image-creators":                  []any{"Alice", map[string]any{"name": "Bob"}},
			"image-set-related-material":      []any{map[string]any{"name": "Cruise report", "relation": "describes"}},
			"image-license":                   "null",
			"image-unknown-key":               "ignored",
		},
	}

	in, err := MapImageSetHeader(doc)
	require.NoError(t, err)

	require.NotNil(t, in.Name)
	assert.Equal(t, "SO268-1_021-1_OFOS", *in.Name)
	require.NotNil(t, in.Handle)
	assert.Equal(t, "20.500.12085/abc", *in.Handle)
	require.NotNil(t, in.MaxLatitudeDegrees)
	assert.Equal(t, 11.5, *in.MaxLatitudeDegrees)
	require.NotNil(t, in.DateTime)
	assert.Equal(t, time.Date(2019, 4, 6, 11, 46, 22, 0, time.UTC), *in.DateTime)
	require.NotNil(t, in.ParticleCount)
	assert.Equal(t, 3, *in.ParticleCount)
	require.NotNil(t, in.Context)
	assert.Equal(t, "Clarion-Clipperton Zone", in.Context.Name)
	require.NotNil(t, in.Project)
	require.NotNil(t, in.Project.URI)
	assert.Nil(t, in.License)
	require.Len(t, in.Creators, 2)
	require.Len(t, in.RelatedMaterials, 1)
	assert.Equal(t, "Cruise report", in.RelatedMaterials[0].Title)
}

func TestMapImageSetHeaderMissing(t *testing.T) {
	_, err := MapImageSetHeader(map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image-set-header is required")

	_, err = MapImageSetHeader(map[string]any{
		"image-set-header": map[string]any{"image-abstract": "no name"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image-set-name")
}

func TestMapImageSetItem(t *testing.T) {
	setID := uuid.New()
	item := map[string]any{
		"image-filename":      "SO268-1_021-1_OFOS_SO_CAM-1_20190406_114622.JPG",
		"image-hash-sha256":   "abc123",
		"image-datetime":      "2019:04:06 11:46:22+0000",
		"image-latitude":      11.25,
		"image-longitude":     "-117.3",
		"image-average-color": []any{12.0, 34.0, 56.0},
		"image-camera-pose":   "pose-ref",
		"image-sensor":        map[string]any{"name": "SO_CAM-1"},
	}

	in, err := MapImageSetItem(item, setID)
	require.NoError(t, err)

	require.NotNil(t, in.Filename)
	assert.Equal(t, "SO268-1_021-1_OFOS_SO_CAM-1_20190406_114622.JPG", *in.Filename)
	require.NotNil(t, in.ImageSetID)
	assert.Equal(t, setID, *in.ImageSetID)
	require.NotNil(t, in.Latitude)
	assert.Equal(t, 11.25, *in.Latitude)
	require.NotNil(t, in.Longitude)
	assert.Equal(t, -117.3, *in.Longitude)
	assert.Equal(t, []float64{12, 34, 56}, []float64(in.AverageColor))
	require.NotNil(t, in.CameraPose)
	assert.Nil(t, in.DomeportParameter)
	require.NotNil(t, in.Sensor)
	assert.Equal(t, "SO_CAM-1", in.Sensor.Name)
}

func TestMapImageSetItemRequiresFilename(t *testing.T) {
	_, err := MapImageSetItem(map[string]any{"image-latitude": 1.0}, uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image-filename")
}

func TestMapImageSetItemCreatorPrecedence(t *testing.T) {
	setID := uuid.New()

	in, err := MapImageSetItem(map[string]any{
		"image-filename":            "a.jpg",
		"image-creators":            []any{"Fallback"},
		"image-annotation-creators": []any{"Primary"},
	}, setID)
	require.NoError(t, err)
	require.Len(t, in.Creators, 1)
	assert.Equal(t, "Primary", in.Creators[0].Name)

	// an empty annotation-creators list does not shadow the fallback
	in, err = MapImageSetItem(map[string]any{
		"image-filename":            "b.jpg",
		"image-creators":            []any{"Fallback"},
		"image-annotation-creators": []any{},
	}, setID)
	require.NoError(t, err)
	require.Len(t, in.Creators, 1)
	assert.Equal(t, "Fallback", in.Creators[0].Name)
}

func TestMapImageSetItemBadValues(t *testing.T) {
	setID := uuid.New()

	_, err := MapImageSetItem(map[string]any{
		"image-filename": "a.jpg",
		"image-latitude": "north",
	}, setID)
	require.Error(t, err)

	_, err = MapImageSetItem(map[string]any{
		"image-filename":      "a.jpg",
		"image-average-color": "red",
	}, setID)
	require.Error(t, err)
}
