package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/subseadata/ifdocatalog/database"
	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/repository"
	"github.com/subseadata/ifdocatalog/services"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))

	imageSetRepo := repository.NewImageSetRepository(db)
	imageRepo := repository.NewImageRepository(db)

	imageSetHandler := &ImageSetHandler{DB: db, Repo: imageSetRepo, Images: imageRepo}
	imageHandler := &ImageHandler{Repo: imageRepo}
	annotationSetHandler := &AnnotationSetHandler{Repo: repository.NewAnnotationSetRepository(db)}
	annotationHandler := &AnnotationHandler{Repo: repository.NewAnnotationRepository(db)}
	ingestHandler := &IngestHandler{Service: services.NewIngestService(db, imageSetRepo, imageRepo)}
	contextHandler := NewNamedHandler(repository.NewNamedRepository[models.Context, *models.Context](db, "Context"))
	poseHandler := NewCalibrationHandler(repository.NewCalibrationRepository[models.ImageCameraPose](db, "camera pose", "camera_pose_id"))

	r := chi.NewRouter()
	r.Get("/health", Health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/ingest/image-set", ingestHandler.IngestImageSet)
		r.Route("/image_sets", func(r chi.Router) {
			r.Post("/", imageSetHandler.Create)
			r.Get("/", imageSetHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", imageSetHandler.Get)
				r.Put("/", imageSetHandler.Update)
				r.Delete("/", imageSetHandler.Delete)
				r.Get("/images", imageSetHandler.ListImages)
				r.Get("/summary", imageSetHandler.Summary)
			})
		})
		r.Route("/images", func(r chi.Router) {
			r.Post("/", imageHandler.Create)
		})
		r.Route("/annotation_sets", func(r chi.Router) {
			r.Post("/", annotationSetHandler.Create)
		})
		r.Route("/annotations", func(r chi.Router) {
			r.Post("/", annotationHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", annotationHandler.Get)
				r.Put("/", annotationHandler.Update)
			})
		})
		r.Route("/contexts", func(r chi.Router) {
			r.Post("/", contextHandler.Create)
			r.Get("/", contextHandler.List)
		})
		r.Route("/camera_poses", func(r chi.Router) {
			r.Post("/", poseHandler.Create)
		})
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeJSON(t, rec)["status"])
}

func TestImageSetCRUDRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/image_sets/", map[string]any{
		"name":    "SO268-1_021-1_OFOS",
		"context": map[string]any{"name": "CCZ"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeJSON(t, rec)
	id := created["id"].(string)
	assert.NotNil(t, created["context_id"])

	rec = doJSON(t, r, http.MethodGet, "/api/image_sets/"+id+"/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPut, "/api/image_sets/"+id+"/", map[string]any{
		"abstract": "updated",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "updated", decodeJSON(t, rec)["abstract"])

	rec = doJSON(t, r, http.MethodDelete, "/api/image_sets/"+id+"/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/image_sets/"+id+"/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImageSetRejectsRelationPairConflict(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/image_sets/", map[string]any{
		"name":       "conflicting",
		"context":    map[string]any{"name": "CCZ"},
		"context_id": "4bb2ffac-1111-2222-3333-444444444444",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeJSON(t, rec)
	msgs := body["context"].([]any)
	assert.Equal(t, "Use either 'context' (object) OR 'context_id' (id), not both.", msgs[0])
}

func TestImageSetRejectsComputedFields(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/image_sets/", map[string]any{
		"name": "computed",
		"geom": map[string]any{"latitude": 1.0, "longitude": 2.0},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeJSON(t, rec)
	msgs := body["geom"].([]any)
	assert.Equal(t, "This field is computed server-side and must not be provided.", msgs[0])
}

func TestImageSetRejectsNestedID(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/image_sets/", map[string]any{
		"name":    "nested",
		"context": map[string]any{"id": "abc", "name": "CCZ"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeJSON(t, rec)
	msgs := body["context"].([]any)
	assert.Equal(t, "Do not include 'id' here. Use the *_id field to reference an existing object.", msgs[0])
}

func TestImageSetRejectsInvertedBBox(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/image_sets/", map[string]any{
		"name":                "inverted",
		"min_latitude_degrees": 12.0,
		"max_latitude_degrees": 11.0,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeJSON(t, rec)
	msgs := body["min_latitude_degrees"].([]any)
	assert.Equal(t, "Must be less than max_latitude_degrees.", msgs[0])
}

func TestImageListingAndSummary(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/image_sets/", map[string]any{"name": "listing"})
	require.Equal(t, http.StatusCreated, rec.Code)
	setID := decodeJSON(t, rec)["id"].(string)

	for _, fn := range []string{"frame_10.jpg", "frame_2.jpg"} {
		rec = doJSON(t, r, http.MethodPost, "/api/images/", map[string]any{
			"image_set_id": setID,
			"filename":     fn,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/image_sets/%s/images", setID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var images []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &images))
	require.Len(t, images, 2)
	assert.Equal(t, "frame_2.jpg", images[0]["filename"])
	assert.Equal(t, "frame_10.jpg", images[1]["filename"])

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/image_sets/%s/summary", setID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeJSON(t, rec)
	assert.Equal(t, float64(2), summary["image_count"])
	assert.Equal(t, float64(0), summary["annotation_count"])
}

func TestIngestEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/ingest/image-set", map[string]any{
		"ifdo": map[string]any{
			"image-set-header": map[string]any{
				"image-set-name": "ingested-set",
				"image-context":  "CCZ",
			},
			"image-set-items": []any{
				map[string]any{"image-filename": "a.jpg"},
			},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec)
	assert.Equal(t, "Ingested iFDO payload successfully", body["message"])
	assert.Equal(t, float64(1), body["image_count"])
	assert.NotEmpty(t, body["image_set_id"])

	rec = doJSON(t, r, http.MethodPost, "/api/ingest/image-set", map[string]any{"nope": true})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing or invalid 'ifdo' object", decodeJSON(t, rec)["detail"])
}

func TestNamedEntityEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/contexts/", map[string]any{"name": "CCZ"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/contexts/", map[string]any{"name": "CCZ"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msgs := decodeJSON(t, rec)["name"].([]any)
	assert.Equal(t, "This field must be unique.", msgs[0])

	rec = doJSON(t, r, http.MethodGet, "/api/contexts/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var contexts []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contexts))
	assert.Len(t, contexts, 1)
}

func TestCalibrationCreateRejectsID(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/camera_poses/", map[string]any{
		"id": "4bb2ffac-1111-2222-3333-444444444444",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msgs := decodeJSON(t, rec)["id"].([]any)
	assert.Equal(t, "This field is read-only.", msgs[0])

	rec = doJSON(t, r, http.MethodPost, "/api/camera_poses/", map[string]any{})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAnnotationUpdateCoordinatesCheckedAgainstStoredShape(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/image_sets/", map[string]any{"name": "dive-1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	setID := decodeJSON(t, rec)["id"].(string)

	rec = doJSON(t, r, http.MethodPost, "/api/images/", map[string]any{
		"image_set_id": setID,
		"filename":     "img_0001.jpg",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	imageID := decodeJSON(t, rec)["id"].(string)

	rec = doJSON(t, r, http.MethodPost, "/api/annotation_sets/", map[string]any{"name": "fauna"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	annSetID := decodeJSON(t, rec)["id"].(string)

	rec = doJSON(t, r, http.MethodPost, "/api/annotations/", map[string]any{
		"image_id":          imageID,
		"annotation_set_id": annSetID,
		"shape":             "circle",
		"coordinates":       []any{[]any{10, 20, 5}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	annID := decodeJSON(t, rec)["id"].(string)

	// a coordinates-only update is judged against the stored shape
	rec = doJSON(t, r, http.MethodPut, "/api/annotations/"+annID+"/", map[string]any{
		"coordinates": []any{[]any{1}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec)
	require.Contains(t, body, "coordinates")
	assert.Contains(t, body["coordinates"].([]any)[0], "exactly 3 coordinate values")

	rec = doJSON(t, r, http.MethodPut, "/api/annotations/"+annID+"/", map[string]any{
		"coordinates": []any{[]any{7, 8, 3}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, r, http.MethodGet, "/api/annotations/"+annID+"/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	coords := decodeJSON(t, rec)["coordinates"].([]any)[0].([]any)
	assert.Equal(t, []any{7.0, 8.0, 3.0}, coords)
}
