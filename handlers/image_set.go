package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/database"
	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/repository"
	"github.com/subseadata/ifdocatalog/validation"
)

// ImageSetHandler serves CRUD for image sets plus their per-set image
// listing and summary counts.
type ImageSetHandler struct {
	DB     *gorm.DB
	Repo   *repository.ImageSetRepository
	Images *repository.ImageRepository
}

func (h *ImageSetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ImageSetInput
	raw, err := decodeBody(r, &in)
	if err != nil {
		invalidBody(w, err)
		return
	}

	errs := validation.Errors{}
	validation.CheckComputedFields(raw, validation.ImageSetComputedFields, errs)
	validation.CheckRelationPairs(raw, validation.ImageSetPairs, errs)
	validation.CheckNestedIDs(raw, validation.ImageSetPairs, errs)
	if in.Name == nil || *in.Name == "" {
		errs.Add("name", validation.Required)
	}
	validation.CheckCommonImageFields(&in.CommonImageFields, errs)
	validation.CheckBoundingBox(&in, nil, errs)
	if errs.Any() {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	set, err := h.Repo.Create(&in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (h *ImageSetHandler) List(w http.ResponseWriter, r *http.Request) {
	sets, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func (h *ImageSetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	set, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *ImageSetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	existing, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var in models.ImageSetInput
	raw, err := decodeBody(r, &in)
	if err != nil {
		invalidBody(w, err)
		return
	}

	errs := validation.Errors{}
	validation.CheckComputedFields(raw, validation.ImageSetComputedFields, errs)
	validation.CheckRelationPairs(raw, validation.ImageSetPairs, errs)
	validation.CheckNestedIDs(raw, validation.ImageSetPairs, errs)
	validation.CheckCommonImageFields(&in.CommonImageFields, errs)
	validation.CheckBoundingBox(&in, existing, errs)
	if errs.Any() {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	set, err := h.Repo.Update(id, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *ImageSetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// ListImages returns the images of one set, naturally sorted by filename.
func (h *ImageSetHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	if _, err := h.Repo.GetByID(id); err != nil {
		writeError(w, err)
		return
	}
	images, err := h.Images.ListByImageSet(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

// Summary returns image, annotation set and annotation counts for one set.
func (h *ImageSetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	if _, err := h.Repo.GetByID(id); err != nil {
		writeError(w, err)
		return
	}
	summary, err := database.GetImageSetSummary(h.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
