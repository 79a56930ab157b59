package handlers

import (
	"net/http"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/repository"
	"github.com/subseadata/ifdocatalog/validation"
)

type ImageHandler struct {
	Repo *repository.ImageRepository
}

func (h *ImageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ImageInput
	raw, err := decodeBody(r, &in)
	if err != nil {
		invalidBody(w, err)
		return
	}

	errs := validation.Errors{}
	validation.CheckComputedFields(raw, validation.ImageComputedFields, errs)
	validation.CheckRelationPairs(raw, validation.ImagePairs, errs)
	validation.CheckNestedIDs(raw, validation.ImagePairs, errs)
	validation.CheckCommonImageFields(&in.CommonImageFields, errs)
	if errs.Any() {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	img, err := h.Repo.Create(&in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	img, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (h *ImageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	var in models.ImageInput
	raw, err := decodeBody(r, &in)
	if err != nil {
		invalidBody(w, err)
		return
	}

	errs := validation.Errors{}
	validation.CheckComputedFields(raw, validation.ImageComputedFields, errs)
	validation.CheckRelationPairs(raw, validation.ImagePairs, errs)
	validation.CheckNestedIDs(raw, validation.ImagePairs, errs)
	validation.CheckCommonImageFields(&in.CommonImageFields, errs)
	if errs.Any() {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	img, err := h.Repo.Update(id, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
