package handlers

import (
	"net/http"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/repository"
	"github.com/subseadata/ifdocatalog/validation"
)

type AnnotationSetHandler struct {
	Repo *repository.AnnotationSetRepository
}

func (h *AnnotationSetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.AnnotationSetInput
	raw, err := decodeBody(r, &in)
	if err != nil {
		invalidBody(w, err)
		return
	}

	errs := validation.Errors{}
	validation.CheckRelationPairs(raw, validation.AnnotationSetPairs, errs)
	validation.CheckNestedIDs(raw, validation.AnnotationSetPairs, errs)
	if in.Name == nil || *in.Name == "" {
		errs.Add("name", validation.Required)
	}
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

func (h *AnnotationSetHandler) List(w http.ResponseWriter, r *http.Request) {
	sets, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func (h *AnnotationSetHandler) Get(w http.ResponseWriter, r *http.Request) {
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

func (h *AnnotationSetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	var in models.AnnotationSetInput
	raw, err := decodeBody(r, &in)
	if err != nil {
		invalidBody(w, err)
		return
	}

	errs := validation.Errors{}
	validation.CheckRelationPairs(raw, validation.AnnotationSetPairs, errs)
	validation.CheckNestedIDs(raw, validation.AnnotationSetPairs, errs)
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

func (h *AnnotationSetHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
