package handlers

import (
	"net/http"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/repository"
)

type RelatedMaterialHandler struct {
	Repo *repository.RelatedMaterialRepository
}

func (h *RelatedMaterialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.RelatedMaterialInput
	if _, err := decodeBody(r, &in); err != nil {
		invalidBody(w, err)
		return
	}
	rm, err := h.Repo.Create(&in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rm)
}

func (h *RelatedMaterialHandler) List(w http.ResponseWriter, r *http.Request) {
	materials, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func (h *RelatedMaterialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	rm, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rm)
}

func (h *RelatedMaterialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	var in models.RelatedMaterialInput
	if _, err := decodeBody(r, &in); err != nil {
		invalidBody(w, err)
		return
	}
	rm, err := h.Repo.Update(id, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rm)
}

func (h *RelatedMaterialHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
