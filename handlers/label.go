package handlers

import (
	"net/http"
	"strings"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/repository"
	"github.com/subseadata/ifdocatalog/services"
)

// LabelHandler serves label CRUD. Labels carrying a non-blank AphiaID are
// verified against the WoRMS registry before being written.
type LabelHandler struct {
	Repo  *repository.LabelRepository
	Worms *services.WormsService
}

func (h *LabelHandler) verifyAphiaID(r *http.Request, in *models.LabelInput) error {
	if in.LowestAphiaID == nil || strings.TrimSpace(*in.LowestAphiaID) == "" {
		return nil
	}
	return h.Worms.VerifyAphiaID(r.Context(), strings.TrimSpace(*in.LowestAphiaID))
}

func (h *LabelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.LabelInput
	if _, err := decodeBody(r, &in); err != nil {
		invalidBody(w, err)
		return
	}
	if err := h.verifyAphiaID(r, &in); err != nil {
		writeError(w, err)
		return
	}
	label, err := h.Repo.Create(&in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, label)
}

func (h *LabelHandler) List(w http.ResponseWriter, r *http.Request) {
	labels, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, labels)
}

func (h *LabelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	label, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, label)
}

func (h *LabelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	var in models.LabelInput
	if _, err := decodeBody(r, &in); err != nil {
		invalidBody(w, err)
		return
	}
	if err := h.verifyAphiaID(r, &in); err != nil {
		writeError(w, err)
		return
	}
	label, err := h.Repo.Update(id, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, label)
}

func (h *LabelHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
