package handlers

import (
	"net/http"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/repository"
)

// NamedHandler serves CRUD for one named-reference entity type.
type NamedHandler[T any, PT repository.NamedPtr[T]] struct {
	Repo *repository.NamedRepository[T, PT]
}

// NewNamedHandler creates a handler around a named-reference repository.
func NewNamedHandler[T any, PT repository.NamedPtr[T]](repo *repository.NamedRepository[T, PT]) *NamedHandler[T, PT] {
	return &NamedHandler[T, PT]{Repo: repo}
}

func (h *NamedHandler[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NamedRefInput
	if _, err := decodeBody(r, &in); err != nil {
		invalidBody(w, err)
		return
	}
	rec, err := h.Repo.Create(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *NamedHandler[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *NamedHandler[T, PT]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	rec, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *NamedHandler[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	var in models.NamedRefInput
	if _, err := decodeBody(r, &in); err != nil {
		invalidBody(w, err)
		return
	}
	rec, err := h.Repo.Update(id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *NamedHandler[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
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
