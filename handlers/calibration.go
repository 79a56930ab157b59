package handlers

import (
	"net/http"

	"github.com/subseadata/ifdocatalog/repository"
	"github.com/subseadata/ifdocatalog/validation"
)

// CalibrationHandler serves CRUD for one camera calibration entity type.
// Payloads decode straight into the model; id and timestamps are never
// accepted from the client.
type CalibrationHandler[T any] struct {
	Repo *repository.CalibrationRepository[T]
}

// NewCalibrationHandler creates a handler around a calibration repository.
func NewCalibrationHandler[T any](repo *repository.CalibrationRepository[T]) *CalibrationHandler[T] {
	return &CalibrationHandler[T]{Repo: repo}
}

func (h *CalibrationHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	rec := new(T)
	raw, err := decodeBody(r, rec)
	if err != nil {
		invalidBody(w, err)
		return
	}
	if _, ok := raw["id"]; ok {
		writeError(w, validation.NewError("id", "This field is read-only."))
		return
	}
	if err := h.Repo.Create(rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *CalibrationHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *CalibrationHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
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

func (h *CalibrationHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
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
	raw, err := decodeBody(r, rec)
	if err != nil {
		invalidBody(w, err)
		return
	}
	if _, ok := raw["id"]; ok {
		writeError(w, validation.NewError("id", "This field is read-only."))
		return
	}
	if err := h.Repo.Save(rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *CalibrationHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
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
