package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subseadata/ifdocatalog/validation"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

// writeError maps domain errors onto responses: field-keyed validation and
// conflict failures are 400s, missing rows are 404s, anything else is a 500
// with the detail kept out of the response body.
func writeError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, vErr.Fields)
		return
	}
	var cErr *validation.ConflictError
	if errors.As(err, &cErr) {
		writeJSON(w, http.StatusBadRequest, cErr.Fields)
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	log.Printf("internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error."})
}

// decodeBody reads the request body once and unmarshals it twice: into a
// raw key map for presence-based checks (relation pair exclusivity,
// computed fields) and into the typed input struct.
func decodeBody(r *http.Request, dst any) (map[string]json.RawMessage, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, err
	}
	return raw, nil
}

func invalidBody(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request body: " + err.Error()})
}

// urlUUID parses the {id} route parameter. A malformed id is reported the
// same way as a missing row.
func urlUUID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}
