package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/subseadata/ifdocatalog/services"
)

// IngestHandler accepts whole iFDO documents and hands them to the ingest
// pipeline.
type IngestHandler struct {
	Service *services.IngestService
}

func (h *IngestHandler) IngestImageSet(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request body"})
		return
	}
	result, ingestErr := h.Service.IngestImageSet(body)
	if ingestErr != nil {
		writeJSON(w, ingestErr.Status, ingestErr.Body)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
