package handlers

import (
	"net/http"

	"github.com/subseadata/ifdocatalog/models"
	"github.com/subseadata/ifdocatalog/repository"
	"github.com/subseadata/ifdocatalog/validation"
)

// AnnotationHandler serves annotations, annotation labels and annotators.
type AnnotationHandler struct {
	Repo *repository.AnnotationRepository
}

func checkAnnotationInput(in *models.AnnotationInput, errs validation.Errors) {
	if in.Shape == nil || *in.Shape == "" {
		errs.Add("shape", validation.Required)
		return
	}
	canonical := validation.CheckAnnotationShape(*in.Shape, in.Coordinates, errs)
	in.Shape = &canonical
}

func (h *AnnotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.AnnotationInput
	if _, err := decodeBody(r, &in); err != nil {
		invalidBody(w, err)
		return
	}
	errs := validation.Errors{}
	checkAnnotationInput(&in, errs)
	if errs.Any() {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	ann, err := h.Repo.Create(&in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ann)
}

func (h *AnnotationHandler) List(w http.ResponseWriter, r *http.Request) {
	anns, err := h.Repo.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, anns)
}

func (h *AnnotationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	ann, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ann)
}

func (h *AnnotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	var in models.AnnotationInput
	if _, err := decodeBody(r, &in); err != nil {
		invalidBody(w, err)
		return
	}
	errs := validation.Errors{}
	switch {
	case in.Shape != nil:
		checkAnnotationInput(&in, errs)
	case in.Coordinates != nil:
		// without a new shape the coordinates are judged against the
		// persisted one
		existing, err := h.Repo.GetByID(id)
		if err != nil {
			writeError(w, err)
			return
		}
		validation.CheckAnnotationShape(existing.Shape, in.Coordinates, errs)
	}
	if errs.Any() {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	ann, err := h.Repo.Update(id, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ann)
}

func (h *AnnotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *AnnotationHandler) CreateLabel(w http.ResponseWriter, r *http.Request) {
	var in models.AnnotationLabelInput
	raw, err := decodeBody(r, &in)
	if err != nil {
		invalidBody(w, err)
		return
	}
	errs := validation.Errors{}
	validation.CheckRelationPairs(raw, validation.AnnotationLabelPairs, errs)
	validation.CheckNestedIDs(raw, validation.AnnotationLabelPairs, errs)
	if errs.Any() {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	al, err := h.Repo.CreateAnnotationLabel(&in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, al)
}

func (h *AnnotationHandler) ListLabels(w http.ResponseWriter, r *http.Request) {
	labels, err := h.Repo.ListAnnotationLabels()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, labels)
}

func (h *AnnotationHandler) GetLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	al, err := h.Repo.GetAnnotationLabelByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, al)
}

func (h *AnnotationHandler) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	var in models.AnnotationLabelInput
	raw, err := decodeBody(r, &in)
	if err != nil {
		invalidBody(w, err)
		return
	}
	errs := validation.Errors{}
	validation.CheckRelationPairs(raw, validation.AnnotationLabelPairs, errs)
	validation.CheckNestedIDs(raw, validation.AnnotationLabelPairs, errs)
	if errs.Any() {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	al, err := h.Repo.UpdateAnnotationLabel(id, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, al)
}

func (h *AnnotationHandler) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	if err := h.Repo.DeleteAnnotationLabel(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AnnotationHandler) CreateAnnotator(w http.ResponseWriter, r *http.Request) {
	var in models.NamedRefInput
	if _, err := decodeBody(r, &in); err != nil {
		invalidBody(w, err)
		return
	}
	if in.Name == "" {
		writeJSON(w, http.StatusBadRequest, validation.Errors{"name": {validation.Required}})
		return
	}
	annotator, err := h.Repo.CreateAnnotator(in.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, annotator)
}

func (h *AnnotationHandler) ListAnnotators(w http.ResponseWriter, r *http.Request) {
	annotators, err := h.Repo.ListAnnotators()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, annotators)
}

func (h *AnnotationHandler) GetAnnotator(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	annotator, err := h.Repo.GetAnnotatorByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, annotator)
}

func (h *AnnotationHandler) UpdateAnnotator(w http.ResponseWriter, r *http.Request) {
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
	annotator, err := h.Repo.UpdateAnnotator(id, in.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, annotator)
}

func (h *AnnotationHandler) DeleteAnnotator(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r)
	if !ok {
		notFound(w)
		return
	}
	if err := h.Repo.DeleteAnnotator(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
