package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jobdeck/jobdeck/internal/jobs"
	"github.com/jobdeck/jobdeck/internal/validate"
	"github.com/jobdeck/jobdeck/pkg/apperr"
)

type JobsHandler struct {
	svc       *jobs.Service
	validator *validate.Validator
}

func NewJobsHandler(svc *jobs.Service, v *validate.Validator) *JobsHandler {
	return &JobsHandler{svc: svc, validator: v}
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if err := h.validator.Validate(r.Context(), validate.SchemaJobCreate, body); err != nil {
		writeError(w, err)
		return
	}

	var params jobs.CreateParams
	if err := json.Unmarshal(body, &params); err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	job, err := h.svc.Create(r.Context(), caller, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"job": job}, http.StatusCreated)
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
		return
	}

	q := r.URL.Query()
	params := jobs.ListParams{
		Search:  q.Get("search"),
		Status:  q.Get("status"),
		JobType: q.Get("jobType"),
		Sort:    q.Get("sort"),
	}
	if p := q.Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			params.Page = v
		}
	}
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			params.Limit = v
		}
	}

	result, err := h.svc.List(r.Context(), caller, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, result, http.StatusOK)
}

func (h *JobsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
		return
	}

	result, err := h.svc.Stats(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, result, http.StatusOK)
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
		return
	}

	id, err := jobID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	job, err := h.svc.Get(r.Context(), caller, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"job": job}, http.StatusOK)
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
		return
	}

	id, err := jobID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if err := h.validator.Validate(r.Context(), validate.SchemaJobUpdate, body); err != nil {
		writeError(w, err)
		return
	}

	var params jobs.UpdateParams
	if err := json.Unmarshal(body, &params); err != nil {
		writeError(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	job, err := h.svc.Update(r.Context(), caller, id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"job": job}, http.StatusOK)
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
		return
	}

	id, err := jobID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), caller, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]string{"msg": fmt.Sprintf("job %d was deleted", id)}, http.StatusOK)
}

func jobID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Errorf(apperr.Validation, "invalid job id %q", raw)
	}
	return id, nil
}
