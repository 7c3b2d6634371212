package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rkbisoi/demo-loan-app-api/internal/service"
	"github.com/rkbisoi/demo-loan-app-api/internal/validation"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps the submission payload size.
const maxBodyBytes = 1 << 20

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type errorResponse struct {
	Error   string                  `json:"error"`
	Details []validation.FieldError `json:"details,omitempty"`
}

// CreateApplication handles POST /create/applications
func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}

	record, err := h.svc.CreateApplication(r.Context(), doc)
	if err != nil {
		var appErr *service.ApplicationError
		if errors.As(err, &appErr) && appErr.Kind == service.ValidationFailed {
			var verrs validation.Errors
			errors.As(appErr.Err, &verrs)
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:   "validation failed",
				Details: verrs,
			})
			return
		}
		h.log.Errorf("Failed to create application: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to process application"})
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// ApplicationList handles GET /applicationList
func (h *Handler) ApplicationList(w http.ResponseWriter, r *http.Request) {
	summaries := h.svc.ListApplicationSummaries(r.Context())
	writeJSON(w, http.StatusOK, summaries)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
