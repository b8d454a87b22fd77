package assessmenthandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"okr/internal/auth"
	"okr/internal/domain/assessment"
	"okr/internal/domain/template"
	"okr/internal/transport/http/api"
	"okr/internal/transport/http/middleware"
)

type Handler struct {
	service *assessment.Service
}

func NewHandler(service *assessment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assessments", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{assessmentID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/{assessmentID}/publish", h.handlePublish)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/{assessmentID}/complete", h.handleComplete)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/{assessmentID}/end", h.handleEnd)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assessment_list_failed", "failed to list assessments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assessments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), chi.URLParam(r, "assessmentID"))
	if errors.Is(err, assessment.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "assessment_not_found", "assessment not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assessment_get_failed", "failed to load assessment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, a, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name       string    `json:"name"`
		TemplateID string    `json:"templateId"`
		StartDate  time.Time `json:"startDate"`
		EndDate    time.Time `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Name == "" || payload.TemplateID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name and templateId are required", middleware.GetRequestID(r.Context()))
		return
	}

	a, err := h.service.Create(r.Context(), payload.Name, payload.TemplateID, payload.StartDate, payload.EndDate)
	if errors.Is(err, template.ErrNotFound) {
		api.Fail(w, http.StatusBadRequest, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assessment_create_failed", "failed to create assessment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, a, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	err := h.service.Publish(r.Context(), chi.URLParam(r, "assessmentID"))
	switch {
	case errors.Is(err, assessment.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "assessment_not_found", "assessment not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, assessment.ErrNotDraft):
		api.Fail(w, http.StatusConflict, "assessment_not_draft", "assessment already published", middleware.GetRequestID(r.Context()))
	case errors.Is(err, template.ErrInvalid):
		api.Fail(w, http.StatusUnprocessableEntity, "template_invalid", err.Error(), middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "assessment_publish_failed", "failed to publish assessment", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, map[string]string{"status": assessment.StatusActive}, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Complete, assessment.StatusCompleted)
}

func (h *Handler) handleEnd(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.End, assessment.StatusEnded)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) error, status string) {
	err := fn(r.Context(), chi.URLParam(r, "assessmentID"))
	switch {
	case errors.Is(err, assessment.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "assessment_not_found", "assessment not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, assessment.ErrNotActive):
		api.Fail(w, http.StatusConflict, "assessment_not_active", "assessment is not active", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "assessment_transition_failed", "failed to update assessment", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, map[string]string{"status": status}, middleware.GetRequestID(r.Context()))
	}
}
