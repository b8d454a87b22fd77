package templatehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"okr/internal/auth"
	"okr/internal/domain/template"
	"okr/internal/transport/http/api"
	"okr/internal/transport/http/middleware"
)

type Handler struct {
	service *template.Service
}

func NewHandler(service *template.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/templates", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{templateID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{templateID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{templateID}", h.handleDelete)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/validate", h.handleValidate)
	})
}

type templatePayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Config      json.RawMessage `json:"config"`
}

type templateView struct {
	template.Record
	Config json.RawMessage `json:"config"`
}

func view(record template.Record) templateView {
	return templateView{Record: record, Config: json.RawMessage(record.Config)}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_list_failed", "failed to list templates", middleware.GetRequestID(r.Context()))
		return
	}
	views := make([]templateView, 0, len(records))
	for _, record := range records {
		views = append(views, view(record))
	}
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Get(r.Context(), chi.URLParam(r, "templateID"))
	if errors.Is(err, template.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_get_failed", "failed to load template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view(record), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	config, err := template.DecodeConfig(payload.Config)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_config", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	record, validation, err := h.service.Create(r.Context(), payload.Name, payload.Description, user.UserID, config)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_create_failed", "failed to create template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]any{"id": record.ID, "validation": validation}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	config, err := template.DecodeConfig(payload.Config)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_config", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	validation, err := h.service.Update(r.Context(), chi.URLParam(r, "templateID"), payload.Name, payload.Description, config)
	if errors.Is(err, template.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, template.ErrPublished) {
		api.Fail(w, http.StatusConflict, "template_published", "published templates are immutable", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_update_failed", "failed to update template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"validation": validation}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "templateID"))
	if errors.Is(err, template.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, template.ErrPublished) {
		api.Fail(w, http.StatusConflict, "template_published", "published templates cannot be deleted", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_delete_failed", "failed to delete template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

// handleValidate checks a config without saving anything, for the template
// editor's live validation panel.
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Config json.RawMessage `json:"config"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	config, err := template.DecodeConfig(payload.Config)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_config", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, h.service.Validate(config), middleware.GetRequestID(r.Context()))
}
