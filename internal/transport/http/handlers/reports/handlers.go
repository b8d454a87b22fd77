package reportshandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"okr/internal/auth"
	"okr/internal/domain/assessment"
	"okr/internal/domain/reports"
	"okr/internal/transport/http/api"
	"okr/internal/transport/http/middleware"
)

type Handler struct {
	service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleLeader, auth.RoleBoss)).Get("/assessments/{assessmentID}", h.handleSummary)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/assessments/{assessmentID}/pdf", h.handlePDF)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.BuildSummary(r.Context(), chi.URLParam(r, "assessmentID"))
	if errors.Is(err, assessment.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "assessment_not_found", "assessment not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	filePath, err := h.service.GeneratePDF(r.Context(), chi.URLParam(r, "assessmentID"))
	if errors.Is(err, assessment.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "assessment_not_found", "assessment not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_pdf_failed", "failed to generate report pdf", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, filePath)
}
