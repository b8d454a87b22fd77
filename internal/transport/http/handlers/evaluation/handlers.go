package evaluationhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"okr/internal/auth"
	"okr/internal/domain/assessment"
	"okr/internal/domain/evaluation"
	"okr/internal/domain/scoring"
	"okr/internal/transport/http/api"
	"okr/internal/transport/http/middleware"
)

type Handler struct {
	service *evaluation.Service
	users   *auth.Store
}

func NewHandler(service *evaluation.Service, users *auth.Store) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assessments/{assessmentID}/evaluations", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/{employeeID}/{evaluatorType}", h.handleGetDraft)
		r.Put("/{employeeID}/{evaluatorType}", h.handleSaveDraft)
		r.Post("/{employeeID}/{evaluatorType}/submit", h.handleSubmit)
		r.Get("/{employeeID}/result", h.handleResult)
		r.Get("/{employeeID}/comparison", h.handleComparison)
	})
}

// canEvaluate checks that the logged-in user actually holds the rater slot
// they are writing to: self is the employee, leader and boss come from the
// employee's reporting lines. Admins may read but never score.
func (h *Handler) canEvaluate(r *http.Request, employeeID, evaluatorType string) bool {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		return false
	}

	switch evaluatorType {
	case scoring.EvaluatorSelf:
		return user.UserID == employeeID
	case scoring.EvaluatorLeader, scoring.EvaluatorBoss:
		employee, err := h.users.UserByID(r.Context(), employeeID)
		if err != nil {
			slog.Warn("employee lookup failed", "employee", employeeID, "err", err)
			return false
		}
		if evaluatorType == scoring.EvaluatorLeader {
			return employee.LeaderID != nil && *employee.LeaderID == user.UserID
		}
		return employee.BossID != nil && *employee.BossID == user.UserID
	}
	return false
}

func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "assessmentID")
	employeeID := chi.URLParam(r, "employeeID")
	evaluatorType := chi.URLParam(r, "evaluatorType")

	if !h.canEvaluate(r, employeeID, evaluatorType) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not the assigned evaluator", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Scores []scoring.DetailedScore `json:"scores"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, _ := middleware.GetUser(r.Context())
	preview, err := h.service.QueueDraft(r.Context(), assessmentID, employeeID, user.UserID, evaluatorType, payload.Scores)
	switch {
	case errors.Is(err, evaluation.ErrUnknownEvaluator):
		api.Fail(w, http.StatusBadRequest, "invalid_evaluator", "unknown evaluator type", middleware.GetRequestID(r.Context()))
	case errors.Is(err, evaluation.ErrAssessmentClosed):
		api.Fail(w, http.StatusConflict, "assessment_closed", "assessment is closed for scoring", middleware.GetRequestID(r.Context()))
	case errors.Is(err, evaluation.ErrAlreadySubmitted):
		api.Fail(w, http.StatusConflict, "already_submitted", "evaluation already submitted", middleware.GetRequestID(r.Context()))
	case errors.Is(err, assessment.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "assessment_not_found", "assessment not found", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusBadRequest, "draft_save_failed", err.Error(), middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, preview, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "assessmentID")
	employeeID := chi.URLParam(r, "employeeID")
	evaluatorType := chi.URLParam(r, "evaluatorType")

	user, _ := middleware.GetUser(r.Context())
	if !h.canEvaluate(r, employeeID, evaluatorType) && user.Role != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "not the assigned evaluator", middleware.GetRequestID(r.Context()))
		return
	}

	record, preview, err := h.service.Draft(r.Context(), assessmentID, employeeID, evaluatorType)
	if errors.Is(err, evaluation.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "evaluation_not_found", "no draft for this evaluator", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "draft_get_failed", "failed to load draft", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"evaluation": record, "preview": preview}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "assessmentID")
	employeeID := chi.URLParam(r, "employeeID")
	evaluatorType := chi.URLParam(r, "evaluatorType")

	if !h.canEvaluate(r, employeeID, evaluatorType) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not the assigned evaluator", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.service.Submit(r.Context(), assessmentID, employeeID, evaluatorType)
	switch {
	case errors.Is(err, evaluation.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "evaluation_not_found", "no draft to submit", middleware.GetRequestID(r.Context()))
	case errors.Is(err, evaluation.ErrAlreadySubmitted):
		api.Fail(w, http.StatusConflict, "already_submitted", "evaluation already submitted", middleware.GetRequestID(r.Context()))
	case errors.Is(err, evaluation.ErrAssessmentClosed):
		api.Fail(w, http.StatusConflict, "assessment_closed", "assessment is closed for scoring", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "submit_failed", "failed to submit evaluation", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, map[string]string{"status": evaluation.StatusSubmitted}, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleResult(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "assessmentID")
	employeeID := chi.URLParam(r, "employeeID")

	user, _ := middleware.GetUser(r.Context())
	if user.Role != auth.RoleAdmin && user.UserID != employeeID &&
		!h.canEvaluate(r, employeeID, scoring.EvaluatorLeader) &&
		!h.canEvaluate(r, employeeID, scoring.EvaluatorBoss) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this result", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.service.Result(r.Context(), assessmentID, employeeID)
	if errors.Is(err, assessment.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "assessment_not_found", "assessment not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_failed", "failed to compute result", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleComparison(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "assessmentID")
	employeeID := chi.URLParam(r, "employeeID")
	otherType := r.URL.Query().Get("with")
	if otherType == "" {
		otherType = scoring.EvaluatorLeader
	}

	user, _ := middleware.GetUser(r.Context())
	if user.Role != auth.RoleAdmin && user.UserID != employeeID &&
		!h.canEvaluate(r, employeeID, scoring.EvaluatorLeader) &&
		!h.canEvaluate(r, employeeID, scoring.EvaluatorBoss) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this comparison", middleware.GetRequestID(r.Context()))
		return
	}

	comparison, err := h.service.Compare(r.Context(), assessmentID, employeeID, otherType)
	switch {
	case errors.Is(err, evaluation.ErrUnknownEvaluator):
		api.Fail(w, http.StatusBadRequest, "invalid_evaluator", "comparison target must be leader or boss", middleware.GetRequestID(r.Context()))
	case errors.Is(err, assessment.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "assessment_not_found", "assessment not found", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "comparison_failed", "failed to compute comparison", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, comparison, middleware.GetRequestID(r.Context()))
	}
}
