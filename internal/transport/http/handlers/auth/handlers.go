package authhandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"okr/internal/auth"
	"okr/internal/transport/http/api"
	"okr/internal/transport/http/middleware"
)

type Handler struct {
	store  *auth.Store
	secret string
}

func NewHandler(store *auth.Store, secret string) *Handler {
	return &Handler{store: store, secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.With(middleware.RequireAuth).Get("/auth/me", h.handleMe)
	r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/users", h.handleListEmployees)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, passwordHash, err := h.store.UserByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(passwordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.secret, auth.Claims{UserID: user.ID, Name: user.Name, Role: user.Role}, 12*time.Hour)
	if err != nil {
		slog.Warn("token generation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{"token": token, "user": user}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	userCtx, _ := middleware.GetUser(r.Context())
	user, err := h.store.UserByID(r.Context(), userCtx.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_list_failed", "failed to list users", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}
