package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"okr/internal/auth"
)

func TestAuthInjectsUser(t *testing.T) {
	token, err := auth.GenerateToken("test-secret", auth.Claims{UserID: "u1", Role: auth.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got UserContext
	var found bool
	handler := Auth("test-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("expected user in context")
	}
	if got.UserID != "u1" || got.Role != auth.RoleAdmin {
		t.Fatalf("unexpected user context: %+v", got)
	}
}

func TestAuthIgnoresInvalidToken(t *testing.T) {
	handler := Auth("test-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("expected no user for invalid token")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestRequireRole(t *testing.T) {
	token, err := auth.GenerateToken("test-secret", auth.Claims{UserID: "u1", Role: auth.RoleEmployee}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	handler := Auth("test-secret")(RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for wrong role")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", recorder.Code)
	}
}

func TestRequireAuthWithoutUser(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run unauthenticated")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}
