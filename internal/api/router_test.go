package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/schooladmin/school-api/internal/core/domain"
	"github.com/schooladmin/school-api/internal/infrastructure/db/memory"
	"github.com/schooladmin/school-api/pkg/logger"
)

// The router is built once: the prometheus middleware registers its
// collectors with the default registry and cannot be re-registered.
func newTestRouter(t *testing.T) *echoServer {
	t.Helper()
	logger.Reset()
	log := logger.Init(logger.Options{Level: "error"})

	users := memory.NewUserRepository()
	seedUser(t, users, "test_teacher", "password", "Test Teacher", domain.RoleTeacher)
	seedUser(t, users, "test_student", "password", "Test Student", domain.RoleStudent)

	e := NewRouter(RouterDeps{
		Log:        log,
		Users:      users,
		BcryptCost: bcrypt.MinCost,
	})
	return &echoServer{e: e}
}

type echoServer struct {
	e *echo.Echo
}

func (s *echoServer) do(t *testing.T, method, path, body, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if username != "" {
		req.SetBasicAuth(username, password)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func seedUser(t *testing.T, users *memory.UserRepository, username, password, name string, role domain.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash seed password: %v", err)
	}
	if _, err := users.Create(context.Background(), &domain.User{
		ID:           username + "-id",
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
	}); err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	srv := newTestRouter(t)

	t.Run("unauthenticated requests are rejected everywhere", func(t *testing.T) {
		cases := []struct{ method, path string }{
			{http.MethodGet, "/api/auth/me"},
			{http.MethodGet, "/api/students"},
			{http.MethodGet, "/api/students/me"},
			{http.MethodPost, "/api/students"},
		}
		for _, tc := range cases {
			rec := srv.do(t, tc.method, tc.path, "", "", "")
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
			}
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/auth/me", "", "test_teacher", "wrong")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unknown username is rejected the same way", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/auth/me", "", "ghost", "password")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("auth/me returns the caller's identity", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/auth/me", "", "test_teacher", "password")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp map[string]any
		decodeJSON(t, rec, &resp)
		if resp["username"] != "test_teacher" || resp["role"] != "TEACHER" {
			t.Fatalf("unexpected payload: %+v", resp)
		}

		rec = srv.do(t, http.MethodGet, "/api/auth/me", "", "test_student", "password")
		decodeJSON(t, rec, &resp)
		if resp["username"] != "test_student" || resp["role"] != "STUDENT" {
			t.Fatalf("unexpected payload: %+v", resp)
		}
	})

	t.Run("student may not list students", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/students", "", "test_student", "password")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("teacher lists students", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/students", "", "test_teacher", "password")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp []map[string]any
		decodeJSON(t, rec, &resp)
		if len(resp) < 2 {
			t.Fatalf("expected seeded records, got %+v", resp)
		}
		if strings.Contains(rec.Body.String(), "password") {
			t.Fatalf("listing leaked credential material: %s", rec.Body.String())
		}
	})

	t.Run("teacher creates a student and sees it listed", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/students",
			`{"username":"s2","password":"p","name":"S Two"}`, "test_teacher", "password")
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var created map[string]any
		decodeJSON(t, rec, &created)
		if created["username"] != "s2" || created["name"] != "S Two" || created["role"] != "STUDENT" {
			t.Fatalf("unexpected payload: %+v", created)
		}

		rec = srv.do(t, http.MethodGet, "/api/students", "", "test_teacher", "password")
		if !strings.Contains(rec.Body.String(), `"s2"`) {
			t.Fatalf("created student missing from listing: %s", rec.Body.String())
		}

		// The new account can authenticate right away.
		rec = srv.do(t, http.MethodGet, "/api/auth/me", "", "s2", "p")
		if rec.Code != http.StatusOK {
			t.Fatalf("created student cannot log in: %d", rec.Code)
		}
	})

	t.Run("student creating a student gets the validation class", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/students",
			`{"username":"x","password":"y","name":"X"}`, "test_student", "password")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate username is a validation failure", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/students",
			`{"username":"test_student","password":"p","name":"Dup"}`, "test_teacher", "password")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("students/me returns only the caller's record", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/students/me", "", "test_student", "password")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp map[string]any
		decodeJSON(t, rec, &resp)
		if resp["username"] != "test_student" || resp["name"] != "Test Student" {
			t.Fatalf("unexpected payload: %+v", resp)
		}
	})

	t.Run("liveness probe needs no auth", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/health", "", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
