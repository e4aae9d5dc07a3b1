package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/pkg/apperrors"
	"github.com/eventvault/backend/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.NewValidationError("bad"), http.StatusBadRequest},
		{"not found", apperrors.NewResourceNotFoundError("Event not found"), http.StatusNotFound},
		{"conflict", apperrors.NewConflictError("linked"), http.StatusConflict},
		{"wrapped conflict", fmt.Errorf("link: %w", apperrors.ErrConflict), http.StatusConflict},
		{"not configured", apperrors.ErrNotConfigured, http.StatusServiceUnavailable},
		{"external", apperrors.ErrExternalService, http.StatusBadGateway},
		{"persistence", apperrors.NewPersistenceError("insert", errors.New("boom")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorStatus(tt.err); got != tt.want {
				t.Errorf("ErrorStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleAPIErrorKeepsClientMessages(t *testing.T) {
	r := gin.New()
	r.GET("/not-found", func(c *gin.Context) {
		HandleAPIError(c, apperrors.NewResourceNotFoundError("Event not found"))
	})
	r.GET("/db", func(c *gin.Context) {
		HandleAPIError(c, apperrors.NewPersistenceError("insert event", errors.New("password authentication failed")))
	})

	var resp dto.ErrorResponse

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/not-found", nil))
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusNotFound || resp.Error.Message != "Event not found" || resp.Error.Code != dto.ErrorCodeResourceNotFound {
		t.Errorf("status %d, error %+v", w.Code, resp.Error)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/db", nil))
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusInternalServerError || resp.Error.Message != "Database error" {
		t.Errorf("status %d, error %+v", w.Code, resp.Error)
	}
}

func TestHandleAPIErrorSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want dto.ErrorSeverity
	}{
		{"validation", apperrors.NewValidationError("eventId is required"), dto.ErrorSeverityWarning},
		{"not found", apperrors.NewResourceNotFoundError("Event not found"), dto.ErrorSeverityWarning},
		{"external", apperrors.ErrExternalService, dto.ErrorSeverityError},
		{"not configured", apperrors.ErrNotConfigured, dto.ErrorSeverityError},
		{"unknown", errors.New("boom"), dto.ErrorSeverityError},
		{"persistence", apperrors.NewPersistenceError("insert", errors.New("boom")), dto.ErrorSeverityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { HandleAPIError(c, tt.err) })
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			var resp dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error.Severity != tt.want {
				t.Errorf("severity = %s, want %s", resp.Error.Severity, tt.want)
			}
		})
	}
}

func TestCORSAllowList(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com/"}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allowed origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func newAuthRouter(jwtService *auth.JWTService, required bool) *gin.Engine {
	r := gin.New()
	r.Use(NewAuthMiddleware(jwtService, required).JWTAuth())
	r.GET("/me", func(c *gin.Context) {
		id, ok := auth.UserIDFromContext(c.Request.Context())
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func get(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthOptional(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret"})
	r := newAuthRouter(jwtService, false)

	if w := get(r, ""); w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Errorf("no token: %d %q", w.Code, w.Body.String())
	}

	userID := uuid.New()
	token, err := jwtService.IssueToken(userID, "host@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if w := get(r, "Bearer "+token); w.Code != http.StatusOK || w.Body.String() != userID.String() {
		t.Errorf("valid token: %d %q", w.Code, w.Body.String())
	}

	if w := get(r, "Bearer not.a.token"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", w.Code)
	}
}

func TestJWTAuthRequired(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret"})
	r := newAuthRouter(jwtService, true)

	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d, want 401", w.Code)
	}

	expired, err := jwtService.IssueToken(uuid.New(), "", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	w := get(r, "Bearer "+expired)
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusUnauthorized || resp.Error.Code != dto.ErrorCodeExpiredToken {
		t.Errorf("expired token: %d %+v", w.Code, resp.Error)
	}
}
