package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/portfolio-backend/internal/domain"
	"github.com/yungbote/portfolio-backend/internal/platform/ctxutil"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
	"github.com/yungbote/portfolio-backend/internal/services"
)

type stubAuth struct {
	services.AuthService
	tokens map[string]ctxutil.RequestData
}

func (s *stubAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	rd, ok := s.tokens[token]
	if !ok {
		return ctx, errors.Join(errors.New("invalid or expired token"), errs.ErrUnauthorized)
	}
	rd.TokenString = token
	return ctxutil.WithRequestData(ctx, &rd), nil
}

func adminRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Nop(), &stubAuth{tokens: map[string]ctxutil.RequestData{
		"admin-token":  {UserID: uuid.New(), Role: types.RoleAdmin},
		"viewer-token": {UserID: uuid.New(), Role: types.RoleViewer},
	}})
	r := gin.New()
	r.GET("/admin", am.RequireAuth(), am.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireAuthAndAdmin(t *testing.T) {
	r := adminRouter(t)
	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"no token", "", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "", http.StatusUnauthorized},
		{"viewer", "Bearer viewer-token", "", http.StatusForbidden},
		{"admin", "Bearer admin-token", "", http.StatusNoContent},
		{"admin via query", "", "?token=admin-token", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status: want=%d got=%d body=%s", tt.want, rec.Code, rec.Body.String())
			}
			if tt.want >= 400 && !strings.Contains(rec.Body.String(), `"code"`) {
				t.Fatalf("error envelope missing: %s", rec.Body.String())
			}
		})
	}
}

func TestRateLimiterPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(logger.Nop(), 1, 2)
	now := time.Unix(1700000000, 0)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/contact", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = ip + ":4321"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if got := send("10.0.0.1"); got != http.StatusCreated {
			t.Fatalf("burst request %d: want=%d got=%d", i, http.StatusCreated, got)
		}
	}
	if got := send("10.0.0.1"); got != http.StatusTooManyRequests {
		t.Fatalf("over limit: want=%d got=%d", http.StatusTooManyRequests, got)
	}
	if got := send("10.0.0.2"); got != http.StatusCreated {
		t.Fatalf("other ip: want=%d got=%d", http.StatusCreated, got)
	}
	now = now.Add(time.Minute)
	if got := send("10.0.0.1"); got != http.StatusCreated {
		t.Fatalf("after refill: want=%d got=%d", http.StatusCreated, got)
	}
}

func TestTraceContextHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceContext())
	var seen *ctxutil.TraceData
	r.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "req-123")
	req.Header.Set(headerTraceID, "bad id with spaces")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(headerRequestID); got != "req-123" {
		t.Fatalf("request id: want=%q got=%q", "req-123", got)
	}
	traceID := rec.Header().Get(headerTraceID)
	if traceID == "" || traceID == "bad id with spaces" {
		t.Fatalf("trace id: got=%q", traceID)
	}
	if seen == nil || seen.TraceID != traceID || seen.RequestID != "req-123" {
		t.Fatalf("trace data: got=%+v", seen)
	}
}
