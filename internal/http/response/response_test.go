package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/services/sections"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", errs.Required("title", ""), http.StatusBadRequest, "invalid_request"},
		{"not found", fmt.Errorf("blog: %w", errs.ErrNotFound), http.StatusNotFound, "not_found"},
		{"reorder", sections.ErrReorderInFlight, http.StatusConflict, "reorder_in_flight"},
		{"unauthorized", errs.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", errs.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"upload", &errs.UploadError{Bucket: "assets", Path: "logo-1.png", Err: errors.New("boom")}, http.StatusBadGateway, "upload_failed"},
		{"data access", errs.DataAccess("select", "blogs", errors.New("conn refused")), http.StatusServiceUnavailable, "data_access"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Status != tt.status || got.Code != tt.code {
				t.Fatalf("want=%d/%s got=%d/%s", tt.status, tt.code, got.Status, got.Code)
			}
		})
	}
}

func TestRespondServiceErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondServiceError(c, errs.DataAccess("select", "blogs", errors.New("password=hunter2")))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: want=%d got=%d", http.StatusServiceUnavailable, rec.Code)
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Code != "data_access" || env.Error.Message != "Service Unavailable" {
		t.Fatalf("envelope: got=%+v", env.Error)
	}
}
