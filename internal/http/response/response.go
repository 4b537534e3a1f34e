package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/portfolio-backend/internal/platform/apierr"
	"github.com/yungbote/portfolio-backend/internal/platform/errs"
	"github.com/yungbote/portfolio-backend/internal/services/sections"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondServiceError writes err with the status its type maps to.
func RespondServiceError(c *gin.Context, err error) {
	ae := Classify(err)
	if ae.Status >= http.StatusInternalServerError {
		// Internal details stay in the logs.
		c.Error(err)
		RespondError(c, ae.Status, ae.Code, errors.New(http.StatusText(ae.Status)))
		return
	}
	RespondError(c, ae.Status, ae.Code, ae.Err)
}

// Classify maps a service error onto an API error.
func Classify(err error) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	var ue *errs.UploadError
	switch {
	case errs.IsValidation(err):
		return apierr.BadRequest("invalid_request", err)
	case errors.Is(err, errs.ErrNotFound):
		return apierr.NotFound("not_found", err)
	case errors.Is(err, sections.ErrReorderInFlight):
		return apierr.Conflict("reorder_in_flight", err)
	case errors.Is(err, errs.ErrUnauthorized):
		return apierr.New(http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, errs.ErrForbidden):
		return apierr.New(http.StatusForbidden, "forbidden", err)
	case errors.As(err, &ue):
		return apierr.New(http.StatusBadGateway, "upload_failed", err)
	case errs.IsDataAccess(err):
		return apierr.New(http.StatusServiceUnavailable, "data_access", err)
	default:
		return apierr.Internal(err)
	}
}
