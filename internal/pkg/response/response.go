// internal/pkg/response/response.go
package response

import (
	"net/http"

	xerrors "cprice-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error) {
	c.Abort()

	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Error = message
	}

	c.JSON(code, resp)
}

// FromError maps application sentinel errors onto HTTP statuses and sends
// the standard envelope. Unknown errors become a generic 500 so internal
// details never leak to the caller.
func FromError(c *gin.Context, err error) {
	switch {
	case xerrors.Is(err, xerrors.ErrNotFound):
		Error(c, http.StatusNotFound, "not found", err)
	case xerrors.Is(err, xerrors.ErrAlreadyClaimed):
		// The claim path conflates "missing" and "already claimed" into 404.
		Error(c, http.StatusNotFound, "inquiry not found or already claimed", err)
	case xerrors.Is(err, xerrors.ErrPermissionDenied):
		Error(c, http.StatusForbidden, "permission denied", err)
	case xerrors.Is(err, xerrors.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, "unauthorized", err)
	case xerrors.Is(err, xerrors.ErrInvalidStatus), xerrors.Is(err, xerrors.ErrInvalidInput):
		Error(c, http.StatusBadRequest, "invalid request", err)
	case xerrors.Is(err, xerrors.ErrUserNotFound):
		Error(c, http.StatusBadRequest, "user not found", err)
	case xerrors.Is(err, xerrors.ErrConflict):
		Error(c, http.StatusBadRequest, "already exists", err)
	case xerrors.Is(err, xerrors.ErrRateLimited):
		Error(c, http.StatusTooManyRequests, "too many requests", err)
	default:
		Error(c, http.StatusInternalServerError, "internal server error", xerrors.ErrInternal)
	}
}
