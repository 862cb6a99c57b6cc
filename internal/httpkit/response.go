package httpkit

import (
	"errors"
	"horoscopus-web/internal/apperr"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// StatusOf maps an error to an HTTP status. Untyped errors are internal.
func StatusOf(err error) int {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		return domainErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// HandleError writes a JSON error response for err.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
		return true
	}

	// untyped errors may carry internals, keep them out of the response
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	return true
}
