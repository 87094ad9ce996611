package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hightemp/intltel/internal/config"
	"github.com/hightemp/intltel/internal/countries"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// ErrorResponse is the error body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeError(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// handleError maps domain errors to responses and reports whether err was
// non-nil.
func handleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, countries.ErrUnknownCountry):
		writeError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, config.ErrInvalid), errors.Is(err, countries.ErrInvalidCatalog):
		writeError(c, http.StatusBadRequest, err.Error(), nil)
	default:
		writeError(c, http.StatusInternalServerError, err.Error(), nil)
	}
	return true
}
