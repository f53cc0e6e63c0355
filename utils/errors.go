// utils/errors.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidationError means a required field is missing or malformed (HTTP 400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means a referenced tenant/appointment/customer is absent (HTTP 404).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// InvalidActionError means an unrecognized appointment action (HTTP 400).
type InvalidActionError struct {
	Action string
}

func (e *InvalidActionError) Error() string { return "invalid action: " + e.Action }

// UpstreamError means a third-party provider rejected a call (HTTP 500).
// Message echoes the upstream error text where available.
type UpstreamError struct {
	Provider string
	Message  string
}

func (e *UpstreamError) Error() string { return e.Provider + ": " + e.Message }

// ConfigurationError means the tenant is missing provider credentials.
// Callers treat it as a soft success ({"sent": false, "reason": ...})
// since SMS/email are optional per tenant.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return e.Reason }

// RespondWithError writes the uniform JSON error envelope.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// HandleError maps a typed error onto the envelope. Unknown errors
// become a 500.
func HandleError(c *gin.Context, err error) {
	var validation *ValidationError
	var notFound *NotFoundError
	var invalidAction *InvalidActionError
	var upstream *UpstreamError
	var configuration *ConfigurationError

	switch {
	case errors.As(err, &validation):
		RespondWithError(c, http.StatusBadRequest, validation.Message)
	case errors.As(err, &invalidAction):
		RespondWithError(c, http.StatusBadRequest, invalidAction.Error())
	case errors.As(err, &notFound):
		RespondWithError(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &upstream):
		RespondWithError(c, http.StatusInternalServerError, upstream.Error())
	case errors.As(err, &configuration):
		c.JSON(http.StatusOK, gin.H{"sent": false, "reason": configuration.Reason})
	default:
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
