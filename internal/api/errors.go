package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"copro-billing/internal/domain"
	"copro-billing/internal/logger"
)

// statusFor maps a use case error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrConfirmationMismatch):
		return http.StatusPreconditionFailed
	case domain.IsPrecondition(err), errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnknownOwner):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error body. Internal errors are logged and their
// message is not exposed, except for the name of a feed that failed to load.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}

	var ves domain.ValidationErrors
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ves):
		body["details"] = ves
	case errors.As(err, &ve):
		body["details"] = domain.ValidationErrors{ve}
	}

	if status == http.StatusInternalServerError {
		log := logger.FromContext(c.Request.Context())
		log.Error().Err(err).Msg("request failed")
		body = gin.H{"error": "internal server error"}
		var dl *domain.DataLoadError
		if errors.As(err, &dl) {
			body["error"] = "could not load " + dl.Resource
		}
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
}
