package handlers

import (
	"errors"
	"net/http"

	"gateway/internal/domain"
	"gateway/internal/http/middleware"
	"gateway/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsConflictingInput(err):
		respondError(c, http.StatusBadRequest, "conflicting_input", err.Error(), nil)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsInternal(err):
		log.Error().Err(errors.Unwrap(err)).Str("request_id", middleware.GetRequestID(c)).Msg(err.Error())
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	default:
		log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Str("path", c.Request.URL.Path).Msg("unhandled error")
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

// ListQueryError answers a request whose paging or sorting directives could
// not be read.
func ListQueryError(c *gin.Context, err error) {
	reason := "validation_error"
	if domain.IsConflictingInput(err) {
		reason = "conflicting_input"
	}
	metrics.ListQueryRejections.WithLabelValues(c.FullPath(), reason).Inc()
	RespondDomainError(c, err)
}
