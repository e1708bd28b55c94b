package handlers

import (
	"net/http"

	intdomain "armada/internal/domain"
	"armada/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
		"message":    message,
	})
}

// RespondDomainError maps service errors to HTTP responses in one place.
// Internal errors (missing configuration and the like) deliberately hide the
// underlying detail from the client.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case intdomain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case intdomain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case intdomain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan")
	}
}
