package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"merchant-be/internal/common"
)

// ok writes a 200 with success, message and any extra fields
func ok(c *gin.Context, message string, fields gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// statusFor maps the error taxonomy onto HTTP status codes.
// Conflicts are reported as 400 like other client input errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrBadRequest),
		errors.Is(err, common.ErrConflict),
		errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// detail strips the taxonomy prefix from validation errors
func detail(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrBadRequest.Error()+": ")
}

// messages overrides the response message for specific taxonomy errors
type messages map[error]string

// respondError writes the failure body for err. Unexpected errors are logged.
func respondError(c *gin.Context, err error, msgs messages) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"err", err,
		)
		fail(c, status, err.Error())
		return
	}

	for target, msg := range msgs {
		if errors.Is(err, target) {
			fail(c, status, msg)
			return
		}
	}
	fail(c, status, detail(err))
}
