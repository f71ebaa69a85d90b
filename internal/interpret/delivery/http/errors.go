package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"task-intent/internal/interpret"
	"task-intent/pkg/response"
)

// writeError translates use-case errors into HTTP responses.
func (h *handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, interpret.ErrInvalidInput):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
