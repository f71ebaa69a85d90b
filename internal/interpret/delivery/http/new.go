package http

import (
	"github.com/gin-gonic/gin"

	"task-intent/internal/interpret"
	"task-intent/pkg/log"
)

// Handler is the public interface for the interpret HTTP delivery layer.
type Handler interface {
	Parse(c *gin.Context)
	Stats(c *gin.Context)
}

type handler struct {
	l       log.Logger
	uc      interpret.UseCase
	limiter *rateLimiter
}

// New creates a new HTTP handler for the interpret domain. requestsPerMin
// bounds parse calls per client IP; zero or less disables the limit.
func New(l log.Logger, uc interpret.UseCase, requestsPerMin int) *handler {
	h := &handler{
		l:  l,
		uc: uc,
	}
	if requestsPerMin > 0 {
		h.limiter = newRateLimiter(requestsPerMin)
	}
	return h
}
