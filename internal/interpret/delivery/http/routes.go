package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task-intent/pkg/log"
	"task-intent/pkg/response"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	rg.Use(h.requestID())
	rg.POST("/parse", h.rateLimit(), h.Parse)
	rg.GET("/stats", h.Stats)
}

// requestID propagates or assigns a request id and stores it on the
// request context for logging.
func (h *handler) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (h *handler) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.limiter == nil {
			c.Next()
			return
		}
		if err := h.limiter.Allow(c.ClientIP()); err != nil {
			h.l.Warnf(c.Request.Context(), "Rate limit exceeded: %v", err)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
