package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	interpretHTTP "task-intent/internal/interpret/delivery/http"
)

// setupInterpretDomain registers /api/v1/interpret/parse and
// /api/v1/interpret/stats.
func (srv HTTPServer) setupInterpretDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := interpretHTTP.New(srv.l, srv.interpretUC, srv.rateLimitPerMin)
	interpretHTTP.RegisterRoutes(api.Group("/interpret"), h)

	if srv.rateLimitPerMin > 0 {
		srv.l.Infof(ctx, "Interpret domain registered (rate limit %d/min per client)", srv.rateLimitPerMin)
	} else {
		srv.l.Infof(ctx, "Interpret domain registered (rate limit disabled)")
	}
	return nil
}
