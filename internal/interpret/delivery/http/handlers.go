package http

import (
	"github.com/gin-gonic/gin"

	"task-intent/pkg/response"
)

// Parse godoc
// @Summary     Interpret free text
// @Description Turns a natural-language line into a task or event, reporting which strategy produced it.
// @Tags        Interpret
// @Accept      json
// @Produce     json
// @Param       body body parseReq true "Text to interpret"
// @Success     200  {object} parseResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/interpret/parse [POST]
func (h *handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processParseReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Parse(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Parse: %v", err)
		h.writeError(c, err)
		return
	}

	response.OK(c, h.newParseResp(c.Writer.Header().Get(RequestIDHeader), output))
}

// Stats godoc
// @Summary     Interpretation cache statistics
// @Description Returns cache occupancy and whether the inference service is in use.
// @Tags        Interpret
// @Produce     json
// @Success     200 {object} statsResp
// @Router      /api/v1/interpret/stats [GET]
func (h *handler) Stats(c *gin.Context) {
	response.OK(c, h.newStatsResp(h.uc.Stats(c.Request.Context())))
}
