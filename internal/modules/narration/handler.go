package narration

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slidecast/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-script", h.generateScript)
}

// POST /generate-script
func (h *Handler) generateScript(c *gin.Context) {
	var req NarrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), &req)
	if err != nil {
		// Terminal failure: the fixed fallback script, no audio, no retry.
		c.JSON(http.StatusInternalServerError, gin.H{
			"script":   FallbackScript,
			"audioUrl": nil,
			"error":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}
