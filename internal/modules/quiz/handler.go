package quiz

import (
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
	rg.POST("/quiz", h.quiz)
}

// POST /quiz
func (h *Handler) quiz(c *gin.Context) {
	var dto GenerateQuizDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.Mode == "" {
		response.BadRequest(c, "mode is required")
		return
	}
	if dto.Mode != "generate" {
		response.BadRequest(c, "unsupported mode")
		return
	}
	if len(dto.Slides) == 0 || dto.ChunkID == 0 {
		response.BadRequest(c, "slides and chunkId are required")
		return
	}

	questions, err := h.svc.GenerateQuiz(c.Request.Context(), dto.ChunkID, dto.Slides)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, QuizResponse{ChunkID: dto.ChunkID, Questions: questions})
}
