package objectstore

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appcfg "github.com/slidecast/core/internal/config"
	"github.com/slidecast/core/internal/pkg/response"
)

type Handler struct {
	store *Store
	cfg   appcfg.StorageConfig
}

func NewHandler(store *Store, cfg appcfg.StorageConfig) *Handler {
	return &Handler{store: store, cfg: cfg}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audio/*key", h.streamAudio)
	rg.GET("/presentations", h.listPresentations)
}

// GET /audio/*key — streams narration audio from the object store.
func (h *Handler) streamAudio(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		response.BadRequest(c, "audio key required")
		return
	}

	body, contentType, length, err := h.store.Get(c.Request.Context(), "audio/"+key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "audio not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, length, contentType, body, map[string]string{
		"Cache-Control": immutableCacheControl,
		"Accept-Ranges": "bytes",
	})
}

// GET /presentations — lists the uploaded slide decks.
func (h *Handler) listPresentations(c *gin.Context) {
	infos, err := h.store.List(c.Request.Context(), h.cfg.PresentationsPrefix)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, infos)
}
