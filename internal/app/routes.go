package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slidecast/core/internal/middleware"
	"github.com/slidecast/core/internal/modules/narration"
	"github.com/slidecast/core/internal/modules/quiz"
	"github.com/slidecast/core/internal/modules/storage/objectstore"
	pkgredis "github.com/slidecast/core/internal/pkg/redis"
	"github.com/slidecast/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "slidecast-core",
		"version": "1.0.0",
	}

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	apiPrefix := "/api/v1"

	api := r.Group(apiPrefix)
	api.Use(middleware.HTTPCache(rc.Raw(), middleware.HTTPCacheOptions{
		TTL:     15 * time.Second,
		Disable: a.cfg.IsDev(),
		// Generation endpoints are cached by content hash in MySQL, and
		// audio bytes carry immutable cache headers of their own.
		SkipPaths: []string{
			apiPrefix + "/generate-script",
			apiPrefix + "/quiz",
			apiPrefix + "/audio/*",
		},
	}))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/health", func(c *gin.Context) {
		checks := gin.H{}
		healthy := true

		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if err := rc.Raw().Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}

		if !healthy {
			checks["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, checks)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// A disabled or unconfigured synthesizer stays a true nil interface.
	var synth narration.Synthesizer
	if s := narration.NewElevenLabsSynthesizer(a.cfg.TTS); s != nil {
		synth = s
	}

	narrationSvc := narration.NewService(a.db, a.cfg, synth, a.store, a.logger)
	narration.NewHandler(narrationSvc).RegisterRoutes(api)

	quizSvc := quiz.NewService(a.cfg, a.logger)
	quiz.NewHandler(quizSvc).RegisterRoutes(api)

	objectstore.NewHandler(a.store, a.cfg.Storage).RegisterRoutes(api)
}
