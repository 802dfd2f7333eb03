package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/edusuite/virtualschool-backend/internal/config"
	"github.com/edusuite/virtualschool-backend/internal/handler"
	"github.com/edusuite/virtualschool-backend/internal/middleware"
	"github.com/edusuite/virtualschool-backend/internal/response"
	"github.com/edusuite/virtualschool-backend/internal/session"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Generate *handler.GenerateHandler
	Image    *handler.ImageHandler
	Study    *handler.StudyHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, store *session.Store, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config. Image
	// responses must stay fetchable cross-origin by the browser client.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally.
	router.Use(response.RequestIDMiddleware())

	// Compress JSON responses; stored PNGs are skipped.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Skipper: func(c *gin.Context) bool {
			return strings.HasPrefix(c.Request.URL.Path, "/api/images/")
		},
	}))

	api := router.Group("/api")

	// Health check.
	api.GET("/health", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Stored images, aggressively cached (1 year) — filenames are
	// timestamped and never rewritten.
	api.GET("/images/:filename",
		middleware.CacheControl(31536000),
		handlers.Image.ServeImage,
	)

	// ─── Generation (Rate Limited, Session) ────────────────────────────
	genLimiter := middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)
	generate := api.Group("", genLimiter.Middleware(), store.Middleware())
	{
		generate.POST("/generate-quiz", handlers.Generate.GenerateQuiz)
		generate.POST("/generate-notes", handlers.Generate.GenerateNotes)
		generate.POST("/generate-flashcards", handlers.Generate.GenerateFlashcards)
		generate.POST("/generate-assignment", handlers.Generate.GenerateAssignment)
		generate.POST("/feedback", handlers.Generate.Feedback)
		generate.POST("/tutor", handlers.Generate.Tutor)
		generate.POST("/generate-image", handlers.Image.GenerateImage)
		generate.POST("/enhance-image", handlers.Image.EnhanceImage)
	}

	// ─── Study (Session) ───────────────────────────────────────────────
	study := api.Group("", store.Middleware())
	{
		study.POST("/quiz/answers", handlers.Study.SetQuizAnswer)
		study.POST("/quiz/submit", handlers.Study.SubmitQuiz)
		study.POST("/quiz/clear", handlers.Study.ClearQuiz)
		study.POST("/assignment/answers", handlers.Study.SetAssignmentAnswer)
		study.POST("/assignment/submit", handlers.Study.SubmitAssignment)
		study.POST("/assignment/clear", handlers.Study.ClearAssignment)
		study.GET("/history", handlers.Study.History)
	}

	// Unknown routes.
	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.MsgEndpointNotFound)
	})

	return router
}
