package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/voicediary-backend/internal/handlers"
	"github.com/yungbote/voicediary-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	EmotionHandler    *handlers.EmotionHandler
	StatisticsHandler *handlers.StatisticsHandler
	FeedbackHandler   *handlers.FeedbackHandler
	SpeechHandler     *handlers.SpeechHandler
	ComicHandler      *handlers.ComicHandler
	DiaryHandler      *handlers.DiaryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/api/v1/auth/token", cfg.AuthHandler.Token)
	router.GET("/api/v1/statistics/emotion-mapping", cfg.EmotionHandler.Mapping)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api/v1")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Emotion
	protected.POST("/emotion/analyze", cfg.EmotionHandler.Analyze)
	protected.GET("/emotion/history/:user_id", cfg.EmotionHandler.History)
	// Statistics
	protected.GET("/statistics/emotion/:user_id", cfg.StatisticsHandler.Statistics)
	protected.GET("/statistics/insights/:user_id", cfg.StatisticsHandler.Insights)
	protected.GET("/statistics/dashboard/:user_id", cfg.StatisticsHandler.Dashboard)
	// Feedback
	protected.POST("/feedback/generate", cfg.FeedbackHandler.Generate)
	// Speech
	protected.POST("/speech/transcribe", cfg.SpeechHandler.Transcribe)
	// Comic
	protected.POST("/comic/generate", cfg.ComicHandler.Generate)
	// Diary
	protected.POST("/diary", cfg.DiaryHandler.Create)
	protected.GET("/diary/:id", cfg.DiaryHandler.Get)
	protected.POST("/diary/:id/process", cfg.DiaryHandler.Process)

	return router
}
