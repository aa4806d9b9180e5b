package main

import (
	"fmt"
	"os"

	"github.com/yungbote/voicediary-backend/internal/clients/redis"
	"github.com/yungbote/voicediary-backend/internal/db"
	"github.com/yungbote/voicediary-backend/internal/emotion"
	"github.com/yungbote/voicediary-backend/internal/handlers"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/middleware"
	"github.com/yungbote/voicediary-backend/internal/repos"
	"github.com/yungbote/voicediary-backend/internal/server"
	"github.com/yungbote/voicediary-backend/internal/services"
	"github.com/yungbote/voicediary-backend/internal/stats"
	"github.com/yungbote/voicediary-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Keyword tables
	log.Info("Loading keyword config from main...")
	keywordPath := utils.GetEnv("KEYWORDS_CONFIG", "", log)
	keywordCfg, err := emotion.LoadKeywordConfig(keywordPath)
	if err != nil {
		log.Error("Could not load keyword config", "error", err)
		os.Exit(1)
	}
	classifier := emotion.NewClassifier(keywordCfg)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	analysisRepo := repos.NewAnalysisRepo(thePG, log)
	diaryRepo := repos.NewDiaryRepo(thePG, log)

	// Redis stats cache (optional)
	statsCache, err := redis.NewStatsCache(log)
	if err != nil {
		log.Warn("Redis stats cache init failed, caching disabled", "error", err)
		statsCache = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	tokenService, err := services.NewTokenService(log)
	if err != nil {
		log.Error("Could not init TokenService", "error", err)
		os.Exit(1)
	}
	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Warn("Could not init OpenAIClient, falling back to canned feedback", "error", err)
		openaiClient = nil
	}
	emotionService := services.NewEmotionService(log, classifier, analysisRepo)
	aggregator := stats.NewAggregator(analysisRepo, log)
	statisticsService := services.NewStatisticsService(log, aggregator, statsCache)
	feedbackService := services.NewFeedbackService(log, classifier, openaiClient)
	diaryService := services.NewDiaryService(log, diaryRepo, emotionService, feedbackService)

	var speechService services.SpeechService
	if s, err := services.NewSpeechService(log); err != nil {
		log.Warn("Could not init SpeechService, transcription disabled", "error", err)
	} else {
		speechService = s
		defer speechService.Close()
	}

	var comicService services.ComicService
	if openaiClient != nil {
		if cs, err := services.NewComicService(log, openaiClient); err != nil {
			log.Warn("Could not init ComicService, comics disabled", "error", err)
		} else {
			comicService = cs
		}
	} else {
		log.Warn("ComicService disabled, no OpenAI client")
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(tokenService)
	emotionHandler := handlers.NewEmotionHandler(emotionService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	speechHandler := handlers.NewSpeechHandler(speechService)
	comicHandler := handlers.NewComicHandler(comicService, diaryService)
	diaryHandler := handlers.NewDiaryHandler(diaryService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, tokenService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		EmotionHandler:    emotionHandler,
		StatisticsHandler: statisticsHandler,
		FeedbackHandler:   feedbackHandler,
		SpeechHandler:     speechHandler,
		ComicHandler:      comicHandler,
		DiaryHandler:      diaryHandler,
	})

	if statsCache != nil {
		defer statsCache.Close()
	}

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
