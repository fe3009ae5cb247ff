package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osu-soilwater/cover-crop-advisor/internal/advisor"
	"github.com/osu-soilwater/cover-crop-advisor/internal/api"
	"github.com/osu-soilwater/cover-crop-advisor/internal/config"
	"github.com/osu-soilwater/cover-crop-advisor/internal/dataset"
	"github.com/osu-soilwater/cover-crop-advisor/internal/logger"
	"github.com/osu-soilwater/cover-crop-advisor/internal/session"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	// The cover crop table is read once; a missing or malformed file is a
	// startup fault.
	records, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		log.Fatalf("Failed to load cover crop dataset: %v", err)
	}

	// Initialize Gemini client
	advisorClient, err := advisor.NewClient(context.Background(), cfg.GenAI)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer advisorClient.Close()

	handler := api.NewHandler(records, advisorClient, session.NewStore(), appLogger)

	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogging(appLogger))

	// Endpoints
	router.GET("/", handler.ServeIndex)
	router.GET("/api/options", handler.GetOptions)
	router.POST("/api/recommend", handler.Recommend)
	router.GET("/api/recommendation", handler.Replay)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	appLogger.Info("cover crop advisor starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"dataset": cfg.Dataset.Path,
		"records": len(records),
		"model":   cfg.GenAI.Model,
	})

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
