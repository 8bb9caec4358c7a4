package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"datavista/internal/api"
	"datavista/internal/config"
	"datavista/internal/llm"
	"datavista/internal/session"
	"datavista/internal/suggest"
	"datavista/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logLevel, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		log.Fatalf("Invalid logger level: %v", err)
	}
	logger.Init(logLevel)
	serviceLogger := logger.New("VizServer")

	// The language model is optional: without a credential the upload and
	// preview workflow still runs, only suggestions are disabled. Reported
	// once here at startup.
	var llmClient llm.LLM
	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		serviceLogger.WithError(err).Warn("Language model unavailable; AI suggestions are disabled")
	} else {
		llmClient = client
		serviceLogger.Info("Language model client initialized: " + cfg.LLM.Provider)
	}

	// Wire components
	store := session.NewStore()
	suggester := suggest.New(llmClient, cfg.Suggestion, serviceLogger)
	apiHandler := api.NewAPI(store, suggester, cfg, serviceLogger)

	// Setup HTTP server
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes
	api.RegisterRoutes(router, apiHandler)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	// Start server
	go func() {
		serviceLogger.Info("Starting HTTP server on " + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serviceLogger.WithError(err).Fatal("HTTP server failed to start")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	serviceLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		serviceLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	serviceLogger.Info("Server gracefully stopped")
}
