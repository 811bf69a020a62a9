package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dabin/mathmission/internal/api"
	"github.com/dabin/mathmission/internal/config"
	"github.com/dabin/mathmission/internal/db"
	"github.com/dabin/mathmission/internal/grader"
	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/ratelimit"
	"github.com/dabin/mathmission/internal/repository/sqlite"
	"github.com/dabin/mathmission/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("MathMission Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("grading_model=%s", cfg.OpenAIModel)
	log.Debug("grading_timeout=%s", cfg.GradingTimeout)
	log.Debug("default_problem_count=%d", cfg.DefaultProblemCount)
	log.Debug("default_topics=%v", cfg.DefaultTopics)
	log.Debug("rate_limit_per_minute=%d", cfg.RateLimitPerMinute)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	problemRepo := sqlite.NewProblemRepository(database.DB)
	missionRepo := sqlite.NewMissionRepository(database.DB)
	answerRepo := sqlite.NewAnswerRepository(database.DB)
	metricsRepo := sqlite.NewMetricsRepository(database.DB)

	// Initialize the grading collaborator
	aiGrader, err := grader.NewOpenAIGrader(grader.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	if err != nil {
		log.Error("failed to initialize grader: %v", err)
		os.Exit(1)
	}

	// Initialize services
	analyticsService := services.NewAnalyticsService(metricsRepo)
	missionService := services.NewMissionService(missionRepo, problemRepo, answerRepo, metricsRepo, analyticsService, services.MissionConfig{
		DefaultProblemCount: cfg.DefaultProblemCount,
		MinProblemCount:     cfg.MinProblemCount,
		MaxProblemCount:     cfg.MaxProblemCount,
		Topics:              cfg.DefaultTopics,
	})
	answerService := services.NewAnswerService(answerRepo, missionRepo, problemRepo, aiGrader, missionService, analyticsService, cfg.GradingTimeout)
	problemService := services.NewProblemService(problemRepo)

	srv := &api.Server{
		DB:         database,
		Missions:   missionService,
		Answers:    answerService,
		Problems:   problemService,
		Analytics:  analyticsService,
		RateLimits: ratelimit.New(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // grading calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("MathMission Server Stopped")
	log.Info("===========================================")
}
