package main

// @title           Rotape Event Service API
// @version         1.0
// @description     A RESTful API service for rotation-dating events: applications, ranked preferences, match resolution, and nickname assignment
// @host            localhost:8080
// @BasePath        /api/v1
// @schemes         http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rotape-service/configs"
	"rotape-service/configs/database"
	adapters "rotape-service/internal/adapters/kafka"
	"rotape-service/internal/server"
	"rotape-service/internal/server/handlers"
	"rotape-service/internal/server/repository"
	"rotape-service/internal/server/service"

	"github.com/gin-gonic/gin"
	kafkago "github.com/segmentio/kafka-go"
)

func main() {
	// Load configuration
	cfg := configs.Load()

	slog.Info("Starting rotape server")

	// Initialize MySQL connection
	db, err := database.NewMySQLDB(cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	if err != nil {
		slog.Error("Failed to connect to MySQL", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize Redis connection
	redisClient, err := database.InitRedis(cfg.Redis.URL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)
	matchRepo := repository.NewMatchRepository(db)

	// Kafka producers. The service degrades to synchronous-only behavior
	// when brokers are unreachable at startup.
	var matchPublisher service.MatchPublisher
	producer, err := adapters.InitKafkaProducer(cfg.Kafka.Brokers)
	if err != nil {
		slog.Warn("Kafka producer unavailable, match results will not be published", "error", err)
	} else {
		mp := adapters.NewMatchProducer(producer, cfg.Kafka.MatchTopic)
		defer mp.Close()
		matchPublisher = mp
	}

	prefWriter := kafkago.NewWriter(kafkago.WriterConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.PreferenceTopic,
	})
	defer prefWriter.Close()

	// Services
	tallyCache := service.NewRedisTallyCache(redisClient)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expire)
	appService := service.NewApplicationService(eventRepo, appRepo)
	nicknameService := service.NewNicknameService(appRepo)
	prefService := service.NewPreferenceService(eventRepo, appRepo, prefRepo, tallyCache)
	matchService := service.NewMatchService(prefRepo, matchRepo, tallyCache, matchPublisher)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	appHandler := handlers.NewApplicationHandler(appService, nicknameService)
	prefHandler := handlers.NewPreferenceHandler(prefService, prefWriter)
	matchHandler := handlers.NewMatchHandler(matchService)

	// Router
	router := gin.Default()
	server.SetupRoutes(router, cfg.JWT.Secret, authHandler, appHandler, prefHandler, matchHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server stopped")
}
