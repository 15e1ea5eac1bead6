package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"rotape-service/configs"
	"rotape-service/configs/database"
	adapters "rotape-service/internal/adapters/kafka"
	"rotape-service/internal/server/repository"
	"rotape-service/internal/server/service"
)

// The tally worker consumes preference.submitted messages and rebuilds the
// cached popularity report for the affected event.
func main() {
	cfg := configs.Load()

	slog.Info("Starting tally worker")

	db, err := database.NewMySQLDB(cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	if err != nil {
		slog.Error("Failed to connect to MySQL", "error", err)
		os.Exit(1)
	}

	redisClient, err := database.InitRedis(cfg.Redis.URL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	prefRepo := repository.NewPreferenceRepository(db)
	tallyCache := service.NewRedisTallyCache(redisClient)

	consumer := adapters.NewTallyConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.PreferenceTopic,
		cfg.Kafka.ConsumerGroup,
		prefRepo,
		tallyCache,
	)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		slog.Error("Consumer stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Worker stopped")
}
