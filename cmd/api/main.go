package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fieldworks/agrifield-api/internal/api"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
	"github.com/fieldworks/agrifield-api/internal/core/service"
	mongorepo "github.com/fieldworks/agrifield-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fieldworks/agrifield-api/internal/infrastructure/db/redis"
	"github.com/fieldworks/agrifield-api/internal/infrastructure/queue"
	"github.com/fieldworks/agrifield-api/internal/infrastructure/sms"
	"github.com/fieldworks/agrifield-api/internal/pkg/config"
	"github.com/fieldworks/agrifield-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("configuration invalid")
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Async SMS pipeline ---
	var gateway ports.SMSGateway
	if cfg.SMS.APIKey != "" {
		gateway = sms.NewFast2SMSGateway(cfg.SMS.APIKey)
	} else {
		log.Info().Msg("no sms api key configured, using log gateway")
		gateway = sms.NewLogGateway(log)
	}
	deliverer := service.NewSMSService(gateway, redisdb.NewDedupChecker(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.SMS.Workers, deliverer, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, api.Options{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		SMSQueue:  dispatcher,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the unique id and email indexes on every account
// collection before the server accepts traffic.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexed := []interface {
		EnsureIndexes(context.Context) error
	}{
		mongorepo.NewFarmerRepository(db),
		mongorepo.NewCRPRepository(db),
		mongorepo.NewExpertRepository(db),
		mongorepo.NewSupervisorRepository(db),
	}
	for _, r := range indexed {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
