// @title Portfolio API
// @version 1.0
// @description Admin authentication, project listing and contact inbox for the portfolio site.
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in header
// @name Cookie
// @description admin_token session cookie

package main

//go:generate swag init -g cmd/server/main.go -d ../.. -o ../../docs

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/alexmorgan-dev/portfolio-api/docs"
	"github.com/alexmorgan-dev/portfolio-api/internal/api"
	"github.com/alexmorgan-dev/portfolio-api/internal/api/handler"
	"github.com/alexmorgan-dev/portfolio-api/internal/content"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/ports"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/service"
	"github.com/alexmorgan-dev/portfolio-api/internal/infrastructure/credentials"
	mongodb "github.com/alexmorgan-dev/portfolio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/alexmorgan-dev/portfolio-api/internal/infrastructure/db/redis"
	"github.com/alexmorgan-dev/portfolio-api/internal/infrastructure/memory"
	"github.com/alexmorgan-dev/portfolio-api/internal/infrastructure/realtimedb"
	"github.com/alexmorgan-dev/portfolio-api/internal/pkg/config"
	"github.com/alexmorgan-dev/portfolio-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "portfolio-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db := connectMongo(ctx, cfg, log)
	if mongoClient != nil {
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = mongoClient.Disconnect(dctx)
		}()
	}

	rdb := connectRedis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	// --- Auth ---
	var (
		attempts ports.AttemptStore    = memory.NewAttemptStore()
		revoked  ports.RevocationStore = memory.NewRevocationStore()
	)
	if rdb != nil {
		attempts = redisdb.NewAttemptStore(rdb)
		revoked = redisdb.NewRevocationStore(rdb)
	}

	secret, err := jwtSecret(cfg, log)
	if err != nil {
		return err
	}
	tokens, err := service.NewTokenIssuer(secret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	minter, err := realtimedb.NewMinter(realtimedb.Config{
		ClientEmail: cfg.RealtimeDB.ClientEmail,
		PrivateKey:  cfg.RealtimeDB.PrivateKey,
	})
	if err != nil {
		return err
	}
	if !minter.Configured() {
		log.Warn().Msg("realtime database credentials not set, token bridge disabled")
	}

	admin := credentials.NewStatic(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.PasswordHash)
	limiter := service.NewRateLimiter(attempts, service.RateLimitPolicy{
		MaxAttempts: cfg.Auth.MaxLoginAttempts,
		Window:      cfg.Auth.LockoutWindow,
	}, log)
	authService := service.NewAuthService(admin, limiter, tokens, revoked, minter, log)

	// --- Content ---
	var projectRepo ports.ProjectRepository
	primary := service.SubmissionRepositories{
		Messages: memory.NewMessageRepository(),
		Bookings: memory.NewBookingRepository(),
	}
	var fallback service.SubmissionRepositories
	if db != nil {
		projectRepo = mongodb.NewProjectRepository(db)
		fallback = primary
		primary = service.SubmissionRepositories{
			Messages: mongodb.NewMessageRepository(db),
			Bookings: mongodb.NewBookingRepository(db),
		}
	}
	projectService := service.NewProjectService(projectRepo, content.MustStaticProjects(), log)
	submissionService := service.NewSubmissionService(primary, fallback, log)

	e := api.NewRouter(api.Dependencies{
		Auth:           authService,
		Projects:       projectService,
		Submissions:    submissionService,
		Mongo:          db,
		Redis:          rdb,
		Log:            log,
		Cookie:         handler.CookieConfig{Secure: !cfg.IsDevelopment(), MaxAge: tokens.TTL()},
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

// connectMongo returns nil handles when MONGO_URI is unset or unreachable;
// the process then serves static projects and keeps submissions in memory.
func connectMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*mongo.Client, *mongo.Database) {
	if cfg.Mongo.URI == "" {
		log.Warn().Msg("MONGO_URI not set, using static projects and in-memory submissions")
		return nil, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Warn().Err(err).Msg("mongodb unavailable, using static projects and in-memory submissions")
		return nil, nil
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Warn().Err(err).Msg("mongodb index creation failed")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
	return client, db
}

func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, login attempts and revocations are process-local")
		return nil
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login attempts and revocations are process-local")
		return nil
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	return rdb
}

// jwtSecret returns the configured signing secret. Development runs without
// one get a random per-process secret, so sessions do not survive restarts.
func jwtSecret(cfg *config.Config, log zerolog.Logger) (string, error) {
	if cfg.Auth.JWTSecret != "" {
		return cfg.Auth.JWTSecret, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	log.Warn().Msg("JWT_SECRET not set, generated a random development secret")
	return hex.EncodeToString(buf), nil
}
