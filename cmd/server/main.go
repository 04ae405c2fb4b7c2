package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bankafrica/bankapp/internal/auth"
	"github.com/bankafrica/bankapp/internal/command"
	"github.com/bankafrica/bankapp/internal/config"
	"github.com/bankafrica/bankapp/internal/events"
	"github.com/bankafrica/bankapp/internal/logger"
	"github.com/bankafrica/bankapp/internal/query"
	redisClient "github.com/bankafrica/bankapp/internal/redis"
	"github.com/bankafrica/bankapp/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET environment variable is not set")
	}
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Record stores
	var (
		accountStore repository.AccountStore
		userStore    repository.UserStore
	)
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ping database")
		}
		if err := repository.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		accountStore = repository.NewAccountWriteRepository(db)
		userStore = repository.NewUserWriteRepository(db)
	default:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		accountStore = repository.NewMemoryAccountRepository()
		userStore = repository.NewMemoryUserRepository()
	}

	// Redis (read cache + event streaming) is optional
	var (
		accountCache repository.AccountCache
		publisher    command.EventPublisher = events.NopPublisher{}
	)
	if cfg.RedisEnabled() {
		redis, err := redisClient.NewClient(redisClient.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			DialTimeout:  cfg.RedisDialTimeout,
			ReadTimeout:  cfg.RedisReadTimeout,
			WriteTimeout: cfg.RedisWriteTimeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redis.Close()

		accountCache = repository.NewAccountCache(redis.Client, log)
		publisher = events.NewPublisher(redis.Client)
	} else {
		log.Info().Msg("REDIS_ADDR not set; account cache and event stream disabled")
	}

	// --- CQRS wiring ---
	readRepo := repository.NewAccountReadRepository(accountStore, accountCache)
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.JWTTTL)

	accountCommands := command.NewAccountCommandService(accountStore, readRepo, publisher, log)
	userCommands := command.NewUserCommandService(userStore, accountCommands, publisher, log)
	accountQueries := query.NewAccountQueryService(readRepo)
	authQueries := query.NewAuthQueryService(userStore, readRepo, tokens)

	router := setupRouter(log, tokens, accountCommands, accountQueries, userCommands, authQueries)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Str("store", cfg.StoreDriver).Msg("bank service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
