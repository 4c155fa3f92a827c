package internal

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/managers"
	"fitness-tracker/internal/migrations"
	"fitness-tracker/internal/routing"
)

const shutdownTimeout = 10 * time.Second

func Init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	setLogLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool := initializeDatabase(ctx, cfg.DatabaseURL)
	defer pool.Close()

	if err = migrations.Run(ctx, pool); err != nil {
		log.Fatal("Error running database migrations: ", err)
	}

	databaseMgr := managers.NewDatabaseManager(pool)
	mailMgr := managers.NewMailManager(cfg)
	jwtMgr := managers.NewJWTManager([]byte(cfg.JWTSecret), cfg.JWTIssuer)

	redisClient := initializeRedis(ctx, cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}
	limiters := routing.Limiters{
		Global: managers.NewRateLimitManager("global", cfg.RateLimitWindow, cfg.RateLimitMax, redisClient),
		Auth:   managers.NewRateLimitManager("auth", cfg.AuthRateLimitWindow, cfg.AuthRateLimitMax, redisClient),
	}

	r := routing.InitRouter(cfg, databaseMgr, mailMgr, jwtMgr, limiters)
	log.Info("Initialized router")

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Error starting server: ", err)
		}
	}()

	<-ctx.Done()
	log.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during shutdown: ", err)
	}
	log.Info("Server stopped")
}

func initializeDatabase(ctx context.Context, url string) *pgxpool.Pool {
	log.Info("Initializing database")

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Fatal("error configuring database: ", err)
	}

	config.MinConns = 5
	config.MaxConns = 30
	config.MaxConnIdleTime = time.Minute * 2
	config.HealthCheckPeriod = time.Minute * 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		log.Fatal("error connecting to database: ", err)
	}
	if err = pool.Ping(ctx); err != nil {
		log.Fatal("database not reachable: ", err)
	}
	log.Info("Connected to database")
	return pool
}

// initializeRedis returns nil without a URL or if Redis cannot be reached, the limiters then stay in-process.
func initializeRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		return nil
	}

	client, err := managers.NewRedisClient(ctx, url)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory rate limiting: ", err)
		return nil
	}
	log.Info("Connected to redis")
	return client
}

func setLogLevel(logLevel string) {
	switch logLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	case "FATAL":
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	log.SetReportCaller(true)

	log.SetOutput(os.Stdout)
}
