package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vitorhrds/schedly/internal/cache"
	"github.com/vitorhrds/schedly/internal/handlers"
	"github.com/vitorhrds/schedly/internal/outbox"
	"github.com/vitorhrds/schedly/internal/storage"
	"github.com/vitorhrds/schedly/libs/config"
	"github.com/vitorhrds/schedly/libs/db"
	"github.com/vitorhrds/schedly/libs/httpx"
	"github.com/vitorhrds/schedly/libs/kafkax"
	otelx "github.com/vitorhrds/schedly/libs/otel"
	"github.com/vitorhrds/schedly/libs/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func parseList(raw string) []string {
	items := strings.Split(raw, ",")
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func main() {
	service := config.String("SERVICE_NAME", "schedly")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	tokenSecret, err := config.RequiredString("TOKEN_SECRET")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	var rdb *redis.Client
	if addr := strings.TrimSpace(config.String("REDIS_ADDR", "")); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()
	}

	hosts := storage.NewHostRepository(pool)
	intervals := storage.NewIntervalRepository(pool)
	bookings := storage.NewBookingRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	blockedCache := cache.NewBlockedDatesCache(rdb, config.Duration("BLOCKED_DATES_CACHE_TTL", time.Minute))

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	hostHandler := handlers.NewHostHandler(hosts, intervals, blockedCache, logger,
		tokenSecret, config.Duration("TOKEN_TTL", 7*24*time.Hour))
	bookingHandler := handlers.NewBookingHandler(hosts, intervals, bookings, outboxRepo, blockedCache, logger)

	readyChecks := []runtime.ReadyCheck{
		{Name: "db", Check: db.ReadyCheck(pool)},
	}
	if brokers := config.String("KAFKA_BROKERS", ""); strings.TrimSpace(brokers) != "" {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}
	if rdb != nil {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	mux := runtime.NewBaseMuxWithReady(readyChecks...)
	mux.HandleFunc("/api/v1/users", hostHandler.Create)
	mux.HandleFunc("/api/v1/users/time-intervals", hostHandler.UpdateTimeIntervals)
	mux.HandleFunc("/api/v1/users/{username}/availability", bookingHandler.Availability)
	mux.HandleFunc("/api/v1/users/{username}/blocked-dates", bookingHandler.BlockedDates)
	mux.HandleFunc("/api/v1/users/{username}/schedule", bookingHandler.Schedule)

	middlewares := []httpx.Middleware{
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: parseList(config.String("CORS_ALLOWED_ORIGINS", "")),
			AllowedMethods: parseList(config.String("CORS_ALLOWED_METHODS", "GET,POST,PUT,OPTIONS")),
			AllowedHeaders: parseList(config.String("CORS_ALLOWED_HEADERS", "Authorization,Content-Type,X-Request-Id")),
			MaxAge:         10 * time.Minute,
		}),
		httpx.WithBodyLimit(int64(config.Int("MAX_BODY_BYTES", 1<<20))),
	}
	rlLimit := config.Int("RATE_LIMIT_PER_MINUTE", 120)
	if rdb != nil {
		middlewares = append(middlewares,
			httpx.NewRedisRateLimiter(rdb, rlLimit, time.Minute, service).Middleware(logger, true))
	} else {
		middlewares = append(middlewares,
			httpx.NewRateLimiter(rlLimit, time.Minute).Middleware())
	}

	httpHandler := httpx.Chain(mux, middlewares...)
	httpHandler = otelhttp.NewHandler(httpHandler, service)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
