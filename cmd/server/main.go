package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/babysleepoptimizer/internal/config"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/database"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/handlers"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/logging"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/middleware"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/services"
	"github.com/HammerMeetNail/babysleepoptimizer/internal/services/plan"
	"github.com/HammerMeetNail/babysleepoptimizer/migrations"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logging.ParseLevel(cfg.Server.LogLevel)
	logging.SetDefaultLevel(level)
	logger := logging.New().SetLevel(level)

	logger.Info("Starting Baby Sleep Optimizer server...", map[string]interface{}{
		"env": cfg.Server.Environment,
	})

	var (
		dbChecker    handlers.HealthChecker
		redisChecker handlers.HealthChecker
		generations  plan.GenerationLog
		redisClient  *redis.Client
	)

	if cfg.Database.Enabled {
		logger.Info("Connecting to PostgreSQL", map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
		})
		db, err := database.NewPostgresDB(cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer db.Close()

		logger.Info("Running database migrations...")
		migrator, err := database.NewMigrator(cfg.Database.DSN(), migrations.FS, ".")
		if err != nil {
			return fmt.Errorf("creating migrator: %w", err)
		}
		if err := migrator.Up(); err != nil {
			_ = migrator.Close()
			return fmt.Errorf("running migrations: %w", err)
		}
		_ = migrator.Close()
		logger.Info("Migrations completed")

		dbChecker = db
		generations = plan.NewPostgresGenerationLog(db.Pool)
	} else {
		logger.Info("PostgreSQL disabled; plan generations will not be recorded")
	}

	if cfg.Redis.Enabled {
		logger.Info("Connecting to Redis", map[string]interface{}{
			"addr": cfg.Redis.Addr(),
		})
		redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisDB.Close() }()

		redisChecker = redisDB
		redisClient = redisDB.Client
	} else {
		logger.Info("Redis disabled; rate limiting is off")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var generator plan.TextGenerator
	if cfg.AI.Configured() {
		generator = plan.NewOpenAIGenerator(cfg.AI)
		logger.Info("AI text generation configured", map[string]interface{}{
			"model":   cfg.AI.Model,
			"timeout": cfg.AI.Timeout.String(),
		})
	}
	planService := plan.NewService(generator, cfg.AI.Model, generations, plan.NewMetrics(registry))
	emailService := services.NewEmailService(&cfg.Email)

	logger.Info("Payment providers", map[string]interface{}{
		"paystack": cfg.Payments.PaystackSecretSet,
		"paypal":   cfg.Payments.PayPalClientID != "",
	})

	var planLimiter, emailLimiter *middleware.RateLimiter
	if redisClient != nil {
		planLimiter = middleware.NewPlanRateLimiter(redisClient, cfg.Server.AIRateLimit, cfg.Server.TrustedProxy)
		emailLimiter = middleware.NewEmailRateLimiter(redisClient, cfg.Server.TrustedProxy)
	}

	handler := newRouter(cfg, logger, routes{
		health:       handlers.NewHealthHandler(dbChecker, redisChecker, planService, cfg.Payments),
		plans:        handlers.NewPlanHandler(planService),
		email:        handlers.NewEmailHandler(emailService),
		payments:     handlers.NewPaymentConfigHandler(cfg.Payments),
		metrics:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		planLimiter:  planLimiter,
		emailLimiter: emailLimiter,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Plan generation waits on the upstream for up to AI_TIMEOUT; leave room
		// to write the fallback plan afterwards.
		WriteTimeout: cfg.AI.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}

type routes struct {
	health       *handlers.HealthHandler
	plans        *handlers.PlanHandler
	email        *handlers.EmailHandler
	payments     *handlers.PaymentConfigHandler
	metrics      http.Handler
	planLimiter  *middleware.RateLimiter
	emailLimiter *middleware.RateLimiter
}

func newRouter(cfg *config.Config, logger *logging.Logger, r routes) http.Handler {
	mux := http.NewServeMux()

	// Health endpoints (no rate limit)
	mux.HandleFunc("GET /health", r.health.Health)
	mux.HandleFunc("GET /ready", r.health.Ready)
	mux.HandleFunc("GET /live", r.health.Live)
	mux.Handle("GET /metrics", r.metrics)

	// Public checkout configuration
	mux.HandleFunc("GET /api/config/paystack", r.payments.Paystack)
	mux.HandleFunc("GET /api/config/paypal", r.payments.PayPal)

	// Plan endpoints
	mux.Handle("POST /api/generate-plan", limited(r.planLimiter, http.HandlerFunc(r.plans.Generate)))
	mux.Handle("POST /api/send-email", limited(r.emailLimiter, http.HandlerFunc(r.email.Send)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = middleware.NewCompress("/metrics").Apply(handler)
	handler = middleware.NewCORS(cfg.Server.AllowedOrigins).Apply(handler)
	handler = middleware.NewSecurityHeaders(cfg.Server.Secure).Apply(handler)
	handler = middleware.NewRequestLogger(logger).Apply(handler)
	return handler
}

func limited(limiter *middleware.RateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return limiter.Middleware(next)
}
