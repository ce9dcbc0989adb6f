package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yusufkecer/eatsmart-backend/internal/config"
	"github.com/yusufkecer/eatsmart-backend/internal/db"
	"github.com/yusufkecer/eatsmart-backend/internal/handler"
	"github.com/yusufkecer/eatsmart-backend/internal/logging"
	"github.com/yusufkecer/eatsmart-backend/internal/middleware"
	"github.com/yusufkecer/eatsmart-backend/internal/repository"
	"github.com/yusufkecer/eatsmart-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	database, err := db.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer database.Close()

	if err := db.RunMigrations(database, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	accountRepo := repository.NewAccountRepository(database)
	userRepo := repository.NewUserRepository(database)
	metricRepo := repository.NewMetricRepository(database)
	resetTokenRepo := repository.NewResetTokenRepository(database)
	mealRepo := repository.NewMealRepository(database)
	goalRepo := repository.NewGoalRepository(database)

	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		logger.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}

	emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.MailFrom)
	if !emailService.Enabled() {
		logger.Warn("RESEND_API_KEY not set, password reset emails will fail")
	}
	metricService := service.NewMetricService(metricRepo, mealRepo, goalRepo, logger)

	authHandler := handler.NewAuthHandler(cfg.JWTSecret, accountRepo, userRepo, resetTokenRepo, emailService, logger)

	router := handler.NewRouter(
		handler.RouterConfig{
			JWTSecret:      cfg.JWTSecret,
			APIKey:         cfg.APIKey,
			AllowedOrigins: cfg.AllowedOrigins,
			HSTS:           !cfg.IsDevelopment(),
			TrustedProxies: proxies,
		},
		handler.Handlers{
			Auth:   authHandler,
			User:   handler.NewUserHandler(userRepo, logger),
			Metric: handler.NewMetricHandler(userRepo, metricService, logger),
			BMI:    handler.NewBMIHandler(),
			Meal:   handler.NewMealHandler(userRepo, mealRepo, logger),
			Goal:   handler.NewGoalHandler(userRepo, goalRepo, logger),
		},
		logger,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := authHandler.Wait(shutdownCtx); err != nil {
		logger.Error("background work did not finish", zap.Error(err))
	}
}
