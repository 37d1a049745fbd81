package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ambulance-backend/internal/config"
	"ambulance-backend/internal/handlers"
	"ambulance-backend/internal/logger"
	"ambulance-backend/internal/middleware"
	"ambulance-backend/internal/models"
	"ambulance-backend/internal/payment"
	"ambulance-backend/internal/routes"
	"ambulance-backend/internal/seed"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "api",
		Short: "Ambulance dispatch API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo hospitals, ambulances, drivers and a demo user",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			if err := models.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			_, err = seed.Run(cmd.Context(), db, log)
			return err
		},
	}
}

// bootstrap loads configuration and opens the logger and database shared by
// every subcommand.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func runServer() error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, utils.NewRevocationStore())

	var payments payment.Gateway
	if cfg.MidtransServerKey != "" {
		payments = payment.NewMidtransGateway(cfg.MidtransServerKey, cfg.MidtransProd)
	} else {
		log.Warn("MIDTRANS_SERVER_KEY not set, card requests will not be charged")
	}

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	defer limiter.Stop()

	router := routes.NewRouter(routes.Options{
		Handler:     handlers.New(db, tokens, payments, log),
		Log:         log,
		Limiter:     limiter,
		Registry:    prometheus.NewRegistry(),
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
