package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/finhealth-service/internal/config"
	"github.com/Dan9191/finhealth-service/internal/engine"
	"github.com/Dan9191/finhealth-service/internal/handler"
	"github.com/Dan9191/finhealth-service/internal/integrations/cbr"
	"github.com/Dan9191/finhealth-service/internal/logging"
	"github.com/Dan9191/finhealth-service/internal/middleware"
	"github.com/Dan9191/finhealth-service/internal/policy"
	"github.com/Dan9191/finhealth-service/internal/repository"
	"github.com/Dan9191/finhealth-service/internal/service"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logging.New("info").Fatalf("Failed to load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	// Build the engine from the configured policy
	p, err := loadPolicy(cfg, logger)
	if err != nil {
		var cerr *policy.ConfigurationError
		if errors.As(err, &cerr) {
			logger.WithField("field", cerr.Field).Fatalf("Invalid policy: %s", cerr.Reason)
		}
		logger.Fatalf("Failed to load policy: %v", err)
	}
	eng, err := engine.New(p)
	if err != nil {
		logger.Fatalf("Failed to initialize engine: %v", err)
	}

	// Initialize layers
	rates := cbr.NewRateCache(cbr.NewClient(cfg, logger), logger)
	if err := rates.Start(cfg.RateSchedule); err != nil {
		logger.Fatalf("Failed to schedule key rate refresh: %v", err)
	}
	defer rates.Stop()
	svc := service.NewService(eng, rates, logger)
	h := handler.NewHandler(svc, rates, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger), middleware.Recoverer(logger))
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg, logger))
	h.Register(r, api)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}

func loadPolicy(cfg *config.Config, logger *logrus.Logger) (policy.Policy, error) {
	switch cfg.PolicySource {
	case config.PolicySourceFile:
		logger.Infof("Loading policy from %s", cfg.PolicyFile)
		return policy.LoadFile(cfg.PolicyFile)
	case config.PolicySourcePostgres:
		logger.Infof("Loading policy %q from database", cfg.PolicyName)
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			return policy.Policy{}, fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		doc, err := repository.NewPolicyStore(db).ActivePolicy(ctx, cfg.PolicyName)
		if err != nil {
			return policy.Policy{}, err
		}
		return policy.Parse(doc)
	default:
		logger.Info("Using built-in policy")
		return policy.Default(), nil
	}
}
