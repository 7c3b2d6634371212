package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rkbisoi/demo-loan-app-api/internal/backup"
	"github.com/rkbisoi/demo-loan-app-api/internal/config"
	"github.com/rkbisoi/demo-loan-app-api/internal/handler"
	"github.com/rkbisoi/demo-loan-app-api/internal/integrations/rates"
	"github.com/rkbisoi/demo-loan-app-api/internal/middleware"
	"github.com/rkbisoi/demo-loan-app-api/internal/notify"
	"github.com/rkbisoi/demo-loan-app-api/internal/repository"
	"github.com/rkbisoi/demo-loan-app-api/internal/service"
	"github.com/rkbisoi/demo-loan-app-api/internal/validation"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the record store
	store, cleanup, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}
	defer cleanup()

	// Initialize layers
	validator, err := validation.New(validation.Options{
		RejectNonPositiveIncome: cfg.RejectNonPositiveIncome,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize validator: %v", err)
	}

	var notifier service.Notifier
	if cfg.SMTPHost != "" && cfg.NotifyEmail != "" {
		notifier = notify.NewSender(cfg, logger)
	}

	svc := service.NewService(store, validator, logger, notifier)
	h := handler.NewHandler(svc, logger)
	ratesClient := rates.NewClient(cfg, logger)

	// Scheduled snapshot backups
	if cfg.BackupSchedule != "" {
		scheduler := backup.NewScheduler(store, cfg.BackupDir, logger)
		if err := scheduler.Start(cfg.BackupSchedule); err != nil {
			logger.Fatalf("Failed to start backup scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/create/applications", h.CreateApplication).Methods("POST")
	r.HandleFunc("/applicationList", h.ApplicationList).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
	r.HandleFunc("/key-rate", func(w http.ResponseWriter, r *http.Request) {
		rate, err := ratesClient.GetBaseRate()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get key rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"key_rate": rate})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Middleware chain around the router so CORS preflights are answered
	// even for unmatched methods
	var root http.Handler = r
	root = middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)(root)
	root = middleware.Logging(logger)(root)
	root = middleware.CORS()(root)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s (storage driver: %s)", addr, cfg.StorageDriver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

// newStore builds the record store selected by STORAGE_DRIVER. The returned
// cleanup closes any underlying connection.
func newStore(cfg *config.Config, logger *logrus.Logger) (repository.Store, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return repository.NewRedisStore(client, logger), func() { client.Close() }, nil

	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := repository.EnsureSchema(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.NewPostgresStore(db, logger), func() { db.Close() }, nil

	default:
		return repository.NewFileStore(cfg.StorageFile, logger), func() {}, nil
	}
}
