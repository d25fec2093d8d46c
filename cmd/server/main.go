package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/csg33k/employee-registry/internal/adapters/employeeapi"
	sqliteadapter "github.com/csg33k/employee-registry/internal/adapters/sqlite"
	"github.com/csg33k/employee-registry/internal/api"
	"github.com/csg33k/employee-registry/internal/config"
	"github.com/csg33k/employee-registry/internal/employeeform"
	"github.com/csg33k/employee-registry/internal/handlers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	repo, err := sqliteadapter.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DBAutoMigrate {
		if err := repo.Migrate(); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
	}

	svc := employeeapi.New(cfg.APIURL(),
		employeeapi.WithTimeout(cfg.APITimeout),
		employeeapi.WithLogger(logger.With("component", "employeeapi")))
	sessions := employeeform.NewStore(cfg.EmailDomain)
	screens := handlers.New(svc, sessions, logger.With("component", "screens"))
	resource := api.New(repo, cfg.EmailDomain, logger.With("component", "api"))

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", resource.Routes()))
	mux.Handle("/", screens.Routes())

	go sweepSessions(ctx, sessions, cfg.SessionIdleTimeout, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	logger.Info("Employee Registry running", "url", "http://localhost:"+cfg.Port)
	logger.Info("configuration", "db", cfg.DBPath, "employees_api", cfg.APIURL(), "email_domain", cfg.EmailDomain)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.Level()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// sweepSessions closes abandoned form sessions until ctx is done.
func sweepSessions(ctx context.Context, store *employeeform.Store, maxIdle time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(maxIdle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(maxIdle); n > 0 {
				logger.Debug("swept idle form sessions", "closed", n, "open", store.Len())
			}
		}
	}
}
