// Command sweeper periodically removes news items that have aged out of the
// retention window. It runs on a cron schedule next to the API server so that
// expired items disappear even when no ingestion traffic triggers cleanup.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"crypto-news/internal/config"
	hhttp "crypto-news/internal/handler/http"
	"crypto-news/internal/handler/http/respond"
	pgRepo "crypto-news/internal/infra/adapter/persistence/postgres"
	"crypto-news/internal/infra/db"
	"crypto-news/internal/observability/logging"
	"crypto-news/internal/repository"
	"crypto-news/internal/usecase/retention"
	pkgconfig "crypto-news/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg := config.Load()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	repo := pgRepo.NewNewsRepo(database)
	svc := &retention.Service{Repo: repo, Window: cfg.RetentionWindow()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	schedule := pkgconfig.GetEnvString("SWEEP_SCHEDULE", "0 * * * *")
	timeout := pkgconfig.GetEnvDuration("SWEEP_TIMEOUT", 5*time.Minute)

	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(schedule, func() {
		runSweep(logger, svc, repo, timeout)
	}); err != nil {
		logger.Error("failed to add cron job",
			slog.String("schedule", schedule), slog.Any("error", err))
		os.Exit(1)
	}

	maybeSweepOnStart(logger, svc, repo, timeout)

	c.Start()
	logger.Info("sweeper started",
		slog.String("schedule", schedule),
		slog.Duration("retention_window", cfg.RetentionWindow()))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runMetricsServer(gCtx, logger)
	})
	g.Go(func() error {
		<-gCtx.Done()
		cronCtx := c.Stop()
		<-cronCtx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("sweeper failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("sweeper stopped")
}

// initDatabase opens the database connection and waits until the schema is in
// place. Migrations are owned by the API server, so the sweeper only probes.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.WaitForSchema(database, 10, 3*time.Second); err != nil {
		logger.Error("migrations did not complete in time", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// maybeSweepOnStart runs one immediate sweep when SWEEP_RUN_ON_START is set,
// so a fresh deployment does not wait for the first cron tick. Reports
// whether a sweep ran.
func maybeSweepOnStart(logger *slog.Logger, svc *retention.Service, repo repository.NewsRepository, timeout time.Duration) bool {
	if !config.ParseEnabledFlag("SWEEP_RUN_ON_START", false) {
		return false
	}
	runSweep(logger, svc, repo, timeout)
	return true
}

// runSweep executes one cleanup pass with a timeout and refreshes the stored
// item gauge afterwards.
func runSweep(logger *slog.Logger, svc *retention.Service, repo repository.NewsRepository, timeout time.Duration) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	deleted, err := svc.Cleanup(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("sweep failed", slog.String("error", respond.SanitizeError(err)))
		return
	}
	hhttp.RecordCleanupDeleted(deleted)

	total, err := repo.Count(ctx)
	if err != nil {
		logger.Warn("failed to count remaining news", slog.String("error", respond.SanitizeError(err)))
	} else {
		hhttp.UpdateNewsTotal(total)
	}

	logger.Info("sweep completed",
		slog.Int64("deleted", deleted),
		slog.Int64("remaining", total),
		slog.Duration("duration", time.Since(start)))
}

// runMetricsServer exposes Prometheus metrics and a liveness endpoint until
// ctx is canceled.
func runMetricsServer(ctx context.Context, logger *slog.Logger) error {
	port := pkgconfig.GetEnvString("METRICS_PORT", "9091")

	mux := http.NewServeMux()
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/live", &hhttp.LiveHandler{})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server starting", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", slog.Any("error", err))
	}
	return nil
}
