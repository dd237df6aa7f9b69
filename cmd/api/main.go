package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"crypto-news/internal/common/pagination"
	"crypto-news/internal/config"
	hhttp "crypto-news/internal/handler/http"
	hnews "crypto-news/internal/handler/http/news"
	"crypto-news/internal/handler/http/requestid"
	pgRepo "crypto-news/internal/infra/adapter/persistence/postgres"
	"crypto-news/internal/infra/classifier"
	"crypto-news/internal/infra/db"
	"crypto-news/internal/infra/notifier"
	"crypto-news/internal/observability/logging"
	"crypto-news/internal/usecase/ingest"
	newsUC "crypto-news/internal/usecase/news"
	"crypto-news/internal/usecase/notify"
	"crypto-news/internal/usecase/retention"
	pkgconfig "crypto-news/pkg/config"
)

// @title           Crypto News API
// @version         1.0
// @description     Crypto news ingestion and sentiment analysis service.
// @description     Receives news items from crawlers, classifies them with an
// @description     LLM and serves paginated, searchable results plus an
// @description     aggregated market sentiment signal.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

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

	version := getVersion()
	handler, notifySvc := setupServer(logger, database, cfg, version)

	runServer(logger, handler, version)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := notifySvc.Shutdown(shutdownCtx); err != nil {
		logger.Warn("notification service shutdown incomplete", slog.Any("error", err))
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// newClassifier selects the classifier implementation from configuration.
// With AI analysis disabled every item gets the deterministic fallback
// annotation instead of an LLM call.
func newClassifier(logger *slog.Logger, cfg *config.AppConfig) classifier.Classifier {
	if !cfg.AIEnabled {
		logger.Info("AI analysis disabled, using fallback annotation")
		return classifier.NewNoOp()
	}

	if cfg.Classifier.APIKey == "" {
		logger.Warn("CLASSIFIER_API_KEY is empty, falling back to deterministic annotation")
		return classifier.NewNoOp()
	}

	switch cfg.Classifier.Provider {
	case "anthropic", "claude":
		logger.Info("using Anthropic classifier", slog.String("model", cfg.Classifier.Model))
		return classifier.NewClaude(cfg.Classifier)
	default:
		logger.Info("using OpenAI-compatible classifier",
			slog.String("base_url", cfg.Classifier.APIBase),
			slog.String("model", cfg.Classifier.Model))
		return classifier.NewOpenAI(cfg.Classifier)
	}
}

// loadDiscordConfig reads the Discord webhook configuration. A malformed or
// non-Discord URL disables the channel instead of failing startup.
func loadDiscordConfig(logger *slog.Logger) notifier.DiscordConfig {
	if !config.ParseEnabledFlag("DISCORD_ENABLED", false) {
		return notifier.DiscordConfig{Enabled: false}
	}

	webhookURL := os.Getenv("DISCORD_WEBHOOK_URL")
	u, err := url.Parse(webhookURL)
	if err != nil || u.Scheme != "https" || u.Host != "discord.com" ||
		!strings.HasPrefix(u.Path, "/api/webhooks/") {
		logger.Warn("invalid Discord webhook URL, disabling notifications")
		return notifier.DiscordConfig{Enabled: false}
	}

	return notifier.DiscordConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// loadSlackConfig reads the Slack webhook configuration with the same
// disable-on-error behavior as loadDiscordConfig.
func loadSlackConfig(logger *slog.Logger) notifier.SlackConfig {
	if !config.ParseEnabledFlag("SLACK_ENABLED", false) {
		return notifier.SlackConfig{Enabled: false}
	}

	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")
	u, err := url.Parse(webhookURL)
	if err != nil || u.Scheme != "https" || u.Host != "hooks.slack.com" ||
		!strings.HasPrefix(u.Path, "/services/") {
		logger.Warn("invalid Slack webhook URL, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	return notifier.SlackConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// newNotifyService builds the major-news notification service from the
// configured webhook channels.
func newNotifyService(logger *slog.Logger) notify.Service {
	channels := []notify.Channel{
		notify.NewDiscordChannel(loadDiscordConfig(logger)),
		notify.NewSlackChannel(loadSlackConfig(logger)),
	}

	enabled := 0
	for _, ch := range channels {
		if ch.IsEnabled() {
			enabled++
		}
	}
	logger.Info("notification service initialized", slog.Int("enabled_channels", enabled))

	maxConcurrent := pkgconfig.GetEnvInt("NOTIFY_MAX_CONCURRENT", 10)
	return notify.NewService(channels, maxConcurrent)
}

// setupServer wires repositories, services and handlers into the HTTP handler
// tree and applies the middleware chain.
func setupServer(logger *slog.Logger, database *sql.DB, cfg *config.AppConfig, version string) (http.Handler, notify.Service) {
	repo := pgRepo.NewNewsRepo(database)

	notifySvc := newNotifyService(logger)
	cleaner := &retention.Service{Repo: repo, Window: cfg.RetentionWindow()}
	ingestSvc := &ingest.Service{
		Repo:          repo,
		Classifier:    newClassifier(logger, cfg),
		Cleaner:       cleaner,
		Notifier:      notifySvc,
		ThresholdLow:  cfg.ThresholdLow,
		ThresholdHigh: cfg.ThresholdHigh,
	}
	querySvc := &newsUC.Service{Repo: repo}

	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()
	hnews.Register(mux, ingestSvc, querySvc, paginationCfg, cfg.RetentionWindow())

	mux.Handle("/", hhttp.RootHandler{Name: "Crypto News API", Version: version})
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	return applyMiddleware(logger, mux), notifySvc
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS, request ID, recovery, logging, body limit,
// metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	chain := handler

	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = requestid.Middleware(chain)
	chain = hhttp.CORS()(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
