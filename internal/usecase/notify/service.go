package notify

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"crypto-news/internal/domain/entity"
	"crypto-news/internal/handler/http/requestid"
	"crypto-news/internal/resilience/circuitbreaker"
)

const (
	workerPoolTimeout   = 5 * time.Second  // timeout for acquiring a worker slot
	notificationTimeout = 30 * time.Second // timeout for one notification
)

// Service dispatches major-news notifications to all enabled channels.
// Dispatch is non-blocking: NotifyMajorNews returns immediately and failures
// are logged, never propagated to the ingestion path.
type Service interface {
	// NotifyMajorNews fans a notification out to every enabled channel in
	// background goroutines. It always returns nil; errors are handled
	// internally.
	NotifyMajorNews(ctx context.Context, item *entity.NewsItem) error

	// ChannelHealth returns the circuit breaker state of every channel for
	// health endpoints and monitoring.
	ChannelHealth() []ChannelHealthStatus

	// Shutdown waits for in-flight notifications to finish or for ctx to
	// expire.
	Shutdown(ctx context.Context) error
}

// ChannelHealthStatus describes one channel for health reporting.
type ChannelHealthStatus struct {
	Name               string
	Enabled            bool
	CircuitBreakerOpen bool
}

type service struct {
	channels   []Channel
	breakers   map[string]*circuitbreaker.CircuitBreaker
	workerPool chan struct{}
	wg         sync.WaitGroup

	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewService creates a notification service fanning out to the given
// channels with at most maxConcurrent sends in flight.
func NewService(channels []Channel, maxConcurrent int) Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	svc := &service{
		channels:       channels,
		breakers:       make(map[string]*circuitbreaker.CircuitBreaker, len(channels)),
		workerPool:     make(chan struct{}, maxConcurrent),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}
	for _, ch := range channels {
		svc.breakers[ch.Name()] = circuitbreaker.New(circuitbreaker.WebhookConfig(ch.Name()))
	}
	return svc
}

func (s *service) NotifyMajorNews(ctx context.Context, item *entity.NewsItem) error {
	if item == nil || item.Title == "" || item.SourceURL == "" {
		slog.Warn("skipping notification for invalid news item")
		return nil
	}

	// Inherit the HTTP request ID when present so channel logs correlate
	// with the ingestion request.
	requestID := requestid.FromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	enabled := 0
	for _, ch := range s.channels {
		if ch.IsEnabled() {
			enabled++
		}
	}
	setChannelsEnabled(enabled)
	if enabled == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Dispatching major news notification",
		slog.String("request_id", requestID),
		slog.Int64("news_id", item.ID),
		slog.Int("enabled_channels", enabled))

	for _, ch := range s.channels {
		if !ch.IsEnabled() {
			continue
		}
		s.wg.Add(1)
		go s.sendToChannel(requestID, ch, item)
	}
	return nil
}

// sendToChannel delivers one notification through a single channel.
func (s *service) sendToChannel(requestID string, channel Channel, item *entity.NewsItem) {
	defer s.wg.Done()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in notification channel",
				slog.String("request_id", requestID),
				slog.String("channel", channel.Name()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	select {
	case s.workerPool <- struct{}{}:
		defer func() { <-s.workerPool }()
	case <-time.After(workerPoolTimeout):
		slog.Warn("notification dropped: worker pool full",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()))
		recordDropped(channel.Name(), "pool_full")
		return
	}

	ctx, cancel := context.WithTimeout(s.shutdownCtx, notificationTimeout)
	defer cancel()
	ctx = requestid.WithRequestID(ctx, requestID)

	start := time.Now()
	recordDispatch(channel.Name())

	_, err := s.breakers[channel.Name()].Execute(func() (interface{}, error) {
		return nil, channel.Send(ctx, item)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		slog.Warn("notification dropped: circuit open",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()),
			slog.Int64("news_id", item.ID))
		recordDropped(channel.Name(), "circuit_open")
		return
	}
	recordSent(channel.Name(), err, start)

	if err != nil {
		slog.Error("notification failed",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()),
			slog.Int64("news_id", item.ID),
			slog.Any("error", err))
		return
	}
}

func (s *service) ChannelHealth() []ChannelHealthStatus {
	statuses := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		statuses = append(statuses, ChannelHealthStatus{
			Name:               ch.Name(),
			Enabled:            ch.IsEnabled(),
			CircuitBreakerOpen: s.breakers[ch.Name()].IsOpen(),
		})
	}
	return statuses
}

func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.shutdownCancel()
		return ctx.Err()
	}

	s.shutdownCancel()
	return nil
}
