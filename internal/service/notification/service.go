package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wellura/staff-scheduling-go/internal/domain/notification"
)

// Config holds notification dispatcher configuration
type Config struct {
	WebhookURL  string
	WorkerCount int           // default: 2
	QueueSize   int           // default: 1000
	SendTimeout time.Duration // default: 10 seconds
}

type service struct {
	config Config
	client *http.Client

	queue chan notification.Event
	wg    sync.WaitGroup
	once  sync.Once
}

// NewService creates a notification dispatcher with background workers that
// POST events to the platform notification service. Delivery is best-effort:
// failures are logged and dropped, never propagated to callers.
func NewService(cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}
	if cfg.SendTimeout == 0 {
		cfg.SendTimeout = 10 * time.Second
	}

	s := &service{
		config: cfg,
		client: &http.Client{Timeout: cfg.SendTimeout},
		queue:  make(chan notification.Event, cfg.QueueSize),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	slog.Info("notification dispatcher started",
		"workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

func (s *service) Publish(ctx context.Context, event notification.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	select {
	case s.queue <- event:
	default:
		slog.Warn("notification queue full, dropping event",
			"type", event.Type, "staff_id", event.StaffID)
	}
}

func (s *service) Close() {
	s.once.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

func (s *service) worker() {
	defer s.wg.Done()

	for event := range s.queue {
		s.send(event)
	}
}

func (s *service) send(event notification.Event) {
	if s.config.WebhookURL == "" {
		slog.Debug("notification webhook not configured, dropping event", "type", event.Type)
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to encode notification event", "type", event.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.SendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(body))
	if err != nil {
		slog.Error("failed to build notification request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Warn("notification delivery failed", "type", event.Type, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		slog.Warn("notification delivery rejected",
			"type", event.Type, "status", resp.StatusCode)
	}
}

// Noop returns a dispatcher that discards every event. Used in tests and when
// no notification sink is configured.
func Noop() notification.Service {
	return noopService{}
}

type noopService struct{}

func (noopService) Publish(ctx context.Context, event notification.Event) {}
func (noopService) Close()                                                {}
