// Package analytics delivers product events to Mixpanel. Delivery is
// buffered and fire-and-forget: a full buffer or a failed flush drops events
// and never affects the caller.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"freight_leads_backend/platform/config"
	"freight_leads_backend/platform/logger"
)

const (
	queueSize    = 256
	sendTimeout  = 5 * time.Second
	trackPath    = "/track"
	distinctAnon = "server"
)

type trackEvent struct {
	Event      string                 `json:"event"`
	Properties map[string]interface{} `json:"properties"`
}

// Tracker is an injected Mixpanel client with an explicit lifecycle: Init
// starts the delivery worker, Shutdown drains the buffer.
type Tracker struct {
	cfg    config.AnalyticsConfig
	log    *logger.Logger
	client *http.Client

	queue chan trackEvent
	wg    sync.WaitGroup
	once  sync.Once
}

// NewTracker creates a tracker. Call Init before tracking.
func NewTracker(cfg config.AnalyticsConfig, log *logger.Logger) *Tracker {
	return &Tracker{
		cfg:    cfg,
		log:    log,
		client: &http.Client{Timeout: sendTimeout},
		queue:  make(chan trackEvent, queueSize),
	}
}

// Init starts the background delivery worker. No-op when analytics is
// disabled by configuration.
func (t *Tracker) Init() {
	if !t.cfg.IsAnalyticsEnabled() {
		return
	}
	t.wg.Add(1)
	go t.worker()
}

// Track enqueues an event without blocking. Events are dropped when analytics
// is disabled or the buffer is full.
func (t *Tracker) Track(event string, properties map[string]interface{}) {
	if !t.cfg.IsAnalyticsEnabled() {
		return
	}

	if properties == nil {
		properties = make(map[string]interface{})
	}
	properties["token"] = t.cfg.GetMixpanelToken()
	properties["time"] = time.Now().Unix()
	if _, ok := properties["distinct_id"]; !ok {
		properties["distinct_id"] = distinctAnon
	}

	select {
	case t.queue <- trackEvent{Event: event, Properties: properties}:
	default:
		t.log.Warn("analytics buffer full, event dropped", "event", event)
	}
}

// Shutdown stops accepting events and waits for the buffer to drain or the
// context to expire.
func (t *Tracker) Shutdown(ctx context.Context) error {
	t.once.Do(func() { close(t.queue) })

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Tracker) worker() {
	defer t.wg.Done()
	for event := range t.queue {
		if err := t.send(event); err != nil {
			t.log.Warn("analytics delivery failed", "event", event.Event, "error", err)
		}
	}
}

func (t *Tracker) send(event trackEvent) error {
	payload, err := json.Marshal([]trackEvent{event})
	if err != nil {
		return fmt.Errorf("marshal track event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.GetMixpanelAPIURL()+trackPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build track request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send track request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("track request rejected: %s", resp.Status)
	}
	return nil
}
