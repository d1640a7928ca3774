package scheduler

import (
	"context"
	"fmt"
	"time"

	"freight_leads_backend/internal/email"
	leadsrepo "freight_leads_backend/internal/leads/repository"
	"freight_leads_backend/platform/config"
	"freight_leads_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// LeadCounter provides the per-type lead counts for the digest window.
type LeadCounter interface {
	CountSince(ctx context.Context, since time.Time) (leadsrepo.TypeCounts, error)
}

// InquiryCounter provides the inquiry count for the digest window.
type InquiryCounter interface {
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// Worker consumes digest tasks and emails the summary.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	leads     LeadCounter
	inquiries InquiryCounter
	sender    email.Sender
	log       *logger.Logger
	now       func() time.Time
}

// NewWorker builds the asynq server and registers the periodic digest entry.
func NewWorker(cfg config.SchedulerConfig, leads LeadCounter, inquiries InquiryCounter, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	periodic := asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: time.UTC})
	task, err := NewDailyDigestTask(DailyDigestPayload{})
	if err != nil {
		return nil, err
	}
	cronSpec := fmt.Sprintf("0 %d * * *", cfg.GetDigestHourUTC())
	if _, err := periodic.Register(cronSpec, task, asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("register digest entry: %w", err)
	}

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		scheduler: periodic,
		mux:       mux,
		leads:     leads,
		inquiries: inquiries,
		sender:    sender,
		log:       log,
		now:       time.Now,
	}

	mux.HandleFunc(TaskDailyDigest, w.handleDailyDigest)

	return w, nil
}

// Run serves tasks and the periodic entries until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.scheduler.Shutdown()
		w.server.Shutdown()
	}()

	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.log.Error("periodic scheduler stopped", "error", err)
		}
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleDailyDigest(ctx context.Context, task *asynq.Task) error {
	if _, err := ParseDailyDigestPayload(task); err != nil {
		return err
	}
	return w.runDigest(ctx)
}

// runDigest counts the submissions of the trailing 24 hours and emails the
// summary. Errors are returned so asynq applies its retry policy; this job is
// off the request path, so retries here do not conflict with the single-send
// contract of the intake workflow.
func (w *Worker) runDigest(ctx context.Context) error {
	now := w.now().UTC()
	since := now.Add(-24 * time.Hour)

	leadCounts, err := w.leads.CountSince(ctx, since)
	if err != nil {
		return fmt.Errorf("digest lead counts: %w", err)
	}

	inquiryCount, err := w.inquiries.CountSince(ctx, since)
	if err != nil {
		return fmt.Errorf("digest inquiry counts: %w", err)
	}

	data := email.DigestData{
		Date:         now.Format("01/02/2006"),
		LTLCount:     leadCounts.LTL,
		FTLCount:     leadCounts.FTL,
		InquiryCount: inquiryCount,
	}
	if err := w.sender.SendDailyDigest(ctx, data); err != nil {
		return fmt.Errorf("digest send: %w", err)
	}

	w.log.Info("daily digest sent",
		"ltl", leadCounts.LTL,
		"ftl", leadCounts.FTL,
		"inquiries", inquiryCount,
	)
	return nil
}
