package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"NiftyPulse/internal/notifier"
	"NiftyPulse/internal/refresh"
	"NiftyPulse/internal/snapshot"
)

// Scheduler owns the cron triggers that drive the refresh orchestrator. It
// may over-fire (e.g. a manual trigger inside a scheduled tick); the
// orchestrator's serialization and per-day dedup absorb that.
type Scheduler struct {
	Cron         *cron.Cron
	Orchestrator *refresh.Orchestrator
	Store        *snapshot.Store
	Ctx          context.Context
}

// NewScheduler creates a scheduler whose cron expressions are evaluated in
// the exchange's timezone.
func NewScheduler(ctx context.Context, orch *refresh.Orchestrator, store *snapshot.Store, loc *time.Location) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Orchestrator: orch,
		Store:        store,
		Ctx:          ctx,
	}
}

// RegisterAll registers the market-hours tick and the post-close summary
// trigger.
func (s *Scheduler) RegisterAll(marketCron, summaryCron string) error {
	if _, err := s.Cron.AddFunc(marketCron, s.refreshTask); err != nil {
		return fmt.Errorf("register market-hours task: %w", err)
	}
	if _, err := s.Cron.AddFunc(summaryCron, s.refreshTask); err != nil {
		return fmt.Errorf("register summary task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes one refresh immediately (startup and manual triggers).
func (s *Scheduler) RunNow() refresh.Status {
	status, err := s.Orchestrator.Refresh(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] refresh failed: %v", err)
	}
	return status
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] scheduled refresh tick")
	s.RunNow()
}

// HandleCommand processes a Telegram command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/status":
		return notifier.FormatStatus(s.Store.Read())
	case "/refresh":
		status, err := s.Orchestrator.Refresh(s.Ctx)
		switch status {
		case refresh.StatusUpdated:
			return notifier.FormatStatus(s.Store.Read())
		case refresh.StatusFellBackToCache:
			return "Fresh data unavailable, serving the last good analysis."
		default:
			return fmt.Sprintf("Refresh failed, no data available yet: %v", err)
		}
	default:
		return "Available commands:\n• /status - latest analysis\n• /refresh - fetch fresh data now"
	}
}
