package cronjob

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/visithercegovina/tours-backend/internal/admin/service"
)

// reconcileTimeout bounds a single pass; the pass reads whole collections.
const reconcileTimeout = 5 * time.Minute

// Reconciler is the convergence pass the scheduler drives.
type Reconciler interface {
	Reconcile(ctx context.Context) (*service.ReconcileReport, error)
}

// Scheduler runs the counter reconciliation pass on a cron schedule, so the
// denormalized tour and user counters converge even when nobody calls the
// on-demand admin endpoint.
type Scheduler struct {
	schedule string
	admin    Reconciler
	c        *cron.Cron
}

func NewScheduler(schedule string, admin Reconciler) *Scheduler {
	return &Scheduler{schedule: schedule, admin: admin}
}

// Start registers the reconciliation job and launches the cron loop.
func (s *Scheduler) Start() error {
	s.c = cron.New()
	if _, err := s.c.AddFunc(s.schedule, s.runOnce); err != nil {
		return fmt.Errorf("bad reconcile schedule %q: %w", s.schedule, err)
	}

	s.c.Start()
	log.Printf("[reconcile] scheduled (%s)", s.schedule)
	return nil
}

// Stop halts the cron loop. Safe to call after a failed Start.
func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	report, err := s.admin.Reconcile(ctx)
	if err != nil {
		log.Printf("[reconcile] pass failed: %v", err)
		return
	}

	log.Printf("[reconcile] done tours=%d users=%d", report.ToursRepaired, report.UsersRepaired)
}
