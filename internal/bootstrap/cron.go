package bootstrap

import (
	"log"

	"cloud.google.com/go/firestore"

	"github.com/visithercegovina/tours-backend/config"
	cronjob "github.com/visithercegovina/tours-backend/internal/admin/cron"
	adminservice "github.com/visithercegovina/tours-backend/internal/admin/service"
	reviewsrepo "github.com/visithercegovina/tours-backend/internal/reviews/repository"
	toursrepo "github.com/visithercegovina/tours-backend/internal/tours/repository"
	usersrepo "github.com/visithercegovina/tours-backend/internal/users/repository"
)

// StartReconciler launches the periodic counter reconciliation pass.
// Returns nil when the schedule is disabled or fails to parse; the
// on-demand admin endpoint still covers convergence in that case.
func StartReconciler(cfg *config.Config, fs *firestore.Client) *cronjob.Scheduler {
	schedule := cfg.App.ReconcileCron
	if schedule == "" || schedule == "off" {
		log.Println("[reconcile] scheduler disabled")
		return nil
	}

	admin := adminservice.NewAdminService(
		toursrepo.NewTourRepository(fs),
		usersrepo.NewUserRepository(fs),
		reviewsrepo.NewReviewRepository(fs),
	)

	s := cronjob.NewScheduler(schedule, admin)
	if err := s.Start(); err != nil {
		log.Printf("[reconcile] scheduler disabled: %v", err)
		return nil
	}
	return s
}
