package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"rent_tracker/internal/app"
)

// ReconciliationScheduler triggers the daily rent reconciliation batch. The
// engine itself never reads the clock; the scheduler computes the reference
// date and passes it in.
type ReconciliationScheduler struct {
	cronEngine    *cron.Cron
	reconService  app.ReconciliationService
	logger        *logrus.Logger
	cronSpecDaily string
	lookbackDays  int
}

func NewReconciliationScheduler(
	reconService app.ReconciliationService,
	logger *logrus.Logger,
	cronSpecDaily string, // e.g. "0 9 * * *" (9 AM daily)
	lookbackDays int, // reference date = today minus this many days
) *ReconciliationScheduler {
	return &ReconciliationScheduler{
		cronEngine:    cron.New(cron.WithLocation(time.Local)), // use server's local calendar for due dates
		reconService:  reconService,
		logger:        logger,
		cronSpecDaily: cronSpecDaily,
		lookbackDays:  lookbackDays,
	}
}

func (s *ReconciliationScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpecDaily, func() {
		s.logger.Info("Cron job triggered for daily rent reconciliation")

		// Checking a day behind absorbs bank posting delays, as well as runs
		// that fire just after midnight.
		refDate := time.Now().AddDate(0, 0, -s.lookbackDays)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if _, err := s.reconService.RunAll(ctx, refDate); err != nil {
			s.logger.WithError(err).Error("Daily rent reconciliation batch failed")
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpecDaily).Info("Reconciliation scheduler started")
	return nil
}

func (s *ReconciliationScheduler) Stop() {
	s.logger.Info("Stopping reconciliation scheduler...")
	ctx := s.cronEngine.Stop() // waits for a running batch to finish
	<-ctx.Done()
	s.logger.Info("Reconciliation scheduler stopped")
}
