// internal/app/reconciliation_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"rent_tracker/internal/domain/bank"
	"rent_tracker/internal/domain/ledger"
	"rent_tracker/internal/domain/notify"
	"rent_tracker/internal/domain/property"
	"rent_tracker/internal/domain/reconcile"
	"rent_tracker/internal/domain/user"
	idb "rent_tracker/internal/infra/database"
)

// Result is the per-property outcome of one reconciliation run.
type Result struct {
	PropertyID int64
	DueDate    time.Time // zero when the property had no due cycle
	Outcome    reconcile.Outcome
	FromLedger bool  // the cycle was already closed; stored outcome returned as-is
	Err        error // the failure behind a SKIPPED or FETCH_FAILED outcome
}

// ReconciliationService defines the operations of the rent reconciliation engine.
type ReconciliationService interface {
	// RunForUser reconciles every active property of one landlord against
	// the reference date. Time is always an explicit input; the engine never
	// reads the clock to compute due dates, which keeps runs reproducible.
	RunForUser(ctx context.Context, userID int64, refDate time.Time) ([]Result, error)
	// RunAll runs the daily batch over all active users. Per-user failures
	// are isolated and logged; the batch continues.
	RunAll(ctx context.Context, refDate time.Time) ([]Result, error)
}

// ReconciliationServiceImpl implements ReconciliationService.
type ReconciliationServiceImpl struct {
	userRepo      user.Repository
	propertyRepo  property.Repository
	cycleLedger   ledger.Ledger
	source        bank.TransactionSource
	notifier      notify.Notifier
	logger        *logrus.Logger
	grace         reconcile.Grace
	fetchTimeout  time.Duration
	maxConcurrent int
	now           func() time.Time
}

func NewReconciliationService(
	ur user.Repository,
	pr property.Repository,
	cl ledger.Ledger,
	src bank.TransactionSource,
	n notify.Notifier,
	logger *logrus.Logger,
	grace reconcile.Grace,
	fetchTimeout time.Duration,
	maxConcurrent int,
) *ReconciliationServiceImpl {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &ReconciliationServiceImpl{
		userRepo:      ur,
		propertyRepo:  pr,
		cycleLedger:   cl,
		source:        src,
		notifier:      n,
		logger:        logger,
		grace:         grace,
		fetchTimeout:  fetchTimeout,
		maxConcurrent: maxConcurrent,
		now:           time.Now,
	}
}

func (s *ReconciliationServiceImpl) RunAll(ctx context.Context, refDate time.Time) ([]Result, error) {
	runID := uuid.NewString()
	log := s.logger.WithFields(logrus.Fields{"run_id": runID, "ref_date": refDate.Format("2006-01-02")})
	log.Info("Starting daily rent reconciliation batch")

	userIDs, err := s.userRepo.ListActiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	var all []Result
	for _, id := range userIDs {
		results, err := s.runForUser(ctx, id, refDate, runID)
		if err != nil {
			// One landlord's failure must not abort the batch.
			log.WithField("user_id", id).WithError(err).Error("Reconciliation failed for user")
			continue
		}
		all = append(all, results...)
	}
	log.WithField("results", len(all)).Info("Daily rent reconciliation batch finished")
	return all, nil
}

func (s *ReconciliationServiceImpl) RunForUser(ctx context.Context, userID int64, refDate time.Time) ([]Result, error) {
	return s.runForUser(ctx, userID, refDate, uuid.NewString())
}

func (s *ReconciliationServiceImpl) runForUser(ctx context.Context, userID int64, refDate time.Time, runID string) ([]Result, error) {
	refDate = reconcile.DateOnly(refDate)
	log := s.logger.WithFields(logrus.Fields{"run_id": runID, "user_id": userID})

	usr, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if !usr.HasBankLink() {
		log.Info("User has no bank account link; skipping")
		return nil, nil
	}

	props, err := s.propertyRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties for user %d: %w", userID, err)
	}
	if len(props) == 0 {
		return nil, nil
	}

	// Properties are independent; evaluate them in parallel, bounded so a
	// landlord with many properties cannot exceed the bank API rate limits.
	results := make([]Result, len(props))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i, p := range props {
		i, p := i, p
		g.Go(func() error {
			results[i] = s.checkProperty(gctx, usr, p, refDate, log.WithField("property_id", p.ID))
			return nil // per-property failures live in the Result, never cancel siblings
		})
	}
	g.Wait()

	return results, nil
}

// checkProperty evaluates one property's current rent cycle end to end.
func (s *ReconciliationServiceImpl) checkProperty(ctx context.Context, usr *user.User, p *property.Property, refDate time.Time, log *logrus.Entry) Result {
	if err := p.Validate(); err != nil {
		log.WithError(err).Warn("Property configuration invalid; skipped for this run")
		return Result{PropertyID: p.ID, Outcome: reconcile.OutcomeSkipped, Err: err}
	}

	cycle, ok := reconcile.DueDate(p, refDate)
	if !ok {
		log.Debug("No cycle due yet for property")
		return Result{PropertyID: p.ID, Outcome: reconcile.OutcomeSkipped}
	}
	log = log.WithField("due_date", cycle.DueDate.Format("2006-01-02"))

	// A closed cycle is final: return the stored outcome without re-fetching
	// or re-notifying, so re-runs and manual invocations are safe.
	if entry, err := s.cycleLedger.Get(ctx, p.ID, cycle.DueDate); err == nil {
		log.WithField("outcome", entry.Outcome).Debug("Cycle already closed; returning stored outcome")
		return Result{PropertyID: p.ID, DueDate: cycle.DueDate, Outcome: entry.Outcome, FromLedger: true}
	} else if err != idb.ErrLedgerEntryNotFound {
		log.WithError(err).Error("Failed to read cycle ledger")
		return Result{PropertyID: p.ID, DueDate: cycle.DueDate, Outcome: reconcile.OutcomeSkipped, Err: err}
	}

	from, to := s.grace.Window(cycle.DueDate)
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	txns, err := s.source.Transactions(fetchCtx, usr.BankCredentials(), from, to)
	if err != nil {
		// Transient: the cycle stays open so the next scheduled run retries.
		log.WithError(err).Warn("Bank transaction fetch failed; cycle left open")
		return Result{PropertyID: p.ID, DueDate: cycle.DueDate, Outcome: reconcile.OutcomeFetchFailed, Err: err}
	}

	match := reconcile.Match(p, txns, cycle.DueDate, s.grace)
	decision := reconcile.Decide(match, s.grace.Elapsed(cycle.DueDate, refDate), p)

	if decision.Outcome == reconcile.OutcomePending {
		log.Debug("No match yet and grace window still open; cycle stays open")
		return Result{PropertyID: p.ID, DueDate: cycle.DueDate, Outcome: reconcile.OutcomePending}
	}

	stored, created, err := s.cycleLedger.Close(ctx, &ledger.Entry{
		PropertyID: p.ID,
		DueDate:    cycle.DueDate,
		Outcome:    decision.Outcome,
		NotifiedAt: s.now(),
	})
	if err != nil {
		log.WithError(err).Error("Failed to close cycle; will retry next run")
		return Result{PropertyID: p.ID, DueDate: cycle.DueDate, Outcome: reconcile.OutcomePending, Err: err}
	}
	if !created {
		// Lost the race to a concurrent evaluation. The winner already
		// notified; yield to its outcome.
		log.WithField("outcome", stored.Outcome).Info("Cycle closed concurrently by another run")
		return Result{PropertyID: p.ID, DueDate: cycle.DueDate, Outcome: stored.Outcome, FromLedger: true}
	}

	log.WithField("outcome", decision.Outcome).Info("Cycle closed")
	s.deliver(ctx, usr, p, cycle, match, decision, log)
	return Result{PropertyID: p.ID, DueDate: cycle.DueDate, Outcome: decision.Outcome}
}

// deliver hands the outcome to the notification channels. Delivery is best
// effort: the cycle is reconciled the moment the ledger entry exists, and a
// failed send is logged rather than retried to avoid duplicate messages.
func (s *ReconciliationServiceImpl) deliver(ctx context.Context, usr *user.User, p *property.Property, cycle reconcile.Cycle, match reconcile.MatchResult, decision reconcile.Decision, log *logrus.Entry) {
	n := notify.Notification{
		Outcome:  decision.Outcome,
		Property: p,
		Landlord: usr,
		DueDate:  cycle.DueDate,
		Expected: p.RentAmount,
	}
	if match.Transaction != nil {
		n.Received = match.Transaction.Amount
	}

	if decision.NotifyLandlord {
		if err := s.notifier.NotifyLandlord(ctx, n); err != nil {
			log.WithError(err).Error("Landlord notification delivery failed; decision stands")
		}
	}
	if decision.NotifyTenant {
		if err := s.notifier.NotifyTenant(ctx, n); err != nil {
			log.WithError(err).Error("Tenant reminder delivery failed; decision stands")
		}
	}
}
