package rewards

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"rewardtrack/internal/catalog"
	"rewardtrack/internal/domain"
	"rewardtrack/internal/domain/types"
	"rewardtrack/internal/ledger"
	"rewardtrack/internal/policy"
)

// Recorder receives purchase outcomes, typically for metrics.
type Recorder interface {
	PurchaseRecorded(id types.ProgramID, earned, redeemed int64, discount decimal.Decimal)
	PurchaseRejected(id types.ProgramID, reason string)
	SnapshotSaveFailed()
}

type nopRecorder struct{}

func (nopRecorder) PurchaseRecorded(types.ProgramID, int64, int64, decimal.Decimal) {}
func (nopRecorder) PurchaseRejected(types.ProgramID, string)                        {}
func (nopRecorder) SnapshotSaveFailed()                                             {}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRecorder sets the outcome recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.rec = r
		}
	}
}

// Service is the transaction processor for every program in a catalog.
type Service struct {
	catalog *catalog.Catalog
	ledger  *ledger.Store
	store   domain.SnapshotStore
	log     *slog.Logger
	rec     Recorder

	// mu serialises purchases so that validation, ledger update and save
	// happen as one step.
	mu sync.Mutex
}

// New returns a service over l, saving snapshots to st.
func New(c *catalog.Catalog, l *ledger.Store, st domain.SnapshotStore, opts ...Option) *Service {
	s := &Service{
		catalog: c,
		ledger:  l,
		store:   st,
		log:     slog.Default(),
		rec:     nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseAmount parses a purchase amount typed by a user. Anything that is not a
// finite decimal number fails with ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", types.ErrInvalidAmount, s)
	}
	return d, nil
}

// RecordPurchase validates req, applies it to the ledger and saves the snapshot.
//
// Checks run in order and the first failure is returned: unknown program,
// missing date, non-positive amount, stale expected balance, redemption above
// the balance, redemption the policy does not accept.
func (s *Service) RecordPurchase(req domain.PurchaseRequest) (types.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receipt, err := s.recordPurchase(req)
	if err != nil {
		s.rec.PurchaseRejected(req.ProgramID, Reason(err))
		s.log.Info("purchase rejected", "program", req.ProgramID, "reason", Reason(err), "error", err)
		return types.Receipt{}, err
	}
	s.rec.PurchaseRecorded(req.ProgramID, receipt.Earned, receipt.Redeemed, receipt.Discount)
	s.log.Info("purchase recorded",
		"program", req.ProgramID,
		"date", req.Date.String(),
		"amount", req.Amount.String(),
		"earned", receipt.Earned,
		"redeemed", receipt.Redeemed,
		"balance", receipt.NewBalance,
	)
	return receipt, nil
}

func (s *Service) recordPurchase(req domain.PurchaseRequest) (types.Receipt, error) {
	program, ok := s.catalog.Lookup(req.ProgramID)
	if !ok {
		return types.Receipt{}, fmt.Errorf("%w: %q", types.ErrProgramNotFound, req.ProgramID)
	}
	if req.Date.IsZero() {
		return types.Receipt{}, types.ErrMissingDate
	}
	if !req.Amount.IsPositive() {
		return types.Receipt{}, fmt.Errorf("%w: got %s", types.ErrInvalidAmount, req.Amount)
	}
	balance, err := s.ledger.Balance(program.ID)
	if err != nil {
		return types.Receipt{}, err
	}
	if req.ExpectedBalance != nil && *req.ExpectedBalance != balance {
		return types.Receipt{}, fmt.Errorf("%w: expected %d, balance is %d", types.ErrStaleState, *req.ExpectedBalance, balance)
	}
	if req.RedeemPoints < 0 || req.RedeemPoints > balance {
		return types.Receipt{}, fmt.Errorf("%w: redeem %d, balance %d", types.ErrRedemptionExceedsBalance, req.RedeemPoints, balance)
	}
	if !program.Policy.IsValidRedemption(req.RedeemPoints) {
		return types.Receipt{}, fmt.Errorf("%w: %d points (%s)", types.ErrInvalidRedemptionAmount, req.RedeemPoints, program.Display.RedemptionHint)
	}

	earned := program.Policy.EarnPoints(policy.EarnContext{
		Amount:       req.Amount,
		IsSpecialDay: isSpecialDay(program.Policy, req.Date),
	})
	discount := program.Policy.Valuate(req.RedeemPoints)
	newBalance := balance + earned - req.RedeemPoints

	tx := types.Transaction{
		Date:           req.Date,
		Amount:         req.Amount,
		PointsEarned:   earned,
		PointsRedeemed: req.RedeemPoints,
		DiscountValue:  discount,
	}
	warning, err := s.apply(program.ID, newBalance, tx)
	if err != nil {
		return types.Receipt{}, err
	}

	return types.Receipt{
		ProgramID:  program.ID,
		Earned:     earned,
		Redeemed:   req.RedeemPoints,
		Discount:   discount,
		NewBalance: newBalance,
		Warning:    warning,
	}, nil
}

// apply appends tx and saves the snapshot. The snapshot is saved even when the
// ledger reports an error, since Append has still changed the account and disk
// must not fall behind memory.
func (s *Service) apply(id types.ProgramID, newBalance int64, tx types.Transaction) (warning, err error) {
	err = s.ledger.Append(id, newBalance, tx)
	if err != nil {
		// Validation makes this unreachable; surface it loudly.
		s.log.Error("ledger rejected validated purchase", "program", id, "error", err)
	}
	return s.persist(), err
}

// persist saves the full snapshot. Failures are returned as warnings.
func (s *Service) persist() error {
	blob, err := s.ledger.Snapshot()
	if err == nil {
		err = s.store.SaveSnapshot(blob)
	}
	if err != nil {
		s.rec.SnapshotSaveFailed()
		s.log.Warn("ledger not saved; changes are kept in memory only", "error", err)
		return fmt.Errorf("%w: %v", types.ErrPersistenceWrite, err)
	}
	return nil
}

// isSpecialDay reports whether date is the policy's bonus day, for policies
// that have one.
func isSpecialDay(p policy.Policy, date types.Date) bool {
	bonus, ok := p.(interface{ BonusWeekday() time.Weekday })
	return ok && date.Weekday() == bonus.BonusWeekday()
}

// PreviewRedemption values a redemption of points without changing anything.
// The value is returned even when Valid is false; for tiered programs it is
// then only an estimate.
func (s *Service) PreviewRedemption(id types.ProgramID, points int64) (types.Preview, error) {
	program, ok := s.catalog.Lookup(id)
	if !ok {
		return types.Preview{}, fmt.Errorf("%w: %q", types.ErrProgramNotFound, id)
	}
	if points < 0 {
		return types.Preview{}, fmt.Errorf("%w: %d points", types.ErrInvalidRedemptionAmount, points)
	}
	return types.Preview{
		ProgramID: id,
		Points:    points,
		Value:     program.Policy.Valuate(points),
		Valid:     program.Policy.IsValidRedemption(points),
	}, nil
}

// PlanPurchase estimates the savings of paying for amount with points. Points
// above the current balance are lowered to the balance; the result must still
// be a redemption the program accepts.
func (s *Service) PlanPurchase(id types.ProgramID, amount decimal.Decimal, points int64) (types.Plan, error) {
	program, ok := s.catalog.Lookup(id)
	if !ok {
		return types.Plan{}, fmt.Errorf("%w: %q", types.ErrProgramNotFound, id)
	}
	if !amount.IsPositive() {
		return types.Plan{}, fmt.Errorf("%w: got %s", types.ErrInvalidAmount, amount)
	}
	balance, err := s.ledger.Balance(id)
	if err != nil {
		return types.Plan{}, err
	}
	if points > balance {
		points = balance
	}
	if points < 0 || !program.Policy.IsValidRedemption(points) {
		return types.Plan{}, fmt.Errorf("%w: %d points (%s)", types.ErrInvalidRedemptionAmount, points, program.Display.RedemptionHint)
	}
	savings := program.Policy.Valuate(points)
	return types.Plan{
		ProgramID:      id,
		Amount:         amount,
		Points:         points,
		Savings:        savings,
		EstimatedTotal: decimal.Max(amount.Sub(savings), decimal.Zero),
	}, nil
}

// Programs returns the catalog's programs in order.
func (s *Service) Programs() []catalog.Program { return s.catalog.Programs() }

// Balance returns the current points of program id.
func (s *Service) Balance(id types.ProgramID) (int64, error) { return s.ledger.Balance(id) }

// History returns program id's transactions, most recent first.
func (s *Service) History(id types.ProgramID) ([]types.Transaction, error) {
	return s.ledger.History(id)
}

// Tiers returns program id's redemption tiers with affordability for the
// current balance.
func (s *Service) Tiers(id types.ProgramID) ([]types.TierStatus, error) {
	program, ok := s.catalog.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrProgramNotFound, id)
	}
	balance, err := s.ledger.Balance(id)
	if err != nil {
		return nil, err
	}
	return catalog.AffordableTiers(program, balance), nil
}

// Reason maps an engine error to a short stable label.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, types.ErrProgramNotFound):
		return "program_not_found"
	case errors.Is(err, types.ErrMissingDate):
		return "missing_date"
	case errors.Is(err, types.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, types.ErrStaleState):
		return "stale_state"
	case errors.Is(err, types.ErrRedemptionExceedsBalance):
		return "redemption_exceeds_balance"
	case errors.Is(err, types.ErrInvalidRedemptionAmount):
		return "invalid_redemption_amount"
	case errors.Is(err, types.ErrNegativeBalance):
		return "negative_balance"
	case errors.Is(err, types.ErrPersistenceWrite):
		return "persistence_write"
	case errors.Is(err, types.ErrPersistenceParse):
		return "persistence_parse"
	default:
		return "internal"
	}
}

// Compile-time assertion that Service implements domain.RewardsService.
var _ domain.RewardsService = (*Service)(nil)
