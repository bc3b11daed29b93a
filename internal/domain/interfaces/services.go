package interfaces

import (
	"github.com/shopspring/decimal"

	domaintypes "rewardtrack/internal/domain/types"
)

// PurchaseRequest describes one purchase, optionally paying with points.
type PurchaseRequest struct {
	ProgramID    domaintypes.ProgramID
	Amount       decimal.Decimal
	Date         domaintypes.Date
	RedeemPoints int64
	// ExpectedBalance, when set, must equal the current balance or the
	// purchase fails with ErrStaleState.
	ExpectedBalance *int64
}

// RewardsService records purchases and answers balance and valuation queries.
type RewardsService interface {
	RecordPurchase(req PurchaseRequest) (domaintypes.Receipt, error)
	PreviewRedemption(id domaintypes.ProgramID, points int64) (domaintypes.Preview, error)
	PlanPurchase(id domaintypes.ProgramID, amount decimal.Decimal, points int64) (domaintypes.Plan, error)

	Balance(id domaintypes.ProgramID) (int64, error)
	History(id domaintypes.ProgramID) ([]domaintypes.Transaction, error)
	Tiers(id domaintypes.ProgramID) ([]domaintypes.TierStatus, error)
}
