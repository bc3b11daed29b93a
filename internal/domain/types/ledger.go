package types

import "github.com/shopspring/decimal"

// Tier is a fixed redemption option: spend Points, get Value off.
type Tier struct {
	Points int64           `json:"points"`
	Value  decimal.Decimal `json:"value"`
}

// NewTier builds a tier from whole-currency value.
func NewTier(points, value int64) Tier {
	return Tier{Points: points, Value: decimal.NewFromInt(value)}
}

// Transaction is one recorded purchase, with any redemption applied to it.
type Transaction struct {
	Date           Date            `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	PointsEarned   int64           `json:"points_earned"`
	PointsRedeemed int64           `json:"points_redeemed"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
}

// Equal reports whether t and o describe the same transaction.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date == o.Date &&
		t.Amount.Equal(o.Amount) &&
		t.PointsEarned == o.PointsEarned &&
		t.PointsRedeemed == o.PointsRedeemed &&
		t.DiscountValue.Equal(o.DiscountValue)
}

// Receipt is the outcome of a recorded purchase.
type Receipt struct {
	ProgramID  ProgramID       `json:"program_id"`
	Earned     int64           `json:"earned"`
	Redeemed   int64           `json:"redeemed"`
	Discount   decimal.Decimal `json:"discount"`
	NewBalance int64           `json:"new_balance"`

	// Warning is set when the ledger changed in memory but could not be
	// persisted. It wraps ErrPersistenceWrite.
	Warning error `json:"-"`
}

// Preview is a what-if valuation of a redemption that changes nothing.
// Value may be an estimate for amounts the program would not accept; Valid
// says whether the amount could actually be redeemed.
type Preview struct {
	ProgramID ProgramID       `json:"program_id"`
	Points    int64           `json:"points"`
	Value     decimal.Decimal `json:"value"`
	Valid     bool            `json:"valid"`
}

// Plan is a savings estimate for a prospective purchase.
type Plan struct {
	ProgramID      ProgramID       `json:"program_id"`
	Amount         decimal.Decimal `json:"amount"`
	Points         int64           `json:"points"`
	Savings        decimal.Decimal `json:"savings"`
	EstimatedTotal decimal.Decimal `json:"estimated_total"`
}

// TierStatus pairs a tier with whether the current balance covers it.
type TierStatus struct {
	Tier
	Affordable bool `json:"affordable"`
}
