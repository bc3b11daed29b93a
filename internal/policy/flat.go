package policy

import "github.com/shopspring/decimal"

// FlatRate earns one point per whole currency unit and values each point at Rate.
// Redemptions must be a multiple of Step; a Step of 1 accepts any amount.
type FlatRate struct {
	Rate decimal.Decimal
	Step int64
}

func (FlatRate) Kind() Kind { return KindFlatRate }

func (FlatRate) EarnPoints(ctx EarnContext) int64 { return floorPoints(ctx.Amount) }

func (p FlatRate) Valuate(points int64) decimal.Decimal {
	return decimal.NewFromInt(points).Mul(p.Rate)
}

func (p FlatRate) IsValidRedemption(points int64) bool {
	return points >= 0 && p.Step > 0 && points%p.Step == 0
}

func (FlatRate) sealed() {}

// StepTiered earns one point per whole currency unit and pays ValuePerStep for
// every Step points redeemed.
type StepTiered struct {
	Step         int64
	ValuePerStep decimal.Decimal
}

func (StepTiered) Kind() Kind { return KindStepTiered }

func (StepTiered) EarnPoints(ctx EarnContext) int64 { return floorPoints(ctx.Amount) }

// Valuate scales linearly, so a non-multiple of Step yields a fractional
// number of steps. Such amounts never pass IsValidRedemption.
func (p StepTiered) Valuate(points int64) decimal.Decimal {
	if p.Step <= 0 {
		return decimal.Zero
	}
	steps := decimal.NewFromInt(points).Div(decimal.NewFromInt(p.Step))
	return steps.Mul(p.ValuePerStep)
}

func (p StepTiered) IsValidRedemption(points int64) bool {
	return points >= 0 && p.Step > 0 && points%p.Step == 0
}

func (StepTiered) sealed() {}
