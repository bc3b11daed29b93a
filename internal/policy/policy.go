package policy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind names a policy variant.
type Kind string

const (
	KindFlatRate          Kind = "flat_rate"
	KindStepTiered        Kind = "step_tiered"
	KindDayMultiplier     Kind = "day_multiplier"
	KindInterpolatedTiers Kind = "interpolated_tiers"
)

// EarnContext is what a policy needs to know about a purchase to award points.
type EarnContext struct {
	Amount decimal.Decimal
	// IsSpecialDay is true when the purchase falls on the program's bonus day.
	IsSpecialDay bool
}

// Policy is the rule set of one reward program.
type Policy interface {
	Kind() Kind
	// EarnPoints returns the points awarded for a purchase.
	EarnPoints(ctx EarnContext) int64
	// Valuate returns the monetary value of redeeming points.
	Valuate(points int64) decimal.Decimal
	// IsValidRedemption reports whether points may be redeemed in one purchase.
	IsValidRedemption(points int64) bool

	sealed()
}

// Validate checks a policy's parameters.
func Validate(p Policy) error {
	switch v := p.(type) {
	case nil:
		return fmt.Errorf("policy is required")
	case FlatRate:
		if v.Step <= 0 {
			return fmt.Errorf("flat rate: step must be positive, got %d", v.Step)
		}
		if v.Rate.IsNegative() {
			return fmt.Errorf("flat rate: rate must not be negative, got %s", v.Rate)
		}
	case StepTiered:
		if v.Step <= 0 {
			return fmt.Errorf("step tiered: step must be positive, got %d", v.Step)
		}
		if v.ValuePerStep.IsNegative() {
			return fmt.Errorf("step tiered: value per step must not be negative, got %s", v.ValuePerStep)
		}
	case DayMultiplier:
		if !v.Divisor.IsPositive() {
			return fmt.Errorf("day multiplier: divisor must be positive, got %s", v.Divisor)
		}
		if v.BonusFactor < 1 {
			return fmt.Errorf("day multiplier: bonus factor must be at least 1, got %d", v.BonusFactor)
		}
	case InterpolatedTiers:
		if len(v.Tiers) == 0 {
			return fmt.Errorf("interpolated tiers: at least one tier is required")
		}
		if err := ValidateTiers(v.Tiers); err != nil {
			return fmt.Errorf("interpolated tiers: %w", err)
		}
	default:
		return fmt.Errorf("unknown policy %T", p)
	}
	return nil
}

// Describe returns a one-line summary of a policy's rules.
func Describe(p Policy) string {
	switch v := p.(type) {
	case FlatRate:
		return fmt.Sprintf("1 pt per $1; %s per pt; redeem in steps of %d", money(v.Rate), v.Step)
	case StepTiered:
		return fmt.Sprintf("1 pt per $1; %s per %d pts", money(v.ValuePerStep), v.Step)
	case DayMultiplier:
		return fmt.Sprintf("1 pt per $%s; x%d on %s; 1 pt = $1", v.Divisor, v.BonusFactor, v.BonusDay)
	case InterpolatedTiers:
		return fmt.Sprintf("1 pt per $1; redeem at one of %d tiers", len(v.Tiers))
	default:
		return string(p.Kind())
	}
}

func floorPoints(d decimal.Decimal) int64 {
	if !d.IsPositive() {
		return 0
	}
	return d.Floor().IntPart()
}

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }
