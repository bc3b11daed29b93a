package policy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rewardtrack/internal/domain/types"
)

// InterpolatedTiers earns one point per whole currency unit and redeems only at
// the exact point amounts of Tiers.
type InterpolatedTiers struct {
	Tiers []types.Tier
}

func (InterpolatedTiers) Kind() Kind { return KindInterpolatedTiers }

func (InterpolatedTiers) EarnPoints(ctx EarnContext) int64 { return floorPoints(ctx.Amount) }

// Valuate returns the tier value when points matches a tier exactly.
//
// For any other amount the result is a preview only: it scales the tier with
// the best value per point among those at or below points, and returns zero
// when no tier is that small. The estimate is optimistic and is not what a
// redemption would pay; IsValidRedemption rejects every such amount.
func (p InterpolatedTiers) Valuate(points int64) decimal.Decimal {
	if tier, ok := p.tier(points); ok {
		return tier.Value
	}
	var (
		best     types.Tier
		bestRate decimal.Decimal
		found    bool
	)
	for _, tier := range p.Tiers {
		if tier.Points <= 0 || tier.Points > points {
			continue
		}
		rate := tier.Value.Div(decimal.NewFromInt(tier.Points))
		if !found || rate.GreaterThan(bestRate) {
			best, bestRate, found = tier, rate, true
		}
	}
	if !found {
		return decimal.Zero
	}
	return decimal.NewFromInt(points).Div(decimal.NewFromInt(best.Points)).Mul(best.Value)
}

func (p InterpolatedTiers) IsValidRedemption(points int64) bool {
	_, ok := p.tier(points)
	return ok
}

func (p InterpolatedTiers) tier(points int64) (types.Tier, bool) {
	for _, tier := range p.Tiers {
		if tier.Points == points {
			return tier, true
		}
	}
	return types.Tier{}, false
}

func (InterpolatedTiers) sealed() {}

// ValidateTiers checks that a tier table is strictly increasing in points, with
// positive points and non-negative values.
func ValidateTiers(tiers []types.Tier) error {
	var prev int64
	for i, tier := range tiers {
		if tier.Points <= 0 {
			return fmt.Errorf("tier %d: points must be positive, got %d", i, tier.Points)
		}
		if tier.Value.IsNegative() {
			return fmt.Errorf("tier %d: value must not be negative, got %s", i, tier.Value)
		}
		if i > 0 && tier.Points <= prev {
			return fmt.Errorf("tier %d: points %d not greater than %d", i, tier.Points, prev)
		}
		prev = tier.Points
	}
	return nil
}
