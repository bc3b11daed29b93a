package policy

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayMultiplier earns one point per Divisor spent, multiplied by BonusFactor on
// BonusDay. Each point is worth one currency unit and any amount is redeemable.
type DayMultiplier struct {
	Divisor     decimal.Decimal
	BonusFactor int64
	BonusDay    time.Weekday
}

func (DayMultiplier) Kind() Kind { return KindDayMultiplier }

func (p DayMultiplier) EarnPoints(ctx EarnContext) int64 {
	if !p.Divisor.IsPositive() {
		return 0
	}
	base := floorPoints(ctx.Amount.Div(p.Divisor))
	if ctx.IsSpecialDay {
		return base * p.BonusFactor
	}
	return base
}

func (DayMultiplier) Valuate(points int64) decimal.Decimal { return decimal.NewFromInt(points) }

func (DayMultiplier) IsValidRedemption(points int64) bool { return points >= 0 }

// BonusWeekday is the weekday on which purchases earn BonusFactor times the points.
func (p DayMultiplier) BonusWeekday() time.Weekday { return p.BonusDay }

func (DayMultiplier) sealed() {}
