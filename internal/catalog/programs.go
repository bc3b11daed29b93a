package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"rewardtrack/internal/domain/types"
	"rewardtrack/internal/policy"
)

// Built-in program ids.
const (
	Rise     types.ProgramID = "rise"
	Organic  types.ProgramID = "organic"
	Fluent   types.ProgramID = "fluent"
	Trulieve types.ProgramID = "trulieve"
)

// Default returns the catalog of built-in programs.
func Default() *Catalog {
	c, err := New(DefaultPrograms()...)
	if err != nil {
		panic(err) // the built-in table is static
	}
	return c
}

// DefaultPrograms returns the built-in program table.
func DefaultPrograms() []Program {
	riseTiers := make([]types.Tier, 33)
	for i := range riseTiers {
		riseTiers[i] = types.NewTier(int64(i+1)*100, int64(i+1)*3)
	}

	trulieveTiers := []types.Tier{
		types.NewTier(100, 5),
		types.NewTier(250, 15),
		types.NewTier(500, 35),
		types.NewTier(1000, 75),
		types.NewTier(2000, 160),
	}

	return []Program{
		{
			ID:              Rise,
			Name:            "RISE Dispensary",
			Description:     "1 point earned per $1 spent across Mechanicsburg, Steelton, and Carlisle.",
			Policy:          policy.StepTiered{Step: 100, ValuePerStep: decimal.NewFromInt(3)},
			RedemptionTiers: riseTiers,
			InitialPoints:   1637,
			Display: Display{
				LogoURL:        "https://i.postimg.cc/28bbBJmD/RISE-Cannabis.png",
				RedemptionHint: "Redeem in 100 point steps ($3 value each).",
				QuickPicks:     []int64{100, 200, 300, 400, 500, 800, 1000, 1200, 1500, 2000, 2500, 3000},
				Locations: []Location{
					{Name: "Mechanicsburg", URL: "https://risecannabis.com/dispensaries/pennsylvania/mechanicsburg/1550/medical-menu/"},
					{Name: "Steelton", URL: "https://risecannabis.com/dispensaries/pennsylvania/steelton/1544/medical-menu/"},
					{Name: "Carlisle", URL: "https://risecannabis.com/dispensaries/pennsylvania/carlisle/1547/medical-menu/"},
				},
			},
		},
		{
			ID:          Organic,
			Name:        "Organic Remedies",
			Description: "1 point per $1 spent at any Organic Remedies location.",
			Policy:      policy.FlatRate{Rate: decimal.RequireFromString("0.06"), Step: 250},
			RedemptionTiers: []types.Tier{
				types.NewTier(250, 15),
				types.NewTier(500, 30),
				types.NewTier(750, 45),
				types.NewTier(1000, 60),
			},
			Display: Display{
				LogoURL:        "https://i.postimg.cc/05HKjvTn/Organic-Remedies.png",
				RedemptionHint: "Redeem in 250 point steps ($15 value each).",
				QuickPicks:     []int64{250, 500, 750, 1000},
			},
		},
		{
			ID:              Fluent,
			Name:            "FLUENT",
			Description:     "Earn 1 point per $20 spent. Wednesday purchases earn triple points. Points redeem $1 each.",
			Policy:          policy.DayMultiplier{Divisor: decimal.NewFromInt(20), BonusFactor: 3, BonusDay: time.Wednesday},
			RedemptionTiers: []types.Tier{types.NewTier(1, 1)},
			Display: Display{
				LogoURL:        "https://i.postimg.cc/5yGXR5BT/FLUENT.png",
				RedemptionHint: "Each point equals $1 off your order.",
			},
		},
		{
			ID:              Trulieve,
			Name:            "Trulieve",
			Description:     "1 point earned per $1 spent. Redeem for tiered rewards.",
			Policy:          policy.InterpolatedTiers{Tiers: trulieveTiers},
			RedemptionTiers: trulieveTiers,
			InitialPoints:   287,
			Display: Display{
				LogoURL:        "https://i.postimg.cc/kX0VNcXt/Trulieve.png",
				RedemptionHint: "Redeem using one of the available reward tiers.",
				QuickPicks:     []int64{100, 250, 500, 1000, 2000},
			},
		},
	}
}
