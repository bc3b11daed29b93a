package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardtrack/internal/catalog"
	"rewardtrack/internal/domain/types"
	"rewardtrack/internal/policy"
)

func TestDefault_Programs(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t,
		[]types.ProgramID{catalog.Rise, catalog.Organic, catalog.Fluent, catalog.Trulieve},
		c.IDs())

	rise, ok := c.Lookup(catalog.Rise)
	require.True(t, ok)
	assert.Equal(t, int64(1637), rise.InitialPoints)
	require.Len(t, rise.RedemptionTiers, 33)
	last := rise.RedemptionTiers[32]
	assert.Equal(t, int64(3300), last.Points)
	assert.True(t, last.Value.Equal(decimal.NewFromInt(99)))

	trulieve, ok := c.Lookup(catalog.Trulieve)
	require.True(t, ok)
	assert.Equal(t, int64(287), trulieve.InitialPoints)
	assert.Equal(t, policy.KindInterpolatedTiers, trulieve.Policy.Kind())

	_, ok = c.Lookup("nope")
	assert.False(t, ok)
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	p := catalog.Program{ID: "a", Policy: policy.DayMultiplier{Divisor: decimal.NewFromInt(1), BonusFactor: 1}}
	_, err := catalog.New(p, p)
	require.ErrorIs(t, err, types.ErrInvalidProgram)
}

func TestNew_RejectsBadTierTables(t *testing.T) {
	_, err := catalog.New(catalog.Program{
		ID:     "steps",
		Policy: policy.StepTiered{Step: 100, ValuePerStep: decimal.NewFromInt(3)},
	})
	require.ErrorIs(t, err, types.ErrInvalidProgram, "tiered programs need tiers")

	_, err = catalog.New(catalog.Program{
		ID:     "flat",
		Policy: policy.FlatRate{Rate: decimal.NewFromInt(1), Step: 1},
		RedemptionTiers: []types.Tier{
			types.NewTier(100, 3),
			types.NewTier(100, 4),
		},
	})
	require.ErrorIs(t, err, types.ErrInvalidProgram, "tiers must strictly increase")

	_, err = catalog.New(catalog.Program{
		ID:            "neg",
		Policy:        policy.FlatRate{Rate: decimal.NewFromInt(1), Step: 1},
		InitialPoints: -1,
	})
	require.ErrorIs(t, err, types.ErrInvalidProgram)
}

func TestAffordableTiers(t *testing.T) {
	trulieve, _ := catalog.Default().Lookup(catalog.Trulieve)

	got := catalog.AffordableTiers(trulieve, 287)
	require.Len(t, got, 5)
	assert.True(t, got[0].Affordable)
	assert.True(t, got[1].Affordable)
	assert.False(t, got[2].Affordable)
}
