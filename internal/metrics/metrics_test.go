package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardtrack/internal/metrics"
)

func TestMetrics_Counts(t *testing.T) {
	m := metrics.New()

	m.PurchaseRecorded("rise", 247, 300, decimal.NewFromInt(9))
	m.PurchaseRecorded("rise", 10, 0, decimal.Zero)
	m.PurchaseRejected("rise", "invalid_amount")
	m.SnapshotSaveFailed()

	n, err := testutil.GatherAndCount(m.Registry(),
		"rewardtrack_purchases_total",
		"rewardtrack_purchase_rejections_total",
		"rewardtrack_snapshot_save_failures_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			values[mf.GetName()] += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, values["rewardtrack_purchases_total"])
	assert.Equal(t, 257.0, values["rewardtrack_points_earned_total"])
	assert.Equal(t, 300.0, values["rewardtrack_points_redeemed_total"])
	assert.Equal(t, 9.0, values["rewardtrack_discount_value_total"])
	assert.Equal(t, 1.0, values["rewardtrack_snapshot_save_failures_total"])
}
