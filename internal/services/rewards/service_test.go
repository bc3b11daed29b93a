package rewards_test

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardtrack/internal/catalog"
	"rewardtrack/internal/domain"
	"rewardtrack/internal/domain/types"
	"rewardtrack/internal/ledger"
	"rewardtrack/internal/policy"
	"rewardtrack/internal/services/rewards"
	"rewardtrack/internal/store"
)

var (
	wednesday = types.NewDate(2025, time.January, 8)
	thursday  = types.NewDate(2025, time.January, 9)
)

type fixture struct {
	svc    *rewards.Service
	ledger *ledger.Store
	store  *store.MemoryStore
	rec    *fakeRecorder
}

func newFixture(t *testing.T, c *catalog.Catalog, seed string) fixture {
	t.Helper()
	var blob []byte
	if seed != "" {
		blob = []byte(seed)
	}
	st := store.NewMemoryStore(blob)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l, err := ledger.Restore(c, st, logger)
	require.NoError(t, err)
	rec := &fakeRecorder{}
	svc := rewards.New(c, l, st, rewards.WithLogger(logger), rewards.WithRecorder(rec))
	return fixture{svc: svc, ledger: l, store: st, rec: rec}
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, amount(want).Equal(got), "want %s, got %s", want, got)
}

type fakeRecorder struct {
	mu       sync.Mutex
	recorded int
	rejected map[string]int
	failed   int
}

func (f *fakeRecorder) PurchaseRecorded(types.ProgramID, int64, int64, decimal.Decimal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded++
}

func (f *fakeRecorder) PurchaseRejected(_ types.ProgramID, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rejected == nil {
		f.rejected = map[string]int{}
	}
	f.rejected[reason]++
}

func (f *fakeRecorder) SnapshotSaveFailed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed++
}

func flatRateCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Program{
		ID:            "flat",
		Name:          "Flat",
		Policy:        policy.FlatRate{Rate: amount("0.03"), Step: 100},
		InitialPoints: 1000,
	})
	require.NoError(t, err)
	return c
}

func TestRecordPurchase_FlatRate(t *testing.T) {
	f := newFixture(t, flatRateCatalog(t), "")

	receipt, err := f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: "flat", Amount: amount("247.80"), Date: thursday,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(247), receipt.Earned)
	assert.Equal(t, int64(1247), receipt.NewBalance)
	assert.NoError(t, receipt.Warning)

	receipt, err = f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: "flat", Amount: amount("20"), Date: thursday, RedeemPoints: 300,
	})
	require.NoError(t, err)
	assertMoney(t, "9.00", receipt.Discount)
	assert.Equal(t, int64(1247+20-300), receipt.NewBalance)

	_, err = f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: "flat", Amount: amount("20"), Date: thursday, RedeemPoints: 250,
	})
	require.ErrorIs(t, err, types.ErrInvalidRedemptionAmount)
}

func TestRecordPurchase_DayMultiplier(t *testing.T) {
	f := newFixture(t, catalog.Default(), "")

	receipt, err := f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: catalog.Fluent, Amount: amount("100"), Date: wednesday,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), receipt.Earned)

	receipt, err = f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: catalog.Fluent, Amount: amount("100"), Date: thursday,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), receipt.Earned)
	assert.Equal(t, int64(20), receipt.NewBalance)

	receipt, err = f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: catalog.Fluent, Amount: amount("30"), Date: thursday, RedeemPoints: 13,
	})
	require.NoError(t, err)
	assertMoney(t, "13", receipt.Discount)
	assert.Equal(t, int64(20+1-13), receipt.NewBalance)
}

// Off-tier amounts can be previewed but never redeemed.
func TestInterpolatedTiers_PreviewVersusRedemption(t *testing.T) {
	f := newFixture(t, catalog.Default(), `{"trulieve":{"points":1500,"history":[]}}`)

	preview, err := f.svc.PreviewRedemption(catalog.Trulieve, 600)
	require.NoError(t, err)
	assertMoney(t, "42.00", preview.Value)
	assert.False(t, preview.Valid)

	preview, err = f.svc.PreviewRedemption(catalog.Trulieve, 500)
	require.NoError(t, err)
	assertMoney(t, "35", preview.Value)
	assert.True(t, preview.Valid)

	_, err = f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: catalog.Trulieve, Amount: amount("10"), Date: thursday, RedeemPoints: 600,
	})
	require.ErrorIs(t, err, types.ErrInvalidRedemptionAmount)

	receipt, err := f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: catalog.Trulieve, Amount: amount("10"), Date: thursday, RedeemPoints: 500,
	})
	require.NoError(t, err)
	assertMoney(t, "35", receipt.Discount)
	assert.Equal(t, int64(1010), receipt.NewBalance)
}

func TestPreviewRedemption_Failures(t *testing.T) {
	f := newFixture(t, catalog.Default(), "")

	_, err := f.svc.PreviewRedemption("nope", 100)
	require.ErrorIs(t, err, types.ErrProgramNotFound)
	_, err = f.svc.PreviewRedemption(catalog.Rise, -100)
	require.ErrorIs(t, err, types.ErrInvalidRedemptionAmount)
}

func TestRecordPurchase_ValidationOrder(t *testing.T) {
	f := newFixture(t, catalog.Default(), "")

	cases := []struct {
		name string
		req  domain.PurchaseRequest
		want error
	}{
		{
			name: "unknown program first",
			req:  domain.PurchaseRequest{ProgramID: "nope"},
			want: types.ErrProgramNotFound,
		},
		{
			name: "missing date before amount",
			req:  domain.PurchaseRequest{ProgramID: catalog.Rise, Amount: amount("-1"), RedeemPoints: 99999},
			want: types.ErrMissingDate,
		},
		{
			name: "zero amount",
			req:  domain.PurchaseRequest{ProgramID: catalog.Rise, Date: thursday},
			want: types.ErrInvalidAmount,
		},
		{
			name: "negative amount before balance",
			req:  domain.PurchaseRequest{ProgramID: catalog.Rise, Date: thursday, Amount: amount("-5"), RedeemPoints: 99999},
			want: types.ErrInvalidAmount,
		},
		{
			name: "balance before policy",
			req:  domain.PurchaseRequest{ProgramID: catalog.Rise, Date: thursday, Amount: amount("5"), RedeemPoints: 1650},
			want: types.ErrRedemptionExceedsBalance,
		},
		{
			name: "negative redemption",
			req:  domain.PurchaseRequest{ProgramID: catalog.Rise, Date: thursday, Amount: amount("5"), RedeemPoints: -100},
			want: types.ErrRedemptionExceedsBalance,
		},
		{
			name: "policy last",
			req:  domain.PurchaseRequest{ProgramID: catalog.Rise, Date: thursday, Amount: amount("5"), RedeemPoints: 150},
			want: types.ErrInvalidRedemptionAmount,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.RecordPurchase(tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}

	bal, err := f.svc.Balance(catalog.Rise)
	require.NoError(t, err)
	assert.Equal(t, int64(1637), bal, "rejected purchases change nothing")
	hist, err := f.svc.History(catalog.Rise)
	require.NoError(t, err)
	assert.Empty(t, hist)
	assert.Zero(t, f.store.Saves())
	assert.Equal(t, 1, f.rec.rejected["missing_date"])
	assert.Equal(t, 2, f.rec.rejected["invalid_amount"])
}

func TestRecordPurchase_RedemptionAboveBalanceFailsForEveryProgram(t *testing.T) {
	c := catalog.Default()
	f := newFixture(t, c, "")

	for _, p := range c.Programs() {
		bal, err := f.svc.Balance(p.ID)
		require.NoError(t, err)
		_, err = f.svc.RecordPurchase(domain.PurchaseRequest{
			ProgramID: p.ID, Amount: amount("10"), Date: thursday, RedeemPoints: bal + 1,
		})
		require.ErrorIs(t, err, types.ErrRedemptionExceedsBalance, p.ID)
	}
}

func TestRecordPurchase_BalanceInvariant(t *testing.T) {
	c := catalog.Default()
	f := newFixture(t, c, "")
	rng := rand.New(rand.NewSource(7))
	days := []types.Date{wednesday, thursday}
	recorded := 0

	for i := 0; i < 400; i++ {
		p := c.Programs()[rng.Intn(4)]
		before, err := f.svc.Balance(p.ID)
		require.NoError(t, err)
		beforeHist, err := f.svc.History(p.ID)
		require.NoError(t, err)

		var affordable []int64
		for _, tier := range p.RedemptionTiers {
			if tier.Points <= before && p.Policy.IsValidRedemption(tier.Points) {
				affordable = append(affordable, tier.Points)
			}
		}
		// Tier-only programs reject a zero redemption, so they always redeem.
		zeroOK := p.Policy.IsValidRedemption(0)
		if !zeroOK && len(affordable) == 0 {
			continue
		}
		redeem := int64(0)
		if len(affordable) > 0 && (!zeroOK || rng.Intn(2) == 0) {
			redeem = affordable[rng.Intn(len(affordable))]
		}
		spent := decimal.New(int64(rng.Intn(40000)+1), -2)

		receipt, err := f.svc.RecordPurchase(domain.PurchaseRequest{
			ProgramID: p.ID, Amount: spent, Date: days[rng.Intn(2)], RedeemPoints: redeem,
		})
		require.NoError(t, err)
		recorded++
		assert.Equal(t, before+receipt.Earned-redeem, receipt.NewBalance)
		assert.GreaterOrEqual(t, receipt.NewBalance, int64(0))

		after, err := f.svc.Balance(p.ID)
		require.NoError(t, err)
		assert.Equal(t, receipt.NewBalance, after)

		hist, err := f.svc.History(p.ID)
		require.NoError(t, err)
		require.Len(t, hist, len(beforeHist)+1)
		assert.Equal(t, receipt.Earned, hist[0].PointsEarned)
		assert.Equal(t, redeem, hist[0].PointsRedeemed)
		assert.True(t, spent.Equal(hist[0].Amount))
	}
	assert.Positive(t, recorded)
	assert.Equal(t, recorded, f.store.Saves())
}

func TestRecordPurchase_TierOnlyProgramRejectsZeroRedemption(t *testing.T) {
	f := newFixture(t, catalog.Default(), "")

	_, err := f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: catalog.Trulieve, Amount: amount("30"), Date: thursday,
	})
	require.ErrorIs(t, err, types.ErrInvalidRedemptionAmount)

	bal, err := f.svc.Balance(catalog.Trulieve)
	require.NoError(t, err)
	assert.Equal(t, int64(287), bal)
	hist, err := f.svc.History(catalog.Trulieve)
	require.NoError(t, err)
	assert.Empty(t, hist)
	assert.Zero(t, f.store.Saves())
}

func TestRecordPurchase_PersistsSnapshot(t *testing.T) {
	c := catalog.Default()
	f := newFixture(t, c, "")

	_, err := f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: catalog.Rise, Amount: amount("63.20"), Date: thursday, RedeemPoints: 300,
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.store.Saves())

	restored, err := ledger.Restore(c, f.store, nil)
	require.NoError(t, err)
	bal, err := restored.Balance(catalog.Rise)
	require.NoError(t, err)
	assert.Equal(t, int64(1637+63-300), bal)
	hist, err := restored.History(catalog.Rise)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assertMoney(t, "9", hist[0].DiscountValue)
	assert.Equal(t, thursday, hist[0].Date)
}

func TestRecordPurchase_SaveFailureIsAWarning(t *testing.T) {
	f := newFixture(t, catalog.Default(), "")
	f.store.SaveErr = errors.New("disk full")

	receipt, err := f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: catalog.Trulieve, Amount: amount("13"), Date: thursday, RedeemPoints: 250,
	})
	require.NoError(t, err)
	require.ErrorIs(t, receipt.Warning, types.ErrPersistenceWrite)
	assert.Equal(t, int64(287+13-250), receipt.NewBalance)

	bal, err := f.svc.Balance(catalog.Trulieve)
	require.NoError(t, err)
	assert.Equal(t, receipt.NewBalance, bal, "memory stays authoritative")
	hist, err := f.svc.History(catalog.Trulieve)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
	assert.Equal(t, 1, f.rec.failed)
}

func TestRecordPurchase_ExpectedBalance(t *testing.T) {
	f := newFixture(t, catalog.Default(), "")
	stale := int64(1000)
	current := int64(1637)

	_, err := f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: catalog.Rise, Amount: amount("10"), Date: thursday, ExpectedBalance: &stale,
	})
	require.ErrorIs(t, err, types.ErrStaleState)

	receipt, err := f.svc.RecordPurchase(domain.PurchaseRequest{
		ProgramID: catalog.Rise, Amount: amount("10"), Date: thursday, ExpectedBalance: &current,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1647), receipt.NewBalance)
}

func TestRecordPurchase_ConcurrentCallers(t *testing.T) {
	f := newFixture(t, catalog.Default(), "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RecordPurchase(domain.PurchaseRequest{
				ProgramID: catalog.Fluent, Amount: amount("40"), Date: thursday,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	bal, err := f.svc.Balance(catalog.Fluent)
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal)
	hist, err := f.svc.History(catalog.Fluent)
	require.NoError(t, err)
	assert.Len(t, hist, 50)
	assert.Equal(t, 50, f.rec.recorded)
}

func TestParseAmount(t *testing.T) {
	d, err := rewards.ParseAmount(" 247.80 ")
	require.NoError(t, err)
	assertMoney(t, "247.8", d)

	for _, in := range []string{"", "abc", "NaN", "Inf", "-Infinity", "1e400x"} {
		_, err := rewards.ParseAmount(in)
		require.ErrorIs(t, err, types.ErrInvalidAmount, in)
	}
}

func TestPlanPurchase(t *testing.T) {
	f := newFixture(t, catalog.Default(), `{"fluent":{"points":10,"history":[]}}`)

	plan, err := f.svc.PlanPurchase(catalog.Fluent, amount("8"), 50)
	require.NoError(t, err)
	assert.Equal(t, int64(10), plan.Points, "clamped to balance")
	assertMoney(t, "10", plan.Savings)
	assertMoney(t, "0", plan.EstimatedTotal)

	plan, err = f.svc.PlanPurchase(catalog.Rise, amount("60"), 300)
	require.NoError(t, err)
	assertMoney(t, "9", plan.Savings)
	assertMoney(t, "51", plan.EstimatedTotal)

	_, err = f.svc.PlanPurchase(catalog.Trulieve, amount("60"), 500)
	require.ErrorIs(t, err, types.ErrInvalidRedemptionAmount, "287 after clamping is not a tier")

	_, err = f.svc.PlanPurchase(catalog.Rise, amount("0"), 0)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestTiers(t *testing.T) {
	f := newFixture(t, catalog.Default(), "")

	tiers, err := f.svc.Tiers(catalog.Trulieve)
	require.NoError(t, err)
	require.Len(t, tiers, 5)
	assert.True(t, tiers[1].Affordable)
	assert.False(t, tiers[2].Affordable)

	_, err = f.svc.Tiers("nope")
	require.ErrorIs(t, err, types.ErrProgramNotFound)
}

func TestReason(t *testing.T) {
	assert.Equal(t, "stale_state", rewards.Reason(types.ErrStaleState))
	assert.Equal(t, "internal", rewards.Reason(errors.New("boom")))
	assert.Equal(t, "", rewards.Reason(nil))
}
