package portfolio

import (
	"testing"
)

func TestSummarize(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	testHolding(t, core, "Apple Inc.", "AAPL", "stock", 7500, 11200)
	testHolding(t, core, "US Treasury Bond", "", "bond", 20000, 20400)
	testHolding(t, core, "Vanguard S&P 500", "VOO", "etf", 12000, 15600)

	summary, err := core.GetPortfolioSummary()
	assertNoError(t, err, "GetPortfolioSummary")

	assertAmountEquals(t, summary.TotalValue, 47200, "total value")
	assertAmountEquals(t, summary.TotalCost, 39500, "total cost")
	assertAmountEquals(t, summary.GainLoss, 7700, "gain/loss")
	assertFloatEquals(t, summary.GainLossPct, 7700.0/39500.0*100, "gain/loss pct")
	if summary.Count != 3 {
		t.Errorf("count: got %d", summary.Count)
	}

	if len(summary.Allocation) != 3 {
		t.Fatalf("expected 3 allocation slices, got %d", len(summary.Allocation))
	}
	// Slices are sorted by asset type.
	if summary.Allocation[0].AssetType != "bond" ||
		summary.Allocation[1].AssetType != "etf" ||
		summary.Allocation[2].AssetType != "stock" {
		t.Errorf("unexpected slice order: %+v", summary.Allocation)
	}
	assertAmountEquals(t, summary.Allocation[0].Value, 20400, "bond value")
	assertFloatEquals(t, summary.Allocation[0].Percentage, 20400.0/47200.0*100, "bond pct")
}

func TestSummarizeEmptyPortfolio(t *testing.T) {
	summary := Summarize(nil)

	assertAmountEquals(t, summary.TotalValue, 0, "total value")
	assertFloatEquals(t, summary.GainLossPct, 0, "gain pct with zero cost")
	if summary.Count != 0 {
		t.Errorf("count: got %d", summary.Count)
	}
	if len(summary.Allocation) != 0 {
		t.Errorf("expected no slices, got %d", len(summary.Allocation))
	}
}

func TestSummarizeZeroCostBasis(t *testing.T) {
	holdings := []Holding{
		{Name: "Gift Shares", AssetType: "stock", CostBasis: NewAmount(0), CurrentValue: NewAmount(500)},
	}
	summary := Summarize(holdings)
	assertAmountEquals(t, summary.GainLoss, 500, "gain/loss")
	assertFloatEquals(t, summary.GainLossPct, 0, "pct guarded against zero cost")
}

func TestBuildRebalancePlan(t *testing.T) {
	holdings := []Holding{
		{AssetType: "stock", CurrentValue: NewAmount(8000), CostBasis: NewAmount(7000)},
		{AssetType: "bond", CurrentValue: NewAmount(2000), CostBasis: NewAmount(2000)},
	}
	targets := []TargetAllocation{
		{AssetType: "stock", TargetPercentage: 60},
		{AssetType: "bond", TargetPercentage: 30},
		{AssetType: "etf", TargetPercentage: 10},
	}

	plan := BuildRebalancePlan(holdings, targets)
	assertAmountEquals(t, plan.TotalValue, 10000, "total value")
	if len(plan.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(plan.Recommendations))
	}

	byType := map[string]Recommendation{}
	for _, rec := range plan.Recommendations {
		byType[rec.AssetType] = rec
	}

	stock := byType["stock"]
	assertFloatEquals(t, stock.CurrentPct, 80, "stock current pct")
	assertAmountEquals(t, stock.TargetValue, 6000, "stock target value")
	assertAmountEquals(t, stock.Difference, -2000, "stock difference")
	if stock.Action != ActionSell {
		t.Errorf("stock action: got %q", stock.Action)
	}

	bond := byType["bond"]
	assertAmountEquals(t, bond.Difference, 1000, "bond difference")
	if bond.Action != ActionBuy {
		t.Errorf("bond action: got %q", bond.Action)
	}

	// etf is a target with no holdings; it still gets a recommendation.
	etf := byType["etf"]
	assertFloatEquals(t, etf.CurrentPct, 0, "etf current pct")
	assertAmountEquals(t, etf.TargetValue, 1000, "etf target value")
	if etf.Action != ActionBuy {
		t.Errorf("etf action: got %q", etf.Action)
	}
}

func TestBuildRebalancePlanDeadzone(t *testing.T) {
	targets := []TargetAllocation{{AssetType: "stock", TargetPercentage: 50}}

	// 50% of 1001 is 500.50, a drift of 0.50: inside the one-dollar band.
	holdings := []Holding{
		{AssetType: "stock", CurrentValue: NewAmount(500)},
		{AssetType: "bond", CurrentValue: NewAmount(501)},
	}
	plan := BuildRebalancePlan(holdings, targets)
	if plan.Recommendations[0].Action != ActionHold {
		t.Errorf("drift within deadzone should Hold, got %q", plan.Recommendations[0].Action)
	}

	// A five-dollar shortfall crosses the band.
	holdings = []Holding{
		{AssetType: "stock", CurrentValue: NewAmount(495)},
		{AssetType: "bond", CurrentValue: NewAmount(505)},
	}
	plan = BuildRebalancePlan(holdings, targets)
	if plan.Recommendations[0].Action != ActionBuy {
		t.Errorf("shortfall past deadzone should Buy, got %q", plan.Recommendations[0].Action)
	}

	// And a five-dollar excess the other way.
	holdings = []Holding{
		{AssetType: "stock", CurrentValue: NewAmount(505)},
		{AssetType: "bond", CurrentValue: NewAmount(495)},
	}
	plan = BuildRebalancePlan(holdings, targets)
	if plan.Recommendations[0].Action != ActionSell {
		t.Errorf("excess past deadzone should Sell, got %q", plan.Recommendations[0].Action)
	}
}

func TestBuildRebalancePlanEmptyPortfolio(t *testing.T) {
	targets := []TargetAllocation{
		{AssetType: "stock", TargetPercentage: 60},
		{AssetType: "bond", TargetPercentage: 40},
	}
	plan := BuildRebalancePlan(nil, targets)
	assertAmountEquals(t, plan.TotalValue, 0, "total value")
	for _, rec := range plan.Recommendations {
		assertFloatEquals(t, rec.CurrentPct, 0, "current pct with no value")
		assertAmountEquals(t, rec.TargetValue, 0, "target value with no value")
		if rec.Action != ActionHold {
			t.Errorf("%s: empty portfolio should Hold, got %q", rec.AssetType, rec.Action)
		}
	}
}
