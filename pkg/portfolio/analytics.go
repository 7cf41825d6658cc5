package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"
)

// rebalanceDeadzone is the dollar band around a target inside which no
// trade is recommended, so rounding noise never churns Buy/Sell flips.
var rebalanceDeadzone = decimal.NewFromInt(1)

// Summarize computes the aggregate portfolio summary from a holdings
// snapshot. It is a pure function: no Core state is read.
func Summarize(holdings []Holding) PortfolioSummary {
	totalValue := decimal.Zero
	totalCost := decimal.Zero
	byType := map[string]decimal.Decimal{}
	for _, h := range holdings {
		totalValue = totalValue.Add(h.CurrentValue.Decimal)
		totalCost = totalCost.Add(h.CostBasis.Decimal)
		byType[h.AssetType] = byType[h.AssetType].Add(h.CurrentValue.Decimal)
	}

	gainLoss := totalValue.Sub(totalCost)
	gainLossPct := 0.0
	if !totalCost.IsZero() {
		gainLossPct = gainLoss.Div(totalCost).InexactFloat64() * 100
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	allocation := make([]AllocationSlice, 0, len(types))
	for _, t := range types {
		value := byType[t]
		percentage := 0.0
		if !totalValue.IsZero() {
			percentage = value.Div(totalValue).InexactFloat64() * 100
		}
		allocation = append(allocation, AllocationSlice{
			AssetType:  t,
			Value:      Amount{value},
			Percentage: percentage,
		})
	}

	return PortfolioSummary{
		TotalValue:  Amount{totalValue},
		TotalCost:   Amount{totalCost},
		GainLoss:    Amount{gainLoss},
		GainLossPct: gainLossPct,
		Count:       len(holdings),
		Allocation:  allocation,
	}
}

// BuildRebalancePlan derives Buy/Sell/Hold recommendations from the current
// holdings and the target allocation rows. Targets drive the output set:
// every target row yields a recommendation, whether or not the asset type
// is currently held.
func BuildRebalancePlan(holdings []Holding, targets []TargetAllocation) RebalancePlan {
	totalValue := decimal.Zero
	current := map[string]decimal.Decimal{}
	for _, h := range holdings {
		totalValue = totalValue.Add(h.CurrentValue.Decimal)
		current[h.AssetType] = current[h.AssetType].Add(h.CurrentValue.Decimal)
	}

	recommendations := make([]Recommendation, 0, len(targets))
	for _, t := range targets {
		currentValue := current[t.AssetType]
		currentPct := 0.0
		if !totalValue.IsZero() {
			currentPct = currentValue.Div(totalValue).InexactFloat64() * 100
		}
		targetValue := totalValue.Mul(decimal.NewFromFloat(t.TargetPercentage)).Div(decimal.NewFromInt(100))
		difference := targetValue.Sub(currentValue)

		action := ActionHold
		switch {
		case difference.GreaterThan(rebalanceDeadzone):
			action = ActionBuy
		case difference.LessThan(rebalanceDeadzone.Neg()):
			action = ActionSell
		}

		recommendations = append(recommendations, Recommendation{
			AssetType:    t.AssetType,
			CurrentValue: Amount{currentValue},
			CurrentPct:   currentPct,
			TargetPct:    t.TargetPercentage,
			TargetValue:  Amount{targetValue},
			Difference:   Amount{difference},
			Action:       action,
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].AssetType < recommendations[j].AssetType
	})

	return RebalancePlan{
		TotalValue:      Amount{totalValue},
		Recommendations: recommendations,
	}
}

// GetPortfolioSummary loads the current holdings and summarizes them.
func (c *Core) GetPortfolioSummary() (PortfolioSummary, error) {
	holdings, err := c.ListHoldings()
	if err != nil {
		return PortfolioSummary{}, err
	}
	return Summarize(holdings), nil
}

// GetRebalancePlan loads the current snapshot and builds recommendations.
func (c *Core) GetRebalancePlan() (RebalancePlan, error) {
	holdings, err := c.ListHoldings()
	if err != nil {
		return RebalancePlan{}, err
	}
	targets, err := c.GetTargetAllocations()
	if err != nil {
		return RebalancePlan{}, err
	}
	return BuildRebalancePlan(holdings, targets), nil
}
