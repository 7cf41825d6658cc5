package portfolio

// DefaultAssetTypes lists the asset types seeded with a target allocation
// when the database is created. asset_type itself is open-ended: any string
// a client sends is stored as-is.
var DefaultAssetTypes = []string{"stock", "bond", "etf", "mutual_fund"}

// DefaultTargetPercentages maps the seeded asset types to their initial
// target allocation percentages.
var DefaultTargetPercentages = map[string]float64{
	"stock":       60,
	"bond":        30,
	"etf":         5,
	"mutual_fund": 5,
}

// Holding represents one position in the portfolio.
type Holding struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Ticker       string  `json:"ticker"`
	AssetType    string  `json:"asset_type"`
	Shares       float64 `json:"shares"`
	CostBasis    Amount  `json:"cost_basis"`
	CurrentValue Amount  `json:"current_value"`
	PurchaseDate string  `json:"purchase_date"`
	Notes        string  `json:"notes"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// GainLoss returns the unrealized gain of the holding. It is always derived,
// never stored.
func (h Holding) GainLoss() Amount {
	return Amount{h.CurrentValue.Sub(h.CostBasis.Decimal)}
}

// AddHoldingRequest defines inputs to create a holding. Pointer fields
// distinguish "absent" from an explicit zero.
type AddHoldingRequest struct {
	Name         string
	Ticker       string
	AssetType    string
	Shares       *float64
	CostBasis    *Amount
	CurrentValue *Amount
	PurchaseDate string
	Notes        string
}

// UpdateHoldingRequest defines inputs for a partial update. Nil fields keep
// the stored value; empty text fields also keep the stored value, matching
// the create/update forms that omit untouched inputs.
type UpdateHoldingRequest struct {
	Name         *string
	Ticker       *string
	AssetType    *string
	Shares       *float64
	CostBasis    *Amount
	CurrentValue *Amount
	PurchaseDate *string
	Notes        *string
}

// TargetAllocation is the desired percentage of total portfolio value for
// one asset type.
type TargetAllocation struct {
	AssetType        string  `json:"asset_type"`
	TargetPercentage float64 `json:"target_percentage"`
}

// AllocationSlice is one asset type's share of the current portfolio value.
type AllocationSlice struct {
	AssetType  string  `json:"asset_type"`
	Value      Amount  `json:"value"`
	Percentage float64 `json:"percentage"`
}

// PortfolioSummary aggregates the whole portfolio.
type PortfolioSummary struct {
	TotalValue  Amount            `json:"total_value"`
	TotalCost   Amount            `json:"total_cost"`
	GainLoss    Amount            `json:"gain_loss"`
	GainLossPct float64           `json:"gain_loss_pct"`
	Count       int               `json:"count"`
	Allocation  []AllocationSlice `json:"allocation"`
}

// Recommendation is one rebalancing suggestion for an asset type.
type Recommendation struct {
	AssetType    string  `json:"asset_type"`
	CurrentValue Amount  `json:"current_value"`
	CurrentPct   float64 `json:"current_pct"`
	TargetPct    float64 `json:"target_pct"`
	TargetValue  Amount  `json:"target_value"`
	Difference   Amount  `json:"difference"`
	Action       string  `json:"action"`
}

// RebalancePlan is the full set of recommendations, one per target
// allocation row.
type RebalancePlan struct {
	TotalValue      Amount           `json:"total_value"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Rebalance actions.
const (
	ActionBuy  = "Buy"
	ActionSell = "Sell"
	ActionHold = "Hold"
)
