package api

import "portfoliotracker/pkg/portfolio"

// holdingPayload covers both create and update. Numeric fields are pointers
// so an explicit zero can be told apart from an omitted field.
type holdingPayload struct {
	Name         *string           `json:"name"`
	Ticker       *string           `json:"ticker"`
	AssetType    *string           `json:"asset_type"`
	Shares       *float64          `json:"shares"`
	CostBasis    *portfolio.Amount `json:"cost_basis"`
	CurrentValue *portfolio.Amount `json:"current_value"`
	PurchaseDate *string           `json:"purchase_date"`
	Notes        *string           `json:"notes"`
}

type allocationPayload struct {
	AssetType        string  `json:"asset_type"`
	TargetPercentage float64 `json:"target_percentage"`
}

type rebalanceAdvicePayload struct {
	BaseURL      string `json:"base_url"`
	APIKey       string `json:"api_key"`
	Model        string `json:"model"`
	RiskProfile  string `json:"risk_profile"`
	Horizon      string `json:"horizon"`
	CustomPrompt string `json:"custom_prompt"`
}
