package portfolio

import (
	"database/sql"
	"errors"
)

type demoHolding struct {
	name         string
	ticker       string
	assetType    string
	shares       float64
	costBasis    float64
	currentValue float64
	purchaseDate string
}

var demoHoldings = []demoHolding{
	// Stocks
	{"Apple Inc.", "AAPL", "stock", 50, 7500, 11200, "2021-03-15"},
	{"Microsoft Corp.", "MSFT", "stock", 30, 6200, 9800, "2020-11-10"},
	{"Alphabet Inc.", "GOOGL", "stock", 15, 25000, 32400, "2020-08-10"},
	{"Amazon.com Inc.", "AMZN", "stock", 10, 15200, 19800, "2021-01-22"},
	{"NVIDIA Corp.", "NVDA", "stock", 20, 4100, 17600, "2022-03-05"},
	{"JPMorgan Chase", "JPM", "stock", 40, 6800, 8400, "2020-12-14"},
	{"Johnson & Johnson", "JNJ", "stock", 30, 4500, 4750, "2019-09-30"},

	// Bonds
	{"US Treasury Bond", "", "bond", 0, 20000, 20400, "2022-01-20"},
	{"US I Bond", "", "bond", 0, 10000, 11350, "2022-05-01"},
	{"iShares Bond ETF", "AGG", "bond", 100, 9800, 9950, "2021-08-05"},
	{"Vanguard Short-Term Bond", "VBIRX", "bond", 0, 8500, 8300, "2021-10-08"},

	// ETFs
	{"Vanguard S&P 500", "VOO", "etf", 40, 12000, 15600, "2019-06-01"},
	{"Invesco QQQ Trust", "QQQ", "etf", 25, 9200, 11800, "2021-06-18"},
	{"Vanguard Intl Stock ETF", "VXUS", "etf", 80, 4800, 5200, "2022-01-10"},

	// Mutual funds
	{"Fidelity 500 Fund", "FXAIX", "mutual_fund", 0, 5000, 6300, "2020-04-12"},
	{"Vanguard Total Bond", "VBTLX", "mutual_fund", 0, 8000, 7850, "2020-07-01"},
	{"T. Rowe Price Growth", "PRGFX", "mutual_fund", 0, 7500, 9900, "2019-11-15"},
	{"Schwab Total Market", "SWTSX", "mutual_fund", 0, 6000, 7400, "2021-04-20"},
}

// SeedDemoData populates the database with sample holdings and the default
// target allocations. Existing data is left untouched; only holdings whose
// (name, asset_type) pair is not already present are inserted. Seeding does
// not write audit entries: it is bootstrap data, not a user action.
func (c *Core) SeedDemoData() (int, error) {
	now := nowUTC()
	inserted := 0
	for _, d := range demoHoldings {
		var exists int
		err := c.db.QueryRow(
			"SELECT 1 FROM holdings WHERE name = ? AND asset_type = ?",
			d.name, d.assetType,
		).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return inserted, WrapError(ErrCodeDatabase, "seed lookup", err)
		}
		if _, err := c.db.Exec(`
			INSERT INTO holdings
				(name, ticker, asset_type, shares, cost_basis, current_value,
				 purchase_date, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, '', ?, ?)`,
			d.name, d.ticker, d.assetType, d.shares, d.costBasis,
			d.currentValue, d.purchaseDate, now, now,
		); err != nil {
			return inserted, WrapError(ErrCodeDatabase, "seed holding", err)
		}
		inserted++
	}

	for _, assetType := range DefaultAssetTypes {
		if _, err := c.db.Exec(`
			INSERT INTO target_allocations (asset_type, target_percentage)
			VALUES (?, ?)
			ON CONFLICT(asset_type) DO NOTHING`,
			assetType, DefaultTargetPercentages[assetType],
		); err != nil {
			return inserted, WrapError(ErrCodeDatabase, "seed allocation", err)
		}
	}
	return inserted, nil
}
