package portfolio

import (
	"database/sql"
	"errors"
	"strings"
)

const holdingColumns = "id, name, ticker, asset_type, shares, cost_basis, current_value, purchase_date, notes, created_at, updated_at"

// ListHoldings returns every holding ordered by (asset_type, name). The
// table is small by design; there is no pagination.
func (c *Core) ListHoldings() ([]Holding, error) {
	rows, err := c.db.Query("SELECT " + holdingColumns + " FROM holdings ORDER BY asset_type, name")
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list holdings", err)
	}
	defer rows.Close()

	holdings := []Holding{}
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan holding", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "list holdings", err)
	}
	return holdings, nil
}

// GetHolding returns a single holding by id.
func (c *Core) GetHolding(id int64) (Holding, error) {
	row := c.db.QueryRow("SELECT "+holdingColumns+" FROM holdings WHERE id = ?", id)
	h, err := scanHolding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Holding{}, NewError(ErrCodeNotFound, "Not found")
	}
	if err != nil {
		return Holding{}, WrapError(ErrCodeDatabase, "get holding", err)
	}
	return h, nil
}

// AddHolding validates and persists a new holding, then appends an ADD
// audit entry. An explicit zero cost basis or current value is valid; only
// absent fields are rejected.
func (c *Core) AddHolding(req AddHoldingRequest) (int64, error) {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.AssetType) == "" {
		missing = append(missing, "asset_type")
	}
	if req.CostBasis == nil {
		missing = append(missing, "cost_basis")
	}
	if req.CurrentValue == nil {
		missing = append(missing, "current_value")
	}
	if len(missing) > 0 {
		return 0, NewError(ErrCodeValidation, "Missing required fields: "+strings.Join(missing, ", "))
	}

	name := strings.TrimSpace(req.Name)
	ticker := normalizeTicker(req.Ticker)
	shares := 0.0
	if req.Shares != nil {
		shares = *req.Shares
	}
	now := nowUTC()

	result, err := c.db.Exec(`
		INSERT INTO holdings
			(name, ticker, asset_type, shares, cost_basis, current_value,
			 purchase_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name, ticker, req.AssetType, shares, *req.CostBasis, *req.CurrentValue,
		req.PurchaseDate, strings.TrimSpace(req.Notes), now, now,
	)
	if err != nil {
		return 0, WrapError(ErrCodeDatabase, "insert holding", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, WrapError(ErrCodeDatabase, "insert holding", err)
	}

	c.recordAudit(AuditActionAdd, ticker, name,
		AmountField("current_value", *req.CurrentValue),
		AmountField("cost_basis", *req.CostBasis),
	)
	return id, nil
}

// UpdateHolding applies a partial update: any field omitted from the
// request keeps its stored value, and created_at is never touched. The EDIT
// audit entry carries before/after deltas alongside the new absolute values.
func (c *Core) UpdateHolding(id int64, req UpdateHoldingRequest) error {
	prev, err := c.GetHolding(id)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(textOr(req.Name, prev.Name))
	ticker := normalizeTicker(textOr(req.Ticker, prev.Ticker))
	assetType := textOr(req.AssetType, prev.AssetType)
	purchaseDate := textOr(req.PurchaseDate, prev.PurchaseDate)
	notes := strings.TrimSpace(textOr(req.Notes, prev.Notes))
	shares := prev.Shares
	if req.Shares != nil {
		shares = *req.Shares
	}
	costBasis := prev.CostBasis
	if req.CostBasis != nil {
		costBasis = *req.CostBasis
	}
	currentValue := prev.CurrentValue
	if req.CurrentValue != nil {
		currentValue = *req.CurrentValue
	}

	if _, err := c.db.Exec(`
		UPDATE holdings
		SET name=?, ticker=?, asset_type=?, shares=?, cost_basis=?,
			current_value=?, purchase_date=?, notes=?, updated_at=?
		WHERE id=?`,
		name, ticker, assetType, shares, costBasis, currentValue,
		purchaseDate, notes, nowUTC(), id,
	); err != nil {
		return WrapError(ErrCodeDatabase, "update holding", err)
	}

	valueChange := Amount{currentValue.Sub(prev.CurrentValue.Decimal)}
	costChange := Amount{costBasis.Sub(prev.CostBasis.Decimal)}
	c.recordAudit(AuditActionEdit, ticker, name,
		AmountField("value_change", valueChange),
		AmountField("cost_basis_change", costChange),
		AmountField("current_value", currentValue),
		AmountField("cost_basis", costBasis),
	)
	return nil
}

// DeleteHolding removes a holding permanently and appends a DELETE audit
// entry carrying the last known values.
func (c *Core) DeleteHolding(id int64) error {
	prev, err := c.GetHolding(id)
	if err != nil {
		return err
	}
	if _, err := c.db.Exec("DELETE FROM holdings WHERE id = ?", id); err != nil {
		return WrapError(ErrCodeDatabase, "delete holding", err)
	}
	c.recordAudit(AuditActionDelete, prev.Ticker, prev.Name,
		AmountField("current_value", prev.CurrentValue),
		AmountField("cost_basis", prev.CostBasis),
	)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHolding(row rowScanner) (Holding, error) {
	var h Holding
	err := row.Scan(&h.ID, &h.Name, &h.Ticker, &h.AssetType, &h.Shares,
		&h.CostBasis, &h.CurrentValue, &h.PurchaseDate, &h.Notes,
		&h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// textOr keeps the previous value when the incoming field is nil or blank,
// mirroring how the edit form omits untouched inputs.
func textOr(value *string, previous string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return previous
	}
	return *value
}
