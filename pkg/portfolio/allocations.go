package portfolio

import (
	"fmt"
	"math"
)

// allocationSumTolerance is how far the submitted percentages may drift
// from 100 before the whole write is rejected.
const allocationSumTolerance = 0.01

// GetTargetAllocations returns all target allocations ordered by asset type.
func (c *Core) GetTargetAllocations() ([]TargetAllocation, error) {
	rows, err := c.db.Query("SELECT asset_type, target_percentage FROM target_allocations ORDER BY asset_type")
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list target allocations", err)
	}
	defer rows.Close()

	targets := []TargetAllocation{}
	for rows.Next() {
		var t TargetAllocation
		if err := rows.Scan(&t.AssetType, &t.TargetPercentage); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan target allocation", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// ReplaceTargetAllocations upserts the submitted set of target allocations.
// The percentages must sum to 100 within tolerance or the whole write is
// rejected; asset types absent from the input are left untouched, not
// deleted.
func (c *Core) ReplaceTargetAllocations(entries []TargetAllocation) error {
	total := 0.0
	for _, e := range entries {
		total += e.TargetPercentage
	}
	if math.Abs(total-100) > allocationSumTolerance {
		return NewError(ErrCodeValidation,
			fmt.Sprintf("Allocations must sum to 100%% (currently %.1f%%)", total))
	}

	tx, err := c.db.Begin()
	if err != nil {
		return WrapError(ErrCodeDatabase, "begin allocation update", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, e := range entries {
		if _, err := tx.Exec(`
			INSERT INTO target_allocations (asset_type, target_percentage)
			VALUES (?, ?)
			ON CONFLICT(asset_type) DO UPDATE SET target_percentage = excluded.target_percentage
		`, e.AssetType, e.TargetPercentage); err != nil {
			return WrapError(ErrCodeDatabase, "upsert target allocation", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return WrapError(ErrCodeDatabase, "commit allocation update", err)
	}
	return nil
}
