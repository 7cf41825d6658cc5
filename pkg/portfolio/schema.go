package portfolio

import (
	"database/sql"
)

func initDatabase(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS holdings (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT    NOT NULL,
			ticker        TEXT    NOT NULL DEFAULT '',
			asset_type    TEXT    NOT NULL,
			shares        REAL    NOT NULL DEFAULT 0,
			cost_basis    REAL    NOT NULL DEFAULT 0,
			current_value REAL    NOT NULL DEFAULT 0,
			purchase_date TEXT    NOT NULL DEFAULT '',
			notes         TEXT    NOT NULL DEFAULT '',
			created_at    TEXT    NOT NULL,
			updated_at    TEXT    NOT NULL
		)
	`); err != nil {
		return err
	}

	if err := exec(tx, `
		CREATE TABLE IF NOT EXISTS target_allocations (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			asset_type        TEXT    NOT NULL UNIQUE,
			target_percentage REAL    NOT NULL DEFAULT 0
		)
	`); err != nil {
		return err
	}

	// Seed the default allocation split on first run; existing rows win.
	for _, assetType := range DefaultAssetTypes {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO target_allocations (asset_type, target_percentage) VALUES (?, ?)",
			assetType, DefaultTargetPercentages[assetType],
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func exec(tx *sql.Tx, query string) error {
	_, err := tx.Exec(query)
	return err
}
