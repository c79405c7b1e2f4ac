package store

import (
	"context"
	"database/sql"
	"fmt"
)

// CountActive returns the number of objects still in inventory.
func CountActive(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM objects WHERE removal_year IS NULL`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting active objects: %w", err)
	}
	return count, nil
}

// CountScanned returns the number of active objects found so far. Archived
// objects are excluded so they never block session completion.
func CountScanned(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM objects WHERE removal_year IS NULL AND scanned = 1`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting scanned objects: %w", err)
	}
	return count, nil
}

// ResetScanFlags clears the scanned flag on every active object, beginning a
// new counting cycle. Returns the number of rows reset.
func ResetScanFlags(ctx context.Context, db *sql.DB) (int64, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE objects SET scanned = 0, updated_at = CURRENT_TIMESTAMP
		 WHERE removal_year IS NULL AND scanned = 1`,
	)
	if err != nil {
		return 0, fmt.Errorf("resetting scan flags: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting reset rows: %w", err)
	}
	return affected, nil
}
