package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hdupoux/inventaire/internal/model"
)

// ListRemovalReasons returns the removal-reason reference data.
func ListRemovalReasons(ctx context.Context, db *sql.DB) ([]model.RemovalReason, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, label FROM removal_reasons ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing removal reasons: %w", err)
	}
	defer rows.Close()

	var reasons []model.RemovalReason
	for rows.Next() {
		var reason model.RemovalReason
		if err := rows.Scan(&reason.ID, &reason.Label); err != nil {
			return nil, fmt.Errorf("scanning removal reason: %w", err)
		}
		reasons = append(reasons, reason)
	}
	return reasons, rows.Err()
}

// GetRemovalReason returns a removal reason by ID, or nil if it doesn't exist.
func GetRemovalReason(ctx context.Context, db *sql.DB, id int64) (*model.RemovalReason, error) {
	reason := &model.RemovalReason{}
	err := db.QueryRowContext(ctx,
		`SELECT id, label FROM removal_reasons WHERE id = ?`, id,
	).Scan(&reason.ID, &reason.Label)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting removal reason: %w", err)
	}
	return reason, nil
}
