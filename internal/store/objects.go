package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hdupoux/inventaire/internal/model"
)

const objectColumns = `o.id, o.aho_id, o.entry_year, o.removal_year, o.removal_reason_id,
	        o.scanned, o.name, o.price, o.created_at, o.updated_at, r.label`

// scanObject scans one object row, including the joined removal-reason label.
func scanObject(row interface{ Scan(...any) error }) (*model.Object, error) {
	obj := &model.Object{}
	var removalYear, removalReasonID sql.NullInt64
	var label sql.NullString
	err := row.Scan(&obj.ID, &obj.AhoID, &obj.EntryYear, &removalYear, &removalReasonID,
		&obj.Scanned, &obj.Name, &obj.Price, &obj.CreatedAt, &obj.UpdatedAt, &label)
	if err != nil {
		return nil, err
	}
	if removalYear.Valid {
		year := int(removalYear.Int64)
		obj.RemovalYear = &year
	}
	if removalReasonID.Valid {
		obj.RemovalReasonID = &removalReasonID.Int64
	}
	obj.RemovalReason = label.String
	return obj, nil
}

// GetObject returns an object by its AHO code, or nil if it doesn't exist.
func GetObject(ctx context.Context, db *sql.DB, ahoID string) (*model.Object, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+objectColumns+`
		 FROM objects o
		 LEFT JOIN removal_reasons r ON r.id = o.removal_reason_id
		 WHERE o.aho_id = ?`, ahoID,
	)
	obj, err := scanObject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting object: %w", err)
	}
	return obj, nil
}

// ListObjects returns all archived or all active objects, newest AHO first.
func ListObjects(ctx context.Context, db *sql.DB, archived bool) ([]model.Object, error) {
	nullClause := "IS NULL"
	if archived {
		nullClause = "IS NOT NULL"
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+objectColumns+`
		 FROM objects o
		 LEFT JOIN removal_reasons r ON r.id = o.removal_reason_id
		 WHERE o.removal_year `+nullClause+`
		 ORDER BY o.aho_id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}
	defer rows.Close()

	var objects []model.Object
	for rows.Next() {
		obj, err := scanObject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning object: %w", err)
		}
		objects = append(objects, *obj)
	}
	return objects, rows.Err()
}

// InsertObject creates a new active, unscanned object and returns it.
func InsertObject(ctx context.Context, db *sql.DB, ahoID string, entryYear int, name string, price float64) (*model.Object, error) {
	_, err := db.ExecContext(ctx,
		`INSERT INTO objects (aho_id, entry_year, scanned, name, price) VALUES (?, ?, 0, ?, ?)`,
		ahoID, entryYear, name, price,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting object: %w", err)
	}
	return GetObject(ctx, db, ahoID)
}

// UpdateObject applies the given field diff to an object and returns the
// number of rows affected. An empty diff is a no-op.
func UpdateObject(ctx context.Context, db *sql.DB, ahoID string, fields Fields) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}

	var assignments []string
	var args []any
	for _, col := range updatableColumns {
		value, ok := fields[col]
		if !ok {
			continue
		}
		assignments = append(assignments, col+" = ?")
		args = append(args, value)
	}
	args = append(args, ahoID)

	result, err := db.ExecContext(ctx,
		`UPDATE objects SET `+strings.Join(assignments, ", ")+`, updated_at = CURRENT_TIMESTAMP
		 WHERE aho_id = ?`, args...,
	)
	if err != nil {
		return 0, fmt.Errorf("updating object: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting updated rows: %w", err)
	}
	return affected, nil
}

// SetObjectScanned marks an object as found during the current session.
// Returns 1 if the flag flipped, 0 if the object was already scanned.
func SetObjectScanned(ctx context.Context, db *sql.DB, ahoID string) (int64, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE objects SET scanned = 1, updated_at = CURRENT_TIMESTAMP
		 WHERE aho_id = ? AND scanned = 0`, ahoID,
	)
	if err != nil {
		return 0, fmt.Errorf("marking object scanned: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting scanned rows: %w", err)
	}
	return affected, nil
}
