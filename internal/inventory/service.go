// Package inventory implements the reconciliation workflow and the
// object-state transition rules on top of the object store.
package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hdupoux/inventaire/internal/model"
	"github.com/hdupoux/inventaire/internal/store"
)

// Service validates incoming payloads and applies state transitions against
// the object store. The database handle is injected, never opened per call.
type Service struct {
	db *sql.DB
}

// NewService creates a Service backed by the given database.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateInput holds the fields of a create request. All are mandatory; a
// zero value counts as missing.
type CreateInput struct {
	AhoID     string
	EntryYear int
	Name      string
	Price     float64
}

// UpdateInput holds the fields of a partial update. Nil pointers mean the
// field was absent from the request and must keep its prior value.
type UpdateInput struct {
	AhoID         string
	Scanned       *bool
	Name          *string
	Price         *float64
	RemovalYear   *int
	RemovalReason *int64
}

// CreateObject inserts a new active, unscanned object.
func (s *Service) CreateObject(ctx context.Context, in CreateInput) (*model.Object, error) {
	var missing []string
	if in.AhoID == "" {
		missing = append(missing, "aho_id")
	}
	if in.EntryYear == 0 {
		missing = append(missing, "entryYear")
	}
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Price == 0 {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return nil, invalidPayload("missing fields", missing...)
	}

	existing, err := store.GetObject(ctx, s.db, in.AhoID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("object %q already exists: %w", in.AhoID, ErrConflict)
	}

	return store.InsertObject(ctx, s.db, in.AhoID, in.EntryYear, in.Name, in.Price)
}

// UpdateObject applies a partial update: any subset of scanned, name, price
// and the removal pair may be supplied, and only supplied fields change.
// Returns the updated object and the number of rows mutated (0 when every
// supplied value matches the stored one).
func (s *Service) UpdateObject(ctx context.Context, in UpdateInput) (*model.Object, int64, error) {
	if in.AhoID == "" {
		return nil, 0, invalidPayload("missing fields", "aho_id")
	}

	// Existence is resolved before any other validation.
	current, err := store.GetObject(ctx, s.db, in.AhoID)
	if err != nil {
		return nil, 0, err
	}
	if current == nil {
		return nil, 0, fmt.Errorf("object %q: %w", in.AhoID, ErrNotFound)
	}

	// Removal year and reason keep the object either active or archived,
	// never half-archived.
	if (in.RemovalYear == nil) != (in.RemovalReason == nil) {
		if in.RemovalYear == nil {
			return nil, 0, invalidPayload("removal year and reason must be supplied together", "removalYear")
		}
		return nil, 0, invalidPayload("removal year and reason must be supplied together", "removalReason")
	}

	if in.RemovalReason != nil {
		reason, err := store.GetRemovalReason(ctx, s.db, *in.RemovalReason)
		if err != nil {
			return nil, 0, err
		}
		if reason == nil {
			return nil, 0, invalidPayload("unknown removal reason", "removalReason")
		}
	}

	if in.Scanned == nil && in.Name == nil && in.Price == nil && in.RemovalYear == nil {
		return nil, 0, invalidPayload("no fields to update")
	}

	// Build the diff from supplied fields that actually differ. SQLite counts
	// matched rows, so a value-identical update is skipped here to report 0.
	fields := store.Fields{}
	if in.Scanned != nil && *in.Scanned != current.Scanned {
		fields["scanned"] = *in.Scanned
	}
	if in.Name != nil && *in.Name != current.Name {
		fields["name"] = *in.Name
	}
	if in.Price != nil && *in.Price != current.Price {
		fields["price"] = *in.Price
	}
	if in.RemovalYear != nil {
		if current.RemovalYear == nil || *current.RemovalYear != *in.RemovalYear {
			fields["removal_year"] = *in.RemovalYear
		}
		if current.RemovalReasonID == nil || *current.RemovalReasonID != *in.RemovalReason {
			fields["removal_reason_id"] = *in.RemovalReason
		}
	}

	if len(fields) == 0 {
		return current, 0, nil
	}

	affected, err := store.UpdateObject(ctx, s.db, in.AhoID, fields)
	if err != nil {
		return nil, 0, err
	}

	updated, err := store.GetObject(ctx, s.db, in.AhoID)
	if err != nil {
		return nil, 0, err
	}
	return updated, affected, nil
}

// ArchiveObject is the legacy single-purpose archive operation: all three
// fields are mandatory and both removal fields are set atomically.
func (s *Service) ArchiveObject(ctx context.Context, ahoID string, removalYear int, reasonID int64) (*model.Object, int64, error) {
	var missing []string
	if ahoID == "" {
		missing = append(missing, "aho_id")
	}
	if removalYear == 0 {
		missing = append(missing, "removalYear")
	}
	if reasonID == 0 {
		missing = append(missing, "removalReason")
	}
	if len(missing) > 0 {
		return nil, 0, invalidPayload("missing fields", missing...)
	}

	// The reason is resolved before the object here, unlike the partial
	// update: an unknown reason fails the request even for an unknown object.
	reason, err := store.GetRemovalReason(ctx, s.db, reasonID)
	if err != nil {
		return nil, 0, err
	}
	if reason == nil {
		return nil, 0, invalidPayload("unknown removal reason", "removalReason")
	}

	return s.UpdateObject(ctx, UpdateInput{
		AhoID:         ahoID,
		RemovalYear:   &removalYear,
		RemovalReason: &reasonID,
	})
}

// GetObject returns one object by its AHO code.
func (s *Service) GetObject(ctx context.Context, ahoID string) (*model.Object, error) {
	obj, err := store.GetObject(ctx, s.db, ahoID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("object %q: %w", ahoID, ErrNotFound)
	}
	return obj, nil
}

// ListObjects returns all active or all archived objects.
func (s *Service) ListObjects(ctx context.Context, archived bool) ([]model.Object, error) {
	return store.ListObjects(ctx, s.db, archived)
}

// RemovalReasons returns the removal-reason reference data.
func (s *Service) RemovalReasons(ctx context.Context) ([]model.RemovalReason, error) {
	return store.ListRemovalReasons(ctx, s.db)
}

// StartInventory begins a new counting cycle by clearing the scanned flag on
// every active object. It fails with ErrConflict while the previous session
// is unfinished. The read-then-write is racy under concurrent starts, which
// is accepted: sessions are operationally started by a single operator.
func (s *Service) StartInventory(ctx context.Context) (int64, error) {
	total, err := store.CountActive(ctx, s.db)
	if err != nil {
		return 0, err
	}
	scanned, err := store.CountScanned(ctx, s.db)
	if err != nil {
		return 0, err
	}
	if scanned != total {
		return 0, fmt.Errorf("inventory already in progress: %w", ErrConflict)
	}

	return store.ResetScanFlags(ctx, s.db)
}

// MarkScanned marks an object as found. Scanning an already-scanned object
// is not an error; the returned count distinguishes "first time found" (1)
// from "already found" (0) for audit purposes.
func (s *Service) MarkScanned(ctx context.Context, ahoID string) (int64, error) {
	if ahoID == "" {
		return 0, invalidPayload("missing fields", "aho_id")
	}

	obj, err := store.GetObject(ctx, s.db, ahoID)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, fmt.Errorf("object %q: %w", ahoID, ErrNotFound)
	}

	return store.SetObjectScanned(ctx, s.db, ahoID)
}

// Stats returns the progress of the session in progress, or nil when every
// active object has been scanned and no inventory is running.
func (s *Service) Stats(ctx context.Context) (*model.Stats, error) {
	total, err := store.CountActive(ctx, s.db)
	if err != nil {
		return nil, err
	}
	scanned, err := store.CountScanned(ctx, s.db)
	if err != nil {
		return nil, err
	}

	if scanned == total {
		return nil, nil
	}
	return &model.Stats{
		TotalActive: total,
		Scanned:     scanned,
		Unscanned:   total - scanned,
	}, nil
}
