package model

import "time"

// Object represents a physical inventory object identified by its AHO code.
// An object is active while both removal fields are null and archived once
// both are set; the schema forbids the half-archived state.
type Object struct {
	ID              int64     `json:"id"`
	AhoID           string    `json:"aho_id"`
	EntryYear       int       `json:"entry_year"`
	RemovalYear     *int      `json:"removal_year,omitempty"`
	RemovalReasonID *int64    `json:"removal_reason_id,omitempty"`
	Scanned         bool      `json:"scanned"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined field (not always populated).
	RemovalReason string `json:"removal_reason,omitempty"`
}

// Archived reports whether the object has left inventory.
func (o *Object) Archived() bool {
	return o.RemovalYear != nil && o.RemovalReasonID != nil
}
