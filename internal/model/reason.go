package model

// RemovalReason is static reference data explaining why an object left
// inventory (lost, damaged, ...).
type RemovalReason struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}
