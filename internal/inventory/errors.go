package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// Engine outcomes that callers are expected to branch on.
var (
	// ErrNotFound means the referenced object doesn't exist.
	ErrNotFound = errors.New("object not found")

	// ErrConflict means a state precondition was violated, either a duplicate
	// AHO code or an inventory session still in progress.
	ErrConflict = errors.New("conflict")
)

// InvalidPayloadError reports a malformed or contradictory request payload
// together with the names of the offending fields.
type InvalidPayloadError struct {
	Reason string
	Fields []string
}

func (e *InvalidPayloadError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("invalid payload: %s: %s", e.Reason, strings.Join(e.Fields, ", "))
	}
	return "invalid payload: " + e.Reason
}

func invalidPayload(reason string, fields ...string) error {
	return &InvalidPayloadError{Reason: reason, Fields: fields}
}
