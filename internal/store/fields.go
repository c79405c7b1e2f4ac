package store

// Fields maps column names to new values for a partial update. Only columns
// actually supplied by the caller appear here; a column absent from the map
// is never touched, so an omitted request field can't be overwritten with a
// default.
type Fields map[string]any

// updatableColumns fixes the order in which assignment clauses are built so
// the generated SQL is deterministic.
var updatableColumns = []string{
	"scanned",
	"name",
	"price",
	"removal_year",
	"removal_reason_id",
}
