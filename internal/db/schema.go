package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS removal_reasons (
    id    INTEGER PRIMARY KEY,
    label TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS objects (
    id                INTEGER PRIMARY KEY,
    aho_id            TEXT NOT NULL UNIQUE,
    entry_year        INTEGER NOT NULL,
    removal_year      INTEGER,
    removal_reason_id INTEGER REFERENCES removal_reasons(id),
    scanned           INTEGER NOT NULL DEFAULT 0,
    name              TEXT NOT NULL,
    price             REAL NOT NULL,
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK ((removal_year IS NULL) = (removal_reason_id IS NULL))
);

CREATE INDEX IF NOT EXISTS idx_objects_active
    ON objects(scanned) WHERE removal_year IS NULL;
`

// seedReasons installs the static removal-reason reference data.
// INSERT OR IGNORE keeps re-runs harmless.
const seedReasons = `
INSERT OR IGNORE INTO removal_reasons (id, label) VALUES
    (1, 'Lost'),
    (2, 'Damaged'),
    (3, 'Sold'),
    (4, 'Donated');
`

// EnsureSchema creates all tables and indexes if they don't already exist
// and seeds the removal-reason lookup table.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if _, err := db.Exec(seedReasons); err != nil {
		return fmt.Errorf("seeding removal reasons: %w", err)
	}
	return nil
}
