// Package index persists resolved conformance verdicts to a sqlite
// database so external tooling can query past runs without re-running the
// resolver. The index is write-behind only: the resolver never reads it,
// since memo correctness must not depend on stale state.
package index

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tablelang/tablec/internal/conformance"
)

const schema = `
CREATE TABLE IF NOT EXISTS conformance (
	unit        TEXT NOT NULL,
	type        TEXT NOT NULL,
	iface       TEXT NOT NULL,
	satisfied   INTEGER NOT NULL,
	recorded_at TEXT NOT NULL,
	PRIMARY KEY (unit, type, iface)
);`

// Index is one open conformance database.
type Index struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" works for tests.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func (ix *Index) Close() error {
	return ix.db.Close()
}

// RecordUnit upserts every settled verdict of one compilation unit.
func (ix *Index) RecordUnit(unit string, results map[conformance.Pair]conformance.Result) error {
	tx, err := ix.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO conformance (unit, type, iface, satisfied, recorded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (unit, type, iface) DO UPDATE
		SET satisfied = excluded.satisfied, recorded_at = excluded.recorded_at`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for pair, res := range results {
		satisfied := 0
		if res == conformance.Satisfied {
			satisfied = 1
		}
		if _, err := stmt.Exec(unit, pair.Type, pair.Interface, satisfied, now); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Verdict looks up a recorded verdict. found is false when the pair was
// never recorded for the unit.
func (ix *Index) Verdict(unit, typ, iface string) (satisfied, found bool, err error) {
	var n int
	err = ix.db.QueryRow(
		`SELECT satisfied FROM conformance WHERE unit = ? AND type = ? AND iface = ?`,
		unit, typ, iface,
	).Scan(&n)
	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return n == 1, true, nil
}
