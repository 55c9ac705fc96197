package treasure

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/OCharnyshevich/treasure-chest/internal/server/world"
)

// Placement is one ledger row.
type Placement struct {
	Pos      world.BlockPos
	Source   string
	Items    []world.ItemStack
	PlacedAt time.Time
}

// Ledger records chest placements in a SQLite database.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// OpenLedger opens or creates the ledger at path.
func OpenLedger(path string) (*Ledger, error) {
	if path == "" {
		return nil, fmt.Errorf("ledger: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS placements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			z INTEGER NOT NULL,
			source TEXT NOT NULL,
			items TEXT NOT NULL,
			placed_at INTEGER NOT NULL,
			UNIQUE (x, y, z, source)
		);`,
	}
	for _, q := range stmts {
		if _, err := db.Exec(q); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ledger init: %w", err)
		}
	}
	return &Ledger{db: db, now: time.Now}, nil
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record stores a placement. Regenerating a column after a restart places
// the same chest again; that replaces the earlier row.
func (l *Ledger) Record(ctx context.Context, pos world.BlockPos, source string, items []world.ItemStack) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("ledger: marshal items: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO placements (x, y, z, source, items, placed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		pos.X, pos.Y, pos.Z, source, string(raw), l.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("ledger: record %v: %w", pos, err)
	}
	return nil
}

// Recent returns up to n placements, newest first.
func (l *Ledger) Recent(ctx context.Context, n int) ([]Placement, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT x, y, z, source, items, placed_at FROM placements ORDER BY placed_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("ledger: query: %w", err)
	}
	defer rows.Close()

	var out []Placement
	for rows.Next() {
		var (
			p      Placement
			items  string
			millis int64
		)
		if err := rows.Scan(&p.Pos.X, &p.Pos.Y, &p.Pos.Z, &p.Source, &items, &millis); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &p.Items); err != nil {
			return nil, fmt.Errorf("ledger: decode items: %w", err)
		}
		p.PlacedAt = time.UnixMilli(millis)
		out = append(out, p)
	}
	return out, rows.Err()
}
