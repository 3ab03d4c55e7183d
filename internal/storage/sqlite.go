package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/meltforce/fitrec/internal/catalog"
)

// SQLite keeps the workout catalog in a single-file database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the catalog database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS workout_catalog (
		name        TEXT PRIMARY KEY,
		bucket_type TEXT NOT NULL,
		subcategory TEXT NOT NULL,
		type_pos    INTEGER NOT NULL,
		sub_pos     INTEGER NOT NULL,
		pos         INTEGER NOT NULL,
		jenis       TEXT NOT NULL DEFAULT '',
		subkategori TEXT NOT NULL DEFAULT '',
		target      TEXT NOT NULL DEFAULT '',
		kesulitan   TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		updated_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (type_pos, sub_pos, pos)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// LoadCatalog reads the catalog in position order.
func (s *SQLite) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, selectCatalog)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var out []catalog.Row
	for rows.Next() {
		var r catalog.Row
		var kesulitan string
		if err := rows.Scan(&r.Type, &r.Subcategory, &r.TypePos, &r.SubPos, &r.Pos,
			&r.Record.Name, &r.Record.Jenis, &r.Record.Subkategori, &r.Record.Target,
			&kesulitan, &r.Record.Description); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		r.Record.Kesulitan = catalog.Difficulty(kesulitan)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog rows: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyCatalog
	}
	return catalog.FromRows(out)
}

// ReplaceCatalog swaps the stored catalog for cat in one transaction and
// returns the number of rows written.
func (s *SQLite) ReplaceCatalog(ctx context.Context, cat *catalog.Catalog) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM workout_catalog`); err != nil {
		return 0, fmt.Errorf("clearing catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO workout_catalog (bucket_type, subcategory, type_pos, sub_pos, pos,
		name, jenis, subkategori, target, kesulitan, description) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var n int64
	for _, r := range cat.Rows() {
		if _, err := stmt.ExecContext(ctx, r.Type, r.Subcategory, r.TypePos, r.SubPos, r.Pos,
			r.Record.Name, r.Record.Jenis, r.Record.Subkategori, r.Record.Target,
			string(r.Record.Kesulitan), r.Record.Description); err != nil {
			return 0, fmt.Errorf("inserting %q: %w", r.Record.Name, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing catalog: %w", err)
	}
	return n, nil
}

// Close closes the catalog database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
