package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meltforce/fitrec/internal/catalog"
)

// ErrEmptyCatalog is returned when the catalog table holds no rows.
var ErrEmptyCatalog = errors.New("catalog table is empty")

const selectCatalog = `SELECT bucket_type, subcategory, type_pos, sub_pos, pos,
	name, jenis, subkategori, target, kesulitan, description
	FROM workout_catalog ORDER BY type_pos, sub_pos, pos`

// LoadCatalog reads the catalog in position order.
func (db *DB) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	rows, err := db.Pool.Query(ctx, selectCatalog)
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
func (db *DB) ReplaceCatalog(ctx context.Context, cat *catalog.Catalog) (int64, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM workout_catalog`); err != nil {
		return 0, fmt.Errorf("clearing catalog: %w", err)
	}

	rows := cat.Rows()
	if len(rows) > 0 {
		query, args := insertCatalogQuery(rows)
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("inserting catalog: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing catalog: %w", err)
	}
	return int64(len(rows)), nil
}

func insertCatalogQuery(rows []catalog.Row) (string, []any) {
	const cols = 11
	query := `INSERT INTO workout_catalog (bucket_type, subcategory, type_pos, sub_pos, pos,
		name, jenis, subkategori, target, kesulitan, description) VALUES `
	args := make([]any, 0, len(rows)*cols)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * cols
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11,
		))
		args = append(args, r.Type, r.Subcategory, r.TypePos, r.SubPos, r.Pos,
			r.Record.Name, r.Record.Jenis, r.Record.Subkategori, r.Record.Target,
			string(r.Record.Kesulitan), r.Record.Description)
	}
	return query + strings.Join(valueStrings, ","), args
}
