package catalog

import "fmt"

// Row is one record with its position in the catalog. SQL-backed sources
// store catalogs as rows and rebuild them in position order.
type Row struct {
	Type        string
	Subcategory string
	TypePos     int
	SubPos      int
	Pos         int
	Record      WorkoutRecord
}

// Rows flattens the catalog into positioned rows.
func (c *Catalog) Rows() []Row {
	var rows []Row
	for ti, b := range c.buckets {
		for si, sub := range b.Subcategories {
			for wi, w := range sub.Workouts {
				rows = append(rows, Row{
					Type:        b.Type,
					Subcategory: sub.Name,
					TypePos:     ti,
					SubPos:      si,
					Pos:         wi,
					Record:      w,
				})
			}
		}
	}
	return rows
}

// FromRows rebuilds a catalog from rows sorted by (TypePos, SubPos, Pos).
func FromRows(rows []Row) (*Catalog, error) {
	var buckets []Bucket
	for i, r := range rows {
		if i > 0 {
			prev := rows[i-1]
			if r.TypePos < prev.TypePos ||
				(r.TypePos == prev.TypePos && r.SubPos < prev.SubPos) ||
				(r.TypePos == prev.TypePos && r.SubPos == prev.SubPos && r.Pos < prev.Pos) {
				return nil, fmt.Errorf("catalog rows out of order at %q", r.Record.Name)
			}
		}

		if len(buckets) == 0 || buckets[len(buckets)-1].Type != r.Type {
			buckets = append(buckets, Bucket{Type: r.Type})
		}
		b := &buckets[len(buckets)-1]
		if len(b.Subcategories) == 0 || b.Subcategories[len(b.Subcategories)-1].Name != r.Subcategory {
			b.Subcategories = append(b.Subcategories, Subcategory{Name: r.Subcategory})
		}
		sub := &b.Subcategories[len(b.Subcategories)-1]
		sub.Workouts = append(sub.Workouts, r.Record)
	}
	return New(buckets)
}
