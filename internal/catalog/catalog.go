// Package catalog holds the static workout dataset: records grouped by type
// (bucket) and subcategory, kept in declaration order.
package catalog

import (
	"fmt"
	"strings"
)

// Difficulty is the exercise difficulty label stored on each record.
type Difficulty string

const (
	Easy     Difficulty = "Easy"
	Medium   Difficulty = "Medium"
	Hard     Difficulty = "Hard"
	VeryHard Difficulty = "Very Hard"
)

// Valid reports whether d is one of the known labels.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard, VeryHard:
		return true
	}
	return false
}

// WorkoutRecord is a single exercise. Field names follow the dataset and the
// JSON the front-end renders.
type WorkoutRecord struct {
	Name        string     `json:"name" yaml:"name"`
	Jenis       string     `json:"jenis" yaml:"jenis"`
	Subkategori string     `json:"subkategori,omitempty" yaml:"subkategori,omitempty"`
	Target      string     `json:"target" yaml:"target"`
	Kesulitan   Difficulty `json:"kesulitan" yaml:"kesulitan"`
	Description string     `json:"description" yaml:"description"`
}

// Subcategory is an ordered group of records inside a bucket.
type Subcategory struct {
	Name     string          `json:"name"`
	Workouts []WorkoutRecord `json:"workouts"`
}

// Bucket is every record under one top-level type.
type Bucket struct {
	Type          string        `json:"type"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Records flattens the bucket in subcategory order.
func (b Bucket) Records() []WorkoutRecord {
	var out []WorkoutRecord
	for _, sub := range b.Subcategories {
		out = append(out, sub.Workouts...)
	}
	return out
}

// Len returns the number of records in the bucket.
func (b Bucket) Len() int {
	n := 0
	for _, sub := range b.Subcategories {
		n += len(sub.Workouts)
	}
	return n
}

// Catalog is immutable once built. Accessors hand out copies.
type Catalog struct {
	buckets []Bucket
	index   map[string]int
}

// New validates the buckets and returns a Catalog holding a deep copy of them.
// Every type needs at least one subcategory and every subcategory at least
// one workout, so a catalog always survives a Rows/FromRows round trip.
func New(buckets []Bucket) (*Catalog, error) {
	c := &Catalog{
		buckets: cloneBuckets(buckets),
		index:   make(map[string]int, len(buckets)),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	for i, b := range c.buckets {
		c.index[b.Type] = i
	}
	return c, nil
}

func (c *Catalog) validate() error {
	seenTypes := make(map[string]bool)
	seenNames := make(map[string]string)
	for _, b := range c.buckets {
		if strings.TrimSpace(b.Type) == "" {
			return fmt.Errorf("catalog: bucket with empty type")
		}
		if seenTypes[b.Type] {
			return fmt.Errorf("catalog: duplicate type %q", b.Type)
		}
		seenTypes[b.Type] = true
		if len(b.Subcategories) == 0 {
			return fmt.Errorf("catalog: %s: type has no subcategories", b.Type)
		}

		seenSubs := make(map[string]bool)
		for _, sub := range b.Subcategories {
			if strings.TrimSpace(sub.Name) == "" {
				return fmt.Errorf("catalog: %s: subcategory with empty name", b.Type)
			}
			if seenSubs[sub.Name] {
				return fmt.Errorf("catalog: %s: duplicate subcategory %q", b.Type, sub.Name)
			}
			seenSubs[sub.Name] = true
			if len(sub.Workouts) == 0 {
				return fmt.Errorf("catalog: %s/%s: subcategory has no workouts", b.Type, sub.Name)
			}

			for i, w := range sub.Workouts {
				if strings.TrimSpace(w.Name) == "" {
					return fmt.Errorf("catalog: %s/%s[%d]: name is required", b.Type, sub.Name, i)
				}
				if !w.Kesulitan.Valid() {
					return fmt.Errorf("catalog: %s: unknown difficulty %q", w.Name, w.Kesulitan)
				}
				if prev, ok := seenNames[w.Name]; ok {
					return fmt.Errorf("catalog: duplicate workout name %q (in %s and %s/%s)", w.Name, prev, b.Type, sub.Name)
				}
				seenNames[w.Name] = b.Type + "/" + sub.Name
			}
		}
	}
	return nil
}

// Types returns bucket names in declaration order.
func (c *Catalog) Types() []string {
	out := make([]string, len(c.buckets))
	for i, b := range c.buckets {
		out[i] = b.Type
	}
	return out
}

// Bucket returns a copy of the named bucket.
func (c *Catalog) Bucket(typ string) (Bucket, bool) {
	i, ok := c.index[typ]
	if !ok {
		return Bucket{}, false
	}
	return cloneBucket(c.buckets[i]), true
}

// Buckets returns a copy of every bucket in declaration order.
func (c *Catalog) Buckets() []Bucket {
	return cloneBuckets(c.buckets)
}

// Records flattens the whole catalog: type order, then subcategory order,
// then record order.
func (c *Catalog) Records() []WorkoutRecord {
	var out []WorkoutRecord
	for _, b := range c.buckets {
		out = append(out, b.Records()...)
	}
	return out
}

// Lookup finds a record by name.
func (c *Catalog) Lookup(name string) (WorkoutRecord, bool) {
	for _, b := range c.buckets {
		for _, sub := range b.Subcategories {
			for _, w := range sub.Workouts {
				if w.Name == name {
					return w, true
				}
			}
		}
	}
	return WorkoutRecord{}, false
}

// Len returns the total number of records.
func (c *Catalog) Len() int {
	n := 0
	for _, b := range c.buckets {
		n += b.Len()
	}
	return n
}

func cloneBuckets(in []Bucket) []Bucket {
	out := make([]Bucket, len(in))
	for i, b := range in {
		out[i] = cloneBucket(b)
	}
	return out
}

func cloneBucket(b Bucket) Bucket {
	subs := make([]Subcategory, len(b.Subcategories))
	for i, sub := range b.Subcategories {
		workouts := make([]WorkoutRecord, len(sub.Workouts))
		copy(workouts, sub.Workouts)
		subs[i] = Subcategory{Name: sub.Name, Workouts: workouts}
	}
	return Bucket{Type: b.Type, Subcategories: subs}
}
