// Package recommend selects catalog records by type and difficulty and
// fronts the metrics advisor for the HTTP and MCP surfaces.
package recommend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meltforce/fitrec/internal/catalog"
)

const (
	// TypeAll selects every bucket.
	TypeAll = "all"
	// typeAllLegacy is the "all" sentinel older front-ends send.
	typeAllLegacy = "semua"

	DifficultyAll = "all"
)

// ErrInvalidInput is returned when the workout type is missing or unknown.
var ErrInvalidInput = errors.New("invalid input")

var difficultyLabels = map[string]catalog.Difficulty{
	"beginner":     catalog.Easy,
	"intermediate": catalog.Medium,
	"advanced":     catalog.Hard,
}

// DifficultyLabel maps a difficulty level to the record label it filters on.
// ok is false for "", "all" and any unrecognized level, all of which mean no
// filtering.
func DifficultyLabel(level string) (label catalog.Difficulty, ok bool) {
	label, ok = difficultyLabels[level]
	return label, ok
}

// Filter flattens the selected bucket(s) in catalog order and keeps the
// records matching the difficulty level. The result is never nil.
func Filter(cat *catalog.Catalog, workoutType, difficultyLevel string) ([]catalog.WorkoutRecord, error) {
	if strings.TrimSpace(workoutType) == "" {
		return nil, fmt.Errorf("workout type is required: %w", ErrInvalidInput)
	}

	var records []catalog.WorkoutRecord
	if workoutType == TypeAll || workoutType == typeAllLegacy {
		records = cat.Records()
	} else {
		bucket, ok := cat.Bucket(workoutType)
		if !ok {
			return nil, fmt.Errorf("unknown workout type %q: %w", workoutType, ErrInvalidInput)
		}
		records = bucket.Records()
	}

	label, filtered := DifficultyLabel(difficultyLevel)
	out := make([]catalog.WorkoutRecord, 0, len(records))
	for _, w := range records {
		if filtered && w.Kesulitan != label {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

// TypeSummary describes one bucket for browsing.
type TypeSummary struct {
	Type          string   `json:"type"`
	Subcategories []string `json:"subcategories"`
	Count         int      `json:"count"`
}

// Types lists the catalog's buckets in declaration order.
func Types(cat *catalog.Catalog) []TypeSummary {
	buckets := cat.Buckets()
	out := make([]TypeSummary, 0, len(buckets))
	for _, b := range buckets {
		subs := make([]string, 0, len(b.Subcategories))
		for _, sub := range b.Subcategories {
			subs = append(subs, sub.Name)
		}
		out = append(out, TypeSummary{Type: b.Type, Subcategories: subs, Count: b.Len()})
	}
	return out
}
