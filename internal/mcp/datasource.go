package mcp

import (
	"context"

	"github.com/meltforce/fitrec/internal/advisor"
	"github.com/meltforce/fitrec/internal/catalog"
	"github.com/meltforce/fitrec/internal/recommend"
)

// DataSource abstracts the recommendation backend for MCP tools. Both
// *recommend.Service (local) and HTTPClient (remote via REST API) satisfy
// this interface.
type DataSource interface {
	Recommend(ctx context.Context, workoutType, difficultyLevel string) ([]catalog.WorkoutRecord, error)
	Advise(ctx context.Context, m advisor.Metrics) (*advisor.Result, error)
	ListTypes(ctx context.Context) ([]recommend.TypeSummary, error)
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)
}

// Compile-time check: *recommend.Service satisfies DataSource.
var _ DataSource = (*recommend.Service)(nil)
