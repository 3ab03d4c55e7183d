package recommend

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/meltforce/fitrec/internal/advisor"
	"github.com/meltforce/fitrec/internal/apperr"
	"github.com/meltforce/fitrec/internal/catalog"
	"github.com/meltforce/fitrec/internal/observability"
)

// Client-facing messages.
const (
	MsgTypeRequired   = "Workout type is required"
	MsgInvalidType    = "Invalid workout type"
	MsgMissingFields  = "Missing required fields"
	MsgAdvisorFailed  = "Failed to generate recommendations"
	MsgInternalFilter = "Server error while processing recommendation"
)

// Service answers recommendation queries against one catalog and advisor.
// It is safe for concurrent use.
type Service struct {
	catalog *catalog.Catalog
	advisor advisor.Advisor
	log     *slog.Logger
}

func NewService(cat *catalog.Catalog, adv advisor.Advisor, log *slog.Logger) *Service {
	return &Service{catalog: cat, advisor: adv, log: log}
}

// Catalog returns the catalog the service filters.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Recommend filters the catalog by type and difficulty level.
func (s *Service) Recommend(_ context.Context, workoutType, difficultyLevel string) ([]catalog.WorkoutRecord, error) {
	if strings.TrimSpace(workoutType) == "" {
		return nil, apperr.Validation(MsgTypeRequired)
	}
	records, err := Filter(s.catalog, workoutType, difficultyLevel)
	if errors.Is(err, ErrInvalidInput) {
		return nil, apperr.NotFound(MsgInvalidType, err)
	}
	if err != nil {
		return nil, apperr.Internal(MsgInternalFilter, err)
	}
	observability.ObserveFilterResult(len(records))
	return records, nil
}

// Advise validates the metrics and asks the advisor for a recommendation.
func (s *Service) Advise(ctx context.Context, m advisor.Metrics) (*advisor.Result, error) {
	if !m.Complete() {
		return nil, apperr.Validation(MsgMissingFields)
	}

	start := time.Now()
	res, err := s.advisor.Advise(ctx, m)
	observability.ObserveAdvisor(time.Since(start), err)
	if errors.Is(err, advisor.ErrInvalidMetrics) {
		return nil, apperr.Validation(err.Error())
	}
	if err != nil {
		s.log.Error("advisor failed", "age", m.Age, "height", m.Height, "weight", m.Weight, "error", err)
		return nil, apperr.Collaborator(MsgAdvisorFailed, err)
	}
	return res, nil
}

// ListTypes lists the catalog's buckets.
func (s *Service) ListTypes(context.Context) ([]TypeSummary, error) {
	return Types(s.catalog), nil
}

// LoadCatalog returns the served catalog, so a Service can stand in as a
// catalog.Source.
func (s *Service) LoadCatalog(context.Context) (*catalog.Catalog, error) {
	return s.catalog, nil
}
