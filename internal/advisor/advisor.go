// Package advisor computes BMI-driven workout recommendations from body
// metrics. The HTTP layer only sees the Advisor interface; implementations
// run an external process, apply the rules in-process, or cache either.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meltforce/fitrec/internal/catalog"
)

var (
	// ErrAdvisorFailed marks a failed invocation: non-zero exit, timeout, or
	// output that does not match the Result schema.
	ErrAdvisorFailed = errors.New("metrics advisor failed")
	// ErrInvalidMetrics is returned for metrics the rules cannot evaluate.
	ErrInvalidMetrics = errors.New("invalid metrics")
)

// Metrics are the user's body measurements: age in years, height in cm,
// weight in kg.
type Metrics struct {
	Age    float64 `json:"age"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// Complete reports whether every field is set. Zero counts as missing.
func (m Metrics) Complete() bool {
	return m.Age != 0 && m.Height != 0 && m.Weight != 0
}

// Result is the advisor's answer.
type Result struct {
	BMI               float64                 `json:"bmi"`
	BMICategory       string                  `json:"bmi_category" jsonschema:"minLength=1"`
	AgeCategory       string                  `json:"age_category"`
	DifficultyLevel   string                  `json:"difficulty_level"`
	Summary           string                  `json:"summary"`
	EnduranceWorkouts []catalog.WorkoutRecord `json:"endurance_workouts"`
	StrengthWorkouts  []catalog.WorkoutRecord `json:"strength_workouts"`
	DataDriven        bool                    `json:"data_driven,omitempty"`

	// raw is the document as the advisor emitted it, replayed verbatim.
	raw json.RawMessage
}

// Advisor turns metrics into a Result.
type Advisor interface {
	Advise(ctx context.Context, m Metrics) (*Result, error)
}

// MarshalJSON replays the advisor's own document when there is one, so
// fields this package does not model still reach the client.
func (r Result) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain Result
	p := plain(r)
	if p.EnduranceWorkouts == nil {
		p.EnduranceWorkouts = []catalog.WorkoutRecord{}
	}
	if p.StrengthWorkouts == nil {
		p.StrengthWorkouts = []catalog.WorkoutRecord{}
	}
	return json.Marshal(p)
}

// DecodeResult validates raw against the Result schema and decodes it,
// keeping raw for verbatim replay.
func DecodeResult(raw []byte) (*Result, error) {
	if err := validateResult(raw); err != nil {
		return nil, err
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decoding advisor result: %w", err)
	}
	res.raw = append(json.RawMessage(nil), raw...)
	return &res, nil
}
