package advisor

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meltforce/fitrec/internal/catalog"
)

// helperAdvisor re-executes the test binary as the advisor program. The
// child runs TestHelperProcess in the given mode.
func helperAdvisor(t *testing.T, mode string, timeout time.Duration) *ProcessAdvisor {
	t.Helper()
	p, err := NewProcessAdvisor([]string{os.Args[0], "-test.run=^TestHelperProcess$", "--"}, timeout, discardLogger())
	require.NoError(t, err)
	return p.WithEnv("FITREC_WANT_HELPER_PROCESS=1", "FITREC_HELPER_MODE="+mode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("FITREC_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) > 0 {
		args = args[1:]
	}
	fs := flag.NewFlagSet("helper", flag.ExitOnError)
	age := fs.Float64("age", 0, "")
	height := fs.Float64("height", 0, "")
	weight := fs.Float64("weight", 0, "")
	_ = fs.Parse(args)

	switch os.Getenv("FITREC_HELPER_MODE") {
	case "ok":
		cat, err := catalog.Default()
		if err != nil {
			os.Exit(3)
		}
		res, err := NewRuleAdvisor(cat).Advise(context.Background(), Metrics{Age: *age, Height: *height, Weight: *weight})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "loaded fallback rules")
		_ = json.NewEncoder(os.Stdout).Encode(res)
	case "extra":
		fmt.Println(`{"bmi":22.5,"bmi_category":"Normal","age_category":"Muda","difficulty_level":"Medium to Hard",` +
			`"summary":"<p>ok</p>","endurance_workouts":[],"strength_workouts":[],"data_driven":true,"model_version":"v2"}`)
	case "exit":
		fmt.Fprintln(os.Stderr, "Traceback: boom")
		os.Exit(1)
	case "garbage":
		fmt.Println("Warning: could not load data")
	case "schema":
		fmt.Println(`{"bmi":"high","bmi_category":"Normal"}`)
	case "sleep":
		time.Sleep(10 * time.Second)
	}
	os.Exit(0)
}

func TestProcessAdvisorPassesMetrics(t *testing.T) {
	p := helperAdvisor(t, "ok", 10*time.Second)

	res, err := p.Advise(context.Background(), Metrics{Age: 25, Height: 170, Weight: 70})
	require.NoError(t, err)
	assert.Equal(t, Normal, res.BMICategory)
	assert.Equal(t, []string{"Push-up", "Pull-ups", "Dips"}, names(res.StrengthWorkouts))
}

func TestProcessAdvisorReplaysOutputVerbatim(t *testing.T) {
	p := helperAdvisor(t, "extra", 10*time.Second)

	res, err := p.Advise(context.Background(), Metrics{Age: 20, Height: 170, Weight: 65})
	require.NoError(t, err)
	assert.True(t, res.DataDriven)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "v2", out["model_version"])
}

func TestProcessAdvisorFailures(t *testing.T) {
	for _, mode := range []string{"exit", "garbage", "schema"} {
		t.Run(mode, func(t *testing.T) {
			p := helperAdvisor(t, mode, 10*time.Second)
			_, err := p.Advise(context.Background(), Metrics{Age: 25, Height: 170, Weight: 70})
			assert.ErrorIs(t, err, ErrAdvisorFailed)
		})
	}
}

func TestProcessAdvisorTimeout(t *testing.T) {
	p := helperAdvisor(t, "sleep", 200*time.Millisecond)

	start := time.Now()
	_, err := p.Advise(context.Background(), Metrics{Age: 25, Height: 170, Weight: 70})
	require.ErrorIs(t, err, ErrAdvisorFailed)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewProcessAdvisorRequiresCommand(t *testing.T) {
	_, err := NewProcessAdvisor(nil, time.Second, discardLogger())
	assert.Error(t, err)

	p, err := NewProcessAdvisor([]string{"python3", "advisor.py"}, 0, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, p.timeout)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "25", formatNumber(25))
	assert.Equal(t, "170.5", formatNumber(170.5))
}
