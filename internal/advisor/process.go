package advisor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds one advisor invocation.
const DefaultTimeout = 30 * time.Second

// ProcessAdvisor runs an external program once per request. The program
// receives --age, --height and --weight after its configured arguments and
// must print a single Result document on stdout.
type ProcessAdvisor struct {
	command string
	args    []string
	env     []string
	timeout time.Duration
	log     *slog.Logger
}

// NewProcessAdvisor builds an advisor for argv, e.g.
// ["python3", "workout_recommendation.py"].
func NewProcessAdvisor(argv []string, timeout time.Duration, log *slog.Logger) (*ProcessAdvisor, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.New("advisor command is empty")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ProcessAdvisor{
		command: argv[0],
		args:    slices.Clone(argv[1:]),
		timeout: timeout,
		log:     log,
	}, nil
}

// WithEnv adds KEY=VALUE pairs to the child's environment.
func (p *ProcessAdvisor) WithEnv(env ...string) *ProcessAdvisor {
	p.env = append(p.env, env...)
	return p
}

func (p *ProcessAdvisor) Advise(ctx context.Context, m Metrics) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := append(slices.Clone(p.args),
		"--age", formatNumber(m.Age),
		"--height", formatNumber(m.Height),
		"--weight", formatNumber(m.Weight),
	)
	cmd := exec.CommandContext(ctx, p.command, args...)
	cmd.Env = append(os.Environ(), p.env...)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if stderr.Len() > 0 {
		p.log.Warn("advisor stderr", "command", p.command, "output", strings.TrimSpace(stderr.String()))
	}
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: timed out after %s", ErrAdvisorFailed, p.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAdvisorFailed, err)
	}

	res, err := DecodeResult(bytes.TrimSpace(stdout.Bytes()))
	if err != nil {
		return nil, err
	}
	p.log.Debug("advisor finished", "command", p.command, "duration", time.Since(start))
	return res, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
