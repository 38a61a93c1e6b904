package process

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
)

// Result is the outcome of one process run.
type Result struct {
	Output any
	Stderr string
	Err    error
}

// Action runs a process across ticks.
type Action struct {
	runner  *Runner
	proc    ProcessConfig
	env     []string
	timeout time.Duration
	saveTo  string

	mu     sync.Mutex
	done   chan struct{}
	cancel context.CancelFunc
	last   *Result
}

var _ domain.Action = (*Action)(nil)

// Execute starts the process on the first call and polls it afterwards.
// A finished run keeps its status until acknowledged.
func (a *Action) Execute() domain.Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.done == nil {
		a.start()
		return domain.StatusReady
	}

	select {
	case <-a.done:
	default:
		return domain.StatusReady
	}

	if a.last.Err != nil {
		return domain.StatusFailure
	}
	return domain.StatusSuccess
}

// Succeeded resets the action so the next tick starts a fresh run.
func (a *Action) Succeeded() { a.reset() }

// Failed resets the action so the next tick starts a fresh run.
func (a *Action) Failed() { a.reset() }

// Last returns the outcome of the latest finished run, or nil.
func (a *Action) Last() *Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done == nil {
		return nil
	}
	select {
	case <-a.done:
		return a.last
	default:
		return nil
	}
}

func (a *Action) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
	a.done, a.cancel, a.last = nil, nil, nil
}

// start launches the process. Callers hold a.mu.
func (a *Action) start() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if a.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), a.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	done := make(chan struct{})
	a.done, a.cancel = done, cancel

	logger := a.runner.logger
	logger.Debug("starting process", "command", a.proc.Command, "args", a.proc.Args)

	go func() {
		res := a.run(ctx)
		if res.Err != nil {
			logger.Warn("process failed", "command", a.proc.Command, "error", res.Err)
		}

		a.finish(done, res)
		cancel()
		close(done)
	}()
}

// finish records res for the run identified by done. A reset in the meantime
// orphans the run, and its result is dropped.
func (a *Action) finish(done chan struct{}, res *Result) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done != done {
		return
	}
	a.last = res
	if res.Err == nil && a.saveTo != "" {
		a.runner.board.Set(a.saveTo, res.Output)
	}
}

func (a *Action) run(ctx context.Context) *Result {
	cmd := exec.CommandContext(ctx, a.proc.Command, a.proc.Args...)
	cmd.Dir = a.runner.baseDir
	cmd.Env = append(cmd.Environ(), a.env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := &Result{}
	if err := cmd.Run(); err != nil {
		res.Stderr = stderr.String()
		res.Err = fmt.Errorf("%s: %w", a.proc.Command, err)
		return res
	}
	res.Output = parseOutput(stdout.String())
	return res
}

// parseOutput decodes JSON objects and arrays and returns anything else as
// trimmed text.
func parseOutput(output string) any {
	trimmed := strings.TrimSpace(output)
	if (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v
		}
	}
	return trimmed
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int, int64, float64, bool:
		return fmt.Sprintf("%v", v)
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", v)
	}
}
