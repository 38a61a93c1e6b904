// Package process runs local commands as behavior-tree actions.
//
// Commands are allow-listed by name on a Runner. A leaf refers to one with
//
//	{id: build, type: LeafAction, action: {type: Exec, command: make, env: {target: all}}}
//
// The command starts on the first tick and the leaf reports ready until the
// process exits: success on exit status 0, failure otherwise.
package process

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/actions"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// ActionExec is the action name the Runner registers under.
const ActionExec = "Exec"

// EnvPrefix prefixes every env parameter handed to a process.
const EnvPrefix = "ARBOR_ARG_"

// Runner builds Exec actions. It follows a strict registry pattern: only
// registered commands run unless inline execution is enabled.
type Runner struct {
	mu          sync.RWMutex
	registry    map[string]ProcessConfig
	allowInline bool
	baseDir     string
	board       *actions.Blackboard
	logger      *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list from config.
func WithRegistry(tools map[string]ProcessConfig) RunnerOption {
	return func(r *Runner) {
		for name, tool := range tools {
			r.Register(name, tool.Command, tool.Args...)
		}
	}
}

// WithInlineExecution lets records name an executable directly through the
// exec parameter. Dangerous.
func WithInlineExecution(allow bool) RunnerOption {
	return func(r *Runner) {
		r.allowInline = allow
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithBlackboard enables the save_to parameter.
func WithBlackboard(board *actions.Blackboard) RunnerOption {
	return func(r *Runner) {
		r.board = board
	}
}

func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]ProcessConfig),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registry[name] = ProcessConfig{Command: command, Args: args}
}

// Commands lists the registered names, sorted.
func (r *Runner) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecParams are the record parameters of an Exec action.
type ExecParams struct {
	// Command is a registered name.
	Command string `mapstructure:"command"`
	// Exec is an executable path, honored only with inline execution.
	Exec string   `mapstructure:"exec"`
	Args []string `mapstructure:"args"`
	// Env values reach the process as ARBOR_ARG_<KEY>.
	Env     map[string]any `mapstructure:"env"`
	Timeout time.Duration  `mapstructure:"timeout"`
	// SaveTo stores the output on the blackboard on success.
	SaveTo string `mapstructure:"save_to"`
}

// Factory returns the actions.Factory for ActionExec.
func (r *Runner) Factory() actions.Factory {
	return func(params map[string]any) (domain.Action, error) {
		var p ExecParams
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			Result:           &p,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(params); err != nil {
			return nil, fmt.Errorf("invalid action parameters: %w", err)
		}
		return r.NewAction(p)
	}
}

// NewAction resolves p against the allow-list.
func (r *Runner) NewAction(p ExecParams) (*Action, error) {
	var proc ProcessConfig
	switch {
	case p.Command != "":
		r.mu.RLock()
		registered, ok := r.registry[p.Command]
		r.mu.RUnlock()
		if !ok {
			return nil, &domain.UnknownTypeError{ID: ActionExec, Type: p.Command}
		}
		if len(p.Args) > 0 {
			return nil, fmt.Errorf("command %q: args are fixed by the registry, pass env instead", p.Command)
		}
		proc = registered
	case p.Exec != "":
		if !r.allowInline {
			return nil, fmt.Errorf("inline execution of %q is not enabled", p.Exec)
		}
		proc = ProcessConfig{Command: p.Exec, Args: p.Args}
	default:
		return nil, &domain.MissingFieldError{Object: ActionExec, Field: "command"}
	}
	if p.SaveTo != "" && r.board == nil {
		return nil, fmt.Errorf("save_to %q: runner has no blackboard", p.SaveTo)
	}

	return &Action{
		runner:  r,
		proc:    proc,
		env:     envFor(p.Env),
		timeout: p.Timeout,
		saveTo:  p.SaveTo,
	}, nil
}

// envFor flattens params into KEY=value pairs. Keys are upper-cased.
func envFor(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, EnvPrefix+strings.ToUpper(k)+"="+formatValue(params[k]))
	}
	return env
}
