package process_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/actions"
	"github.com/aretw0/arbor/pkg/adapters/process"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests rely on /bin/sh")
	}
}

// tickUntilDone ticks a until it leaves ready.
func tickUntilDone(t *testing.T, a domain.Action) domain.Status {
	t.Helper()
	var status domain.Status
	require.Eventually(t, func() bool {
		status = a.Execute()
		return status != domain.StatusReady
	}, 5*time.Second, 10*time.Millisecond)
	return status
}

func TestExec_RegisteredCommand(t *testing.T) {
	skipOnWindows(t)
	board := actions.NewBlackboard(nil)
	runner := process.NewRunner(process.WithBlackboard(board))
	runner.Register("greet", "sh", "-c", `echo "hello $ARBOR_ARG_NAME"`)

	act, err := runner.Factory()(map[string]any{
		"command": "greet",
		"env":     map[string]any{"name": "arbor"},
		"save_to": "greeting",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusReady, act.Execute(), "first tick starts the process")
	assert.Equal(t, domain.StatusSuccess, tickUntilDone(t, act))
	assert.Equal(t, domain.StatusSuccess, act.Execute(), "result is sticky until acknowledged")

	v, ok := board.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, "hello arbor", v)

	act.Succeeded()
	assert.Equal(t, domain.StatusReady, act.Execute(), "acknowledged action runs again")
}

func TestExec_Failure(t *testing.T) {
	skipOnWindows(t)
	runner := process.NewRunner(process.WithRegistry(map[string]process.ProcessConfig{
		"broken": {Command: "sh", Args: []string{"-c", "echo oops >&2; exit 3"}},
	}))

	act, err := runner.NewAction(process.ExecParams{Command: "broken"})
	require.NoError(t, err)

	act.Execute()
	assert.Equal(t, domain.StatusFailure, tickUntilDone(t, act))
	res := act.Last()
	require.NotNil(t, res)
	assert.Error(t, res.Err)
	assert.Contains(t, res.Stderr, "oops")
}

func TestExec_Timeout(t *testing.T) {
	skipOnWindows(t)
	runner := process.NewRunner()
	runner.Register("slow", "sleep", "5")

	act, err := runner.Factory()(map[string]any{"command": "slow", "timeout": "50ms"})
	require.NoError(t, err)
	act.Execute()
	assert.Equal(t, domain.StatusFailure, tickUntilDone(t, act))
}

func TestExec_JSONOutput(t *testing.T) {
	skipOnWindows(t)
	board := actions.NewBlackboard(nil)
	runner := process.NewRunner(process.WithInlineExecution(true), process.WithBlackboard(board))

	act, err := runner.NewAction(process.ExecParams{
		Exec:   "sh",
		Args:   []string{"-c", `echo '{"count": 2}'`},
		SaveTo: "out",
	})
	require.NoError(t, err)
	act.Execute()
	require.Equal(t, domain.StatusSuccess, tickUntilDone(t, act))

	v, _ := board.Get("out")
	assert.Equal(t, map[string]any{"count": float64(2)}, v)
}

func TestExec_Rejections(t *testing.T) {
	runner := process.NewRunner()
	runner.Register("ok", "true")

	tests := []struct {
		name   string
		params process.ExecParams
		target error
	}{
		{"Unregistered command", process.ExecParams{Command: "hacker_script"}, domain.ErrUnknownType},
		{"Missing command", process.ExecParams{}, domain.ErrMissingField},
		{"Inline disabled", process.ExecParams{Exec: "rm"}, nil},
		{"Args on registered command", process.ExecParams{Command: "ok", Args: []string{"-rf"}}, nil},
		{"save_to without board", process.ExecParams{Command: "ok", SaveTo: "x"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.NewAction(tt.params)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
	assert.Equal(t, []string{"ok"}, runner.Commands())
}

func TestExec_InTree(t *testing.T) {
	skipOnWindows(t)
	reg := registry.NewDefault()
	runner := process.NewRunner()
	runner.Register("check", "true")
	reg.RegisterAction(process.ActionExec, runner.Factory())

	res, err := loader.New(reg).Load(`{id: actor, type: Actor, name: Runner, rootnode:
  {id: seq, type: Sequence, childnodes: [
    {id: run, type: LeafAction, action: {type: Exec, command: check}},
    {id: done, type: LeafAction, action: Succeed}]}}`)
	require.NoError(t, err)

	actor, _ := res.Actor("Runner")
	var status domain.Status
	require.Eventually(t, func() bool {
		status, _ = actor.Execute()
		return status != domain.StatusReady
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, domain.StatusSuccess, status)
}
