package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/arbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billyBob = `{id: actor_01, type: Actor, name: Billy Bob, rootnode: seq_01}
{id: seq_01, type: Sequence, childnodes: [
  {id: l1, type: LeafAction, action: Succeed},
  {id: l2, type: LeafAction, action: Succeed}]}`

// execute runs the root command with args in a scratch directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	globalOpts.ConfigPath, globalOpts.LogLevel = "", "error"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "arbor version "+arbor.Version+"\n", out)
}

func TestValidateCommand(t *testing.T) {
	good := writeDoc(t, "good.arbor", billyBob)
	bad := writeDoc(t, "bad.arbor", `{id: a, type: Actor, name: A, rootnode: nowhere}`)

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "4 objects, 1 actors")

	out, err = execute(t, "validate", good, bad)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "nowhere")
}

func TestRunCommand(t *testing.T) {
	doc := writeDoc(t, "billy.arbor", billyBob)

	out, err := execute(t, "run", doc, "--ticks", "5")
	require.NoError(t, err)
	assert.Equal(t, "1   Billy Bob: ready\n2   Billy Bob: success\n", out)
}

func TestGraphCommand(t *testing.T) {
	doc := writeDoc(t, "billy.arbor", billyBob)

	out, err := execute(t, "graph", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `actor_01(("Billy Bob"))`)
}

func TestDescribeCommand(t *testing.T) {
	doc := writeDoc(t, "billy.arbor", billyBob)

	out, err := execute(t, "describe", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "billy.arbor")
	assert.Contains(t, out, "Billy Bob")
}
