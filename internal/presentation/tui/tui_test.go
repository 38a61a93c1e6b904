package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	res, err := loader.New(registry.NewDefault()).Load(`
		{id: a, type: Actor, name: Billy Bob, rootnode: {id: s, type: Sequence, name: Chores, childnodes: [{id: l, type: LeafAction, action: Succeed}]}}
		{id: lonely, type: Actor, name: Lonely}
		{id: free, type: Invert, decoratee: {id: x, type: LeafAction, action: Fail}}
	`)
	require.NoError(t, err)

	md := tui.Describe("guards.arbor", res)
	assert.Contains(t, md, "# guards.arbor")
	assert.Contains(t, md, "| 6 | 2 | 1 |")
	assert.Contains(t, md, "## Actor Billy Bob (`a`)")
	assert.Contains(t, md, "- **s** `Sequence` \"Chores\"\n  - **l** `LeafAction`\n")
	assert.Contains(t, md, "_No root node._")
	assert.Contains(t, md, "## Tree `free`")
	assert.Contains(t, md, "  - **x** `LeafAction`")
}

func TestPlainRenderer(t *testing.T) {
	render := tui.NewRenderer(true)
	out, err := render("# hi")
	require.NoError(t, err)
	assert.Equal(t, "# hi", out)
}

func TestFormatStatus_Ascii(t *testing.T) {
	assert.Equal(t, "success", tui.FormatStatus(termenv.Ascii, domain.StatusSuccess))
	assert.Equal(t, "(none)", tui.FormatStatus(termenv.Ascii, ""))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_.__/")
}
