package dsl

import (
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billyBob() *Builder {
	b := New()
	b.Add("actor_01").Actor("Billy Bob").Root("seq_01")
	b.Add("seq_01").Sequence().Child("l1").Child("l2")
	b.Add("l1").Leaf("Succeed")
	b.Add("l2").LeafWith("Countdown", map[string]any{"execs": 1})
	return b
}

func TestBuilder_Build(t *testing.T) {
	res, err := billyBob().Build(registry.NewDefault())
	require.NoError(t, err)

	actor, ok := res.Actor("Billy Bob")
	require.True(t, ok)

	status, _ := actor.Execute()
	assert.Equal(t, domain.StatusReady, status)
	status, _ = actor.Execute()
	assert.Equal(t, domain.StatusSuccess, status)
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New()
	first := b.Add("x").Selector()
	assert.Same(t, first, b.Add("x"))

	records, err := b.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.KindSelector, records[0].Type)
}

func TestBuilder_TextRoundTrip(t *testing.T) {
	text, err := billyBob().Text()
	require.NoError(t, err)
	assert.Contains(t, text, `"name": "Billy Bob"`)

	res, err := loader.New(registry.NewDefault()).Load(text)
	require.NoError(t, err)
	require.Len(t, res.Objects, 4)

	seq, ok := res.Lookup("seq_01")
	require.True(t, ok)
	root := res.Actors()[0].RootNode()
	assert.Same(t, seq, root)
}

func TestBuilder_Decorators(t *testing.T) {
	b := New()
	b.Add("not").Invert("check")
	b.Add("check").Condition("hp > 10")

	reg := registry.NewDefault()
	reg.Blackboard().Set("hp", 3)

	res, err := b.Build(reg)
	require.NoError(t, err)
	roots := res.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, domain.StatusSuccess, roots[0].Execute())
}

func TestBuilder_MissingType(t *testing.T) {
	b := New()
	b.Add("x").Name("no type")

	_, err := b.Build(registry.NewDefault())
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestNodeBuilder_MapIsCopy(t *testing.T) {
	b := New()
	nb := b.Add("s").Sequence().Child("a")
	m := nb.Map()
	m["childnodes"] = append(m["childnodes"].([]any), "b")

	assert.Equal(t, []any{"a"}, nb.Map()["childnodes"])
}
