package arbor_test

import (
	"testing"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billyBob = `
{id: actor_01, type: Actor, name: Billy Bob, rootnode: seq_01}
{id: seq_01, type: Sequence, childnodes: [
  {id: l1, type: LeafAction, action: Succeed},
  {id: l2, type: LeafAction, action: Succeed}]}`

func TestLoad(t *testing.T) {
	var loads []*domain.LoadEvent
	res, err := arbor.Load(billyBob, arbor.WithHooks(domain.LifecycleHooks{
		OnLoad: func(ev *domain.LoadEvent) { loads = append(loads, ev) },
	}))
	require.NoError(t, err)

	actor, ok := res.Actor("Billy Bob")
	require.True(t, ok)

	status, ran := actor.Execute()
	assert.True(t, ran)
	assert.Equal(t, domain.StatusReady, status)
	status, _ = actor.Execute()
	assert.Equal(t, domain.StatusSuccess, status)

	require.Len(t, loads, 1)
	assert.Equal(t, 4, loads[0].Objects)
}

func TestLoad_WithRegistry(t *testing.T) {
	reg := registry.NewDefault()
	require.NoError(t, reg.Alias("Seq", "Sequence"))

	_, err := arbor.Load(`{id: s, type: Seq}`)
	assert.ErrorIs(t, err, domain.ErrUnknownType, "default registry is untouched")

	res, err := arbor.Load(`{id: s, type: Seq}`, arbor.WithRegistry(reg))
	require.NoError(t, err)
	obj, ok := res.Lookup("s")
	require.True(t, ok)
	assert.IsType(t, &tree.Sequence{}, obj)
}

func TestLoadRecords(t *testing.T) {
	b := dsl.New()
	b.Add("root").Invert("leaf")
	b.Add("leaf").Leaf("Fail")
	records, err := b.Records()
	require.NoError(t, err)

	res, err := arbor.LoadRecords(records)
	require.NoError(t, err)

	obj, _ := res.Lookup("root")
	assert.Equal(t, domain.StatusSuccess, obj.(domain.Node).Execute())
}
