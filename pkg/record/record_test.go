package record_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap_Defaults(t *testing.T) {
	rec, err := record.FromMap(map[string]any{"id": "fake", "type": "faketype"}, record.NoSpan)
	require.NoError(t, err)

	assert.Equal(t, "fake", rec.ID)
	assert.Equal(t, "faketype", rec.Type)
	assert.Empty(t, rec.Refs)
	assert.Empty(t, rec.Params)
	assert.False(t, rec.Has(domain.FieldRootNode))
	assert.Empty(t, rec.RefsFor(domain.FieldChildNodes))
	assert.False(t, rec.Has(domain.FieldDecoratee))
}

func TestFromMap_References(t *testing.T) {
	rec, err := record.FromMap(map[string]any{
		"id":         "mock",
		"type":       "Fake",
		"rootnode":   "node01",
		"childnodes": []any{"node02", "node03"},
		"decoratee":  "decoratednode",
	}, record.NoSpan)
	require.NoError(t, err)

	assert.Equal(t, []record.Ref{{Field: domain.FieldRootNode, Target: "node01"}}, rec.RefsFor(domain.FieldRootNode))
	assert.Equal(t, []record.Ref{
		{Field: domain.FieldChildNodes, Target: "node02"},
		{Field: domain.FieldChildNodes, Target: "node03"},
	}, rec.RefsFor(domain.FieldChildNodes))
	assert.Equal(t, "decoratednode", rec.RefsFor(domain.FieldDecoratee)[0].Target)
}

func TestFromMap_NumericIDs(t *testing.T) {
	rec, err := record.FromMap(map[string]any{
		"id":         1,
		"type":       "Sequence",
		"childnodes": []any{2, 3.5, float64(4)},
	}, record.NoSpan)
	require.NoError(t, err)

	assert.Equal(t, "1", rec.ID)
	assert.Equal(t, []record.Ref{
		{Field: domain.FieldChildNodes, Target: "2"},
		{Field: domain.FieldChildNodes, Target: "3.5"},
		{Field: domain.FieldChildNodes, Target: "4"},
	}, rec.RefsFor(domain.FieldChildNodes))
}

func TestFromMap_MissingFields(t *testing.T) {
	_, err := record.FromMap(map[string]any{"id": "fake"}, record.NoSpan)
	require.ErrorIs(t, err, domain.ErrMissingField)
	var missing *domain.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.FieldType, missing.Field)

	_, err = record.FromMap(map[string]any{"type": "Sequence"}, record.NoSpan)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.FieldID, missing.Field)
	assert.Equal(t, "Sequence", missing.Object)
}

func TestFromMap_Params(t *testing.T) {
	rec, err := record.FromMap(map[string]any{
		"id":    "leaf",
		"type":  "NodeLeafIterative",
		"name":  "Walker",
		"execs": 5,
	}, record.NoSpan)
	require.NoError(t, err)

	assert.Equal(t, "Walker", rec.Name)
	assert.Equal(t, map[string]any{"execs": 5}, rec.Params)
}

func TestFromMap_InlineRecords(t *testing.T) {
	rec, err := record.FromMap(map[string]any{
		"id":   "actor_01",
		"type": "Actor",
		"name": "Billy Bob",
		"rootnode": []any{
			map[string]any{
				"id":   "seq_01",
				"type": "Sequence",
				"childnodes": []any{
					map[string]any{"id": "l1", "type": "LeafAction", "action": "Succeed"},
					"l2",
				},
			},
		},
	}, record.NoSpan)
	require.NoError(t, err)

	roots := rec.RefsFor(domain.FieldRootNode)
	require.Len(t, roots, 1)
	require.True(t, roots[0].IsInline())
	seq := roots[0].Inline
	assert.Equal(t, "seq_01", seq.ID)

	children := seq.RefsFor(domain.FieldChildNodes)
	require.Len(t, children, 2)
	assert.Equal(t, "l1", children[0].Describe())
	assert.Equal(t, "Succeed", children[0].Inline.Params["action"])
	assert.False(t, children[1].IsInline())

	var ids []string
	rec.Walk(func(r *record.Record) { ids = append(ids, r.ID) })
	assert.Equal(t, []string{"actor_01", "seq_01", "l1"}, ids)
}

func TestFromMap_InlineRecordMissingID(t *testing.T) {
	_, err := record.FromMap(map[string]any{
		"id":        "inv",
		"type":      "Invert",
		"decoratee": map[string]any{"type": "Sequence"},
	}, record.NoSpan)
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestFromMap_BadReferences(t *testing.T) {
	tests := map[string]map[string]any{
		"boolean":         {"id": "a", "type": "Invert", "decoratee": true},
		"two roots":       {"id": "a", "type": "Actor", "rootnode": []any{"x", "y"}},
		"empty reference": {"id": "a", "type": "Sequence", "childnodes": []any{""}},
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := record.FromMap(raw, record.Span{Start: 0, End: 10})
			assert.ErrorIs(t, err, domain.ErrMalformedRecord)
		})
	}
}

func TestRecord_Map(t *testing.T) {
	raw := map[string]any{
		"id":   "seq",
		"type": "Sequence",
		"childnodes": []any{
			"a",
			map[string]any{"id": "b", "type": "LeafAction", "action": "Fail"},
		},
	}
	rec, err := record.FromMap(raw, record.NoSpan)
	require.NoError(t, err)

	assert.Equal(t, raw, rec.Map())
}
