package loader

import (
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "whitespace only", input: " \n\t ", want: nil},
		{name: "single", input: `{"id": "a"}`, want: []string{`{"id": "a"}`}},
		{
			name:  "concatenated",
			input: `{"id": "a"}{"id": "b"}`,
			want:  []string{`{"id": "a"}`, `{"id": "b"}`},
		},
		{
			name:  "comma and newline separated",
			input: "{id: a},\n{id: b}\n",
			want:  []string{"{id: a}", "{id: b}"},
		},
		{
			name:  "nested braces",
			input: `{"id": "a", "rootnode": {"id": "b", "childnodes": [{"id": "c"}]}}`,
			want:  []string{`{"id": "a", "rootnode": {"id": "b", "childnodes": [{"id": "c"}]}}`},
		},
		{
			name:  "braces in strings",
			input: `{"id": "a", "name": "}{"} {'id': 'b', 'name': '{'}`,
			want:  []string{`{"id": "a", "name": "}{"}`, `{'id': 'b', 'name': '{'}`},
		},
		{
			name:  "escaped quote",
			input: `{"id": "a", "name": "say \"}\""}`,
			want:  []string{`{"id": "a", "name": "say \"}\""}`},
		},
		{
			name:  "apostrophe in plain scalar",
			input: "{id: a, type: Actor, name: Bob's bot} {id: b}",
			want:  []string{"{id: a, type: Actor, name: Bob's bot}", "{id: b}"},
		},
		{
			name:  "single quoted scalar ending in backslash",
			input: `{id: a, name: 'x\'} {id: b}`,
			want:  []string{`{id: a, name: 'x\'}`, "{id: b}"},
		},
		{
			name:  "doubled single quote",
			input: `{id: a, name: 'it''s }'} {id: b}`,
			want:  []string{`{id: a, name: 'it''s }'}`, "{id: b}"},
		},
		{
			name:  "quoted scalar in flow sequence",
			input: `{id: a, childnodes: ['}', "{"]}`,
			want:  []string{`{id: a, childnodes: ['}', "{"]}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Split(tt.input)
			require.NoError(t, err)
			var got []string
			for _, c := range chunks {
				got = append(got, c.Text)
				assert.Equal(t, c.Text, tt.input[c.Span.Start:c.Span.End])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplit_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		start, end int
	}{
		{name: "unclosed brace", input: `  {"id": "a"`, start: 2, end: 12},
		{name: "stray close", input: `{"id": "a"}}`, start: 11, end: 12},
		{name: "unterminated string", input: `{"id": "a}`, start: 0, end: 10},
		{name: "junk between records", input: `{"id": "a"} x {"id": "b"}`, start: 12, end: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(tt.input)
			require.ErrorIs(t, err, domain.ErrMalformedRecord)

			var mre *domain.MalformedRecordError
			require.ErrorAs(t, err, &mre)
			assert.Equal(t, tt.start, mre.Start)
			assert.Equal(t, tt.end, mre.End)
		})
	}
}

func TestParse_JSONAndYAMLFlow(t *testing.T) {
	records, err := Parse(`{"id": "a", "type": "Sequence"} {id: b, type: Selector, name: Billy Bob}`)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, 0, records[0].Span.Start)
	assert.Equal(t, "Billy Bob", records[1].Name)
	assert.Equal(t, "Selector", records[1].Type)
}

func TestParse_BadLiteral(t *testing.T) {
	_, err := Parse(`{"id": "a", "type": [}`)
	require.ErrorIs(t, err, domain.ErrMalformedRecord)
}
