package loader

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/record"
	"gopkg.in/yaml.v3"
)

// ParseChunk decodes one record literal. The literal is read as a YAML flow
// mapping, which also accepts JSON objects.
func ParseChunk(c Chunk) (*record.Record, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(c.Text), &raw); err != nil {
		return nil, &domain.MalformedRecordError{Start: c.Span.Start, End: c.Span.End, Reason: "parse", Err: err}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return record.FromMap(raw, c.Span)
}

// Parse splits text and parses every record in it, in input order.
func Parse(text string) ([]*record.Record, error) {
	chunks, err := Split(text)
	if err != nil {
		return nil, err
	}
	records := make([]*record.Record, 0, len(chunks))
	for _, c := range chunks {
		rec, err := ParseChunk(c)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
