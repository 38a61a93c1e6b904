// Package record holds the normalized form of one parsed object record.
package record

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Span locates a record in the input text. Both offsets are -1 for records
// that were not read from text.
type Span struct {
	Start int
	End   int
}

// NoSpan is the span of records built in code.
var NoSpan = Span{Start: -1, End: -1}

// Record is one object definition: its identity, the type selecting a
// constructor, its references to other records and everything else it declares.
type Record struct {
	ID   string
	Type string
	Name string

	// Params holds every non-reference field other than id, type and name,
	// exactly as parsed.
	Params map[string]any

	// Refs lists the reference fields in the order rootnode, decoratee,
	// childnodes (children in declared order).
	Refs []Ref

	Span Span
}

// Ref is one reference-capable field value: either the id of another record
// or an inline record.
type Ref struct {
	Field  string
	Target string
	Inline *Record
}

// IsInline reports whether the reference holds a nested record.
func (r Ref) IsInline() bool { return r.Inline != nil }

// Describe returns the referenced id, inline or not.
func (r Ref) Describe() string {
	if r.Inline != nil {
		return r.Inline.ID
	}
	return r.Target
}

// ReferenceFields are the fields the loader links in its second pass.
var ReferenceFields = []string{domain.FieldRootNode, domain.FieldDecoratee, domain.FieldChildNodes}

// wire mirrors the parsed map before references are normalized.
type wire struct {
	ID         string         `mapstructure:"id"`
	Type       string         `mapstructure:"type"`
	Name       string         `mapstructure:"name"`
	RootNode   any            `mapstructure:"rootnode"`
	Decoratee  any            `mapstructure:"decoratee"`
	ChildNodes any            `mapstructure:"childnodes"`
	Params     map[string]any `mapstructure:",remain"`
}

// FromMap builds a Record (and, recursively, its inline records) from a parsed map.
func FromMap(raw map[string]any, span Span) (*Record, error) {
	var w wire
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &w,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, malformed(span, "", err)
	}

	if w.ID == "" {
		object := w.Type
		if object == "" {
			object = "record"
		}
		return nil, &domain.MissingFieldError{Object: object, Field: domain.FieldID}
	}
	if w.Type == "" {
		return nil, &domain.MissingFieldError{Object: w.ID, Field: domain.FieldType}
	}

	rec := &Record{
		ID:     w.ID,
		Type:   w.Type,
		Name:   w.Name,
		Params: w.Params,
		Span:   span,
	}
	if rec.Params == nil {
		rec.Params = map[string]any{}
	}

	if err := rec.addSingle(domain.FieldRootNode, w.RootNode); err != nil {
		return nil, err
	}
	if err := rec.addSingle(domain.FieldDecoratee, w.Decoratee); err != nil {
		return nil, err
	}
	if err := rec.addList(domain.FieldChildNodes, w.ChildNodes); err != nil {
		return nil, err
	}
	return rec, nil
}

// addSingle accepts an id, a record, or a list holding exactly one of them.
func (r *Record) addSingle(field string, value any) error {
	if list, ok := value.([]any); ok {
		switch len(list) {
		case 0:
			return nil
		case 1:
			value = list[0]
		default:
			return malformed(r.Span, fmt.Sprintf("record %q: field %q takes a single reference, got %d", r.ID, field, len(list)), nil)
		}
	}
	if value == nil {
		return nil
	}
	ref, err := r.toRef(field, value)
	if err != nil {
		return err
	}
	r.Refs = append(r.Refs, ref)
	return nil
}

// addList accepts a list of ids and records, or a single one.
func (r *Record) addList(field string, value any) error {
	list, ok := value.([]any)
	if !ok {
		return r.addSingle(field, value)
	}
	for _, item := range list {
		ref, err := r.toRef(field, item)
		if err != nil {
			return err
		}
		r.Refs = append(r.Refs, ref)
	}
	return nil
}

func (r *Record) toRef(field string, value any) (Ref, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return Ref{}, malformed(r.Span, fmt.Sprintf("record %q: field %q: empty reference", r.ID, field), nil)
		}
		return Ref{Field: field, Target: v}, nil
	case int, int64, uint64, float64:
		// ids are decoded weakly, so 1 declares "1"; references follow suit.
		return Ref{Field: field, Target: scalarID(v)}, nil
	case map[string]any:
		nested, err := FromMap(v, r.Span)
		if err != nil {
			return Ref{}, fmt.Errorf("record %q: field %q: %w", r.ID, field, err)
		}
		return Ref{Field: field, Inline: nested}, nil
	default:
		return Ref{}, malformed(r.Span, fmt.Sprintf("record %q: field %q: expected an id or a record, got %T", r.ID, field, value), nil)
	}
}

func scalarID(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// RefsFor returns the references declared in field, in order.
func (r *Record) RefsFor(field string) []Ref {
	var out []Ref
	for _, ref := range r.Refs {
		if ref.Field == field {
			out = append(out, ref)
		}
	}
	return out
}

// Has reports whether field holds at least one reference.
func (r *Record) Has(field string) bool {
	return len(r.RefsFor(field)) > 0
}

// Walk calls fn for r and then for every inline record below it, depth-first.
func (r *Record) Walk(fn func(*Record)) {
	fn(r)
	for _, ref := range r.Refs {
		if ref.Inline != nil {
			ref.Inline.Walk(fn)
		}
	}
}

// Map converts the record back into its literal form, suitable for encoding.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.Params)+6)
	maps.Copy(out, r.Params)
	out[domain.FieldID] = r.ID
	out[domain.FieldType] = r.Type
	if r.Name != "" {
		out[domain.FieldName] = r.Name
	}
	for _, ref := range r.Refs {
		var v any = ref.Target
		if ref.Inline != nil {
			v = ref.Inline.Map()
		}
		if ref.Field == domain.FieldChildNodes {
			list, _ := out[ref.Field].([]any)
			out[ref.Field] = append(list, v)
			continue
		}
		out[ref.Field] = v
	}
	return out
}

func malformed(span Span, reason string, err error) error {
	return &domain.MalformedRecordError{Start: span.Start, End: span.End, Reason: reason, Err: err}
}
