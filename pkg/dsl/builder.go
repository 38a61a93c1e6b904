package dsl

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/record"
	"github.com/aretw0/arbor/pkg/registry"
)

// Builder manages the document construction.
type Builder struct {
	order []string
	nodes map[string]*NodeBuilder
}

// New creates a new document builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new record in the document.
// If the record already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		raw:     map[string]any{"id": id},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Records converts every added record, in the order they were added.
func (b *Builder) Records() ([]*record.Record, error) {
	records := make([]*record.Record, 0, len(b.order))
	for _, id := range b.order {
		rec, err := record.FromMap(b.nodes[id].Map(), record.NoSpan)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", id, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Build instantiates and links the document with reg.
func (b *Builder) Build(reg *registry.Registry, opts ...loader.Option) (*loader.Result, error) {
	records, err := b.Records()
	if err != nil {
		return nil, err
	}
	return loader.New(reg, opts...).LoadRecords(records...)
}

// Text renders the document as newline separated JSON records.
func (b *Builder) Text() (string, error) {
	var sb strings.Builder
	for _, id := range b.order {
		data, err := json.MarshalIndent(b.nodes[id].Map(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("record %q: %w", id, err)
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
