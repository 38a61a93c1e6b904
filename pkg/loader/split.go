package loader

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/record"
)

// Chunk is the raw text of one top-level record and where it was found.
type Chunk struct {
	Text string
	Span record.Span
}

// Split scans text and returns one chunk per top-level {...} record.
// Braces inside quoted scalars are ignored. A quote only opens a scalar when
// it is the first non-blank character after '{', '[', ',' or ':', so plain
// scalars like Bob's bot pass through. Double-quoted scalars escape with a
// backslash, single-quoted ones with a doubled quote.
// Records may be separated by whitespace and commas only.
func Split(text string) ([]Chunk, error) {
	var (
		chunks []Chunk
		depth  int
		start  = -1
		quote  byte
		escape bool
		// last non-blank byte seen inside the current record
		prev byte
	)
	for i := 0; i < len(text); i++ {
		c := text[i]

		if quote != 0 {
			switch {
			case escape:
				escape = false
			case quote == '"' && c == '\\':
				escape = true
			case c == quote && quote == '\'' && i+1 < len(text) && text[i+1] == '\'':
				i++
			case c == quote:
				quote = 0
				prev = c
			}
			continue
		}

		if depth == 0 {
			switch c {
			case ' ', '\t', '\n', '\r', ',':
				continue
			case '{':
				start = i
				depth = 1
				prev = c
				continue
			case '}':
				return nil, splitError(i, i+1, "unexpected '}'")
			default:
				return nil, splitError(i, i+1, fmt.Sprintf("unexpected %q outside a record", c))
			}
		}

		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '"', '\'':
			if opensScalar(prev) {
				quote = c
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				chunks = append(chunks, Chunk{
					Text: text[start : i+1],
					Span: record.Span{Start: start, End: i + 1},
				})
				start = -1
			}
		}
		prev = c
	}

	if quote != 0 {
		return nil, splitError(start, len(text), "unterminated string")
	}
	if depth != 0 {
		return nil, splitError(start, len(text), "unclosed '{'")
	}
	return chunks, nil
}

func opensScalar(prev byte) bool {
	switch prev {
	case '{', '[', ',', ':':
		return true
	}
	return false
}

func splitError(start, end int, reason string) error {
	return &domain.MalformedRecordError{Start: start, End: end, Reason: reason}
}
