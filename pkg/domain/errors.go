package domain

import (
	"errors"
	"fmt"
)

// Sentinels for the loader error taxonomy. Every typed error below matches
// its sentinel with errors.Is.
var (
	ErrMissingField        = errors.New("missing field")
	ErrUnknownType         = errors.New("no such constructor")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrDanglingReference   = errors.New("dangling reference")
	ErrMalformedRecord     = errors.New("malformed record")
)

// MissingFieldError is returned when a required constructor field is absent.
type MissingFieldError struct {
	Object string // Kind or id of the object being constructed
	Field  string
}

func (e *MissingFieldError) Error() string {
	if e.Object == "" {
		return fmt.Sprintf("missing field %q", e.Field)
	}
	return fmt.Sprintf("%s: missing field %q", e.Object, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// UnknownTypeError is returned when a record names a type the registry does not know.
type UnknownTypeError struct {
	ID   string
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("record %q: no such constructor %q", e.ID, e.Type)
}

func (e *UnknownTypeError) Is(target error) bool { return target == ErrUnknownType }

// DuplicateIdentifierError is returned when two records share an id.
type DuplicateIdentifierError struct {
	ID string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate identifier %q", e.ID)
}

func (e *DuplicateIdentifierError) Is(target error) bool { return target == ErrDuplicateIdentifier }

// DanglingReferenceError is returned when a reference names an id that no
// record defines.
type DanglingReferenceError struct {
	From  string // id of the record holding the reference
	Field string
	Ref   string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("record %q: field %q: dangling reference %q", e.From, e.Field, e.Ref)
}

func (e *DanglingReferenceError) Is(target error) bool { return target == ErrDanglingReference }

// MalformedRecordError is returned when the input text cannot be split or a
// record cannot be parsed. Start and End are byte offsets into the input;
// they are both -1 when the offending record was not read from text.
type MalformedRecordError struct {
	Start  int
	End    int
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	msg := "malformed record"
	if e.Start >= 0 {
		msg = fmt.Sprintf("malformed record at [%d:%d]", e.Start, e.End)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// ErrActorNotFound is returned when a stage has no actor with the requested name.
var ErrActorNotFound = errors.New("actor not found")

// ErrDocumentNotFound is returned by document sources for unknown keys.
var ErrDocumentNotFound = errors.New("document not found")
