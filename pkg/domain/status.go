package domain

import "fmt"

// Status is the result of ticking a node once.
type Status string

const (
	// StatusReady means the node has more work to do and should be ticked again.
	StatusReady Status = "ready"
	// StatusSuccess means the node finished and achieved its goal.
	StatusSuccess Status = "success"
	// StatusFailure means the node finished without achieving its goal.
	StatusFailure Status = "failure"
)

// String implements fmt.Stringer.
func (s Status) String() string { return string(s) }

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusReady, StatusSuccess, StatusFailure:
		return true
	default:
		return false
	}
}

// Terminal reports whether s ends the node's current run.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// Invert swaps success and failure. Ready is returned unchanged.
func (s Status) Invert() Status {
	switch s {
	case StatusSuccess:
		return StatusFailure
	case StatusFailure:
		return StatusSuccess
	default:
		return s
	}
}

// ParseStatus converts the textual form back into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}
