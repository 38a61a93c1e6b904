package tui

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/muesli/termenv"
)

// StatusColor returns the color used for a status under profile p.
func StatusColor(p termenv.Profile, s domain.Status) termenv.Color {
	switch s {
	case domain.StatusSuccess:
		return p.Color("#22c55e")
	case domain.StatusFailure:
		return p.Color("#ef4444")
	default:
		return p.Color("#eab308")
	}
}

// FormatStatus renders s in its color. The Ascii profile yields plain text.
func FormatStatus(p termenv.Profile, s domain.Status) string {
	text := s.String()
	if text == "" {
		text = "(none)"
	}
	return p.String(text).Foreground(StatusColor(p, s)).Bold().String()
}
