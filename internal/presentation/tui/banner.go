package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the arbor banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Green to teal, top to bottom
	lines := []struct{ text, color string }{
		{"             _                    ", "#22c55e"},
		{"   __ _ _ __| |__   ___  _ __     ", "#10b981"},
		{"  / _` | '__| '_ \\ / _ \\| '__|    ", "#14b8a6"},
		{" | (_| | |  | |_) | (_) | |       ", "#06b6d4"},
		{"  \\__,_|_|  |_.__/ \\___/|_|       ", "#0ea5e9"},
	}
	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
