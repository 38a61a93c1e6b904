package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/muesli/termenv"
)

// RunOptions controls RunActors.
type RunOptions struct {
	// Actor restricts the run to one actor name. Empty runs them all.
	Actor string
	// Ticks is the maximum number of ticks per actor.
	Ticks int
}

// RunActors ticks the selected actors until each finishes or runs out of
// ticks, printing one line per tick. It returns the last status per actor.
func RunActors(w io.Writer, p termenv.Profile, res *loader.Result, opts RunOptions) (map[string]domain.Status, error) {
	if opts.Ticks < 1 {
		return nil, fmt.Errorf("ticks must be positive, got %d", opts.Ticks)
	}

	var actors []*tree.Actor
	if opts.Actor != "" {
		a, ok := res.Actor(opts.Actor)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrActorNotFound, opts.Actor)
		}
		actors = []*tree.Actor{a}
	} else {
		actors = res.Actors()
	}
	if len(actors) == 0 {
		return nil, fmt.Errorf("%w: document declares no actors", domain.ErrActorNotFound)
	}

	last := make(map[string]domain.Status, len(actors))
	for _, a := range actors {
		for i := 1; i <= opts.Ticks; i++ {
			status, ok := a.Execute()
			if !ok {
				fmt.Fprintf(w, "%-3d %s: no root node\n", i, a.Name())
				break
			}
			last[a.Name()] = status
			fmt.Fprintf(w, "%-3d %s: %s\n", i, a.Name(), tui.FormatStatus(p, status))
			if status.Terminal() {
				break
			}
		}
	}
	return last, nil
}
