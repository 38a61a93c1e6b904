package actions

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
)

// Countdown reports ready until it has been executed Execs times, then
// succeeds. An acknowledgement rearms it.
type Countdown struct {
	execs int
	count int
}

// CountdownParams are the record parameters of a countdown.
type CountdownParams struct {
	Execs int `mapstructure:"execs"`
}

// NewCountdown returns a countdown finishing on the execs-th tick.
func NewCountdown(execs int) (*Countdown, error) {
	if execs < 1 {
		return nil, fmt.Errorf("countdown: execs must be at least 1, got %d", execs)
	}
	return &Countdown{execs: execs}, nil
}

// NewCountdownFromParams is the Factory for countdowns. Execs defaults to 1.
func NewCountdownFromParams(params map[string]any) (domain.Action, error) {
	p := CountdownParams{Execs: 1}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return NewCountdown(p.Execs)
}

func (c *Countdown) Execute() domain.Status {
	c.count++
	if c.count >= c.execs {
		return domain.StatusSuccess
	}
	return domain.StatusReady
}

func (c *Countdown) Succeeded() { c.count = 0 }

func (c *Countdown) Failed() { c.count = 0 }

// Remaining returns how many more ticks are needed before success.
func (c *Countdown) Remaining() int {
	if c.count >= c.execs {
		return 0
	}
	return c.execs - c.count
}
