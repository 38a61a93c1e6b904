package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventTick EventType = "tick"
	EventLoad EventType = "load"
)

// TickEvent is emitted after a node finished one Execute call.
type TickEvent struct {
	Timestamp time.Time `json:"timestamp"`
	NodeID    string    `json:"node_id"`
	Kind      string    `json:"kind"`
	Status    Status    `json:"status"`
}

// LoadEvent is emitted when a loader finished (or aborted) a load.
type LoadEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Records   int           `json:"records"`
	Objects   int           `json:"objects"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnTick func(*TickEvent)
	OnLoad func(*LoadEvent)
}

// Tick invokes OnTick if set.
func (h LifecycleHooks) Tick(ev *TickEvent) {
	if h.OnTick != nil {
		h.OnTick(ev)
	}
}

// Load invokes OnLoad if set.
func (h LifecycleHooks) Load(ev *LoadEvent) {
	if h.OnLoad != nil {
		h.OnLoad(ev)
	}
}

// Merge returns hooks that call both h and other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTick: func(ev *TickEvent) {
			h.Tick(ev)
			other.Tick(ev)
		},
		OnLoad: func(ev *LoadEvent) {
			h.Load(ev)
			other.Load(ev)
		},
	}
}
