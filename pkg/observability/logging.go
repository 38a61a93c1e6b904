package observability

import (
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
)

// LogHooks returns lifecycle hooks that log every event.
// Ticks are logged at Debug, loads at Info (Warn when they fail).
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(e *domain.TickEvent) {
			logger.Debug("node_tick",
				"node_id", e.NodeID,
				"kind", e.Kind,
				"status", e.Status,
			)
		},
		OnLoad: func(e *domain.LoadEvent) {
			if e.Err != nil {
				logger.Warn("load_failed", "records", e.Records, "duration", e.Duration, "err", e.Err)
				return
			}
			logger.Info("load",
				"records", e.Records,
				"objects", e.Objects,
				"duration", e.Duration,
			)
		},
	}
}
