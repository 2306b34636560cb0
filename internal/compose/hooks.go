package compose

import (
	"context"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// MetricsHook counts overflowing renders and rotation steps
func MetricsHook(_ context.Context, _ domain.ServerStatus, c Composition) {
	if c.Overflow {
		metrics.ComposeOverflow.Inc()
	}
	if c.CursorChanged {
		metrics.RotationAdvances.Inc()
	}
}
