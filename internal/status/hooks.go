package status

import (
	"context"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// PlayersGaugeHook exports the player count of each checked server
func PlayersGaugeHook(_ context.Context, server domain.ServerConfig, st domain.ServerStatus) {
	metrics.PlayersOnline.WithLabelValues(server.ID).Set(float64(len(st.Players)))
}
