package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"pod-booking-core/internal/pkg/config"
	"pod-booking-core/internal/usecase/commands"

	"go.uber.org/fx"
)

// SweeperModule runs the hold purge on a fixed interval. The sweep is storage
// compaction only; every read path filters expiry itself, so a missed or slow
// sweep never changes behavior.
var SweeperModule = fx.Module("sweeper",
	fx.Invoke(startSweeper),
)

func startSweeper(lc fx.Lifecycle, cfg config.Config, holdCommands commands.HoldCommands, logger *slog.Logger) {
	interval := cfg.Hold.SweepInterval
	if interval <= 0 {
		logger.Info("hold sweeper disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						purged, err := holdCommands.Sweep(ctx)
						if err != nil {
							logger.Error("hold sweep failed", "error", err)
							continue
						}
						if purged > 0 {
							logger.Info("hold sweep completed", "purged", purged)
						}
					}
				}
			}()
			logger.Info("hold sweeper started", "interval", interval)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
