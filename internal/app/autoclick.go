package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/clicker/internal/counter"
	"github.com/five82/clicker/internal/store"
)

const defaultAutoClickInterval = 2 * time.Second

// StartAutoClicker launches a background goroutine that dispatches
// IncreaseCount at a fixed cadence until ctx is done. It returns immediately.
func StartAutoClicker(ctx context.Context, st *store.Store[counter.State], interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultAutoClickInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				click(st, logger)
			}
		}
	}()
}

func click(st *store.Store[counter.State], logger *slog.Logger) {
	if _, err := st.Dispatch(counter.IncreaseCount{}); err != nil {
		logger.Warn("auto click failed", slog.String("err", err.Error()))
	}
}
