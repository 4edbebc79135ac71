package cron

import (
	"context"
	"time"

	"workshopcart/models"

	"go.uber.org/zap"
)

// Refresher reloads the inventory snapshot.
type Refresher interface {
	Refresh(ctx context.Context) ([]models.CatalogItem, error)
}

// StartCatalogRefresher keeps the catalog cache warm until ctx is done.
// Each tick fetches once; a failure is logged and the previous snapshot
// stays in place until the next tick.
func StartCatalogRefresher(ctx context.Context, r Refresher, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		logger.Info("[CatalogRefresher] disabled")
		return
	}
	go func() {
		logger.Info("[CatalogRefresher] starting", zap.Duration("interval", interval))
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		refreshOnce(ctx, r, logger)
		for {
			select {
			case <-ctx.Done():
				logger.Info("[CatalogRefresher] stopped")
				return
			case <-ticker.C:
				refreshOnce(ctx, r, logger)
			}
		}
	}()
}

func refreshOnce(ctx context.Context, r Refresher, logger *zap.Logger) error {
	items, err := r.Refresh(ctx)
	if err != nil {
		logger.Warn("[CatalogRefresher] refresh failed", zap.Error(err))
		return err
	}
	logger.Debug("[CatalogRefresher] refreshed", zap.Int("items", len(items)))
	return nil
}
