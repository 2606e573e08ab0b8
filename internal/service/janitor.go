package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartShareJanitor prunes dangling share records with interval
func StartShareJanitor(ctx context.Context, shares *ShareService, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if pruned := shares.PruneDangling(); pruned > 0 {
					log.Info("pruned dangling share records", zap.Int("removed", pruned))
				}
			}
		}
	}()
}
