package utils

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/words"
)

// CronCleaner schedules the daily housekeeping. Game records expire via
// their Redis TTL; the only in-process state to tend is the word pool
// cache, which is keyed by day and goes stale at midnight.
func CronCleaner(generator *words.Generator, logger *zap.Logger) *cron.Cron {
	c := cron.New()

	c.AddFunc("5 0 * * *", func() {
		remaining := generator.EvictStalePools()
		logger.Info("evicted stale word pools", zap.Int("pools_remaining", remaining))
	})

	c.Start()
	return c
}
