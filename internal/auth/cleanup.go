package auth

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCleanup schedules PurgeExpired on spec (standard cron syntax or
// descriptors such as @hourly). The caller owns the returned scheduler and
// must Stop it on shutdown.
func StartCleanup(spec string, sessions *Sessions, log *zap.Logger) (*cron.Cron, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		n, err := sessions.PurgeExpired(context.Background())
		if err != nil {
			log.Error("refresh token cleanup failed", zap.Error(err))
			return
		}
		log.Info("refresh token cleanup", zap.Int64("deleted", n))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule token cleanup %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
