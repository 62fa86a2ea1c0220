package reference

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartRefreshScheduler reloads the reference cache on the given cron
// schedule. The caller stops the returned cron on shutdown.
func StartRefreshScheduler(schedule string, service Service, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := service.RefreshCache(context.Background()); err != nil {
			log.Error("error refreshing reference cache", zap.Error(err))
			return
		}
		log.Debug("reference cache refreshed")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
