package processor

import (
	"context"

	"github.com/robfig/cron/v3"

	"productreview/pkg/logger"
	"productreview/review-api-service/internal/app/reviewapi/service"
)

// CronScheduler периодически публикует свежие падения цен в Kafka,
// чтобы подписчики получали их даже без входящего трафика.
type CronScheduler struct {
	cron   *cron.Cron
	alerts service.PriceAlertServiceInterface
}

func NewCronScheduler(alerts service.PriceAlertServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:   cron.New(),
		alerts: alerts,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Debug().Msg("cron job triggered: publishing recent price drops")

		if err := s.alerts.PublishRecentDrops(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to publish recent price drops")
			return
		}

		logger.Debug().Msg("cron job completed: recent price drops published")
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	// Первая публикация сразу при старте, не дожидаясь расписания
	if err := s.alerts.PublishRecentDrops(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed initial price drops publish")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("stopping cron scheduler")
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	logger.Info().Msg("cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
