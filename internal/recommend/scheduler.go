package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs the engine's periodic maintenance: similarity cache
// warming and a daily analytics snapshot.
type Scheduler struct {
	service      Service
	logger       *zap.Logger
	warmInterval time.Duration
	reportHour   int
	reportMinute int
}

func NewScheduler(service Service, logger *zap.Logger, warmInterval time.Duration, reportHour, reportMinute int) *Scheduler {
	if warmInterval <= 0 {
		warmInterval = time.Hour
	}

	return &Scheduler{
		service:      service,
		logger:       logger,
		warmInterval: warmInterval,
		reportHour:   reportHour,
		reportMinute: reportMinute,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.runInterval(ctx, s.warmInterval, s.service.WarmSimilarityCache)
	go s.runDaily(ctx, s.reportHour, s.reportMinute, s.logAnalytics)
}

func (s *Scheduler) logAnalytics(ctx context.Context) error {
	analytics, err := s.service.GetAnalytics(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("daily analytics snapshot",
		zap.Int("total_users", analytics.TotalUsers),
		zap.Int("total_interactions", analytics.TotalInteractions),
		zap.Int("total_projects", analytics.TotalProjects),
		zap.Float64("avg_interactions_per_user", analytics.AverageInteractionsPerUser))

	return nil
}

func (s *Scheduler) runInterval(ctx context.Context, interval time.Duration, task func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := task(ctx); err != nil {
				s.logger.Warn("scheduled task failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) runDaily(ctx context.Context, hour, minute int, task func(context.Context) error) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		timer := time.NewTimer(next.Sub(now))

		select {
		case <-timer.C:
			if err := task(ctx); err != nil {
				s.logger.Warn("scheduled task failed", zap.Error(err))
			}
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}
