package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Reporter logs a summary of all counters on a fixed interval,
// independent of message arrival.
type Reporter struct {
	metrics  *Metrics
	interval time.Duration
	log      *zap.Logger
}

func NewReporter(metrics *Metrics, interval time.Duration, log *zap.Logger) *Reporter {
	return &Reporter{
		metrics:  metrics,
		interval: interval,
		log:      log.With(zap.String("component", "analytics-reporter")),
	}
}

func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s := r.metrics.Snapshot()
			r.log.Info("analytics report",
				zap.Uint64("tasks_completed", s.TasksCompleted),
				zap.Uint64("tasks_uncompleted", s.TasksUncompleted),
				zap.Uint64("achievements_unlocked", s.AchievementsUnlocked),
				zap.Uint64("level_ups", s.LevelUps),
				zap.Uint64("user_logins", s.UserLogins),
				zap.Uint64("total_events", s.TotalEvents),
			)
		}
	}
}
