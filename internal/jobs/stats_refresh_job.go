package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/service"
)

// StatsRefreshJob keeps the dashboard stats snapshot warm so the staff
// dashboard never waits on a count query.
type StatsRefreshJob struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

// NewStatsRefreshJob creates a new stats refresh job.
func NewStatsRefreshJob(dashboardService *service.DashboardService, logger *zap.Logger) *StatsRefreshJob {
	return &StatsRefreshJob{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Name returns the job name for scheduler registration.
func (j *StatsRefreshJob) Name() string {
	return "dashboard_stats_refresh"
}

// Schedule returns the cron expression for this job.
func (j *StatsRefreshJob) Schedule() string {
	return "@every 10s"
}

// Run recomputes the stats snapshot.
func (j *StatsRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := j.dashboardService.RefreshStats(ctx); err != nil {
		j.logger.Error("failed to refresh dashboard stats", zap.Error(err))
	}
}
