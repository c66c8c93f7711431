package use_case

import (
	"context"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/activity"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type DashboardSummary struct {
	Counts         Counts
	RecentActivity []activity.Activity
}

// Dashboard loads a throwaway review list for the summary tiles. The activity
// feed is best effort: tiles are still returned when it is unavailable.
func (u UseCase) Dashboard(ctx context.Context) (DashboardSummary, error) {
	ctx, span := tracer.Start(ctx, "use_case.Dashboard")
	defer span.End()

	list := NewReviewList(u.directoryRepository, u.options.ReviewList)
	defer list.Close()

	if err := list.Load(ctx); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return DashboardSummary{}, err
	}

	counts, err := list.Counts()
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return DashboardSummary{}, err
	}

	summary := DashboardSummary{Counts: counts, RecentActivity: []activity.Activity{}}

	if u.activityRepository != nil {
		recent, err := u.activityRepository.ListRecent(ctx, u.options.RecentActivityLimit)
		if err != nil {
			zap.L().Warn("list recent activity failed", logger.WithTraceId(ctx), zap.Any("error", err))
		} else {
			summary.RecentActivity = recent
		}
	}

	return summary, nil
}
