package review_event_repository

import (
	"context"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"go.uber.org/zap"
)

// noop drops every event, used when no broker is configured.
type noop struct{}

func (noop) PublishStatusChange(ctx context.Context, change use_case.StatusChange) error {
	zap.L().Debug("status change not published", logger.WithTraceId(ctx), logger.WithApplicationId(change.ApplicationID))
	return nil
}

func (noop) Close() error {
	return nil
}

func NewNoop() use_case.ReviewEventRepository {
	return noop{}
}
