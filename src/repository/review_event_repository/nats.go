package review_event_repository

import (
	"context"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"time"
)

const headerApplicationID = "Application-Id"

type natsMQ struct {
	conn    *nats.Conn
	subject string
}

func (n natsMQ) PublishStatusChange(ctx context.Context, change use_case.StatusChange) error {
	ctx, span := tracer.Start(ctx, "review_event_repository.nats.PublishStatusChange")
	defer span.End()

	key, body, err := encode(change)
	if err != nil {
		zap.L().Error("error while building message", logger.WithTraceId(ctx), zap.Any("error", err), zap.Any("change", change))
		span.SetStatus(codes.Error, fmt.Sprintf("error while building message %+v: %s", change, err))
		return fmt.Errorf("%s: %w", err, use_case.ErrEventPublish)
	}

	msg := nats.NewMsg(n.subject)
	msg.Header.Set(headerApplicationID, string(key))
	msg.Data = body

	if err := n.conn.PublishMsg(msg); err != nil {
		zap.L().Error("error while publishing message", logger.WithTraceId(ctx), logger.WithApplicationId(change.ApplicationID), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("error while publishing message: %s", err))
		return fmt.Errorf("error while publishing message: %w", use_case.ErrEventPublish)
	}

	return nil
}

func (n natsMQ) Close() error {
	return n.conn.Drain()
}

func NewNatsMQ(url string, subject string) (use_case.ReviewEventRepository, error) {
	nc, err := nats.Connect(url,
		nats.Name("startup-review-admin"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return natsMQ{conn: nc, subject: subject}, nil
}
