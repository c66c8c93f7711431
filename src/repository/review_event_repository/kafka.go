package review_event_repository

import (
	"context"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"net"
	"time"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaMQ struct {
	client messageWriter
}

func buildKafkaMessage(change use_case.StatusChange) (kafka.Message, error) {
	key, body, err := encode(change)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   key,
		Value: body,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("status_changed")},
		},
	}, nil
}

func (k kafkaMQ) PublishStatusChange(ctx context.Context, change use_case.StatusChange) error {
	ctx, span := tracer.Start(ctx, "review_event_repository.kafka.PublishStatusChange")
	defer span.End()

	message, err := buildKafkaMessage(change)
	if err != nil {
		zap.L().Error("error while building message", logger.WithTraceId(ctx), zap.Any("error", err), zap.Any("change", change))
		span.SetStatus(codes.Error, fmt.Sprintf("error while building message %+v: %s", change, err))
		return fmt.Errorf("%s: %w", err, use_case.ErrEventPublish)
	}

	err = k.client.WriteMessages(ctx, message)
	if err != nil {
		zap.L().Error("error while writing message", logger.WithTraceId(ctx), logger.WithApplicationId(change.ApplicationID), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("error while writing message: %s", err))
		return fmt.Errorf("error while writing message: %w", use_case.ErrEventPublish)
	}

	return nil
}

func (k kafkaMQ) Close() error {
	return k.client.Close()
}

// writes block the reviewer's request
const batchTimeout = 10 * time.Millisecond

func newKafkaWriter(boostrapServer string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(boostrapServer),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		Transport: &kafka.Transport{
			Dial: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
		},
	}
}

func NewKafkaMQ(boostrapServer string, topic string) use_case.ReviewEventRepository {
	return kafkaMQ{client: newKafkaWriter(boostrapServer, topic)}
}
