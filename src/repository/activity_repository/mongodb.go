package activity_repository

import (
	"context"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/activity"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"time"
)

type mongoDB struct {
	col *mongo.Collection
}

type mongoDBActivity struct {
	Kind          string    `bson:"kind"`
	Actor         string    `bson:"actor"`
	ApplicationID string    `bson:"applicationId,omitempty"`
	CompanyName   string    `bson:"companyName,omitempty"`
	From          string    `bson:"from,omitempty"`
	To            string    `bson:"to,omitempty"`
	Message       string    `bson:"message"`
	CreatedAt     time.Time `bson:"createdAt"`
}

func newMongoDBActivity(a activity.Activity) mongoDBActivity {
	return mongoDBActivity{
		Kind:          string(a.Kind),
		Actor:         a.Actor,
		ApplicationID: a.ApplicationID,
		CompanyName:   a.CompanyName,
		From:          string(a.From),
		To:            string(a.To),
		Message:       a.Message,
		CreatedAt:     a.CreatedAt,
	}
}

func (m mongoDBActivity) ToEntity() (activity.Activity, error) {

	kind, err := activity.ParseKind(m.Kind)
	if err != nil {
		return activity.Activity{}, err
	}

	return activity.Activity{
		Kind:          kind,
		Actor:         m.Actor,
		ApplicationID: m.ApplicationID,
		CompanyName:   m.CompanyName,
		From:          application.Status(m.From),
		To:            application.Status(m.To),
		Message:       m.Message,
		CreatedAt:     m.CreatedAt,
	}, nil
}

func (m mongoDB) Create(ctx context.Context, a activity.Activity) error {
	ctx, span := tracer.Start(ctx, "activity_repository.Create")
	defer span.End()

	doc := newMongoDBActivity(a)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	_, err := m.col.InsertOne(ctx, doc)

	if err != nil {
		zap.L().Error("error while saving activity", logger.WithTraceId(ctx), zap.Any("activity", a), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return fmt.Errorf("%w", use_case.ErrSavingActivity)
	}

	return nil
}

func (m mongoDB) ListRecent(ctx context.Context, limit int64) ([]activity.Activity, error) {
	ctx, span := tracer.Start(ctx, "activity_repository.ListRecent")
	defer span.End()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		zap.L().Error("error while retrieving", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("error while retrieving: %s", err))
		return nil, fmt.Errorf("error while retrieving: %w", use_case.ErrRetrievingActivity)
	}
	defer cur.Close(ctx)

	results := []activity.Activity{}
	for cur.Next(ctx) {
		var o mongoDBActivity
		if err := cur.Decode(&o); err != nil {
			zap.L().Error("error while retrieving", logger.WithTraceId(ctx), zap.Any("error", err))
			span.SetStatus(codes.Error, fmt.Sprintf("error while retrieving: %s", err))
			return nil, fmt.Errorf("error while retrieving: %w", use_case.ErrRetrievingActivity)
		}

		result, err := o.ToEntity()
		if err != nil {
			zap.L().Warn("skip unreadable activity", logger.WithTraceId(ctx), zap.Any("error", err))
			continue
		}
		results = append(results, result)
	}

	if err := cur.Err(); err != nil {
		zap.L().Error("error while retrieving", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("error while retrieving: %s", err))
		return nil, fmt.Errorf("error while retrieving: %w", use_case.ErrRetrievingActivity)
	}

	return results, nil
}

func (m mongoDB) HealthCheck(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, readpref.Primary())
}

func NewMongoDb(db *mongo.Database) use_case.ActivityRepository {
	m := &mongoDB{col: db.Collection("activities")}

	return m
}
