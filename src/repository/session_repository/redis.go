package session_repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/admin"
	"github.com/SpeedxPz/startup-review-admin/src/entity/cryptography"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/entity/session"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"time"
)

const keyPrefix = "session:"

type redisStore struct {
	client *redis.Client
}

// redisSession is the stored value. The token itself is never stored, the
// key is derived from its hash.
type redisSession struct {
	Email     string    `msgpack:"email"`
	Name      string    `msgpack:"name"`
	CreatedAt time.Time `msgpack:"created_at"`
	ExpiresAt time.Time `msgpack:"expires_at"`
}

func newRedisSession(s session.Session) redisSession {
	return redisSession{
		Email:     s.Admin.Email,
		Name:      s.Admin.Name,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

func (r redisSession) ToEntity(token string) session.Session {
	return session.Session{
		Token: token,
		Admin: admin.Admin{
			Email: r.Email,
			Name:  r.Name,
		},
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
}

func key(token string) string {
	return keyPrefix + cryptography.MakeSHA256(token)
}

func (r redisStore) Create(ctx context.Context, s session.Session) error {
	ctx, span := tracer.Start(ctx, "session_repository.Create")
	defer span.End()

	value, err := msgpack.Marshal(newRedisSession(s))
	if err != nil {
		zap.L().Error("marshal session failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("marshal session failed: %s", err))
		return fmt.Errorf("%s: %w", err, use_case.ErrDataTransform)
	}

	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = time.Until(s.ExpiresAt)
		if ttl <= 0 {
			span.SetStatus(codes.Error, "session already expired")
			return fmt.Errorf("session already expired: %w", use_case.ErrSavingSession)
		}
	}

	err = r.client.Set(ctx, key(s.Token), value, ttl).Err()
	if err != nil {
		zap.L().Error("save session failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return fmt.Errorf("%s: %w", err, use_case.ErrSavingSession)
	}

	return nil
}

func (r redisStore) GetByToken(ctx context.Context, token string) (session.Session, error) {
	ctx, span := tracer.Start(ctx, "session_repository.GetByToken")
	defer span.End()

	value, err := r.client.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", use_case.ErrSessionNotFound))
		return session.Session{}, fmt.Errorf("%w", use_case.ErrSessionNotFound)
	}
	if err != nil {
		zap.L().Error("read session failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return session.Session{}, fmt.Errorf("%s: %w", err, use_case.ErrSessionUnavailable)
	}

	var o redisSession
	if err := msgpack.Unmarshal(value, &o); err != nil {
		zap.L().Error("unmarshal session failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("unmarshal session failed: %s", err))
		return session.Session{}, fmt.Errorf("%s: %w", err, use_case.ErrDataTransform)
	}

	return o.ToEntity(token), nil
}

func (r redisStore) Delete(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "session_repository.Delete")
	defer span.End()

	deleted, err := r.client.Del(ctx, key(token)).Result()
	if err != nil {
		zap.L().Error("delete session failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return fmt.Errorf("%s: %w", err, use_case.ErrSessionUnavailable)
	}
	if deleted <= 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", use_case.ErrSessionNotFound))
		return fmt.Errorf("%w", use_case.ErrSessionNotFound)
	}

	return nil
}

func (r redisStore) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func NewRedis(client *redis.Client) use_case.SessionRepository {
	return &redisStore{client: client}
}
