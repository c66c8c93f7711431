package use_case

import (
	"context"
	"errors"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/activity"
	"github.com/SpeedxPz/startup-review-admin/src/entity/cryptography"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/entity/session"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func (c Credential) Validate() error {
	if len(c.Email) <= 0 {
		return fmt.Errorf("email is required: %w", ErrInvalidCredential)
	}
	if !emailPattern.MatchString(c.Email) {
		return fmt.Errorf("email is malformed: %w", ErrInvalidCredential)
	}
	if len(c.Password) <= 0 {
		return fmt.Errorf("password is required: %w", ErrInvalidCredential)
	}
	return nil
}

// Login verifies the credential with the identity service and opens a session.
func (u UseCase) Login(ctx context.Context, c Credential) (session.Session, error) {
	ctx, span := tracer.Start(ctx, "use_case.Login")
	defer span.End()

	c.Email = strings.TrimSpace(c.Email)
	if err := c.Validate(); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return session.Session{}, err
	}

	verified, err := u.identityRepository.Verify(ctx, c)
	if err != nil {
		zap.L().Info("login rejected", logger.WithTraceId(ctx), zap.Any("email", c.Email), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return session.Session{}, err
	}

	token, err := cryptography.NewToken(32)
	if err != nil {
		zap.L().Error("generate session token failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return session.Session{}, fmt.Errorf("%s: %w", err, ErrSavingSession)
	}

	now := u.now()
	s := session.Session{
		Token:     token,
		Admin:     verified,
		CreatedAt: now,
		ExpiresAt: now.Add(u.options.SessionTTL),
	}

	if err := u.sessionRepository.Create(ctx, s); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return session.Session{}, err
	}

	if u.activityRepository != nil {
		if err := u.activityRepository.Create(ctx, activity.NewSignedIn(verified.Email, now)); err != nil {
			zap.L().Warn("record activity failed", logger.WithTraceId(ctx), zap.Any("error", err))
		}
	}

	zap.L().Info("use_case.Login", logger.WithTraceId(ctx), zap.Any("admin", verified.Email))
	return s, nil
}

func (u UseCase) Authenticate(ctx context.Context, token string) (session.Session, error) {
	ctx, span := tracer.Start(ctx, "use_case.Authenticate")
	defer span.End()

	if len(token) <= 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", ErrSessionNotFound))
		return session.Session{}, fmt.Errorf("missing token: %w", ErrSessionNotFound)
	}

	s, err := u.sessionRepository.GetByToken(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return session.Session{}, err
	}

	if s.Expired(u.now()) {
		if err := u.sessionRepository.Delete(ctx, token); err != nil && !errors.Is(err, ErrSessionNotFound) {
			zap.L().Warn("delete expired session failed", logger.WithTraceId(ctx), zap.Any("error", err))
		}
		span.SetStatus(codes.Error, fmt.Sprintf("expired: %s", ErrSessionNotFound))
		return session.Session{}, fmt.Errorf("expired: %w", ErrSessionNotFound)
	}

	return s, nil
}

func (u UseCase) Logout(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "use_case.Logout")
	defer span.End()

	if err := u.sessionRepository.Delete(ctx, token); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return err
	}
	return nil
}
