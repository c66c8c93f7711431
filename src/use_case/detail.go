package use_case

import (
	"context"
	"errors"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/entity/session"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// GetApplication reads a single record for the detail screen.
func (u UseCase) GetApplication(ctx context.Context, ID string) (application.Application, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("use_case.GetApplication(%s)", ID))
	defer span.End()

	if len(ID) <= 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", ErrMissingApplicationID))
		return application.Application{}, fmt.Errorf("%w", ErrMissingApplicationID)
	}

	list := NewDetailReviewList(u.directoryRepository, ID, u.options.ReviewList)
	defer list.Close()

	if err := list.Load(ctx); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return application.Application{}, err
	}

	return list.Get(ID)
}

// TransitionApplication applies the review list transition rules to the
// single record shown on the detail screen.
func (u UseCase) TransitionApplication(
	ctx context.Context,
	s session.Session,
	ID string,
	target application.Status,
) (application.Application, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("use_case.TransitionApplication(%s)", ID))
	defer span.End()
	zap.L().Info("use_case.TransitionApplication",
		logger.WithTraceId(ctx),
		logger.WithApplicationId(ID),
		zap.Any("target", target),
		zap.Any("admin", s.Admin.Email),
	)

	if len(ID) <= 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", ErrMissingApplicationID))
		return application.Application{}, fmt.Errorf("%w", ErrMissingApplicationID)
	}

	list := NewDetailReviewList(u.directoryRepository, ID, u.options.ReviewList)
	defer list.Close()

	if err := list.Load(ctx); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return application.Application{}, err
	}

	result, err := list.Transition(ctx, ID, target)
	if err != nil && !errors.Is(err, ErrChangedAfterViewClosed) {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return application.Application{}, err
	}

	u.afterTransition(ctx, s, result)
	return result.After, nil
}

func (u UseCase) TransitionTargets(current application.Status) []application.Status {
	return TransitionTargets(u.options.ReviewList, current)
}
