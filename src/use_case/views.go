package use_case

import (
	"context"
	"errors"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/activity"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/entity/metrics"
	"github.com/SpeedxPz/startup-review-admin/src/entity/session"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"sync"
	"time"
)

type viewRegistry struct {
	mu    sync.Mutex
	views map[string]*viewEntry
}

type viewEntry struct {
	list     *ReviewList
	owner    string
	lastUsed time.Time
}

func newViewRegistry() *viewRegistry {
	return &viewRegistry{views: map[string]*viewEntry{}}
}

func (v *viewRegistry) add(viewID string, e *viewEntry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.views[viewID] = e
	metrics.ReviewViewsOpen.Inc()
}

func (v *viewRegistry) get(viewID string, owner string, now time.Time) (*ReviewList, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	e, ok := v.views[viewID]
	if !ok || e.owner != owner {
		return nil, false
	}
	e.lastUsed = now
	return e.list, true
}

func (v *viewRegistry) remove(viewID string, owner string) (*ReviewList, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	e, ok := v.views[viewID]
	if !ok || e.owner != owner {
		return nil, false
	}
	delete(v.views, viewID)
	metrics.ReviewViewsOpen.Dec()
	return e.list, true
}

func (v *viewRegistry) removeIdle(cutoff time.Time) []*ReviewList {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []*ReviewList
	for viewID, e := range v.views {
		if e.lastUsed.Before(cutoff) {
			delete(v.views, viewID)
			metrics.ReviewViewsOpen.Dec()
			out = append(out, e.list)
		}
	}
	return out
}

func (v *viewRegistry) removeAll() []*ReviewList {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*ReviewList, 0, len(v.views))
	for _, e := range v.views {
		out = append(out, e.list)
	}
	metrics.ReviewViewsOpen.Sub(float64(len(v.views)))
	v.views = map[string]*viewEntry{}
	return out
}

// OpenView activates a new review list for the session's admin and loads it.
// The view stays registered when the load fails so it can be reloaded.
func (u UseCase) OpenView(ctx context.Context, s session.Session) (string, *ReviewList, error) {
	ctx, span := tracer.Start(ctx, "use_case.OpenView")
	defer span.End()

	viewID := uuid.NewString()
	list := NewReviewList(u.directoryRepository, u.options.ReviewList)
	u.views.add(viewID, &viewEntry{list: list, owner: s.Admin.Email, lastUsed: u.now()})

	zap.L().Info("use_case.OpenView",
		logger.WithTraceId(ctx),
		logger.WithViewId(viewID),
		zap.Any("admin", s.Admin.Email),
	)

	if err := list.Load(ctx); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return viewID, list, err
	}
	return viewID, list, nil
}

func (u UseCase) View(s session.Session, viewID string) (*ReviewList, error) {
	list, ok := u.views.get(viewID, s.Admin.Email, u.now())
	if !ok {
		return nil, fmt.Errorf("%s: %w", viewID, ErrViewNotFound)
	}
	return list, nil
}

func (u UseCase) ReloadView(ctx context.Context, s session.Session, viewID string) error {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("use_case.ReloadView(%s)", viewID))
	defer span.End()

	list, err := u.View(s, viewID)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return err
	}

	if err := list.Load(ctx); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return err
	}
	return nil
}

func (u UseCase) CloseView(s session.Session, viewID string) error {
	list, ok := u.views.remove(viewID, s.Admin.Email)
	if !ok {
		return fmt.Errorf("%s: %w", viewID, ErrViewNotFound)
	}
	list.Close()
	zap.L().Info("use_case.CloseView", logger.WithViewId(viewID), zap.Any("admin", s.Admin.Email))
	return nil
}

// SweepIdleViews closes views not touched since ViewIdleTTL and returns how
// many were closed.
func (u UseCase) SweepIdleViews() int {
	if u.options.ViewIdleTTL <= 0 {
		return 0
	}
	lists := u.views.removeIdle(u.now().Add(-u.options.ViewIdleTTL))
	for _, list := range lists {
		list.Close()
	}
	if len(lists) > 0 {
		zap.L().Info("use_case.SweepIdleViews", zap.Int("closed", len(lists)))
	}
	return len(lists)
}

func (u UseCase) CloseAllViews() {
	for _, list := range u.views.removeAll() {
		list.Close()
	}
}

func (u UseCase) TransitionInView(
	ctx context.Context,
	s session.Session,
	viewID string,
	ID string,
	target application.Status,
) (application.Application, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("use_case.TransitionInView(%s, %s)", viewID, ID))
	defer span.End()
	zap.L().Info("use_case.TransitionInView",
		logger.WithTraceId(ctx),
		logger.WithViewId(viewID),
		logger.WithApplicationId(ID),
		zap.Any("target", target),
		zap.Any("admin", s.Admin.Email),
	)

	list, err := u.View(s, viewID)
	if err != nil {
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

// afterTransition records the change in the activity feed and publishes it.
// Neither can undo a transition the directory already accepted, so failures
// are only logged.
func (u UseCase) afterTransition(ctx context.Context, s session.Session, result TransitionResult) {
	ctx, span := tracer.Start(ctx, "use_case.afterTransition")
	defer span.End()

	now := u.now()
	actor := s.Admin.Email

	if u.activityRepository != nil {
		err := u.activityRepository.Create(ctx, activity.NewStatusChanged(actor, result.After, result.Before.Status, now))
		if err != nil {
			zap.L().Warn("record activity failed", logger.WithTraceId(ctx), logger.WithApplicationId(result.After.ID), zap.Any("error", err))
			span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		}
	}

	if u.reviewEventRepository != nil {
		err := u.reviewEventRepository.PublishStatusChange(ctx, StatusChange{
			ApplicationID: result.After.ID,
			CompanyName:   result.After.CompanyName,
			From:          result.Before.Status,
			To:            result.After.Status,
			Actor:         actor,
			ChangedAt:     now,
		})
		if err != nil {
			zap.L().Warn("publish status change failed", logger.WithTraceId(ctx), logger.WithApplicationId(result.After.ID), zap.Any("error", err))
			span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		}
	}
}
