package use_case

import (
	"context"
	"errors"
	"github.com/SpeedxPz/startup-review-admin/src/entity/activity"
	"github.com/SpeedxPz/startup-review-admin/src/entity/admin"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/entity/session"
	"go.opentelemetry.io/otel"
	"time"
)

var (
	ErrDataTransform       = errors.New("data transformation error")
	ErrLoadFailure         = errors.New("failed to load applications")
	ErrRetrievingDirectory = errors.New("failed to retrieving directory data")
	ErrApplicationNotFound = errors.New("application not found")
	ErrTransitionFailure   = errors.New("failed to change application status")
	ErrInvalidTransition   = errors.New("status is not a valid transition target")
	ErrTransitionInFlight  = errors.New("status change already in progress")
	ErrInvalidFilter       = errors.New("invalid filter")
	ErrViewClosed          = errors.New("view is closed")
	// ErrChangedAfterViewClosed comes with a valid TransitionResult: the
	// directory accepted the change but the view was gone when it completed.
	ErrChangedAfterViewClosed = errors.New("status changed after the view was closed")
	ErrViewNotFound           = errors.New("view not found")
	ErrInvalidCredential      = errors.New("invalid email or password")
	ErrIdentityUnavailable    = errors.New("identity service unavailable")
	ErrSessionNotFound        = errors.New("session not found")
	ErrSessionUnavailable     = errors.New("session store unavailable")
	ErrSavingSession          = errors.New("failed to save session")
	ErrSavingActivity         = errors.New("failed to save activity")
	ErrRetrievingActivity     = errors.New("failed to retrieving activity data")
	ErrEventPublish           = errors.New("cannot publish status event")
	ErrMissingApplicationID   = errors.New("application id is required")
)

var tracer = otel.Tracer("use_case")

type UseCase struct {
	directoryRepository   DirectoryRepository
	identityRepository    IdentityRepository
	sessionRepository     SessionRepository
	activityRepository    ActivityRepository
	reviewEventRepository ReviewEventRepository
	options               Options
	views                 *viewRegistry
	now                   func() time.Time
}

type DirectoryRepository interface {
	HealthCheck(ctx context.Context) error
	ListPending(ctx context.Context) ([]application.Application, error)
	GetByID(ctx context.Context, ID string) (application.Application, error)
	SetStatus(ctx context.Context, ID string, status application.Status) error
	// UpdateStatus is the single record route used by the detail screen.
	UpdateStatus(ctx context.Context, ID string, status application.Status) error
}

type IdentityRepository interface {
	HealthCheck(ctx context.Context) error
	Verify(ctx context.Context, c Credential) (admin.Admin, error)
}

type SessionRepository interface {
	HealthCheck(ctx context.Context) error
	Create(ctx context.Context, s session.Session) error
	GetByToken(ctx context.Context, token string) (session.Session, error)
	Delete(ctx context.Context, token string) error
}

type ActivityRepository interface {
	HealthCheck(ctx context.Context) error
	Create(ctx context.Context, a activity.Activity) error
	ListRecent(ctx context.Context, limit int64) ([]activity.Activity, error)
}

type ReviewEventRepository interface {
	PublishStatusChange(ctx context.Context, change StatusChange) error
	Close() error
}

type Credential struct {
	Email    string
	Password string
}

// StatusChange is published after the directory accepted a transition.
type StatusChange struct {
	ApplicationID string
	CompanyName   string
	From          application.Status
	To            application.Status
	Actor         string
	ChangedAt     time.Time
}

type Options struct {
	SessionTTL          time.Duration
	ViewIdleTTL         time.Duration
	RecentActivityLimit int64
	ReviewList          ReviewListOptions
}

func New(
	directoryRepo DirectoryRepository,
	identityRepo IdentityRepository,
	sessionRepo SessionRepository,
	activityRepo ActivityRepository,
	reviewEventRepo ReviewEventRepository,
	options Options,
) *UseCase {
	if options.SessionTTL <= 0 {
		options.SessionTTL = 12 * time.Hour
	}
	if options.RecentActivityLimit <= 0 {
		options.RecentActivityLimit = 10
	}

	return &UseCase{
		directoryRepository:   directoryRepo,
		identityRepository:    identityRepo,
		sessionRepository:     sessionRepo,
		activityRepository:    activityRepo,
		reviewEventRepository: reviewEventRepo,
		options:               options,
		views:                 newViewRegistry(),
		now:                   time.Now,
	}
}
