package use_case

import (
	"context"
	"errors"
	"sync"

	"github.com/SpeedxPz/startup-review-admin/src/entity/activity"
	"github.com/SpeedxPz/startup-review-admin/src/entity/admin"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/entity/session"
	"github.com/stretchr/testify/mock"
)

var errBackend = errors.New("backend unavailable")

// fakeDirectory serves a fixed record set. setStatusHook, when set, runs
// before SetStatus returns and can block to hold a call in flight.
type fakeDirectory struct {
	mu            sync.Mutex
	records       []application.Application
	listErr       error
	setErr        error
	setCalls      []application.Status
	updateCalls   []application.Status
	setStatusHook func(ID string, status application.Status)
}

func newFakeDirectory(records ...application.Application) *fakeDirectory {
	return &fakeDirectory{records: records}
}

func (f *fakeDirectory) HealthCheck(ctx context.Context) error { return nil }

func (f *fakeDirectory) ListPending(ctx context.Context) ([]application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]application.Application, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeDirectory) GetByID(ctx context.Context, ID string) (application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return application.Application{}, f.listErr
	}
	for _, r := range f.records {
		if r.ID == ID {
			return r, nil
		}
	}
	return application.Application{}, ErrApplicationNotFound
}

func (f *fakeDirectory) SetStatus(ctx context.Context, ID string, status application.Status) error {
	f.mu.Lock()
	hook := f.setStatusHook
	err := f.setErr
	f.setCalls = append(f.setCalls, status)
	f.mu.Unlock()

	if hook != nil {
		hook(ID, status)
	}
	return err
}

func (f *fakeDirectory) UpdateStatus(ctx context.Context, ID string, status application.Status) error {
	f.mu.Lock()
	err := f.setErr
	f.updateCalls = append(f.updateCalls, status)
	f.mu.Unlock()
	return err
}

func (f *fakeDirectory) setError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

func (f *fakeDirectory) setListError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

type mockIdentity struct {
	mock.Mock
}

func (m *mockIdentity) HealthCheck(ctx context.Context) error { return nil }

func (m *mockIdentity) Verify(ctx context.Context, c Credential) (admin.Admin, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(admin.Admin), args.Error(1)
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]session.Session{}}
}

func (m *memorySessions) HealthCheck(ctx context.Context) error { return nil }

func (m *memorySessions) Create(ctx context.Context, s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *memorySessions) GetByToken(ctx context.Context, token string) (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return session.Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (m *memorySessions) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[token]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, token)
	return nil
}

type memoryActivities struct {
	mu         sync.Mutex
	activities []activity.Activity
	err        error
}

func (m *memoryActivities) HealthCheck(ctx context.Context) error { return nil }

func (m *memoryActivities) Create(ctx context.Context, a activity.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.activities = append(m.activities, a)
	return nil
}

func (m *memoryActivities) ListRecent(ctx context.Context, limit int64) ([]activity.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []activity.Activity{}
	for i := len(m.activities) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, m.activities[i])
	}
	return out, nil
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishStatusChange(ctx context.Context, change StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *mockEvents) Close() error { return nil }
