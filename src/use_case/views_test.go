package use_case

import (
	"context"
	"testing"
	"time"

	"github.com/SpeedxPz/startup-review-admin/src/entity/activity"
	"github.com/SpeedxPz/startup-review-admin/src/entity/admin"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/entity/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testDeps struct {
	directory  *fakeDirectory
	identity   *mockIdentity
	sessions   *memorySessions
	activities *memoryActivities
	events     *mockEvents
	clock      *testClock
}

func newTestUseCase(t *testing.T, options Options) (*UseCase, *testDeps) {
	t.Helper()
	deps := &testDeps{
		directory:  newFakeDirectory(scenarioRecords()...),
		identity:   &mockIdentity{},
		sessions:   newMemorySessions(),
		activities: &memoryActivities{},
		events:     &mockEvents{},
		clock:      &testClock{now: testNow},
	}
	u := New(deps.directory, deps.identity, deps.sessions, deps.activities, deps.events, options)
	u.now = deps.clock.Now
	t.Cleanup(u.CloseAllViews)
	return u, deps
}

func reviewer(email string) session.Session {
	return session.Session{Token: "token-" + email, Admin: admin.Admin{Email: email, Name: "Reviewer"}}
}

func TestOpenView(t *testing.T) {
	u, _ := newTestUseCase(t, Options{})
	s := reviewer("admin@example.com")

	viewID, list, err := u.OpenView(context.Background(), s)
	require.NoError(t, err)
	assert.NotEmpty(t, viewID)

	state, err := list.State()
	require.NoError(t, err)
	assert.True(t, state.Loaded)

	got, err := u.View(s, viewID)
	require.NoError(t, err)
	assert.Same(t, list, got)
}

func TestOpenView_LoadFailureKeepsView(t *testing.T) {
	u, deps := newTestUseCase(t, Options{})
	deps.directory.setListError(errBackend)
	s := reviewer("admin@example.com")

	viewID, _, err := u.OpenView(context.Background(), s)
	assert.ErrorIs(t, err, ErrLoadFailure)

	deps.directory.setListError(nil)
	require.NoError(t, u.ReloadView(context.Background(), s, viewID))

	list, err := u.View(s, viewID)
	require.NoError(t, err)
	counts, err := list.Counts()
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Total)
}

func TestView_OwnedBySession(t *testing.T) {
	u, _ := newTestUseCase(t, Options{})
	owner := reviewer("admin@example.com")
	other := reviewer("other@example.com")

	viewID, _, err := u.OpenView(context.Background(), owner)
	require.NoError(t, err)

	_, err = u.View(other, viewID)
	assert.ErrorIs(t, err, ErrViewNotFound)
	assert.ErrorIs(t, u.CloseView(other, viewID), ErrViewNotFound)

	_, err = u.View(owner, "unknown")
	assert.ErrorIs(t, err, ErrViewNotFound)
}

func TestCloseView(t *testing.T) {
	u, _ := newTestUseCase(t, Options{})
	s := reviewer("admin@example.com")

	viewID, list, err := u.OpenView(context.Background(), s)
	require.NoError(t, err)

	require.NoError(t, u.CloseView(s, viewID))

	_, err = list.Visible()
	assert.ErrorIs(t, err, ErrViewClosed)
	_, err = u.View(s, viewID)
	assert.ErrorIs(t, err, ErrViewNotFound)
}

func TestSweepIdleViews(t *testing.T) {
	u, deps := newTestUseCase(t, Options{ViewIdleTTL: 10 * time.Minute})
	s := reviewer("admin@example.com")

	idle, idleList, err := u.OpenView(context.Background(), s)
	require.NoError(t, err)

	deps.clock.Advance(6 * time.Minute)
	active, _, err := u.OpenView(context.Background(), s)
	require.NoError(t, err)

	deps.clock.Advance(6 * time.Minute)
	assert.Equal(t, 1, u.SweepIdleViews())

	_, err = u.View(s, idle)
	assert.ErrorIs(t, err, ErrViewNotFound)
	_, err = idleList.Counts()
	assert.ErrorIs(t, err, ErrViewClosed)

	_, err = u.View(s, active)
	assert.NoError(t, err)
}

func TestSweepIdleViews_Disabled(t *testing.T) {
	u, deps := newTestUseCase(t, Options{})
	s := reviewer("admin@example.com")

	_, _, err := u.OpenView(context.Background(), s)
	require.NoError(t, err)

	deps.clock.Advance(24 * time.Hour)
	assert.Equal(t, 0, u.SweepIdleViews())
}

func TestTransitionInView(t *testing.T) {
	u, deps := newTestUseCase(t, Options{})
	s := reviewer("admin@example.com")

	deps.events.On("PublishStatusChange", mock.Anything, StatusChange{
		ApplicationID: "3",
		CompanyName:   "TechNova",
		From:          application.StatusPending,
		To:            application.StatusApproved,
		Actor:         "admin@example.com",
		ChangedAt:     testNow,
	}).Return(nil).Once()

	viewID, list, err := u.OpenView(context.Background(), s)
	require.NoError(t, err)

	got, err := u.TransitionInView(context.Background(), s, viewID, "3", application.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, application.StatusApproved, got.Status)

	stored, err := list.Get("3")
	require.NoError(t, err)
	assert.Equal(t, application.StatusApproved, stored.Status)

	deps.events.AssertExpectations(t)

	recent, err := deps.activities.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, activity.KindStatusChanged, recent[0].Kind)
	assert.Equal(t, `Startup "TechNova" approved by admin@example.com`, recent[0].Message)
}

func TestTransitionInView_ViewClosedWhileInFlight(t *testing.T) {
	u, deps := newTestUseCase(t, Options{})
	s := reviewer("admin@example.com")

	deps.events.On("PublishStatusChange", mock.Anything, StatusChange{
		ApplicationID: "1",
		CompanyName:   "TechVenture AI",
		From:          application.StatusPending,
		To:            application.StatusRejected,
		Actor:         "admin@example.com",
		ChangedAt:     testNow,
	}).Return(nil).Once()

	viewID, _, err := u.OpenView(context.Background(), s)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	deps.directory.setStatusHook = func(ID string, status application.Status) {
		close(entered)
		<-release
	}

	type outcome struct {
		app application.Application
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		app, err := u.TransitionInView(context.Background(), s, viewID, "1", application.StatusRejected)
		done <- outcome{app, err}
	}()
	<-entered

	require.NoError(t, u.CloseView(s, viewID))
	close(release)

	got := <-done
	require.NoError(t, got.err)
	assert.Equal(t, "1", got.app.ID)
	assert.Equal(t, application.StatusRejected, got.app.Status)

	deps.events.AssertExpectations(t)
	recent, err := deps.activities.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, `Startup "TechVenture AI" rejected by admin@example.com`, recent[0].Message)
}

func TestTransitionInView_SideEffectFailuresAreIgnored(t *testing.T) {
	u, deps := newTestUseCase(t, Options{})
	s := reviewer("admin@example.com")
	deps.activities.err = errBackend
	deps.events.On("PublishStatusChange", mock.Anything, mock.Anything).Return(ErrEventPublish)

	viewID, _, err := u.OpenView(context.Background(), s)
	require.NoError(t, err)

	got, err := u.TransitionInView(context.Background(), s, viewID, "1", application.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, application.StatusRejected, got.Status)
}

func TestTransitionInView_Failure(t *testing.T) {
	u, deps := newTestUseCase(t, Options{})
	s := reviewer("admin@example.com")

	viewID, _, err := u.OpenView(context.Background(), s)
	require.NoError(t, err)

	deps.directory.setError(errBackend)
	_, err = u.TransitionInView(context.Background(), s, viewID, "1", application.StatusRejected)
	assert.ErrorIs(t, err, ErrTransitionFailure)

	_, err = u.TransitionInView(context.Background(), s, "missing", "1", application.StatusRejected)
	assert.ErrorIs(t, err, ErrViewNotFound)

	deps.events.AssertNotCalled(t, "PublishStatusChange", mock.Anything, mock.Anything)
	assert.Empty(t, deps.activities.activities)
}

func TestGetApplication(t *testing.T) {
	u, _ := newTestUseCase(t, Options{})

	got, err := u.GetApplication(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "GreenEnergy Solutions", got.CompanyName)

	_, err = u.GetApplication(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingApplicationID)

	_, err = u.GetApplication(context.Background(), "404")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestTransitionApplication(t *testing.T) {
	u, deps := newTestUseCase(t, Options{})
	s := reviewer("admin@example.com")
	deps.events.On("PublishStatusChange", mock.Anything, mock.Anything).Return(nil)

	got, err := u.TransitionApplication(context.Background(), s, "1", application.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, application.StatusApproved, got.Status)
	assert.Equal(t, []application.Status{application.StatusApproved}, deps.directory.updateCalls)
	assert.Empty(t, deps.directory.setCalls)

	_, err = u.TransitionApplication(context.Background(), s, "1", application.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
