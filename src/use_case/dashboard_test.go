package use_case

import (
	"context"
	"testing"

	"github.com/SpeedxPz/startup-review-admin/src/entity/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	u, deps := newTestUseCase(t, Options{RecentActivityLimit: 2})
	for _, actor := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, deps.activities.Create(context.Background(), activity.NewSignedIn(actor, testNow)))
	}

	summary, err := u.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{Total: 3, Pending: 2, Approved: 1}, summary.Counts)
	require.Len(t, summary.RecentActivity, 2)
	assert.Equal(t, "c@example.com", summary.RecentActivity[0].Actor)
}

func TestDashboard_ActivityUnavailable(t *testing.T) {
	u, deps := newTestUseCase(t, Options{})
	deps.activities.err = errBackend

	summary, err := u.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Counts.Total)
	assert.Empty(t, summary.RecentActivity)
}

func TestDashboard_LoadFailure(t *testing.T) {
	u, deps := newTestUseCase(t, Options{})
	deps.directory.setListError(errBackend)

	_, err := u.Dashboard(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailure)
}

func TestHealthCheck(t *testing.T) {
	u, _ := newTestUseCase(t, Options{})
	assert.NoError(t, u.HealthCheck(context.Background()))
}
