package activity

import (
	"testing"
	"time"

	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("status_changed")
	require.NoError(t, err)
	assert.Equal(t, KindStatusChanged, k)

	_, err = ParseKind("deleted")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestNewStatusChanged(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	app := application.Application{ID: "42", CompanyName: "TechNova", Status: application.StatusApproved}

	a := NewStatusChanged("admin@example.com", app, application.StatusPending, at)

	assert.Equal(t, KindStatusChanged, a.Kind)
	assert.Equal(t, "42", a.ApplicationID)
	assert.Equal(t, application.StatusPending, a.From)
	assert.Equal(t, application.StatusApproved, a.To)
	assert.Equal(t, `Startup "TechNova" approved by admin@example.com`, a.Message)
	assert.Equal(t, at, a.CreatedAt)
}
