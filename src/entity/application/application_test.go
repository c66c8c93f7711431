package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		got, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, s := range []string{"", "accepted", "Approved", "all"} {
		_, err := ParseStatus(s)
		assert.ErrorIs(t, err, ErrInvalidStatus, s)
	}
}

func TestApplication_AppliedOn(t *testing.T) {
	a := Application{CreatedAt: time.Date(2024, 3, 9, 22, 15, 0, 0, time.UTC)}
	assert.Equal(t, "2024-03-09", a.AppliedOn())
	assert.Empty(t, Application{}.AppliedOn())
}
