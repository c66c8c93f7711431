package session

import (
	"time"

	"github.com/SpeedxPz/startup-review-admin/src/entity/admin"
)

type Session struct {
	Token     string
	Admin     admin.Admin
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
