package activity

import (
	"errors"
	"fmt"
	"time"

	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
)

var (
	ErrInvalidKind = errors.New("unknow activity kind")
)

type Kind string

const (
	KindSignedIn      Kind = "signed_in"
	KindStatusChanged Kind = "status_changed"
)

func ParseKind(s string) (d Kind, e error) {
	dataTypes := map[Kind]struct{}{
		KindSignedIn:      {},
		KindStatusChanged: {},
	}

	dat := Kind(s)
	_, ok := dataTypes[dat]
	if !ok {
		return d, fmt.Errorf("cannot parse:[%s] as activity kind: %w", s, ErrInvalidKind)
	}
	return dat, nil
}

// Activity is one line of the dashboard's recent activity feed.
type Activity struct {
	Kind          Kind
	Actor         string
	ApplicationID string
	CompanyName   string
	From          application.Status
	To            application.Status
	Message       string
	CreatedAt     time.Time
}

func NewSignedIn(actor string, at time.Time) Activity {
	return Activity{
		Kind:      KindSignedIn,
		Actor:     actor,
		Message:   fmt.Sprintf("%s signed in", actor),
		CreatedAt: at,
	}
}

func NewStatusChanged(actor string, app application.Application, from application.Status, at time.Time) Activity {
	return Activity{
		Kind:          KindStatusChanged,
		Actor:         actor,
		ApplicationID: app.ID,
		CompanyName:   app.CompanyName,
		From:          from,
		To:            app.Status,
		Message:       fmt.Sprintf("Startup %q %s by %s", app.CompanyName, app.Status, actor),
		CreatedAt:     at,
	}
}
