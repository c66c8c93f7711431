package review_event_repository

import (
	"encoding/json"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"time"
)

type statusChangeEvent struct {
	ApplicationID string    `json:"applicationId"`
	CompanyName   string    `json:"companyName"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Actor         string    `json:"actor"`
	ChangedAt     time.Time `json:"changedAt"`
}

func newStatusChangeEvent(change use_case.StatusChange) statusChangeEvent {
	return statusChangeEvent{
		ApplicationID: change.ApplicationID,
		CompanyName:   change.CompanyName,
		From:          string(change.From),
		To:            string(change.To),
		Actor:         change.Actor,
		ChangedAt:     change.ChangedAt,
	}
}

// encode returns the message key and JSON body for a status change.
func encode(change use_case.StatusChange) ([]byte, []byte, error) {
	if len(change.ApplicationID) <= 0 {
		return nil, nil, fmt.Errorf("%w", use_case.ErrMissingApplicationID)
	}

	body, err := json.Marshal(newStatusChangeEvent(change))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", err, use_case.ErrDataTransform)
	}
	return []byte(change.ApplicationID), body, nil
}
