package application

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStatus = errors.New("unknow application status")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (d Status, e error) {
	dataTypes := map[Status]struct{}{
		StatusPending:  {},
		StatusApproved: {},
		StatusRejected: {},
	}

	dat := Status(s)
	_, ok := dataTypes[dat]
	if !ok {
		return d, fmt.Errorf("cannot parse:[%s] as status: %w", s, ErrInvalidStatus)
	}
	return dat, nil
}

// Statuses lists every canonical status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected}
}

type Links struct {
	Website   string
	LinkedIn  string
	Instagram string
	Twitter   string
}

// Application is one startup submission under review. Only Status changes
// during review; every other field is whatever the directory returned.
type Application struct {
	ID            string
	CompanyName   string
	FounderName   string
	FounderEmail  string
	InstituteName string
	About         string
	Category      string
	ProductType   string
	Industry      string
	TeamSize      string
	Funding       string
	FundingStage  string
	FoundedDate   string
	Location      string
	Phone         string
	Links         Links
	Status        Status
	CreatedAt     time.Time
}

// AppliedOn formats CreatedAt for display. Zero timestamps render empty.
func (a Application) AppliedOn() string {
	if a.CreatedAt.IsZero() {
		return ""
	}
	return a.CreatedAt.Format("2006-01-02")
}
