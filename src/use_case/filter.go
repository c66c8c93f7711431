package use_case

import (
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"strings"
)

type StatusFilter string

const (
	StatusFilterAll StatusFilter = "all"
)

func ParseStatusFilter(s string) (StatusFilter, error) {
	if len(s) <= 0 || StatusFilter(s) == StatusFilterAll {
		return StatusFilterAll, nil
	}

	status, err := application.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("status filter %q: %w", s, ErrInvalidFilter)
	}
	return StatusFilter(status), nil
}

// Filter selects the visible subset of a review list. Empty string fields
// match everything.
type Filter struct {
	Status      StatusFilter
	Search      string
	Category    string
	ProductType string
}

func (f Filter) Validate() error {
	_, err := ParseStatusFilter(string(f.Status))
	return err
}

func (f Filter) Match(a application.Application) bool {
	if len(f.Status) > 0 && f.Status != StatusFilterAll && application.Status(f.Status) != a.Status {
		return false
	}
	if len(f.Category) > 0 && f.Category != a.Category {
		return false
	}
	if len(f.ProductType) > 0 && f.ProductType != a.ProductType {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); len(term) > 0 {
		return strings.Contains(strings.ToLower(a.CompanyName), term) ||
			strings.Contains(strings.ToLower(a.About), term)
	}
	return true
}
