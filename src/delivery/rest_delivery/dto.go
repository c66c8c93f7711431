package rest_delivery

import (
	"github.com/SpeedxPz/startup-review-admin/src/entity/activity"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/entity/session"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"time"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminResp struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type loginResp struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Admin     adminResp `json:"admin"`
}

func newLoginResp(s session.Session) loginResp {
	return loginResp{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Admin: adminResp{
			Email: s.Admin.Email,
			Name:  s.Admin.DisplayName(),
		},
	}
}

type linksResp struct {
	Website   string `json:"website,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

type startupResp struct {
	ID            string     `json:"id"`
	CompanyName   string     `json:"companyName"`
	FounderName   string     `json:"founderName,omitempty"`
	FounderEmail  string     `json:"founderEmail,omitempty"`
	InstituteName string     `json:"instituteName,omitempty"`
	About         string     `json:"about,omitempty"`
	Category      string     `json:"category,omitempty"`
	ProductType   string     `json:"productType,omitempty"`
	Industry      string     `json:"industry,omitempty"`
	TeamSize      string     `json:"teamSize,omitempty"`
	Funding       string     `json:"funding,omitempty"`
	FundingStage  string     `json:"fundingStage,omitempty"`
	FoundedDate   string     `json:"foundedDate,omitempty"`
	Location      string     `json:"location,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Links         linksResp  `json:"links"`
	Status        string     `json:"status"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	AppliedOn     string     `json:"appliedOn,omitempty"`
	// Actions are the statuses the record can move to; a client disables
	// the control for anything missing.
	Actions []string `json:"actions"`
}

func newStartupResp(a application.Application, targets []application.Status) startupResp {
	resp := startupResp{
		ID:            a.ID,
		CompanyName:   a.CompanyName,
		FounderName:   a.FounderName,
		FounderEmail:  a.FounderEmail,
		InstituteName: a.InstituteName,
		About:         a.About,
		Category:      a.Category,
		ProductType:   a.ProductType,
		Industry:      a.Industry,
		TeamSize:      a.TeamSize,
		Funding:       a.Funding,
		FundingStage:  a.FundingStage,
		FoundedDate:   a.FoundedDate,
		Location:      a.Location,
		Phone:         a.Phone,
		Links: linksResp{
			Website:   a.Links.Website,
			LinkedIn:  a.Links.LinkedIn,
			Instagram: a.Links.Instagram,
			Twitter:   a.Links.Twitter,
		},
		Status:    string(a.Status),
		AppliedOn: a.AppliedOn(),
		Actions:   make([]string, 0, len(targets)),
	}
	if !a.CreatedAt.IsZero() {
		createdAt := a.CreatedAt
		resp.CreatedAt = &createdAt
	}
	for _, t := range targets {
		resp.Actions = append(resp.Actions, actionName(t))
	}
	return resp
}

type countsResp struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

func newCountsResp(c use_case.Counts) countsResp {
	return countsResp{
		Total:    c.Total,
		Pending:  c.Pending,
		Approved: c.Approved,
		Rejected: c.Rejected,
	}
}

type filterResp struct {
	Status      string `json:"status"`
	Search      string `json:"search,omitempty"`
	Category    string `json:"category,omitempty"`
	ProductType string `json:"productType,omitempty"`
}

type facetsResp struct {
	Categories   []string `json:"categories"`
	ProductTypes []string `json:"productTypes"`
}

type viewResp struct {
	ViewID    string        `json:"viewId"`
	Loaded    bool          `json:"loaded"`
	LoadError string        `json:"loadError,omitempty"`
	Filter    filterResp    `json:"filter"`
	Counts    countsResp    `json:"counts"`
	Facets    facetsResp    `json:"facets"`
	InFlight  []string      `json:"inFlight"`
	Startups  []startupResp `json:"startups"`
}

type activityResp struct {
	Kind          string    `json:"kind"`
	Actor         string    `json:"actor"`
	ApplicationID string    `json:"applicationId,omitempty"`
	CompanyName   string    `json:"companyName,omitempty"`
	From          string    `json:"from,omitempty"`
	To            string    `json:"to,omitempty"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newActivityResp(a activity.Activity) activityResp {
	return activityResp{
		Kind:          string(a.Kind),
		Actor:         a.Actor,
		ApplicationID: a.ApplicationID,
		CompanyName:   a.CompanyName,
		From:          string(a.From),
		To:            string(a.To),
		Message:       a.Message,
		CreatedAt:     a.CreatedAt,
	}
}

type dashboardResp struct {
	Counts         countsResp     `json:"counts"`
	RecentActivity []activityResp `json:"recentActivity"`
}

type statusReq struct {
	Status string `json:"status"`
}
