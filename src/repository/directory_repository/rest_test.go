package directory_repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method string
	path   string
}

func testServer(t *testing.T, status int, body string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = append(captured, capturedRequest{method: r.Method, path: r.URL.Path})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestListPending_BareArray(t *testing.T) {
	srv, captured := testServer(t, http.StatusOK, `[
		{"_id":"65a1","companyName":"TechNova","founderName":"Ada","founderMail":"ada@technova.dev","about":"Dev tools","status":"pending","createdAt":"2024-01-10T08:30:00.000Z"},
		{"_id":"65a2","companyName":"GreenGrid","status":"accepted"},
		{"_id":"65a3","companyName":"Nope","status":"rejected"}
	]`)

	repo := NewRest(srv.URL, time.Second)
	got, err := repo.ListPending(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, application.Application{
		ID:           "65a1",
		CompanyName:  "TechNova",
		FounderName:  "Ada",
		FounderEmail: "ada@technova.dev",
		About:        "Dev tools",
		Status:       application.StatusPending,
		CreatedAt:    time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC),
	}, got[0])
	assert.Equal(t, application.StatusApproved, got[1].Status)
	assert.Equal(t, application.StatusRejected, got[2].Status)

	assert.Equal(t, []capturedRequest{{method: http.MethodGet, path: "/startups/pending"}}, *captured)
}

func TestListPending_Envelope(t *testing.T) {
	srv, _ := testServer(t, http.StatusOK, `{"data":[
		{"id":42,"name":"TechVenture AI","founder":"Sarah","email":"sarah@techventure.ai","description":"AI","category":"AI","productType":"SaaS","companyWebsite":"https://techventure.ai","stage":"Seed","address":"Bangkok"},
		{"_id":{"$oid":"507f1f77bcf86cd799439011"},"companyName":"Oid Co","status":""}
	]}`)

	got, err := NewRest(srv.URL, time.Second).ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "42", got[0].ID)
	assert.Equal(t, "TechVenture AI", got[0].CompanyName)
	assert.Equal(t, "Sarah", got[0].FounderName)
	assert.Equal(t, "sarah@techventure.ai", got[0].FounderEmail)
	assert.Equal(t, "AI", got[0].About)
	assert.Equal(t, "https://techventure.ai", got[0].Links.Website)
	assert.Equal(t, "Seed", got[0].FundingStage)
	assert.Equal(t, "Bangkok", got[0].Location)
	assert.Equal(t, application.StatusPending, got[0].Status)

	assert.Equal(t, "507f1f77bcf86cd799439011", got[1].ID)
	assert.Equal(t, application.StatusPending, got[1].Status)
}

func TestListPending_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{"message":"boom"}`, use_case.ErrRetrievingDirectory},
		{"malformed body", http.StatusOK, `not json`, use_case.ErrDataTransform},
		{"unknown status", http.StatusOK, `[{"_id":"1","status":"archived"}]`, use_case.ErrDataTransform},
		{"missing id", http.StatusOK, `[{"companyName":"No Id"}]`, use_case.ErrDataTransform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := testServer(t, tt.status, tt.body)
			_, err := NewRest(srv.URL, time.Second).ListPending(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListPending_Unreachable(t *testing.T) {
	srv, _ := testServer(t, http.StatusOK, `[]`)
	srv.Close()

	_, err := NewRest(srv.URL, time.Second).ListPending(context.Background())
	assert.ErrorIs(t, err, use_case.ErrRetrievingDirectory)
}

func TestGetByID(t *testing.T) {
	srv, captured := testServer(t, http.StatusOK, `{"data":{"_id":"65a1","companyName":"TechNova","status":"approved","teamSize":"12","linkedin":"https://linkedin.com/company/technova"}}`)

	got, err := NewRest(srv.URL, time.Second).GetByID(context.Background(), "65a1")
	require.NoError(t, err)
	assert.Equal(t, "65a1", got.ID)
	assert.Equal(t, "12", got.TeamSize)
	assert.Equal(t, "https://linkedin.com/company/technova", got.Links.LinkedIn)
	assert.Equal(t, application.StatusApproved, got.Status)
	assert.Equal(t, "/startup/65a1", (*captured)[0].path)
}

func TestGetByID_BareObject(t *testing.T) {
	srv, _ := testServer(t, http.StatusOK, `{"_id":"65a1","companyName":"TechNova"}`)

	got, err := NewRest(srv.URL, time.Second).GetByID(context.Background(), "65a1")
	require.NoError(t, err)
	assert.Equal(t, "TechNova", got.CompanyName)
}

func TestGetByID_NotFound(t *testing.T) {
	srv, _ := testServer(t, http.StatusNotFound, `{"message":"not found"}`)

	_, err := NewRest(srv.URL, time.Second).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, use_case.ErrApplicationNotFound)

	_, err = NewRest(srv.URL, time.Second).GetByID(context.Background(), "")
	assert.ErrorIs(t, err, use_case.ErrMissingApplicationID)
}

func TestSetStatus(t *testing.T) {
	tests := []struct {
		status   application.Status
		wantPath string
	}{
		{application.StatusApproved, "/startups/65a1/accept"},
		{application.StatusRejected, "/startups/65a1/reject"},
		{application.StatusPending, "/startups/65a1/pending"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			srv, captured := testServer(t, http.StatusNoContent, ``)

			err := NewRest(srv.URL, time.Second).SetStatus(context.Background(), "65a1", tt.status)
			require.NoError(t, err)
			assert.Equal(t, []capturedRequest{{method: http.MethodPatch, path: tt.wantPath}}, *captured)
		})
	}
}

func TestSetStatus_Failures(t *testing.T) {
	srv, captured := testServer(t, http.StatusBadGateway, ``)
	repo := NewRest(srv.URL, time.Second)

	err := repo.SetStatus(context.Background(), "65a1", application.StatusApproved)
	assert.ErrorIs(t, err, use_case.ErrRetrievingDirectory)

	err = repo.SetStatus(context.Background(), "65a1", application.Status("accepted"))
	assert.ErrorIs(t, err, application.ErrInvalidStatus)
	assert.Len(t, *captured, 1)
}

func TestUpdateStatus(t *testing.T) {
	var (
		method, path, contentType string
		body                      []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, contentType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	err := NewRest(srv.URL, time.Second).UpdateStatus(context.Background(), "65a1", application.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/startup/65a1/status", path)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"status":"approved"}`, string(body))
}

func TestUpdateStatus_Failures(t *testing.T) {
	srv, captured := testServer(t, http.StatusNotFound, ``)
	repo := NewRest(srv.URL, time.Second)

	err := repo.UpdateStatus(context.Background(), "65a1", application.StatusRejected)
	assert.ErrorIs(t, err, use_case.ErrApplicationNotFound)

	err = repo.UpdateStatus(context.Background(), "65a1", application.Status("archived"))
	assert.ErrorIs(t, err, application.ErrInvalidStatus)
	assert.Len(t, *captured, 1)
}
