package directory_repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"io"
	"net/http"
	"net/url"
	"time"
)

type rest struct {
	client  *http.Client
	baseURL string
}

// restID accepts the string, number and extended json {"$oid": ...} forms
// the directory has been seen to send.
type restID string

func (i *restID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*i = restID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*i = restID(n.String())
		return nil
	}

	var oid struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(b, &oid); err == nil && len(oid.OID) > 0 {
		*i = restID(oid.OID)
		return nil
	}

	return fmt.Errorf("unsupported id: %s", b)
}

type restStartup struct {
	MongoID            restID `json:"_id"`
	ID                 restID `json:"id"`
	CompanyName        string `json:"companyName"`
	Name               string `json:"name"`
	FounderName        string `json:"founderName"`
	Founder            string `json:"founder"`
	FounderMail        string `json:"founderMail"`
	FounderEmail       string `json:"founderEmail"`
	Email              string `json:"email"`
	InstituteName      string `json:"instituteName"`
	About              string `json:"about"`
	Description        string `json:"description"`
	ProductDescription string `json:"productDescription"`
	Category           string `json:"category"`
	ProductType        string `json:"productType"`
	Industry           string `json:"industry"`
	TeamSize           string `json:"teamSize"`
	Funding            string `json:"funding"`
	FundingStage       string `json:"fundingStage"`
	Stage              string `json:"stage"`
	FoundedDate        string `json:"foundedDate"`
	Location           string `json:"location"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Website            string `json:"website"`
	CompanyWebsite     string `json:"companyWebsite"`
	LinkedIn           string `json:"linkedin"`
	Instagram          string `json:"instagram"`
	Twitter            string `json:"twitter"`
	Status             string `json:"status"`
	CreatedAt          string `json:"createdAt"`
}

type restEnvelope struct {
	Data json.RawMessage `json:"data"`
}

func firstOf(values ...string) string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return ""
}

// parseStatus maps the directory's status dialect onto the canonical set.
func parseStatus(s string) (application.Status, error) {
	switch s {
	case "":
		return application.StatusPending, nil
	case "accepted":
		return application.StatusApproved, nil
	}
	return application.ParseStatus(s)
}

func (r restStartup) ToEntity() (application.Application, error) {

	ID := string(r.MongoID)
	if len(ID) <= 0 {
		ID = string(r.ID)
	}
	if len(ID) <= 0 {
		return application.Application{}, fmt.Errorf("record without id: %w", use_case.ErrDataTransform)
	}

	status, err := parseStatus(r.Status)
	if err != nil {
		return application.Application{}, fmt.Errorf("%s: %s: %w", ID, err, use_case.ErrDataTransform)
	}

	var createdAt time.Time
	if len(r.CreatedAt) > 0 {
		if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
			createdAt = t
		}
	}

	return application.Application{
		ID:            ID,
		CompanyName:   firstOf(r.CompanyName, r.Name),
		FounderName:   firstOf(r.FounderName, r.Founder),
		FounderEmail:  firstOf(r.FounderMail, r.FounderEmail, r.Email),
		InstituteName: r.InstituteName,
		About:         firstOf(r.About, r.Description, r.ProductDescription),
		Category:      r.Category,
		ProductType:   r.ProductType,
		Industry:      r.Industry,
		TeamSize:      r.TeamSize,
		Funding:       r.Funding,
		FundingStage:  firstOf(r.FundingStage, r.Stage),
		FoundedDate:   r.FoundedDate,
		Location:      firstOf(r.Location, r.Address),
		Phone:         r.Phone,
		Links: application.Links{
			Website:   firstOf(r.Website, r.CompanyWebsite),
			LinkedIn:  r.LinkedIn,
			Instagram: r.Instagram,
			Twitter:   r.Twitter,
		},
		Status:    status,
		CreatedAt: createdAt,
	}, nil
}

// unwrap returns the payload inside a {"data": ...} envelope, or the body
// itself when it is not wrapped.
func unwrap(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) <= 0 || trimmed[0] != '{' {
		return trimmed
	}

	var env restEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil || len(env.Data) <= 0 || string(env.Data) == "null" {
		return trimmed
	}
	return env.Data
}

func decodeList(body []byte) ([]application.Application, error) {
	var o []restStartup
	if err := json.Unmarshal(unwrap(body), &o); err != nil {
		return nil, fmt.Errorf("%s: %w", err, use_case.ErrDataTransform)
	}

	results := make([]application.Application, len(o))
	for i := range o {
		result, err := o[i].ToEntity()
		if err != nil {
			return nil, err
		}
		results[i] = result
	}
	return results, nil
}

func decodeOne(body []byte) (application.Application, error) {
	var o restStartup
	if err := json.Unmarshal(unwrap(body), &o); err != nil {
		return application.Application{}, fmt.Errorf("%s: %w", err, use_case.ErrDataTransform)
	}
	return o.ToEntity()
}

func actionFor(status application.Status) (string, error) {
	switch status {
	case application.StatusApproved:
		return "accept", nil
	case application.StatusRejected:
		return "reject", nil
	case application.StatusPending:
		return "pending", nil
	}
	return "", fmt.Errorf("cannot parse:[%s] as status: %w", status, application.ErrInvalidStatus)
}

func (r rest) do(ctx context.Context, method string, endpoint string, body interface{}) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal body failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := r.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("execute request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("io read failed: %w", err)
	}
	return res.StatusCode, data, nil
}

func (r rest) ListPending(ctx context.Context) ([]application.Application, error) {
	ctx, span := tracer.Start(ctx, "directory_repository.ListPending")
	defer span.End()

	endpoint := fmt.Sprintf("%s/startups/pending", r.baseURL)

	code, data, err := r.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		zap.L().Error("list pending failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return nil, fmt.Errorf("%s: %w", err, use_case.ErrRetrievingDirectory)
	}

	if code < 200 || code > 299 {
		zap.L().Error("list pending failed", logger.WithTraceId(ctx), zap.Int("status_code", code))
		span.SetStatus(codes.Error, fmt.Sprintf("unexpected status code: %d", code))
		return nil, fmt.Errorf("unexpected status code %d: %w", code, use_case.ErrRetrievingDirectory)
	}

	result, err := decodeList(data)
	if err != nil {
		zap.L().Error("convert to entities failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("convert to entities failed: %s", err))
		return nil, err
	}

	return result, nil
}

func (r rest) GetByID(ctx context.Context, ID string) (application.Application, error) {
	ctx, span := tracer.Start(ctx, "directory_repository.GetByID")
	defer span.End()

	if len(ID) <= 0 {
		zap.L().Error("missing application id", logger.WithTraceId(ctx), zap.Any("error", use_case.ErrMissingApplicationID))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", use_case.ErrMissingApplicationID))
		return application.Application{}, fmt.Errorf("%w", use_case.ErrMissingApplicationID)
	}

	endpoint := fmt.Sprintf("%s/startup/%s", r.baseURL, url.PathEscape(ID))

	code, data, err := r.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		zap.L().Error("get application failed", logger.WithTraceId(ctx), logger.WithApplicationId(ID), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return application.Application{}, fmt.Errorf("%s: %w", err, use_case.ErrRetrievingDirectory)
	}

	if code == http.StatusNotFound {
		span.SetStatus(codes.Error, fmt.Sprintf("%s: %s", ID, use_case.ErrApplicationNotFound))
		return application.Application{}, fmt.Errorf("%s: %w", ID, use_case.ErrApplicationNotFound)
	}

	if code < 200 || code > 299 {
		zap.L().Error("get application failed", logger.WithTraceId(ctx), logger.WithApplicationId(ID), zap.Int("status_code", code))
		span.SetStatus(codes.Error, fmt.Sprintf("unexpected status code: %d", code))
		return application.Application{}, fmt.Errorf("unexpected status code %d: %w", code, use_case.ErrRetrievingDirectory)
	}

	result, err := decodeOne(data)
	if err != nil {
		zap.L().Error("convert to entity failed", logger.WithTraceId(ctx), logger.WithApplicationId(ID), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("convert to entity failed: %s", err))
		return application.Application{}, err
	}

	return result, nil
}

func (r rest) SetStatus(ctx context.Context, ID string, status application.Status) error {
	ctx, span := tracer.Start(ctx, "directory_repository.SetStatus")
	defer span.End()

	action, err := actionFor(status)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return err
	}

	endpoint := fmt.Sprintf("%s/startups/%s/%s", r.baseURL, url.PathEscape(ID), action)

	code, _, err := r.do(ctx, http.MethodPatch, endpoint, nil)
	return r.checkWrite(ctx, ID, code, err)
}

type restStatusReq struct {
	Status string `json:"status"`
}

func (r rest) UpdateStatus(ctx context.Context, ID string, status application.Status) error {
	ctx, span := tracer.Start(ctx, "directory_repository.UpdateStatus")
	defer span.End()

	if _, err := application.ParseStatus(string(status)); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return err
	}

	endpoint := fmt.Sprintf("%s/startup/%s/status", r.baseURL, url.PathEscape(ID))

	code, _, err := r.do(ctx, http.MethodPatch, endpoint, restStatusReq{Status: string(status)})
	return r.checkWrite(ctx, ID, code, err)
}

func (r rest) checkWrite(ctx context.Context, ID string, code int, err error) error {
	span := trace.SpanFromContext(ctx)

	if err != nil {
		zap.L().Error("set status failed", logger.WithTraceId(ctx), logger.WithApplicationId(ID), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("%s", err))
		return fmt.Errorf("%s: %w", err, use_case.ErrRetrievingDirectory)
	}

	if code == http.StatusNotFound {
		span.SetStatus(codes.Error, fmt.Sprintf("%s: %s", ID, use_case.ErrApplicationNotFound))
		return fmt.Errorf("%s: %w", ID, use_case.ErrApplicationNotFound)
	}

	if code < 200 || code > 299 {
		zap.L().Error("set status failed", logger.WithTraceId(ctx), logger.WithApplicationId(ID), zap.Int("status_code", code))
		span.SetStatus(codes.Error, fmt.Sprintf("unexpected status code: %d", code))
		return fmt.Errorf("unexpected status code %d: %w", code, use_case.ErrRetrievingDirectory)
	}

	return nil
}

func (r rest) HealthCheck(ctx context.Context) error {
	return nil
}

func NewRest(baseURL string, timeout time.Duration) use_case.DirectoryRepository {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			DisableCompression:  true,
			MaxIdleConnsPerHost: 10,
		},
	}

	r := &rest{
		client:  c,
		baseURL: baseURL,
	}
	return r
}
