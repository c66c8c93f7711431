package identity_repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/admin"
	"github.com/SpeedxPz/startup-review-admin/src/entity/logger"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"io"
	"net/http"
	"time"
)

type rest struct {
	client  *http.Client
	baseURL string
}

type restVerifyReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type restVerifyResp struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (r restVerifyResp) ToEntity() (admin.Admin, error) {
	if len(r.Email) <= 0 {
		return admin.Admin{}, fmt.Errorf("verified identity without email: %w", use_case.ErrDataTransform)
	}
	return admin.Admin{
		Email: r.Email,
		Name:  r.Name,
	}, nil
}

func (r rest) Verify(ctx context.Context, c use_case.Credential) (admin.Admin, error) {
	ctx, span := tracer.Start(ctx, "identity_repository.Verify")
	defer span.End()

	payload, err := json.Marshal(restVerifyReq{Email: c.Email, Password: c.Password})
	if err != nil {
		zap.L().Error("marshal failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("marshal failed: %s", err))
		return admin.Admin{}, fmt.Errorf("%s: %w", err, use_case.ErrIdentityUnavailable)
	}

	endpoint := fmt.Sprintf("%s/auth/verify", r.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		zap.L().Error("create request failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("create request failed: %s", err))
		return admin.Admin{}, fmt.Errorf("%s: %w", err, use_case.ErrIdentityUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		zap.L().Error("execute request failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("execute request failed: %s", err))
		return admin.Admin{}, fmt.Errorf("%s: %w", err, use_case.ErrIdentityUnavailable)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		zap.L().Error("io read failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("io read failed: %s", err))
		return admin.Admin{}, fmt.Errorf("%s: %w", err, use_case.ErrIdentityUnavailable)
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		span.SetStatus(codes.Error, fmt.Sprintf("%s", use_case.ErrInvalidCredential))
		return admin.Admin{}, fmt.Errorf("%w", use_case.ErrInvalidCredential)
	case res.StatusCode != http.StatusOK:
		zap.L().Error("unexpected status code", logger.WithTraceId(ctx), zap.Int("status_code", res.StatusCode))
		span.SetStatus(codes.Error, fmt.Sprintf("unexpected status code: %d", res.StatusCode))
		return admin.Admin{}, fmt.Errorf("unexpected status code %d: %w", res.StatusCode, use_case.ErrIdentityUnavailable)
	}

	var o restVerifyResp
	err = json.Unmarshal(data, &o)
	if err != nil {
		zap.L().Error("unmarshal failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("unmarshal failed: %s", err))
		return admin.Admin{}, fmt.Errorf("%s: %w", err, use_case.ErrIdentityUnavailable)
	}

	result, err := o.ToEntity()
	if err != nil {
		zap.L().Error("convert to entity failed", logger.WithTraceId(ctx), zap.Any("error", err))
		span.SetStatus(codes.Error, fmt.Sprintf("convert to entity failed: %s", err))
		return admin.Admin{}, fmt.Errorf("%w: %w", use_case.ErrIdentityUnavailable, err)
	}

	return result, nil
}

func (r rest) HealthCheck(ctx context.Context) error {
	return nil
}

func NewRest(baseURL string, timeout time.Duration) use_case.IdentityRepository {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	r := &rest{
		client:  c,
		baseURL: baseURL,
	}
	return r
}
