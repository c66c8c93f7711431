package rest_delivery

import (
	"context"
	"errors"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/entity/metrics"
	"github.com/SpeedxPz/startup-review-admin/src/entity/session"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"runtime/debug"
	"strconv"
	"strings"
	"time"
)

var tracer = otel.Tracer("rest_delivery")

const localSession = "session"

type UseCase interface {
	HealthCheck(ctx context.Context) error
	Login(ctx context.Context, c use_case.Credential) (session.Session, error)
	Authenticate(ctx context.Context, token string) (session.Session, error)
	Logout(ctx context.Context, token string) error
	Dashboard(ctx context.Context) (use_case.DashboardSummary, error)
	OpenView(ctx context.Context, s session.Session) (string, *use_case.ReviewList, error)
	View(s session.Session, viewID string) (*use_case.ReviewList, error)
	ReloadView(ctx context.Context, s session.Session, viewID string) error
	CloseView(s session.Session, viewID string) error
	TransitionInView(ctx context.Context, s session.Session, viewID string, ID string, target application.Status) (application.Application, error)
	GetApplication(ctx context.Context, ID string) (application.Application, error)
	TransitionApplication(ctx context.Context, s session.Session, ID string, target application.Status) (application.Application, error)
	TransitionTargets(current application.Status) []application.Status
}

type Config struct {
	AppName       string
	EnableSwagger bool
}

type rest struct {
	useCase UseCase
}

// New builds the admin API. Every /api route except login requires a bearer
// session token.
func New(useCase UseCase, cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		Immutable:             true,
		ErrorHandler:          errorHandler,
	})

	r := rest{useCase: useCase}

	app.Use(requestMiddleware)
	app.Use(recoverMiddleware)

	app.Get("/healthz", r.healthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if cfg.EnableSwagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	api := app.Group("/api")
	api.Post("/login", r.login)

	secured := api.Group("", r.authMiddleware)
	secured.Post("/logout", r.logout)
	secured.Get("/dashboard", r.dashboard)

	secured.Post("/views", r.openView)
	secured.Get("/views/:viewID", r.getView)
	secured.Post("/views/:viewID/reload", r.reloadView)
	secured.Patch("/views/:viewID/startups/:id/:action", r.transitionInView)
	secured.Delete("/views/:viewID", r.closeView)

	secured.Get("/startups/:id", r.getStartup)
	secured.Patch("/startups/:id/status", r.setStartupStatus)

	return app
}

type errorResp struct {
	Error  string `json:"error"`
	ViewID string `json:"viewId,omitempty"`
}

// statusCode maps use case errors onto HTTP status codes.
func statusCode(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, use_case.ErrSessionNotFound),
		errors.Is(err, use_case.ErrInvalidCredential):
		return fiber.StatusUnauthorized
	case errors.Is(err, use_case.ErrViewNotFound),
		errors.Is(err, use_case.ErrApplicationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, use_case.ErrInvalidTransition),
		errors.Is(err, use_case.ErrInvalidFilter),
		errors.Is(err, use_case.ErrMissingApplicationID),
		errors.Is(err, application.ErrInvalidStatus):
		return fiber.StatusBadRequest
	case errors.Is(err, use_case.ErrTransitionInFlight):
		return fiber.StatusConflict
	case errors.Is(err, use_case.ErrViewClosed):
		return fiber.StatusGone
	case errors.Is(err, use_case.ErrLoadFailure),
		errors.Is(err, use_case.ErrTransitionFailure),
		errors.Is(err, use_case.ErrRetrievingDirectory),
		errors.Is(err, use_case.ErrIdentityUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, use_case.ErrSessionUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := statusCode(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "internal server error"
	}
	return c.Status(code).JSON(errorResp{Error: message})
}

func recoverMiddleware(c *fiber.Ctx) (err error) {
	defer func() {
		if recovery := recover(); recovery != nil {
			metrics.HTTPHandlerPanics.WithLabelValues(utils.CopyString(c.Method()), utils.CopyString(c.Route().Path)).Inc()
			zap.L().Error("panicked while handling request",
				zap.Any("panic", recovery),
				zap.String("stack", string(debug.Stack())),
				zap.String("path", c.Path()),
			)
			err = fmt.Errorf("panic: %v", recovery)
		}
	}()
	return c.Next()
}

// requestMiddleware logs every request and records its metrics. Errors are
// rendered here so the logged status code is the one sent.
func requestMiddleware(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
			return herr
		}
	}

	// label values outlive the request, fasthttp reuses its buffers
	method := utils.CopyString(c.Method())
	route := utils.CopyString(c.Route().Path)
	code := c.Response().StatusCode()
	elapsed := time.Since(start)

	metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())

	zap.L().Debug("request",
		zap.String("method", method),
		zap.String("path", c.Path()),
		zap.Int("status_code", code),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

func (r rest) authMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if len(header) <= 0 || token == header {
		return fmt.Errorf("missing bearer token: %w", use_case.ErrSessionNotFound)
	}

	s, err := r.useCase.Authenticate(c.UserContext(), token)
	if err != nil {
		return err
	}

	c.Locals(localSession, s)
	return c.Next()
}

func sessionOf(c *fiber.Ctx) session.Session {
	s, _ := c.Locals(localSession).(session.Session)
	return s
}

// healthCheck
// @Summary  Dependency health
// @Tags     system
// @Success  200
// @Failure  503  {object}  errorResp
// @Router   /healthz [get]
func (r rest) healthCheck(c *fiber.Ctx) error {
	ctx, span := tracer.Start(c.UserContext(), "rest_delivery.healthCheck")
	defer span.End()

	if err := r.useCase.HealthCheck(ctx); err != nil {
		zap.L().Warn("health check failed", zap.Any("error", err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(errorResp{Error: err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
