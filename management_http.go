package benchreporter

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/goccy/go-json"
	fiber "github.com/gofiber/fiber/v3"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchreporter/internal/sentinel"
	"github.com/hyp3rd/benchreporter/pkg/run"
)

// ManagementHTTPOption configures the management HTTP server.
type ManagementHTTPOption func(*ManagementHTTPServer)

// ManagementHTTPServer exposes a Service over HTTP.
type ManagementHTTPServer struct {
	addr         string
	app          *fiber.App
	readTimeout  time.Duration
	writeTimeout time.Duration
	authFunc     func(fiber.Ctx) error
	ln           net.Listener
	started      bool
}

// WithMgmtAuth sets an auth function (return error to block).
func WithMgmtAuth(fn func(fiber.Ctx) error) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.authFunc = fn }
}

// WithMgmtReadTimeout sets read timeout.
func WithMgmtReadTimeout(d time.Duration) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.readTimeout = d }
}

// WithMgmtWriteTimeout sets write timeout.
func WithMgmtWriteTimeout(d time.Duration) ManagementHTTPOption {
	return func(s *ManagementHTTPServer) { s.writeTimeout = d }
}

const (
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

// NewManagementHTTPServer builds an HTTP server holder (lazy start).
func NewManagementHTTPServer(addr string, opts ...ManagementHTTPOption) *ManagementHTTPServer {
	srv := &ManagementHTTPServer{
		addr:         addr,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts { // apply options
		opt(srv)
	}

	srv.app = fiber.New(fiber.Config{
		ReadTimeout:  srv.readTimeout,
		WriteTimeout: srv.writeTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return srv
}

// Start launches the listener (idempotent). Handlers are served by svc.
func (s *ManagementHTTPServer) Start(ctx context.Context, svc Service) error {
	if s.started {
		return nil
	}

	s.mountRoutes(ctx, svc)

	lc := net.ListenConfig{}

	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return ewrap.Wrap(err, "mgmt listen")
	}

	s.ln = ln

	go func() {
		_ = s.app.Listener(ln)
	}()

	s.started = true

	return nil
}

// Address returns the bound address (useful when passing ":0" for ephemeral port). Empty if not started yet.
func (s *ManagementHTTPServer) Address() string {
	if s.ln == nil {
		return ""
	}

	return s.ln.Addr().String()
}

// Shutdown stops the server.
func (s *ManagementHTTPServer) Shutdown(ctx context.Context) error {
	if !s.started {
		return nil
	}

	ch := make(chan error, 1)

	go func() {
		ch <- s.app.Shutdown()
	}()

	select {
	case <-ctx.Done():
		return sentinel.ErrMgmtHTTPShutdownTimeout
	case err := <-ch:
		return err
	}
}

func (s *ManagementHTTPServer) mountRoutes(ctx context.Context, svc Service) {
	useAuth := s.wrapAuth
	s.registerBasic(useAuth, svc)
	s.registerBaselines(ctx, useAuth, svc)
	s.registerCompare(ctx, useAuth, svc)
}

// wrapAuth returns an auth-wrapped handler if authFunc provided.
func (s *ManagementHTTPServer) wrapAuth(handler fiber.Handler) fiber.Handler { //nolint:ireturn
	if s.authFunc == nil {
		return handler
	}

	return func(fiberCtx fiber.Ctx) error {
		authErr := s.authFunc(fiberCtx)
		if authErr != nil {
			return authErr
		}

		return handler(fiberCtx)
	}
}

func (s *ManagementHTTPServer) registerBasic(useAuth func(fiber.Handler) fiber.Handler, svc Service) {
	s.app.Get("/health", useAuth(func(fiberCtx fiber.Ctx) error { return fiberCtx.SendString("ok") }))
	s.app.Get("/config", useAuth(func(fiberCtx fiber.Ctx) error {
		return fiberCtx.JSON(fiber.Map{
			"sigFigs":         svc.SigFigs(),
			"aggregationType": svc.AggregationType().String(),
			"storeBackend":    svc.StoreBackend(),
		})
	}))
}

func (s *ManagementHTTPServer) registerBaselines(ctx context.Context, useAuth func(fiber.Handler) fiber.Handler, svc Service) {
	s.app.Get("/baselines", useAuth(func(fiberCtx fiber.Ctx) error {
		names, err := svc.Baselines(ctx)
		if err != nil {
			return errorResponse(fiberCtx, err)
		}

		return fiberCtx.JSON(fiber.Map{"count": len(names), "baselines": names})
	}))
	s.app.Get("/baselines/:name", useAuth(func(fiberCtx fiber.Ctx) error {
		baseline, err := svc.LoadBaseline(ctx, param(fiberCtx, "name"))
		if err != nil {
			return errorResponse(fiberCtx, err)
		}

		return fiberCtx.JSON(baseline)
	}))
	s.app.Post("/baselines/:name", useAuth(func(fiberCtx fiber.Ctx) error {
		r, err := run.Decode(fiberCtx.Body(), nil)
		if err != nil {
			return errorResponse(fiberCtx, err)
		}

		baseline, err := svc.SaveBaseline(ctx, r, param(fiberCtx, "name"))
		if err != nil {
			return errorResponse(fiberCtx, err)
		}

		return fiberCtx.Status(fiber.StatusCreated).JSON(baseline)
	}))
}

func (s *ManagementHTTPServer) registerCompare(ctx context.Context, useAuth func(fiber.Handler) fiber.Handler, svc Service) {
	s.app.Post("/compare/:name", useAuth(func(fiberCtx fiber.Ctx) error {
		r, err := run.Decode(fiberCtx.Body(), nil)
		if err != nil {
			return errorResponse(fiberCtx, err)
		}

		report, err := svc.CompareWithBaseline(ctx, r, param(fiberCtx, "name"), strings.Clone(fiberCtx.Query("result")))
		if err != nil {
			return errorResponse(fiberCtx, err)
		}

		return fiberCtx.JSON(report)
	}))
}

// param returns a copy of the route parameter; fiber values alias the reused request buffer.
func param(fiberCtx fiber.Ctx, key string) string {
	return strings.Clone(fiberCtx.Params(key))
}

// statusFor maps pipeline errors to HTTP status codes. Invariant violations are server faults.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sentinel.ErrBaselineNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, sentinel.ErrInvariantViolation):
		return fiber.StatusInternalServerError
	case errors.Is(err, sentinel.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(fiberCtx fiber.Ctx, err error) error {
	return fiberCtx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}
