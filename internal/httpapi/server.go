// Package httpapi wires the cache engine to an HTTP surface built on
// Fiber, with request-ID propagation, audit logging, CORS, rate
// limiting, health probes and Prometheus metrics layered in as
// middleware.
package httpapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/Krishna8167/tempuscache/v2/internal/cache"
	"github.com/Krishna8167/tempuscache/v2/internal/health"
	"github.com/Krishna8167/tempuscache/v2/internal/metrics"
	"github.com/Krishna8167/tempuscache/v2/internal/requestid"
)

// ServerConfig holds the tunables the adapter needs beyond the cache
// engine itself.
type ServerConfig struct {
	ListenAddr   string
	CORSEnabled  bool
	CORSOrigins  string
	RateLimitRPS int
}

// Server is the cache server's Fiber application.
type Server struct {
	app     *fiber.App
	handler *Handlers
	logger  zerolog.Logger
	config  ServerConfig
}

// NewServer builds a Server wrapping the given cache engine, health
// checker, and metrics collector.
func NewServer(cfg ServerConfig, c *cache.Cache, checker *health.Checker, m *metrics.Metrics, logger zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler(logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ReadBufferSize:        8192,
		WriteBufferSize:       8192,
	})

	handlers := NewHandlers(c, checker)

	s := &Server{
		app:     app,
		handler: handlers,
		logger:  logger.With().Str("component", "httpapi").Logger(),
		config:  cfg,
	}

	s.setupMiddleware(m)
	s.setupRoutes(handlers, m)

	return s
}

func (s *Server) setupMiddleware(m *metrics.Metrics) {
	s.app.Use(recover.New(recover.Config{EnableStackTrace: true}))

	s.app.Use(func(c *fiber.Ctx) error {
		_, reqID := requestid.New(c.Context())
		c.Set("X-Request-ID", reqID)
		c.Locals("request_id", reqID)
		return c.Next()
	})

	if s.config.CORSEnabled {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins: s.config.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
			AllowMethods: "GET, POST, DELETE, OPTIONS",
		}))
	}

	if s.config.RateLimitRPS > 0 {
		s.app.Use(newRateLimitMiddleware(s.config.RateLimitRPS))
	}

	// Audit logging + metrics instrumentation.
	s.app.Use(func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/healthz" || path == "/readyz" || path == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start).Seconds()

		status := c.Response().StatusCode()
		method := c.Method()

		if m != nil {
			m.RecordRequest(method, path, fmt.Sprintf("%d", status))
			m.ObserveDuration(method, path, elapsed)
			if status >= 400 {
				m.RecordError(method, path, fmt.Sprintf("%d", status))
			}
		}

		s.logger.Info().
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Str("ip", c.IP()).
			Str("request_id", fmt.Sprintf("%v", c.Locals("request_id"))).
			Dur("elapsed", time.Since(start)).
			Msg("cache api request")

		return err
	})
}

func (s *Server) setupRoutes(h *Handlers, m *metrics.Metrics) {
	s.app.Get("/healthz", adaptor.HTTPHandlerFunc(health.LivenessHandler()))
	s.app.Get("/readyz", adaptor.HTTPHandlerFunc(h.checker.ReadinessHandler()))

	if m != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	s.app.Get("/", h.Index)

	s.app.Post("/put", h.Put)
	s.app.Get("/get", h.Get)
	s.app.Delete("/delete", h.Delete)
	s.app.Post("/clear", h.Clear)
	s.app.Get("/stats", h.StatsHandler)
	s.app.Get("/all", h.All)
}

// Start begins serving. It blocks until the listener stops.
func (s *Server) Start() error {
	addr := s.config.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	s.logger.Info().Str("addr", addr).Msg("cache server starting")
	return s.app.Listen(addr)
}

// Shutdown gracefully drains in-flight requests before closing.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error().
			Err(err).
			Int("status", code).
			Str("path", c.Path()).
			Str("method", c.Method()).
			Msg("unhandled error")

		detail := err.Error()
		if code == fiber.StatusInternalServerError {
			detail = "an internal error occurred"
		}

		return c.Status(code).JSON(ProblemDetail{
			Type:     "internal_error",
			Title:    "Internal Server Error",
			Status:   code,
			Detail:   detail,
			Instance: c.Path(),
		})
	}
}
