// Package httpapi exposes the evaluation service over HTTP. Routes are
// grouped by capability: public, panel (token with the panel role) and
// admin (token with the admin role). Roles are distinct; an admin token
// does not open panel routes.
package httpapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/connectcc/auditions/internal/application"
)

// Server wires the application services to a Fiber app.
type Server struct {
	app       *fiber.App
	access    *application.AccessService
	eval      *application.EvaluationService
	dashboard *application.DashboardService
}

// NewServer builds the Fiber app and registers all routes.
func NewServer(cfg application.ServerConfig, access *application.AccessService, eval *application.EvaluationService, dashboard *application.DashboardService) (*Server, error) {
	if access == nil || eval == nil || dashboard == nil {
		return nil, fmt.Errorf("all services must be non-nil")
	}

	app := fiber.New(fiber.Config{
		AppName:      "auditions",
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	s := &Server{app: app, access: access, eval: eval, dashboard: dashboard}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api")
	api.Post("/login", s.handleLogin)
	api.Get("/leaderboard", s.handleLeaderboard)

	panel := api.Group("/contestants", s.requireRole(application.RolePanel))
	panel.Get("/:roll", s.handleGetContestant)
	panel.Get("/:roll/scorecard", s.handleScorecard)
	panel.Put("/:roll/evaluation", s.handleSubmitEvaluation)

	admin := api.Group("/dashboard", s.requireRole(application.RoleAdmin))
	admin.Get("/", s.handleDashboard)
	admin.Get("/contestants", s.handleAdminContestants)
	admin.Post("/reset", s.handleReset)
}

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

// requireRole verifies the bearer token and checks that it carries exactly
// the required role.
func (s *Server) requireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return errorJSON(c, fiber.StatusUnauthorized, errors.New("missing bearer token"))
		}

		got, err := s.access.Verify(token)
		if err != nil {
			return errorJSON(c, fiber.StatusUnauthorized, errors.New("invalid or expired token"))
		}
		if got != role {
			return errorJSON(c, fiber.StatusForbidden, fmt.Errorf("requires the %s role", role))
		}

		c.Locals("role", got)
		return c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func errorJSON(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
