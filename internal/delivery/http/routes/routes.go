package routes

import (
	"pathway/internal/delivery/http/handler"
	"pathway/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Health     *handler.HealthHandler
	Conviction *handler.ConvictionHandler
	Discovery  *handler.DiscoveryHandler
	Engagement *handler.EngagementHandler
	Mentor     *handler.MentorHandler
	WS         *handler.WSHandler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api", r.auth.Middleware())

	h := r.handlers
	if h.Conviction != nil {
		h.Conviction.RegisterRoutes(api)
	}
	if h.Discovery != nil {
		h.Discovery.RegisterRoutes(api)
	}
	if h.Engagement != nil {
		h.Engagement.RegisterRoutes(api)
	}
	if h.Mentor != nil {
		h.Mentor.RegisterRoutes(api)
	}
	if h.WS != nil {
		h.WS.RegisterRoutes(api)
	}
}
