package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pathway/internal/delivery/http/handler"
	"pathway/internal/delivery/http/middleware"
	"pathway/internal/delivery/http/routes"
	"pathway/internal/pkg/jwt"
	"pathway/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of an existing container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ReadTimeout:  c.Config.Conviction.RequestTimeout + 5*time.Second,
		WriteTimeout: c.Config.Conviction.RequestTimeout + 5*time.Second,
	})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	jwtSvc := jwt.NewHMACService(c.Config.JWT.AccessSecret, c.Config.JWT.AccessExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	timeout := c.Config.Conviction.RequestTimeout
	registry := routes.NewRegistry(routes.Handlers{
		Health:     handler.NewHealthHandler(c.DB, c.Cache),
		Conviction: handler.NewConvictionHandler(c.Convictions, timeout),
		Discovery:  handler.NewDiscoveryHandler(c.Discovery, timeout),
		Engagement: handler.NewEngagementHandler(c.Tracker, timeout),
		Mentor:     handler.NewMentorHandler(c.Mentor, timeout),
		WS:         handler.NewWSHandler(ws.NewHandler(c.Hub, c.Logger)),
	}, authMw)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns the app with its cleanup.
func Bootstrap(ctx context.Context, c *Container) (*App, func() error, error) {
	if c == nil {
		return nil, nil, fmt.Errorf("nil container")
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
