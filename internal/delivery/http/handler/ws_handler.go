package handler

import (
	"pathway/internal/delivery/http/middleware"
	"pathway/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type WSHandler struct {
	ws *ws.Handler
}

func NewWSHandler(h *ws.Handler) *WSHandler {
	return &WSHandler{ws: h}
}

func (h *WSHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws", h.Connect)
}

func (h *WSHandler) Connect(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized()
	}
	return h.ws.Serve(c, userID)
}
