package handler

import (
	"strings"
	"time"

	"pathway/internal/delivery/http/dto"
	"pathway/internal/delivery/http/middleware"
	"pathway/internal/pkg/response"
	"pathway/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ConvictionHandler struct {
	uc      usecase.ConvictionReader
	timeout time.Duration
}

func NewConvictionHandler(uc usecase.ConvictionReader, timeout time.Duration) *ConvictionHandler {
	return &ConvictionHandler{uc: uc, timeout: timeout}
}

func (h *ConvictionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/careers/conviction", h.GetConviction)
}

func (h *ConvictionHandler) GetConviction(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized()
	}

	code := strings.TrimSpace(c.Query("occupationId"))
	if code == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "occupationId is required", nil, nil)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	b, err := h.uc.Get(ctx, userID, code)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.ConvictionResponse{Breakdown: dto.NewBreakdownResponse(b)})
}
