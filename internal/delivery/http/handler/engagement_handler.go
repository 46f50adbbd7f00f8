package handler

import (
	"time"

	"pathway/internal/delivery/http/dto"
	"pathway/internal/delivery/http/middleware"
	"pathway/internal/domain/conviction"
	"pathway/internal/pkg/response"
	"pathway/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EngagementHandler struct {
	uc      usecase.EngagementUsecase
	timeout time.Duration
}

func NewEngagementHandler(uc usecase.EngagementUsecase, timeout time.Duration) *EngagementHandler {
	return &EngagementHandler{uc: uc, timeout: timeout}
}

func (h *EngagementHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/careers")
	grp.Post("/engagement/view", h.RecordPageView)
	grp.Post("/engagement/time", h.AddTimeSpent)
	grp.Post("/videos/watch", h.RecordVideoWatch)
}

func (h *EngagementHandler) RecordPageView(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized()
	}

	var req dto.PageViewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.uc.RecordPageView(ctx, userID, req.OccupationID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *EngagementHandler) AddTimeSpent(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized()
	}

	var req dto.TimeSpentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.uc.AddTimeSpent(ctx, userID, req.OccupationID, req.Seconds); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *EngagementHandler) RecordVideoWatch(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized()
	}

	var req dto.VideoWatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	w := conviction.VideoWatch{
		VideoID:        req.VideoID,
		WatchedSeconds: req.WatchedSeconds,
		Completed:      req.Completed,
	}
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.uc.RecordVideoWatch(ctx, userID, req.OccupationID, w); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
