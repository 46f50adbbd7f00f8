package handler

import (
	"strconv"
	"time"

	"pathway/internal/delivery/http/dto"
	"pathway/internal/delivery/http/middleware"
	"pathway/internal/pkg/response"
	"pathway/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DiscoveryHandler struct {
	uc      usecase.DiscoveryUsecase
	timeout time.Duration
}

func NewDiscoveryHandler(uc usecase.DiscoveryUsecase, timeout time.Duration) *DiscoveryHandler {
	return &DiscoveryHandler{uc: uc, timeout: timeout}
}

func (h *DiscoveryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/careers/discover", h.Discover)
}

func (h *DiscoveryHandler) Discover(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized()
	}

	params := usecase.DiscoveryParams{
		Limit:  parseQueryInt(c, "limit", 0),
		Offset: parseQueryInt(c, "offset", 0),
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	items, err := h.uc.Discover(ctx, userID, params)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.DiscoveryResponse{
		Items:  make([]dto.DiscoveryItemResponse, 0, len(items)),
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.DiscoveryItemResponse{
			OccupationID: it.OccupationCode,
			Title:        it.Title,
			Fit:          it.Fit,
			Estimated:    it.Estimated,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
