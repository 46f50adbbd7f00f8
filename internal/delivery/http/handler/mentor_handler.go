package handler

import (
	"context"
	"errors"
	"time"

	"pathway/internal/delivery/http/middleware"
	"pathway/internal/mentor"
	"pathway/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

type ToolExecutor interface {
	Execute(ctx context.Context, userID uuid.UUID, call *genai.FunctionCall) (*genai.FunctionResponse, error)
}

// MentorHandler lets the mentor chat service list and invoke the scoring tools on behalf of the
// signed-in student.
type MentorHandler struct {
	executor ToolExecutor
	timeout  time.Duration
}

func NewMentorHandler(executor ToolExecutor, timeout time.Duration) *MentorHandler {
	return &MentorHandler{executor: executor, timeout: timeout}
}

func (h *MentorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/mentor/tools")
	grp.Get("/", h.ListTools)
	grp.Post("/call", h.Call)
}

func (h *MentorHandler) ListTools(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, mentor.Tools())
}

func (h *MentorHandler) Call(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized()
	}

	var call genai.FunctionCall
	if err := c.Bind().Body(&call); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	out, err := h.executor.Execute(ctx, userID, &call)
	if err != nil {
		if errors.Is(err, mentor.ErrUnknownTool) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Unknown tool", nil, err)
		}
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
