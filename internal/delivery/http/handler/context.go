package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

// DefaultRequestTimeout bounds a usecase call when the handler was built without a timeout.
const DefaultRequestTimeout = 5 * time.Second

// requestContext derives the usecase context for one request. The deadline cancels in-flight store
// reads once the request budget is spent.
func requestContext(c fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(c.Context(), timeout)
}
