package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/famous-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/famous-quotes/internal/platform/logging"
)

// Timeout bounds the request context to d. Handlers and the store observe the
// deadline through ctx. If the deadline passed and the handler wrote nothing,
// a 504 TIMEOUT envelope is sent. A non-positive d disables the middleware.
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) || c.Writer.Written() {
			return
		}

		logging.FromContext(ctx).WarnContext(ctx, "request timeout",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("timeout", d),
		)

		resp := dto.NewErrorResponse(dto.ErrorCodeTimeout, "request timeout exceeded").
			WithTraceID(dto.GetTraceID(c))
		c.AbortWithStatusJSON(dto.HTTPStatusFromCode(dto.ErrorCodeTimeout), resp)
	}
}
