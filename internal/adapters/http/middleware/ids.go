// Package middleware provides the gin middleware chain for the quote service.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/famous-quotes/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request identifier.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID carries the identifier of a whole client interaction,
	// which may span several requests.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin.Context key holding the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin.Context key holding the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// idPropagation describes where an inbound identifier is read from and where it is stored.
type idPropagation struct {
	header   string
	key      string
	withCtx  func(ctx context.Context, id string) context.Context
	withLogs func(ctx context.Context, id string) context.Context
}

// RequestID reads X-Request-ID or generates a UUID v4, echoes it on the
// response and makes it available to handlers, outbound clients and the
// context logger.
func RequestID() gin.HandlerFunc {
	return propagateID(idPropagation{
		header:   HeaderRequestID,
		key:      ContextKeyRequestID,
		withCtx:  ContextWithRequestID,
		withLogs: logging.WithRequestID,
	})
}

// CorrelationID does the same as RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return propagateID(idPropagation{
		header:   HeaderCorrelationID,
		key:      ContextKeyCorrelationID,
		withCtx:  ContextWithCorrelationID,
		withLogs: logging.WithCorrelationID,
	})
}

// GetRequestID returns the request ID, or "" when RequestID has not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID, or "" when CorrelationID has not run.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

func propagateID(p idPropagation) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(p.header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(p.key, id)
		c.Header(p.header, id)

		ctx := p.withCtx(c.Request.Context(), id)
		ctx = p.withLogs(ctx, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
