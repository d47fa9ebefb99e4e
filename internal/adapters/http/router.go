package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/famous-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/famous-quotes/internal/adapters/http/middleware"
	"github.com/jsamuelsen/famous-quotes/internal/platform/config"
	"github.com/jsamuelsen/famous-quotes/internal/platform/telemetry"
)

// APIPrefix is the group every quote route is mounted under.
const APIPrefix = "/api"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// ServiceName names the otelgin tracer.
	ServiceName string

	// TracingEnabled adds otelgin spans ahead of the metrics middleware.
	TracingEnabled bool

	// CORS is the cross-origin policy. Nil disables CORS handling.
	CORS *config.CORSConfig

	// RequestTimeout bounds /api requests. Zero disables it.
	RequestTimeout time.Duration

	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler
}

// SetupRouter installs the middleware chain and routes on engine.
//
// Global middleware, outermost first: Recovery, RequestID, CorrelationID,
// CORS, tracing (when enabled), metrics, Logging. The operational routes under /-/
// get no timeout; the /api group does.
func SetupRouter(engine *gin.Engine, cfg *RouterConfig) {
	chain := []gin.HandlerFunc{
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	}
	if cfg.CORS != nil {
		chain = append(chain, middleware.CORS(cfg.CORS))
	}
	if cfg.TracingEnabled {
		chain = append(chain, telemetry.Tracing(cfg.ServiceName))
	}
	chain = append(chain, telemetry.Middleware(), middleware.Logging())

	engine.Use(chain...)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group(APIPrefix, middleware.Timeout(cfg.RequestTimeout))
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(api)
	}
}
