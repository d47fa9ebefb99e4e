// Package handlers holds the gin handlers for the quote routes and the
// operational endpoints under /-/.
package handlers

import (
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/famous-quotes/internal/platform/logging"
	"github.com/jsamuelsen/famous-quotes/internal/ports"
)

// unknownCommit is what cmd/service reports when no -ldflags were given.
const unknownCommit = "unknown"

// BuildInfo is served on /-/build.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo records the linker-injected build values. A missing commit is
// taken from the VCS stamp the Go toolchain embeds, when there is one.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	if commit == "" || commit == unknownCommit {
		commit = vcsRevision(commit)
	}

	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

func vcsRevision(fallback string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fallback
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}

	return fallback
}

// HealthHandler serves the liveness, readiness, build and metrics endpoints.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo) *HealthHandler {
	return &HealthHandler{registry: registry, buildInfo: buildInfo}
}

type livenessResponse struct {
	Status string `json:"status"`
}

// Liveness answers 200 for as long as the process can serve requests.
// The database is checked by Readiness, not here.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{Status: "ok"})
}

type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness runs every registered check, the quote database among them.
// It answers 503 when any check is unhealthy and logs each failing one.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx := c.Request.Context()
	result := h.registry.CheckAll(ctx)

	if result.Status != ports.HealthStatusUnhealthy {
		c.JSON(http.StatusOK, readinessResponse{Status: string(result.Status), Checks: result.Checks})
		return
	}

	logger := logging.FromContext(ctx)
	for name, check := range result.Checks {
		if check.Status == ports.HealthStatusHealthy {
			continue
		}
		logger.WarnContext(ctx, "readiness check failed",
			slog.String("check", name),
			slog.String("message", check.Message),
		)
	}

	c.JSON(http.StatusServiceUnavailable, readinessResponse{Status: string(result.Status), Checks: result.Checks})
}

// BuildInfoHandler serves the build information.
func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler serves the default Prometheus registry,
// which includes quotes_operations_total.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RegisterHealthRoutes mounts live, ready, build and metrics on rg.
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(MetricsHandler()))
}

// RegisterHealthRoutesOnEngine mounts the routes under /-/.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	h.RegisterHealthRoutes(engine.Group("/-"))
}
