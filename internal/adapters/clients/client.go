package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/famous-quotes/internal/adapters/http/middleware"
	"github.com/jsamuelsen/famous-quotes/internal/platform/config"
	"github.com/jsamuelsen/famous-quotes/internal/platform/logging"
)

// instrumentationName is used for the OpenTelemetry tracer and meter.
const instrumentationName = "github.com/jsamuelsen/famous-quotes/internal/adapters/clients"

// defaultTimeout applies when Config.Timeout is unset.
const defaultTimeout = 30 * time.Second

// Outcome label values for the request metrics. Completed requests are
// labelled with their status class instead ("2xx", "4xx", ...).
const (
	outcomeCircuitOpen = "circuit_open"
	outcomeCanceled    = "context_canceled"
	outcomeError       = "error"
)

// Config configures an HTTP client instance.
type Config struct {
	// BaseURL is prefixed to every request path, e.g. "http://localhost:8080/api/quotes".
	BaseURL string

	// ServiceName identifies the downstream service for logging and tracing.
	ServiceName string

	// Timeout is the per-attempt request timeout.
	// Total wall-clock time may exceed this value due to retries and backoff.
	Timeout time.Duration

	// Retry configures retry behavior. MaxAttempts below 1 means a single attempt.
	Retry config.RetryConfig

	// Circuit configures circuit breaker behavior.
	// MaxFailures of zero runs without a breaker.
	Circuit config.CircuitBreakerConfig

	// Transport sizes the connection pool. Zero values fall back to the config defaults.
	Transport config.TransportConfig

	// Logger is an optional logger. If nil, slog.Default is used.
	Logger *slog.Logger
}

// Client is an instrumented HTTP client for the quote API.
//
// Every call is traced and counted. Transport failures and 5xx responses are
// retried with exponential backoff when more than one attempt is configured,
// and an optional circuit breaker sheds calls while the API keeps failing.
// Request and correlation IDs found in the context are forwarded.
type Client struct {
	http    *http.Client
	baseURL string
	service string
	retry   config.RetryConfig
	breaker *CircuitBreaker
	logger  *slog.Logger

	tracer   trace.Tracer
	duration metric.Float64Histogram
	requests metric.Int64Counter
}

// New creates a new instrumented HTTP client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retry := cfg.Retry
	retry.MaxAttempts = max(retry.MaxAttempts, 1)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requests, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		service:  cfg.ServiceName,
		retry:    retry,
		breaker:  newBreaker(cfg.Circuit, logger),
		logger:   logger,
		tracer:   otel.Tracer(instrumentationName),
		duration: duration,
		requests: requests,
	}, nil
}

// newBreaker returns nil when the breaker is disabled.
func newBreaker(cfg config.CircuitBreakerConfig, logger *slog.Logger) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		return nil
	}

	cfg.HalfOpenLimit = max(cfg.HalfOpenLimit, 1)
	cb := NewCircuitBreaker(cfg)
	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	return cb
}

// newTransport builds the pooled transport, filling unset fields from the config defaults.
func newTransport(tc config.TransportConfig) *http.Transport {
	if tc.MaxIdleConns <= 0 {
		tc.MaxIdleConns = config.DefaultTransportMaxIdleConns
	}
	if tc.MaxIdleConnsPerHost <= 0 {
		tc.MaxIdleConnsPerHost = config.DefaultTransportMaxIdleConnsPerHost
	}
	if tc.IdleConnTimeout <= 0 {
		tc.IdleConnTimeout = config.DefaultTransportIdleConnTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = tc.MaxIdleConns
	transport.MaxIdleConnsPerHost = tc.MaxIdleConnsPerHost
	transport.IdleConnTimeout = tc.IdleConnTimeout

	return transport
}

// Do sends req through the breaker, retry loop and instrumentation.
//
// A 5xx response is never returned: it becomes a *StatusError once attempts
// run out. Requests with a body are only retried when req.GetBody is set,
// which http.NewRequest does for in-memory readers.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.service),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if c.breaker != nil && !c.breaker.Allow() {
		c.observe(ctx, req.Method, 0, start, outcomeCircuitOpen)
		logger.Warn("request blocked by circuit breaker")
		return nil, ErrCircuitOpen
	}

	forwardIDs(ctx, req.Header)

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.service,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.service),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.send(ctx, req, logger)
	if err != nil {
		if c.breaker != nil {
			c.breaker.RecordFailure()
		}

		outcome := outcomeError
		if ctx.Err() != nil {
			outcome = outcomeCanceled
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.observe(ctx, req.Method, 0, start, outcome)
		logger.Error("request failed",
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		return nil, err
	}

	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, "HTTP "+resp.Status)
	}
	c.observe(ctx, req.Method, resp.StatusCode, start, fmt.Sprintf("%dxx", resp.StatusCode/100))

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

// send runs the attempts. When every configured attempt failed with a
// retryable error and there was more than one, the last error is wrapped
// in ErrMaxRetriesExceeded.
func (c *Client) send(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, error) {
	var lastErr error

	for attempt := range c.retry.MaxAttempts {
		if attempt > 0 {
			logger.Debug("retrying request",
				slog.Int("attempt", attempt+1),
				slog.Any("previous_error", lastErr),
			)
			if err := sleep(ctx, c.backoff(attempt)); err != nil {
				return nil, err
			}
			if err := rewindBody(req); err != nil {
				return nil, err
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))
		switch {
		case err != nil:
			if !isRetryableError(err) {
				return nil, err
			}
			lastErr = err

		case resp.StatusCode >= http.StatusInternalServerError:
			if closeErr := resp.Body.Close(); closeErr != nil {
				logger.Debug("failed to close response body", slog.Any("error", closeErr))
			}
			lastErr = &StatusError{StatusCode: resp.StatusCode}

		default:
			return resp, nil
		}
	}

	if c.retry.MaxAttempts > 1 {
		return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
	}

	return nil, lastErr
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// rewindBody resets the request body before a retry.
func rewindBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	if req.GetBody == nil {
		return errors.New("request body cannot be replayed")
	}

	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}
	req.Body = body

	return nil
}

// Get performs an HTTP GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.request(ctx, http.MethodGet, path, http.NoBody)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	return c.request(ctx, http.MethodPost, path, body)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.request(ctx, http.MethodDelete, path, http.NoBody)
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if body != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.Do(ctx, req)
}

// CircuitState returns the current state of the circuit breaker.
// A client without a breaker always reports StateClosed.
func (c *Client) CircuitState() State {
	if c.breaker == nil {
		return StateClosed
	}

	return c.breaker.State()
}

// forwardIDs copies the request and correlation IDs from ctx onto outgoing headers.
func forwardIDs(ctx context.Context, h http.Header) {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		h.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		h.Set(middleware.HeaderCorrelationID, id)
	}
}

// buildURL joins the base URL and path.
// An empty path addresses the base URL itself.
func (c *Client) buildURL(path string) string {
	if path == "" {
		return c.baseURL
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// backoff returns the wait before the given attempt:
// InitialInterval * Multiplier^attempt, capped at MaxInterval,
// then spread by ±JitterFactor.
func (c *Client) backoff(attempt int) time.Duration {
	d := float64(c.retry.InitialInterval) * math.Pow(c.retry.Multiplier, float64(attempt))
	d = math.Min(d, float64(c.retry.MaxInterval))

	if c.retry.JitterFactor > 0 {
		spread := rand.Float64()*2 - 1 //nolint:gosec // jitter does not need crypto randomness
		d += d * c.retry.JitterFactor * spread
	}

	return time.Duration(d)
}

func (c *Client) observe(ctx context.Context, method string, status int, start time.Time, outcome string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.service),
		attribute.String("result", outcome),
	}

	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	opt := metric.WithAttributes(attrs...)
	c.duration.Record(ctx, time.Since(start).Seconds(), opt)
	c.requests.Add(ctx, 1, opt)
}

// isRetryableError reports whether a transport error is worth another attempt:
// timeouts and connection-level failures, but never a canceled or expired context.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
