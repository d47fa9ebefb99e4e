package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	httpadapter "github.com/jsamuelsen/famous-quotes/internal/adapters/http"
	"github.com/jsamuelsen/famous-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/famous-quotes/internal/adapters/storage"
	"github.com/jsamuelsen/famous-quotes/internal/app"
	"github.com/jsamuelsen/famous-quotes/internal/domain"
	"github.com/jsamuelsen/famous-quotes/internal/platform/config"
	"github.com/jsamuelsen/famous-quotes/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// setupRouter wires the full router over an in-memory store seeded with n quotes.
func setupRouter(b *testing.B, n int) (*gin.Engine, *storage.QuoteStore) {
	b.Helper()

	ctx := context.Background()
	store, err := storage.Open(ctx, storage.Config{Driver: storage.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		b.Fatalf("opening store: %v", err)
	}
	b.Cleanup(func() { _ = store.Close() })

	for i := range n {
		q := &domain.Quote{Author: fmt.Sprintf("Author %d", i), Content: fmt.Sprintf("Quote number %d", i)}
		if _, err := store.Insert(ctx, q); err != nil {
			b.Fatalf("seeding store: %v", err)
		}
	}

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)

	engine := gin.New()
	httpadapter.SetupRouter(engine, &httpadapter.RouterConfig{
		CORS:           &config.CORSConfig{AllowedOrigins: []string{"*"}},
		RequestTimeout: 5 * time.Second,
		HealthHandler:  handlers.NewHealthHandler(registry, handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z")),
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
			Repository: store,
		})),
	})

	return engine, store
}

func serve(b *testing.B, engine *gin.Engine, newReq func() *http.Request, want int) {
	b.Helper()

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, newReq())
		if w.Code != want {
			b.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
		}
	}
}

// BenchmarkLiveness measures the liveness endpoint through the full middleware chain.
func BenchmarkLiveness(b *testing.B) {
	engine, _ := setupRouter(b, 0)

	serve(b, engine, func() *http.Request {
		return httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)
	}, http.StatusOK)
}

// BenchmarkReadiness includes the database ping.
func BenchmarkReadiness(b *testing.B) {
	engine, _ := setupRouter(b, 0)

	serve(b, engine, func() *http.Request {
		return httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)
	}, http.StatusOK)
}

func BenchmarkListQuotes(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("quotes=%d", n), func(b *testing.B) {
			engine, _ := setupRouter(b, n)

			serve(b, engine, func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/quotes", http.NoBody)
			}, http.StatusOK)
		})
	}
}

func BenchmarkGetQuote(b *testing.B) {
	engine, store := setupRouter(b, 100)

	all, err := store.List(context.Background())
	if err != nil || len(all) == 0 {
		b.Fatalf("listing seeded quotes: %v", err)
	}
	path := fmt.Sprintf("/api/quotes/%d", all[len(all)/2].ID)

	serve(b, engine, func() *http.Request {
		return httptest.NewRequest(http.MethodGet, path, http.NoBody)
	}, http.StatusOK)
}

func BenchmarkCreateQuote(b *testing.B) {
	engine, _ := setupRouter(b, 0)
	body := `{"author":"Benchmark Author","content":"Measure twice, cut once."}`

	serve(b, engine, func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}, http.StatusCreated)
}

// BenchmarkRejectedQuote measures the validation path, which never touches the store.
func BenchmarkRejectedQuote(b *testing.B) {
	engine, _ := setupRouter(b, 0)
	body := `{"author":"   ","content":"Measure twice, cut once."}`

	serve(b, engine, func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}, http.StatusBadRequest)
}
