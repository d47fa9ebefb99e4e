//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/famous-quotes/internal/adapters/clients"
	"github.com/jsamuelsen/famous-quotes/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/famous-quotes/internal/adapters/http"
	"github.com/jsamuelsen/famous-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/famous-quotes/internal/adapters/storage"
	"github.com/jsamuelsen/famous-quotes/internal/app"
	"github.com/jsamuelsen/famous-quotes/internal/domain"
	"github.com/jsamuelsen/famous-quotes/internal/platform/config"
	"github.com/jsamuelsen/famous-quotes/internal/ports"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// stack is the quotes service served in-process over a file-backed SQLite store.
type stack struct {
	server *httptest.Server
	store  *storage.QuoteStore
	dsn    string
}

func newStack(t *testing.T) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + filepath.Join(t.TempDir(), "data", "quotes.db")
	store, err := storage.Open(context.Background(), storage.Config{
		Driver: storage.DriverSQLite,
		DSN:    dsn,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(store))

	engine := gin.New()
	httpadapter.SetupRouter(engine, &httpadapter.RouterConfig{
		CORS: &config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowedHeaders: []string{"*"},
		},
		RequestTimeout: 5 * time.Second,
		HealthHandler:  handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")),
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
			Repository: store,
			Logger:     discard,
		})),
	})

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &stack{server: server, store: store, dsn: dsn}
}

func (s *stack) collectionURL() string {
	return s.server.URL + httpadapter.APIPrefix + "/quotes"
}

func newQuoteClient(t *testing.T, baseURL string, retry config.RetryConfig) *acl.QuoteClient {
	t.Helper()

	client, err := clients.New(&clients.Config{
		ServiceName: acl.DefaultServiceName,
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry:       retry,
		Logger:      discard,
	})
	require.NoError(t, err)

	return acl.NewQuoteClient(acl.QuoteClientConfig{Client: client, Logger: discard})
}

func TestQuoteClient_Lifecycle(t *testing.T) {
	s := newStack(t)
	quotes := newQuoteClient(t, s.collectionURL(), config.RetryConfig{MaxAttempts: 1})
	ctx := context.Background()

	created, err := quotes.Create(ctx, "Test Author 1", "Test quote 1")
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Test Author 1", created.Author)
	assert.Equal(t, "Test quote 1", created.Content)
	assert.WithinDuration(t, time.Now(), created.DateAdded, time.Minute)

	fetched, err := quotes.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Content, fetched.Content)

	all, err := quotes.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)

	require.NoError(t, quotes.Delete(ctx, created.ID))

	_, err = quotes.Get(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err), "got %v", err)

	err = quotes.Delete(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err), "got %v", err)

	all, err = quotes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestQuoteClient_ValidationIsRejected(t *testing.T) {
	s := newStack(t)
	quotes := newQuoteClient(t, s.collectionURL(), config.RetryConfig{MaxAttempts: 1})
	ctx := context.Background()

	_, err := quotes.Create(ctx, "  ", "Orphaned words")
	assert.True(t, domain.IsValidation(err), "got %v", err)

	_, err = quotes.Create(ctx, "Someone", "")
	assert.True(t, domain.IsValidation(err), "got %v", err)

	all, err := quotes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestQuoteClient_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	s := newStack(t)
	quotes := newQuoteClient(t, s.collectionURL(), config.RetryConfig{MaxAttempts: 1})

	const writers = 20

	var (
		mu  sync.Mutex
		ids = make(map[int64]struct{}, writers)
	)

	g, ctx := errgroup.WithContext(context.Background())
	for i := range writers {
		g.Go(func() error {
			q, err := quotes.Create(ctx, fmt.Sprintf("Author %d", i), fmt.Sprintf("Quote %d", i))
			if err != nil {
				return err
			}

			mu.Lock()
			ids[q.ID] = struct{}{}
			mu.Unlock()

			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Len(t, ids, writers)

	all, err := quotes.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, writers)
}

func TestQuoteClient_ServiceDown(t *testing.T) {
	s := newStack(t)
	url := s.collectionURL()
	s.server.Close()

	quotes := newQuoteClient(t, url, config.RetryConfig{
		MaxAttempts:     2,
		InitialInterval: 5 * time.Millisecond,
		MaxInterval:     10 * time.Millisecond,
		Multiplier:      2,
	})

	_, err := quotes.List(context.Background())
	assert.True(t, domain.IsUnavailable(err), "got %v", err)

	assert.Error(t, quotes.Check(context.Background()))
}

func TestQuoteClient_HealthCheck(t *testing.T) {
	s := newStack(t)
	quotes := newQuoteClient(t, s.collectionURL(), config.RetryConfig{MaxAttempts: 1})

	registry := ports.NewHealthRegistry(ports.WithCheckTimeout(2 * time.Second))
	require.NoError(t, registry.Register(quotes))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, ports.HealthStatusHealthy, result.Status)
	assert.Contains(t, result.Checks, quotes.Name())
}

func TestQuoteStore_SurvivesReopen(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	q, err := s.store.Insert(ctx, &domain.Quote{Author: "Heraclitus", Content: "No man ever steps in the same river twice."})
	require.NoError(t, err)
	require.NoError(t, s.store.Close())

	reopened, err := storage.Open(ctx, storage.Config{Driver: storage.DriverSQLite, DSN: s.dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Content, got.Content)
}

func TestService_CORSPreflight(t *testing.T) {
	s := newStack(t)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodOptions, s.collectionURL(), nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
