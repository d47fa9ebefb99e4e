package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/famous-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/famous-quotes/internal/app"
	"github.com/jsamuelsen/famous-quotes/internal/domain"
	"github.com/jsamuelsen/famous-quotes/internal/mocks"
)

var addedAt = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// setupQuoteRouter registers a QuoteHandler backed by a mock repository under /api.
func setupQuoteRouter(t *testing.T, setupMock func(*mocks.MockQuoteRepository)) *gin.Engine {
	t.Helper()

	repo := mocks.NewMockQuoteRepository(t)
	if setupMock != nil {
		setupMock(repo)
	}

	service := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: repo,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:        func() time.Time { return addedAt },
	})

	router := gin.New()
	NewQuoteHandler(service).RegisterQuoteRoutes(router.Group("/api"))

	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestNewQuoteHandler(t *testing.T) {
	service := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: mocks.NewMockQuoteRepository(t),
	})

	handler := NewQuoteHandler(service)

	require.NotNil(t, handler)
}

func TestQuoteHandler_RegisterQuoteRoutes(t *testing.T) {
	router := setupQuoteRouter(t, nil)

	routeMap := make(map[string]bool)
	for _, r := range router.Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	for _, expected := range []string{
		"GET /api/quotes",
		"POST /api/quotes",
		"GET /api/quotes/:id",
		"DELETE /api/quotes/:id",
	} {
		assert.True(t, routeMap[expected], "missing route: %s", expected)
	}
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockQuoteRepository)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "returns all quotes",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().List(mock.Anything).Return([]domain.Quote{
					{ID: 1, Author: "A", Content: "one", DateAdded: addedAt},
					{ID: 2, Author: "B", Content: "two", DateAdded: addedAt},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp []dto.QuoteResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.Len(t, resp, 2)
				assert.Equal(t, int64(1), resp[0].ID)
				assert.Equal(t, "two", resp[1].Content)
			},
		},
		{
			name: "empty store returns empty array",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().List(mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.JSONEq(t, `[]`, w.Body.String())
			},
		},
		{
			name: "store failure is a 500 envelope",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().List(mock.Anything).Return(nil, errors.New("disk on fire"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
				assert.NotContains(t, w.Body.String(), "disk on fire")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupQuoteRouter(t, tt.setupMock)

			w := serve(router, http.MethodGet, "/api/quotes", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkResponse(t, w)
		})
	}
}

func TestQuoteHandler_GetQuote(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.MockQuoteRepository)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "success",
			path: "/api/quotes/7",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().GetByID(mock.Anything, int64(7)).Return(&domain.Quote{
					ID: 7, Author: "Specific Author", Content: "Specific quote", DateAdded: addedAt,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.JSONEq(t,
					`{"id":7,"author":"Specific Author","content":"Specific quote","dateAdded":"2024-01-15T10:30:00Z"}`,
					w.Body.String())
			},
		},
		{
			name: "not found has empty body",
			path: "/api/quotes/404",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().GetByID(mock.Anything, int64(404)).Return(nil, domain.NewNotFoundError("quote", 404))
			},
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.Empty(t, w.Body.String())
			},
		},
		{
			name:           "non-integer id",
			path:           "/api/quotes/abc",
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.Equal(t, dto.ErrorCodeBadRequest, decodeError(t, w).Error.Code)
			},
		},
		{
			name: "database unavailable",
			path: "/api/quotes/1",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().GetByID(mock.Anything, int64(1)).Return(nil, domain.NewUnavailableError("database", "down"))
			},
			expectedStatus: http.StatusServiceUnavailable,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.Equal(t, dto.ErrorCodeUnavailable, decodeError(t, w).Error.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupQuoteRouter(t, tt.setupMock)

			w := serve(router, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkResponse(t, w)
		})
	}
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mocks.MockQuoteRepository)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "created with location",
			body: `{"author":"Test Author 1","content":"Test quote 1"}`,
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(q *domain.Quote) bool {
					return q.Author == "Test Author 1" && q.Content == "Test quote 1" && q.DateAdded.Equal(addedAt)
				})).RunAndReturn(func(_ context.Context, q *domain.Quote) (*domain.Quote, error) {
					out := *q
					out.ID = 12
					return &out, nil
				})
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.Equal(t, "/api/quotes/12", w.Header().Get("Location"))

				var resp dto.QuoteResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, int64(12), resp.ID)
				assert.Equal(t, "Test Author 1", resp.Author)
				assert.True(t, resp.DateAdded.Equal(addedAt))
			},
		},
		{
			name: "client id is ignored",
			body: `{"id":999,"author":"A","content":"C"}`,
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(q *domain.Quote) bool {
					return q.ID == 0
				})).Return(&domain.Quote{ID: 3, Author: "A", Content: "C", DateAdded: addedAt}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.Equal(t, "/api/quotes/3", w.Header().Get("Location"))
			},
		},
		{
			name:           "missing author",
			body:           `{"content":"C"}`,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
				assert.Contains(t, resp.Error.Details, "author")
			},
		},
		{
			name:           "whitespace content",
			body:           `{"author":"A","content":"  "}`,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.Contains(t, decodeError(t, w).Error.Details, "content")
			},
		},
		{
			name:           "malformed json",
			body:           `{"author":`,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.Equal(t, dto.ErrorCodeBadRequest, decodeError(t, w).Error.Code)
			},
		},
		{
			name: "store failure",
			body: `{"author":"A","content":"C"}`,
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().Insert(mock.Anything, mock.Anything).Return(nil, errors.New("constraint"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.Empty(t, w.Header().Get("Location"))
				assert.Equal(t, dto.ErrorCodeInternal, decodeError(t, w).Error.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupQuoteRouter(t, tt.setupMock)

			w := serve(router, http.MethodPost, "/api/quotes", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkResponse(t, w)
		})
	}
}

func TestQuoteHandler_CreateQuote_BodyTooLarge(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 16)
		c.Next()
	})

	service := app.NewQuoteService(app.QuoteServiceConfig{Repository: mocks.NewMockQuoteRepository(t)})
	NewQuoteHandler(service).RegisterQuoteRoutes(router.Group("/api"))

	w := serve(router, http.MethodPost, "/api/quotes",
		`{"author":"Someone","content":"`+strings.Repeat("x", 64)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, dto.ErrorCodePayloadTooLarge, decodeError(t, w).Error.Code)
}

func TestQuoteHandler_DeleteQuote(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.MockQuoteRepository)
		expectedStatus int
	}{
		{
			name: "deleted",
			path: "/api/quotes/5",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().DeleteByID(mock.Anything, int64(5)).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "not found",
			path: "/api/quotes/5",
			setupMock: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().DeleteByID(mock.Anything, int64(5)).Return(domain.NewNotFoundError("quote", 5))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-integer id",
			path:           "/api/quotes/five",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupQuoteRouter(t, tt.setupMock)

			w := serve(router, http.MethodDelete, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusBadRequest {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}
