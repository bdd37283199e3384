package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/models"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/repository"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/service"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/cache"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo serves canned warehouse rows and records the filters it received
type stubRepo struct {
	rows    []models.ConversationRow
	row     *models.ConversationRow
	total   int64
	filters repository.Filters
	limit   int
	offset  int
}

func (s *stubRepo) Count(ctx context.Context, f repository.Filters) (int64, error) {
	s.filters = f
	return s.total, nil
}

func (s *stubRepo) List(ctx context.Context, f repository.Filters, limit, offset int) ([]models.ConversationRow, error) {
	s.filters = f
	s.limit = limit
	s.offset = offset
	return s.rows, nil
}

func (s *stubRepo) GetByID(ctx context.Context, id string) (*models.ConversationRow, error) {
	if s.row == nil {
		return nil, repository.ErrConversationNotFound
	}
	return s.row, nil
}

func (s *stubRepo) MessagesByConversation(ctx context.Context, id string) ([]models.MessageRow, error) {
	return nil, nil
}

func (s *stubRepo) DistinctIntents(ctx context.Context) ([]string, error) {
	return []string{"billing"}, nil
}

func (s *stubRepo) Ping() error  { return nil }
func (s *stubRepo) Close() error { return nil }

func newTestRouter(repo *stubRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(errors.ErrorHandler())

	counts := cache.New(time.Minute, time.Minute, 100)
	svc := service.NewConversationService(repo, counts, nil, service.Options{})
	NewConversationHandler(svc).RegisterRoutes(router)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListConversations(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		total: 1,
		rows: []models.ConversationRow{
			{ConversationID: "conv-1", CreatedAt: &created, MessageCount: 2},
		},
	}
	router := newTestRouter(repo)

	w := get(router, "/api/conversations")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.ConversationPage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Page)
	assert.Equal(t, service.DefaultPageSize, resp.Data.PageSize)
	require.Len(t, resp.Data.Conversations, 1)
	assert.Equal(t, "conv-1", resp.Data.Conversations[0].ID)
}

func TestListConversations_QueryParamsReachTheFilters(t *testing.T) {
	repo := &stubRepo{}
	router := newTestRouter(repo)

	w := get(router, "/api/conversations?page=2&pageSize=10&search=visa&channel=website&channel=whatsapp&dateFrom=2026-01-01&dateTo=2026-01-31")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "visa", repo.filters.Search)
	assert.Equal(t, []string{"website", "whatsapp"}, repo.filters.Channels)
	assert.Equal(t, "2026-01-01", repo.filters.DateFrom)
	assert.Equal(t, "2026-01-31", repo.filters.DateTo)
	assert.Equal(t, 10, repo.limit)
	assert.Equal(t, 10, repo.offset)
}

func TestListConversations_MalformedPagingFallsBack(t *testing.T) {
	repo := &stubRepo{}
	router := newTestRouter(repo)

	w := get(router, "/api/conversations?page=abc&pageSize=xyz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.DefaultPageSize, repo.limit)
	assert.Equal(t, 0, repo.offset)
}

func TestGetConversation_NotFound(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	w := get(router, "/api/conversations/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Conversation not found"}`, w.Body.String())
}

func TestGetConversation_DetailOmitsAggregates(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		row: &models.ConversationRow{ConversationID: "conv-1", CreatedAt: &created, MessageCount: 9},
	}
	router := newTestRouter(repo)

	w := get(router, "/api/conversations/conv-1")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "conv-1", resp.Data["id"])
	assert.NotContains(t, resp.Data, "messageCount")
	assert.NotContains(t, resp.Data, "lastMessageTime")
	assert.NotContains(t, resp.Data, "messages")
}

func TestGetFilterOptions(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	w := get(router, "/api/conversations/filters")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.FilterCatalog `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"billing"}, resp.Data.IntentOptions)
	assert.Len(t, resp.Data.ChannelOptions, 2)
}

func TestGetMessageDebug(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	w := get(router, "/api/messages/42/debug")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "demo-trace-abc123", resp["traceId"])
	assert.Contains(t, resp["langsmithUrl"], "demo-trace-abc123")
	assert.Nil(t, resp["prompt"])
}
