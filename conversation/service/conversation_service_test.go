package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/models"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/repository"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/cache"
	apperrors "github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo records call arguments and serves canned rows
type fakeRepo struct {
	rows       []models.ConversationRow
	row        *models.ConversationRow
	messages   []models.MessageRow
	intents    []string
	total      int64
	countCalls int
	listLimit  int
	listOffset int
	err        error
	getErr     error
}

func (f *fakeRepo) Count(ctx context.Context, _ repository.Filters) (int64, error) {
	f.countCalls++
	return f.total, f.err
}

func (f *fakeRepo) List(ctx context.Context, _ repository.Filters, limit, offset int) ([]models.ConversationRow, error) {
	f.listLimit = limit
	f.listOffset = offset
	return f.rows, f.err
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*models.ConversationRow, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.row, nil
}

func (f *fakeRepo) MessagesByConversation(ctx context.Context, id string) ([]models.MessageRow, error) {
	return f.messages, f.err
}

func (f *fakeRepo) DistinctIntents(ctx context.Context) ([]string, error) {
	return f.intents, f.err
}

func (f *fakeRepo) Ping() error  { return nil }
func (f *fakeRepo) Close() error { return nil }

func newTestService(repo *fakeRepo) *ConversationService {
	counts := cache.New(time.Minute, time.Minute, 100)
	return NewConversationService(repo, counts, nil, Options{})
}

func TestList_Pagination(t *testing.T) {
	created := time.Now().UTC()
	repo := &fakeRepo{
		total: 120,
		rows: []models.ConversationRow{
			{ConversationID: "conv-1", CreatedAt: &created, MessageCount: 3},
			{ConversationID: "conv-2", CreatedAt: &created, MessageCount: 5},
		},
	}
	svc := newTestService(repo)

	page, err := svc.List(context.Background(), repository.Filters{}, 3, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(120), page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 20, repo.listLimit)
	assert.Equal(t, 40, repo.listOffset)
	require.Len(t, page.Conversations, 2)
	assert.Equal(t, "conv-1", page.Conversations[0].ID)
	require.NotNil(t, page.Conversations[0].MessageCount)
	assert.Equal(t, int64(3), *page.Conversations[0].MessageCount)
}

func TestList_ClampsPageAndPageSize(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	page, err := svc.List(context.Background(), repository.Filters{}, 0, -5)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Equal(t, 0, repo.listOffset)
	assert.NotNil(t, page.Conversations)
}

func TestList_CountCacheHit(t *testing.T) {
	repo := &fakeRepo{total: 7}
	svc := newTestService(repo)

	_, err := svc.List(context.Background(), repository.Filters{Search: "visa"}, 1, 10)
	require.NoError(t, err)
	_, err = svc.List(context.Background(), repository.Filters{Search: "visa"}, 2, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.countCalls, "second page should reuse the cached total")

	// different filters key a fresh count
	_, err = svc.List(context.Background(), repository.Filters{Search: "refund"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.countCalls)
}

func TestList_QueryFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	svc := newTestService(repo)

	_, err := svc.List(context.Background(), repository.Filters{}, 1, 10)

	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, 500, appErr.StatusCode)
	assert.Equal(t, "QUERY_FAILURE", appErr.Code)
}

func TestGet_NotFound(t *testing.T) {
	repo := &fakeRepo{getErr: repository.ErrConversationNotFound}
	svc := newTestService(repo)

	_, err := svc.Get(context.Background(), "missing", false)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGet_DetailShape(t *testing.T) {
	created := time.Now().UTC()
	last := created.Add(time.Hour)
	repo := &fakeRepo{
		row: &models.ConversationRow{
			ConversationID:  "conv-9",
			CreatedAt:       &created,
			LastMessageTime: &last,
			MessageCount:    4,
		},
	}
	svc := newTestService(repo)

	view, err := svc.Get(context.Background(), "conv-9", false)

	require.NoError(t, err)
	assert.Equal(t, "conv-9", view.ID)
	assert.Nil(t, view.MessageCount, "detail view must not expose list aggregates")
	assert.Nil(t, view.LastMessageTime)
	assert.Equal(t, &last, view.EndTime)
	assert.Nil(t, view.Messages)
}

func TestGet_WithTranscript(t *testing.T) {
	created := time.Now().UTC()
	content := "hi"
	repo := &fakeRepo{
		row: &models.ConversationRow{ConversationID: "conv-9", CreatedAt: &created},
		messages: []models.MessageRow{
			{ID: 1, ConversationID: "conv-9", MessageContent: &content, Direction: "inbound", MessageType: "text"},
			{ID: 2, ConversationID: "conv-9", Direction: "outbound", MessageType: "text"},
		},
	}
	svc := newTestService(repo)

	view, err := svc.Get(context.Background(), "conv-9", true)

	require.NoError(t, err)
	require.Len(t, view.Messages, 2)
	assert.Equal(t, models.SenderUser, view.Messages[0].Sender)
	assert.Equal(t, models.SenderAI, view.Messages[1].Sender)
}

func TestFilterCatalog(t *testing.T) {
	repo := &fakeRepo{intents: []string{"billing", "visa"}}
	svc := newTestService(repo)

	catalog, err := svc.FilterCatalog(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"billing", "visa"}, catalog.IntentOptions)
	require.Len(t, catalog.CSATOptions, 3)
	assert.Nil(t, catalog.CSATOptions[2].Value)
	assert.Equal(t, []string{models.PlaceholderVersion}, catalog.AgentVersionOptions)
	require.Len(t, catalog.OutcomeOptions, 4)
}

func TestFilterCatalog_EmptyIntentsDropped(t *testing.T) {
	repo := &fakeRepo{intents: []string{"billing", "", "visa"}}
	svc := newTestService(repo)

	catalog, err := svc.FilterCatalog(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"billing", "visa"}, catalog.IntentOptions)
}

func TestFilterCatalog_NilIntentsBecomeEmptyList(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	catalog, err := svc.FilterCatalog(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, catalog.IntentOptions)
	assert.Empty(t, catalog.IntentOptions)
}

// stubRemote is an in-memory RemoteCache double
type stubRemote struct {
	data map[string]string
	sets int
}

func (s *stubRemote) Get(ctx context.Context, key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *stubRemote) Set(ctx context.Context, key, value string, ttl time.Duration) {
	s.sets++
	s.data[key] = value
}

func TestFilterCatalog_RemoteCacheRoundTrip(t *testing.T) {
	repo := &fakeRepo{intents: []string{"billing"}}
	remote := &stubRemote{data: map[string]string{}}
	counts := cache.New(time.Minute, time.Minute, 100)
	svc := NewConversationService(repo, counts, remote, Options{})

	first, err := svc.FilterCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, remote.sets)

	// a second call is served from the remote payload
	repo.intents = []string{"changed"}
	second, err := svc.FilterCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.IntentOptions, second.IntentOptions)
	assert.Equal(t, 1, remote.sets)
}

func TestMessageDebug(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	payload := svc.MessageDebug("42")

	assert.Equal(t, models.PlaceholderTraceID, payload["traceId"])
	assert.Nil(t, payload["prompt"])
	assert.Contains(t, payload["langsmithUrl"], models.PlaceholderTraceID)
}
