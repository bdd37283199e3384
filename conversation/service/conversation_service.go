package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/models"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/repository"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/cache"
	apperrors "github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/errors"
)

const (
	// DefaultPageSize matches the dashboard's default page length
	DefaultPageSize = 50

	filterCatalogKey = "filters:catalog"
)

// RemoteCache is the optional shared cache used for the filter catalog
type RemoteCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// Options tunes the service caches
type Options struct {
	CountTTL  time.Duration
	FilterTTL time.Duration
}

// ConversationService orchestrates conversation retrieval: predicate-driven
// queries, view-model mapping and count/catalog caching.
type ConversationService struct {
	repo   repository.ConversationRepository
	counts *cache.Cache
	remote RemoteCache
	opts   Options
}

// NewConversationService creates the service. counts may not be nil; remote
// may be nil when Redis is not configured.
func NewConversationService(repo repository.ConversationRepository, counts *cache.Cache, remote RemoteCache, opts Options) *ConversationService {
	if opts.CountTTL == 0 {
		opts.CountTTL = time.Minute
	}
	if opts.FilterTTL == 0 {
		opts.FilterTTL = 5 * time.Minute
	}
	return &ConversationService{
		repo:   repo,
		counts: counts,
		remote: remote,
		opts:   opts,
	}
}

// List returns one page of conversations matching the filters, newest first,
// along with pagination metadata
func (s *ConversationService) List(ctx context.Context, f repository.Filters, page, pageSize int) (*models.ConversationPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := s.countWithCache(ctx, f)
	if err != nil {
		return nil, apperrors.NewQueryError(err)
	}

	offset := (page - 1) * pageSize
	rows, err := s.repo.List(ctx, f, pageSize, offset)
	if err != nil {
		return nil, apperrors.NewQueryError(err)
	}

	conversations := make([]models.ConversationView, 0, len(rows))
	for i := range rows {
		conversations = append(conversations, BuildConversationView(&rows[i], true))
	}

	return &models.ConversationPage{
		Conversations: conversations,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// countWithCache serves the filtered total from the short-lived count cache
// when possible. The key is the canonical JSON of the filters.
func (s *ConversationService) countWithCache(ctx context.Context, f repository.Filters) (int64, error) {
	keyBytes, err := json.Marshal(f)
	if err != nil {
		return 0, err
	}
	key := "count:" + string(keyBytes)

	if cached, ok := s.counts.Get(key); ok {
		if total, ok := cached.(int64); ok {
			return total, nil
		}
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return 0, err
	}
	s.counts.SetWithExpiration(key, total, s.opts.CountTTL)
	return total, nil
}

// Get returns one conversation by identifier, optionally with its transcript.
// Identifiers hidden by the provenance invariant are reported as not found.
func (s *ConversationService) Get(ctx context.Context, id string, includeMessages bool) (*models.ConversationView, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			return nil, apperrors.NewNotFoundError("CONVERSATION_NOT_FOUND", "Conversation not found")
		}
		return nil, apperrors.NewQueryError(err)
	}

	view := BuildConversationView(row, false)
	view.EndTime = row.LastMessageTime

	if includeMessages {
		messageRows, err := s.repo.MessagesByConversation(ctx, id)
		if err != nil {
			return nil, apperrors.NewQueryError(err)
		}
		messages := make([]models.MessageView, 0, len(messageRows))
		for _, m := range messageRows {
			messages = append(messages, BuildMessageView(m))
		}
		view.Messages = messages
	}

	return &view, nil
}

// FilterCatalog returns the dashboard filter options. The static lists are
// fixed; the intent list is the distinct set currently in the warehouse. The
// assembled catalog is cached remotely when Redis is configured.
func (s *ConversationService) FilterCatalog(ctx context.Context) (*models.FilterCatalog, error) {
	if s.remote != nil {
		if cached, ok := s.remote.Get(ctx, filterCatalogKey); ok {
			var catalog models.FilterCatalog
			if err := json.Unmarshal([]byte(cached), &catalog); err == nil {
				return &catalog, nil
			}
		}
	}

	rawIntents, err := s.repo.DistinctIntents(ctx)
	if err != nil {
		return nil, apperrors.NewQueryError(err)
	}
	// the warehouse query excludes NULL themes; empty strings are dropped here
	intents := make([]string, 0, len(rawIntents))
	for _, intent := range rawIntents {
		if intent != "" {
			intents = append(intents, intent)
		}
	}

	catalog := &models.FilterCatalog{
		CSATOptions: []models.FilterOption{
			{Value: models.CSATGood, Label: "Good"},
			{Value: models.CSATBad, Label: "Bad"},
			{Value: nil, Label: "No Rating"},
		},
		IntentOptions: intents,
		ChannelOptions: []models.FilterOption{
			{Value: models.ChannelWebsite, Label: "Website"},
			{Value: models.ChannelWhatsApp, Label: "WhatsApp"},
		},
		AgentVersionOptions:  []string{models.PlaceholderVersion},
		PromptVersionOptions: []string{models.PlaceholderVersion},
		KBVersionOptions:     []string{models.PlaceholderVersion},
		OutcomeOptions: []models.FilterOption{
			{Value: models.OutcomeQualified, Label: "Qualified"},
			{Value: models.OutcomeDropped, Label: "Dropped"},
			{Value: models.OutcomeEscalated, Label: "Escalated"},
			{Value: models.OutcomeOngoing, Label: "Ongoing"},
		},
	}

	if s.remote != nil {
		if payload, err := json.Marshal(catalog); err == nil {
			s.remote.Set(ctx, filterCatalogKey, string(payload), s.opts.FilterTTL)
		}
	}

	return catalog, nil
}

// MessageDebug returns the fixed placeholder diagnostic payload for a message.
// The deep-observability integration behind it is not implemented; the
// payload marks the stub rather than fabricating data.
func (s *ConversationService) MessageDebug(messageID string) map[string]any {
	return map[string]any{
		"traceId":      models.PlaceholderTraceID,
		"prompt":       nil,
		"ragContext":   nil,
		"modelOutput":  nil,
		"toolCalls":    nil,
		"latency":      nil,
		"langsmithUrl": fmt.Sprintf("https://smith.langchain.com/o/demo/projects/p/demo/r/%s", models.PlaceholderTraceID),
	}
}
