package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/models"

	"gorm.io/gorm"
)

// ErrConversationNotFound is returned when an identifier matches no row under
// the provenance invariant
var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository is the warehouse read surface for conversations
type ConversationRepository interface {
	Count(ctx context.Context, f Filters) (int64, error)
	List(ctx context.Context, f Filters, limit, offset int) ([]models.ConversationRow, error)
	GetByID(ctx context.Context, id string) (*models.ConversationRow, error)
	MessagesByConversation(ctx context.Context, id string) ([]models.MessageRow, error)
	DistinctIntents(ctx context.Context) ([]string, error)
	Ping() error
	Close() error
}

const conversationColumns = `wc.conversation_id,
		wc.created_at,
		wc.last_message_at,
		wc.status,
		wc.source_details,
		wc.conversation_evaluation,
		wc.tags`

const conversationAggregates = `COUNT(wm.id) AS message_count,
		MAX(wm.created_at) AS last_message_time,
		MAX(CASE WHEN wm.agent_id IS NOT NULL THEN 1 ELSE 0 END) AS has_human_agent`

const conversationGroupBy = `wc.conversation_id, wc.created_at, wc.last_message_at, wc.status,
		wc.source_details, wc.conversation_evaluation, wc.tags`

// WarehouseRepository executes raw parameterized SQL against the conversation
// warehouse through a gorm connection. Retrieval runs in auto-commit; nothing
// here writes.
type WarehouseRepository struct {
	db *gorm.DB
}

// NewWarehouseRepository creates a repository over an open warehouse handle
func NewWarehouseRepository(db *gorm.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

// Count returns the number of conversations matching the filters
func (r *WarehouseRepository) Count(ctx context.Context, f Filters) (int64, error) {
	where, args := f.WhereClause()

	query := fmt.Sprintf(`SELECT COUNT(*) FROM whatsapp_conversations wc WHERE %s`, where)

	var total int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("count conversations: %w", err)
	}
	return total, nil
}

// List returns one page of aggregated conversation rows, newest first. The
// limit and offset are bound after all predicate parameters.
func (r *WarehouseRepository) List(ctx context.Context, f Filters, limit, offset int) ([]models.ConversationRow, error) {
	where, args := f.WhereClause()

	query := fmt.Sprintf(`SELECT
		%s,
		%s
	FROM whatsapp_conversations wc
	LEFT JOIN whatsapp_messages wm ON wc.conversation_id = wm.conversation_id
	WHERE %s
	GROUP BY %s
	ORDER BY wc.created_at DESC
	LIMIT ? OFFSET ?`, conversationColumns, conversationAggregates, where, conversationGroupBy)

	args = append(args, limit, offset)

	var rows []models.ConversationRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return rows, nil
}

// GetByID returns the single aggregated row for id, or ErrConversationNotFound
// when it is absent or hidden by the provenance invariant
func (r *WarehouseRepository) GetByID(ctx context.Context, id string) (*models.ConversationRow, error) {
	conditions := append([]string{"wc.conversation_id = ?"}, provenanceConditions("wc")...)

	query := fmt.Sprintf(`SELECT
		%s,
		%s
	FROM whatsapp_conversations wc
	LEFT JOIN whatsapp_messages wm ON wc.conversation_id = wm.conversation_id
	WHERE %s
	GROUP BY %s`, conversationColumns, conversationAggregates, strings.Join(conditions, " AND "), conversationGroupBy)

	var rows []models.ConversationRow
	if err := r.db.WithContext(ctx).Raw(query, id).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrConversationNotFound
	}
	return &rows[0], nil
}

// MessagesByConversation returns the chronological transcript for one
// conversation, re-asserting the provenance invariant through the join
func (r *WarehouseRepository) MessagesByConversation(ctx context.Context, id string) ([]models.MessageRow, error) {
	conditions := append([]string{"wm.conversation_id = ?"}, provenanceConditions("wc")...)

	query := fmt.Sprintf(`SELECT
		wm.id,
		wm.conversation_id,
		wm.message_content,
		wm.created_at,
		wm.message_type,
		wm.direction,
		wm.agent_id
	FROM whatsapp_messages wm
	INNER JOIN whatsapp_conversations wc ON wm.conversation_id = wc.conversation_id
	WHERE %s
	ORDER BY wm.created_at ASC`, strings.Join(conditions, " AND "))

	var rows []models.MessageRow
	if err := r.db.WithContext(ctx).Raw(query, id).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return rows, nil
}

// DistinctIntents returns the sorted set of non-null detected intents across
// visible conversations
func (r *WarehouseRepository) DistinctIntents(ctx context.Context) ([]string, error) {
	conditions := append(
		[]string{"conversation_evaluation->'theme'->>'main_theme' IS NOT NULL"},
		provenanceConditions("")...,
	)

	query := fmt.Sprintf(`SELECT DISTINCT conversation_evaluation->'theme'->>'main_theme' AS intent
	FROM whatsapp_conversations
	WHERE %s
	ORDER BY intent`, strings.Join(conditions, " AND "))

	var intents []string
	if err := r.db.WithContext(ctx).Raw(query).Scan(&intents).Error; err != nil {
		return nil, fmt.Errorf("list intents: %w", err)
	}
	return intents, nil
}

// Ping verifies warehouse connectivity
func (r *WarehouseRepository) Ping() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the underlying connection pool
func (r *WarehouseRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
