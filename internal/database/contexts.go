package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"converse/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

// ContextService handles AI context rows: conversation summaries, cached
// translations and meeting-suggestion provenance. Rows past their expiry
// are filtered at read time, never deleted.
type ContextService struct {
	db *sqlx.DB
}

// NewContextService creates a new context service.
func NewContextService(db *sqlx.DB) *ContextService {
	return &ContextService{db: db}
}

type contextRow struct {
	ID             string          `db:"id"`
	UserID         string          `db:"user_id"`
	ChatID         *string         `db:"chat_id"`
	ContextType    string          `db:"context_type"`
	Content        string          `db:"content"`
	Metadata       *types.JSONText `db:"metadata"`
	Embedding      *types.JSONText `db:"embedding"`
	RelevanceScore float64         `db:"relevance_score"`
	ExpiresAt      *time.Time      `db:"expires_at"`
	CreatedAt      time.Time       `db:"created_at"`
}

func contextFromRow(row contextRow) (models.AIContext, error) {
	var metadata *models.ContextMetadata
	if row.Metadata != nil && len(*row.Metadata) > 0 {
		metadata = &models.ContextMetadata{}
		if err := json.Unmarshal(*row.Metadata, metadata); err != nil {
			return models.AIContext{}, fmt.Errorf("decode context metadata: %w", err)
		}
	}
	var embedding []float64
	if row.Embedding != nil && len(*row.Embedding) > 0 {
		if err := json.Unmarshal(*row.Embedding, &embedding); err != nil {
			return models.AIContext{}, fmt.Errorf("decode embedding: %w", err)
		}
	}
	return models.AIContext{
		ID:             row.ID,
		UserID:         row.UserID,
		ChatID:         row.ChatID,
		ContextType:    row.ContextType,
		Content:        row.Content,
		Metadata:       metadata,
		Embedding:      embedding,
		RelevanceScore: row.RelevanceScore,
		ExpiresAt:      row.ExpiresAt,
		CreatedAt:      row.CreatedAt,
	}, nil
}

// CreateContext inserts a context row. Rows are write-once; producers never
// update them in place.
func (s *ContextService) CreateContext(ctx context.Context, record models.AIContext) error {
	var metadata interface{}
	if record.Metadata != nil {
		encoded, err := json.Marshal(record.Metadata)
		if err != nil {
			return fmt.Errorf("encode context metadata: %w", err)
		}
		metadata = encoded
	}
	var embedding interface{}
	if record.Embedding != nil {
		encoded, err := json.Marshal(record.Embedding)
		if err != nil {
			return fmt.Errorf("encode embedding: %w", err)
		}
		embedding = encoded
	}

	query := `
		INSERT INTO ai_contexts (id, user_id, chat_id, context_type, content, metadata, embedding, relevance_score, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.ChatID, record.ContextType, record.Content,
		metadata, embedding, record.RelevanceScore, record.ExpiresAt, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create context: %w", err)
	}
	return nil
}

// GetActiveContexts returns a user's unexpired context rows of one type for
// a chat, highest relevance first.
func (s *ContextService) GetActiveContexts(ctx context.Context, userID, chatID, contextType string, limit int) ([]models.AIContext, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []contextRow
	query := `
		SELECT id, user_id, chat_id, context_type, content, metadata, embedding, relevance_score, expires_at, created_at
		FROM ai_contexts
		WHERE user_id = $1 AND chat_id = $2 AND context_type = $3
		  AND (expires_at IS NULL OR expires_at > $4)
		ORDER BY relevance_score DESC, created_at DESC
		LIMIT $5
	`
	if err := s.db.SelectContext(ctx, &rows, query, userID, chatID, contextType, time.Now().UTC(), limit); err != nil {
		return nil, fmt.Errorf("failed to get contexts: %w", err)
	}

	records := make([]models.AIContext, 0, len(rows))
	for _, row := range rows {
		record, err := contextFromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// CountActiveContexts counts a user's unexpired context rows for a chat
// across all types. The completion confidence heuristic scales on this.
func (s *ContextService) CountActiveContexts(ctx context.Context, userID, chatID string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM ai_contexts
		WHERE user_id = $1 AND chat_id = $2
		  AND (expires_at IS NULL OR expires_at > $3)
	`
	if err := s.db.GetContext(ctx, &count, query, userID, chatID, time.Now().UTC()); err != nil {
		return 0, fmt.Errorf("failed to count contexts: %w", err)
	}
	return count, nil
}

// LookupTranslation finds an unexpired translation_cache row for the user
// whose content equals the derived cache key.
func (s *ContextService) LookupTranslation(ctx context.Context, userID, cacheKey string) (models.AIContext, bool, error) {
	var row contextRow
	query := `
		SELECT id, user_id, chat_id, context_type, content, metadata, embedding, relevance_score, expires_at, created_at
		FROM ai_contexts
		WHERE user_id = $1 AND context_type = $2 AND content = $3
		  AND (expires_at IS NULL OR expires_at > $4)
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := s.db.GetContext(ctx, &row, query, userID, models.ContextTranslationCache, cacheKey, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AIContext{}, false, nil
		}
		return models.AIContext{}, false, fmt.Errorf("failed to look up translation cache: %w", err)
	}

	record, err := contextFromRow(row)
	if err != nil {
		return models.AIContext{}, false, err
	}
	return record, true, nil
}
