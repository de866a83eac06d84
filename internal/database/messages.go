package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"converse/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

// MessageService handles message storage.
type MessageService struct {
	db *sqlx.DB
}

// NewMessageService creates a new message service.
func NewMessageService(db *sqlx.DB) *MessageService {
	return &MessageService{db: db}
}

type messageRow struct {
	ID          string          `db:"id"`
	ChatID      string          `db:"chat_id"`
	SenderID    string          `db:"sender_id"`
	Content     string          `db:"content"`
	Type        string          `db:"type"`
	Metadata    *types.JSONText `db:"metadata"`
	ReplyTo     *string         `db:"reply_to"`
	IsEdited    bool            `db:"is_edited"`
	IsEncrypted bool            `db:"is_encrypted"`
	CreatedAt   time.Time       `db:"created_at"`
}

func messageFromRow(row messageRow) (models.Message, error) {
	var metadata *models.MessageMetadata
	if row.Metadata != nil && len(*row.Metadata) > 0 {
		metadata = &models.MessageMetadata{}
		if err := json.Unmarshal(*row.Metadata, metadata); err != nil {
			return models.Message{}, fmt.Errorf("decode message metadata: %w", err)
		}
	}
	return models.Message{
		ID:          row.ID,
		ChatID:      row.ChatID,
		SenderID:    row.SenderID,
		Content:     row.Content,
		Type:        row.Type,
		Metadata:    metadata,
		ReplyTo:     row.ReplyTo,
		IsEdited:    row.IsEdited,
		IsEncrypted: row.IsEncrypted,
		CreatedAt:   row.CreatedAt,
	}, nil
}

// CreateMessage inserts a message.
func (s *MessageService) CreateMessage(ctx context.Context, msg models.Message) error {
	var metadata interface{}
	if msg.Metadata != nil {
		encoded, err := json.Marshal(msg.Metadata)
		if err != nil {
			return fmt.Errorf("encode message metadata: %w", err)
		}
		metadata = encoded
	}

	query := `
		INSERT INTO messages (id, chat_id, sender_id, content, type, metadata, reply_to, is_edited, is_encrypted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		msg.ID, msg.ChatID, msg.SenderID, msg.Content, msg.Type,
		metadata, msg.ReplyTo, msg.IsEdited, msg.IsEncrypted, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetMessage returns one message by id.
func (s *MessageService) GetMessage(ctx context.Context, id string) (models.Message, error) {
	var row messageRow
	query := `
		SELECT id, chat_id, sender_id, content, type, metadata, reply_to, is_edited, is_encrypted, created_at
		FROM messages WHERE id = $1
	`
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return models.Message{}, notFoundOr(err, fmt.Errorf("%w: %s", ErrMessageNotFound, id), "failed to get message")
	}
	return messageFromRow(row)
}

// ListMessages returns a page of a chat's messages, newest first. The
// optional before bound is exclusive.
func (s *MessageService) ListMessages(ctx context.Context, chatID string, limit, offset int, before *time.Time) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, chat_id, sender_id, content, type, metadata, reply_to, is_edited, is_encrypted, created_at
		FROM messages
		WHERE chat_id = $1
	`
	args := []interface{}{chatID}
	if before != nil {
		query += ` AND created_at < $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = append(args, *before, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	var rows []messageRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]models.Message, 0, len(rows))
	for _, row := range rows {
		msg, err := messageFromRow(row)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// RecentContents returns the content of the chat's most recent messages,
// newest first, for the analyzers.
func (s *MessageService) RecentContents(ctx context.Context, chatID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	var contents []string
	query := `
		SELECT content FROM messages
		WHERE chat_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	if err := s.db.SelectContext(ctx, &contents, query, chatID, limit); err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}
	return contents, nil
}

// EditMessage replaces a message's content and marks it edited.
func (s *MessageService) EditMessage(ctx context.Context, id, content string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE messages SET content = $1, is_edited = TRUE WHERE id = $2`, content, id)
	if err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("%w: %s", ErrMessageNotFound, id)
	}
	return nil
}
