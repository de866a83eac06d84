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

// ChatService handles chat storage. Participants are a denormalized JSONB
// membership list; containment queries use the GIN index on it.
type ChatService struct {
	db *sqlx.DB
}

// NewChatService creates a new chat service.
func NewChatService(db *sqlx.DB) *ChatService {
	return &ChatService{db: db}
}

type chatRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	Participants types.JSONText `db:"participants"`
	IsEncrypted  bool           `db:"is_encrypted"`
	CreatedBy    string         `db:"created_by"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func chatFromRow(row chatRow) (models.Chat, error) {
	var participants []string
	if len(row.Participants) > 0 {
		if err := json.Unmarshal(row.Participants, &participants); err != nil {
			return models.Chat{}, fmt.Errorf("decode participants: %w", err)
		}
	}
	return models.Chat{
		ID:           row.ID,
		Name:         row.Name,
		Type:         row.Type,
		Participants: participants,
		IsEncrypted:  row.IsEncrypted,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// CreateChat inserts a new chat. Existence of the creator and participants
// is the caller's responsibility and happens before this write, so a failed
// reference check never leaves a partial row.
func (s *ChatService) CreateChat(ctx context.Context, chat models.Chat) error {
	participants, err := json.Marshal(chat.Participants)
	if err != nil {
		return fmt.Errorf("encode participants: %w", err)
	}

	query := `
		INSERT INTO chats (id, name, type, participants, is_encrypted, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(ctx, query,
		chat.ID, chat.Name, chat.Type, participants, chat.IsEncrypted,
		chat.CreatedBy, chat.CreatedAt, chat.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

// GetChat returns one chat by id.
func (s *ChatService) GetChat(ctx context.Context, id string) (models.Chat, error) {
	var row chatRow
	query := `
		SELECT id, name, type, participants, is_encrypted, created_by, created_at, updated_at
		FROM chats WHERE id = $1
	`
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return models.Chat{}, notFoundOr(err, fmt.Errorf("%w: %s", ErrChatNotFound, id), "failed to get chat")
	}
	return chatFromRow(row)
}

// GetUserChats returns the chats whose participant list contains the user,
// most recently updated first.
func (s *ChatService) GetUserChats(ctx context.Context, userID string) ([]models.Chat, error) {
	member, err := json.Marshal([]string{userID})
	if err != nil {
		return nil, fmt.Errorf("encode member filter: %w", err)
	}

	var rows []chatRow
	query := `
		SELECT id, name, type, participants, is_encrypted, created_by, created_at, updated_at
		FROM chats
		WHERE participants @> $1::jsonb
		ORDER BY updated_at DESC
	`
	if err := s.db.SelectContext(ctx, &rows, query, member); err != nil {
		return nil, fmt.Errorf("failed to get user chats: %w", err)
	}

	chats := make([]models.Chat, 0, len(rows))
	for _, row := range rows {
		chat, err := chatFromRow(row)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, nil
}

// TouchChat bumps a chat's updated_at; message and meeting writes use this
// side effect to keep recency ordering honest.
func (s *ChatService) TouchChat(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE chats SET updated_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to touch chat: %w", err)
	}
	return nil
}
