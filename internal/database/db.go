package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// New creates a new PostgreSQL connection pool.
func New(databaseURL string) (*sqlx.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// CreateTables creates the application schema if it does not exist yet.
// Order matters: referenced tables first.
func CreateTables(db *sqlx.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			display_name VARCHAR(255) NOT NULL,
			avatar_url TEXT,
			preferences JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS chats (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(32) NOT NULL,
			participants JSONB NOT NULL DEFAULT '[]',
			is_encrypted BOOLEAN NOT NULL DEFAULT TRUE,
			created_by UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chats_participants ON chats USING GIN (participants)`,
		`CREATE INDEX IF NOT EXISTS idx_chats_updated_at ON chats(updated_at DESC)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id UUID PRIMARY KEY,
			chat_id UUID NOT NULL REFERENCES chats(id),
			sender_id UUID NOT NULL REFERENCES users(id),
			content TEXT NOT NULL,
			type VARCHAR(32) NOT NULL DEFAULT 'text',
			metadata JSONB,
			reply_to UUID REFERENCES messages(id),
			is_edited BOOLEAN NOT NULL DEFAULT FALSE,
			is_encrypted BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_chat_id ON messages(chat_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS ai_contexts (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			chat_id UUID REFERENCES chats(id),
			context_type VARCHAR(64) NOT NULL,
			content TEXT NOT NULL,
			metadata JSONB,
			embedding JSONB,
			relevance_score DOUBLE PRECISION NOT NULL DEFAULT 1.0,
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ai_contexts_lookup ON ai_contexts(user_id, context_type, content)`,
		`CREATE TABLE IF NOT EXISTS meetings (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			organizer_id UUID NOT NULL REFERENCES users(id),
			participants JSONB NOT NULL DEFAULT '[]',
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			timezone VARCHAR(64) NOT NULL DEFAULT 'UTC',
			meeting_url TEXT,
			chat_id UUID REFERENCES chats(id),
			ai_suggested BOOLEAN NOT NULL DEFAULT FALSE,
			status VARCHAR(32) NOT NULL DEFAULT 'scheduled',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_meetings_participants ON meetings USING GIN (participants)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}
