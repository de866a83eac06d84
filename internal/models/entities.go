package models

import "time"

// User assistance levels
const (
	AssistanceMinimal   = "minimal"
	AssistanceModerate  = "moderate"
	AssistanceProactive = "proactive"
)

// Chat types
const (
	ChatTypeDirect      = "direct"
	ChatTypeGroup       = "group"
	ChatTypeAIAssistant = "ai_assistant"
)

// Message types
const (
	MessageTypeText         = "text"
	MessageTypeVoice        = "voice"
	MessageTypeImage        = "image"
	MessageTypeFile         = "file"
	MessageTypeAISuggestion = "ai_suggestion"
)

// AI context types
const (
	ContextConversationSummary = "conversation_summary"
	ContextUserPreference      = "user_preference"
	ContextMeetingContext      = "meeting_context"
	ContextTranslationCache    = "translation_cache"
)

// Meeting statuses
const (
	MeetingStatusScheduled  = "scheduled"
	MeetingStatusInProgress = "in_progress"
	MeetingStatusCompleted  = "completed"
	MeetingStatusCancelled  = "cancelled"
)

// Preferences holds per-user assistant settings. Unset fields are preserved
// on update (partial merge), never reset.
type Preferences struct {
	Language          string `json:"language" example:"en"`
	Timezone          string `json:"timezone" example:"UTC"`
	AssistanceLevel   string `json:"assistance_level" example:"moderate"`
	VoiceEnabled      bool   `json:"voice_enabled" example:"false"`
	EncryptionEnabled bool   `json:"encryption_enabled" example:"true"`
}

// DefaultPreferences returns the preferences assigned at signup.
func DefaultPreferences() Preferences {
	return Preferences{
		Language:          "en",
		Timezone:          "UTC",
		AssistanceLevel:   AssistanceModerate,
		VoiceEnabled:      false,
		EncryptionEnabled: true,
	}
}

// User represents a registered account.
type User struct {
	ID          string      `json:"id" example:"8a6f1f4e-1b2c-4d5e-9f0a-b1c2d3e4f5a6"`
	Email       string      `json:"email" example:"ada@example.com"`
	DisplayName string      `json:"display_name" example:"Ada"`
	AvatarURL   *string     `json:"avatar_url,omitempty"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Chat represents a conversation between a set of participants.
// Participants is a denormalized membership list; the membership test is
// unordered containment.
type Chat struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" example:"Project planning"`
	Type         string    `json:"type" example:"group"`
	Participants []string  `json:"participants"`
	IsEncrypted  bool      `json:"is_encrypted" example:"true"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MessageMetadata carries per-type optional fields for a message.
type MessageMetadata struct {
	VoiceDuration  *float64 `json:"voice_duration,omitempty"`
	ImageWidth     *int     `json:"image_width,omitempty"`
	ImageHeight    *int     `json:"image_height,omitempty"`
	FileSize       *int64   `json:"file_size,omitempty"`
	FileName       *string  `json:"file_name,omitempty"`
	AITone         *string  `json:"ai_tone,omitempty"`
	AIConfidence   *float64 `json:"ai_confidence,omitempty"`
	TranslatedFrom *string  `json:"translated_from,omitempty"`
}

// Message represents a single message in a chat.
type Message struct {
	ID          string           `json:"id"`
	ChatID      string           `json:"chat_id"`
	SenderID    string           `json:"sender_id"`
	Content     string           `json:"content"`
	Type        string           `json:"type" example:"text"`
	Metadata    *MessageMetadata `json:"metadata,omitempty"`
	ReplyTo     *string          `json:"reply_to,omitempty"`
	IsEdited    bool             `json:"is_edited"`
	IsEncrypted bool             `json:"is_encrypted"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ContextMetadata is the flexible payload carried by an AI context row.
// Translation cache rows store the translated text and detected source
// language here; summary and meeting rows store provenance details.
type ContextMetadata struct {
	TranslatedText   *string  `json:"translated_text,omitempty"`
	DetectedLanguage *string  `json:"detected_language,omitempty"`
	SourceLanguage   *string  `json:"source_language,omitempty"`
	TargetLanguage   *string  `json:"target_language,omitempty"`
	SummaryType      *string  `json:"summary_type,omitempty"`
	TriggerType      *string  `json:"trigger_type,omitempty"`
	Confidence       *float64 `json:"confidence,omitempty"`
}

// AIContext is a generic annotation/cache row keyed by user (and optionally
// chat). For translation_cache rows Content is the derived cache key. Rows
// past ExpiresAt are excluded at read time, not deleted.
type AIContext struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	ChatID         *string          `json:"chat_id,omitempty"`
	ContextType    string           `json:"context_type" example:"conversation_summary"`
	Content        string           `json:"content"`
	Metadata       *ContextMetadata `json:"metadata,omitempty"`
	Embedding      []float64        `json:"embedding,omitempty"`
	RelevanceScore float64          `json:"relevance_score" example:"1.0"`
	ExpiresAt      *time.Time       `json:"expires_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Meeting represents a scheduled meeting, possibly suggested by the
// assistant. Status transitions are unconstrained beyond the enum.
type Meeting struct {
	ID           string    `json:"id"`
	Title        string    `json:"title" example:"Sprint review"`
	Description  *string   `json:"description,omitempty"`
	OrganizerID  string    `json:"organizer_id"`
	Participants []string  `json:"participants"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Timezone     string    `json:"timezone" example:"UTC"`
	MeetingURL   *string   `json:"meeting_url,omitempty"`
	ChatID       *string   `json:"chat_id,omitempty"`
	AISuggested  bool      `json:"ai_suggested"`
	Status       string    `json:"status" example:"scheduled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidChatType reports whether t is a supported chat type.
func ValidChatType(t string) bool {
	switch t {
	case ChatTypeDirect, ChatTypeGroup, ChatTypeAIAssistant:
		return true
	}
	return false
}

// ValidMessageType reports whether t is a supported message type.
func ValidMessageType(t string) bool {
	switch t {
	case MessageTypeText, MessageTypeVoice, MessageTypeImage, MessageTypeFile, MessageTypeAISuggestion:
		return true
	}
	return false
}

// ValidMeetingStatus reports whether s is a supported meeting status.
func ValidMeetingStatus(s string) bool {
	switch s {
	case MeetingStatusScheduled, MeetingStatusInProgress, MeetingStatusCompleted, MeetingStatusCancelled:
		return true
	}
	return false
}

// ValidAssistanceLevel reports whether l is a supported assistance level.
func ValidAssistanceLevel(l string) bool {
	switch l {
	case AssistanceMinimal, AssistanceModerate, AssistanceProactive:
		return true
	}
	return false
}
