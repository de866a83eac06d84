package models

import "time"

// HealthResponse represents a basic health check response
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`                 // Health status
	Timestamp time.Time `json:"timestamp" example:"2023-01-01T00:00:00Z"` // Timestamp of the check
	Version   string    `json:"version" example:"1.0.0"`                  // Application version
}

// DBHealthResponse represents a database health check response
// @Description Database health check response
type DBHealthResponse struct {
	Status    string        `json:"status" example:"healthy"`                   // Health status
	Timestamp time.Time     `json:"timestamp" example:"2023-01-01T00:00:00Z"`   // Timestamp of the check
	Connected bool          `json:"connected" example:"true"`                   // Database connection status
	Latency   time.Duration `json:"latency" swaggertype:"string" example:"1ms"` // Database ping latency
	Error     string        `json:"error,omitempty" example:""`                 // Error message if any
}

// ErrorResponse is the uniform error payload returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error" example:"chat not found: 123"`
}

// CreateUserRequest is the signup payload.
type CreateUserRequest struct {
	Email       string       `json:"email"`
	DisplayName string       `json:"display_name"`
	AvatarURL   *string      `json:"avatar_url,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// UpdateUserRequest carries a partial profile update. Preferences fields
// merge into the stored record; omitted fields are preserved.
type UpdateUserRequest struct {
	DisplayName *string            `json:"display_name,omitempty"`
	AvatarURL   *string            `json:"avatar_url,omitempty"`
	Preferences *PreferencesUpdate `json:"preferences,omitempty"`
}

// PreferencesUpdate is the partial-merge form of Preferences.
type PreferencesUpdate struct {
	Language          *string `json:"language,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	AssistanceLevel   *string `json:"assistance_level,omitempty"`
	VoiceEnabled      *bool   `json:"voice_enabled,omitempty"`
	EncryptionEnabled *bool   `json:"encryption_enabled,omitempty"`
}

// CreateChatRequest creates a new chat.
type CreateChatRequest struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Participants []string `json:"participants"`
	CreatedBy    string   `json:"created_by"`
}

// SendMessageRequest posts a message to a chat.
type SendMessageRequest struct {
	SenderID string           `json:"sender_id"`
	Content  string           `json:"content"`
	Type     string           `json:"type,omitempty"`
	Metadata *MessageMetadata `json:"metadata,omitempty"`
	ReplyTo  *string          `json:"reply_to,omitempty"`
}

// EditMessageRequest mutates message content and sets the edited flag.
type EditMessageRequest struct {
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
}

// MessageListResponse is a page of messages, newest first.
type MessageListResponse struct {
	Messages []Message `json:"messages"`
	Limit    int       `json:"limit" example:"50"`
	Offset   int       `json:"offset" example:"0"`
}

// AssistRequest asks the assistant for a suggested reply in a chat.
type AssistRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// AssistResponse is the assistant's heuristic reply.
type AssistResponse struct {
	Response   string   `json:"response"`
	Tone       string   `json:"tone" example:"professional"`
	Topics     []string `json:"topics,omitempty"`
	Confidence float64  `json:"confidence" example:"0.8"`
}

// SummaryRequest asks for a conversation summary of a given type.
type SummaryRequest struct {
	UserID      string `json:"user_id"`
	SummaryType string `json:"summary_type,omitempty"` // brief, detailed or action_items
	Limit       int    `json:"limit,omitempty"`        // how many recent messages to analyze
}

// SummaryResponse is a computed conversation summary.
type SummaryResponse struct {
	Summary     string   `json:"summary"`
	SummaryType string   `json:"summary_type" example:"action_items"`
	Sentiment   string   `json:"sentiment" example:"neutral"`
	Topics      []string `json:"topics,omitempty"`
	KeyPoints   []string `json:"key_points,omitempty"`
	ActionItems []string `json:"action_items,omitempty"`
}

// TranslateRequest asks for a translation of a text.
type TranslateRequest struct {
	UserID       string `json:"user_id"`
	Text         string `json:"text"`
	SourceLang   string `json:"source_lang,omitempty"` // detected when empty
	TargetLang   string `json:"target_lang"`
	PreserveTone bool   `json:"preserve_tone,omitempty"`
}

// TranslateResponse is a translation result, possibly served from cache.
type TranslateResponse struct {
	TranslatedText   string  `json:"translated_text"`
	DetectedLanguage string  `json:"detected_language" example:"en"`
	Confidence       float64 `json:"confidence" example:"0.85"`
	FromCache        bool    `json:"from_cache" example:"false"`
}

// MeetingSuggestionRequest asks whether recent chat activity warrants a meeting.
type MeetingSuggestionRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit,omitempty"` // how many recent messages to analyze
}

// MeetingSuggestion is one proposed meeting slot.
type MeetingSuggestion struct {
	Title      string    `json:"title"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Confidence float64   `json:"confidence" example:"0.7"`
}

// MeetingSuggestionResponse carries zero or more proposed slots.
type MeetingSuggestionResponse struct {
	Suggest     bool                `json:"suggest"`
	TriggerType string              `json:"trigger_type,omitempty" example:"project"`
	Confidence  float64             `json:"confidence" example:"0.75"`
	Suggestions []MeetingSuggestion `json:"suggestions,omitempty"`
}

// CreateMeetingRequest schedules a meeting.
type CreateMeetingRequest struct {
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	OrganizerID  string    `json:"organizer_id"`
	Participants []string  `json:"participants"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Timezone     string    `json:"timezone,omitempty"`
	MeetingURL   *string   `json:"meeting_url,omitempty"`
	ChatID       *string   `json:"chat_id,omitempty"`
	AISuggested  bool      `json:"ai_suggested,omitempty"`
}

// UpdateMeetingRequest carries a partial meeting update. The resulting
// effective start/end pair must still satisfy start < end.
type UpdateMeetingRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Timezone    *string    `json:"timezone,omitempty"`
	MeetingURL  *string    `json:"meeting_url,omitempty"`
	Status      *string    `json:"status,omitempty"`
}
