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

// MeetingService handles meeting storage.
type MeetingService struct {
	db *sqlx.DB
}

// NewMeetingService creates a new meeting service.
func NewMeetingService(db *sqlx.DB) *MeetingService {
	return &MeetingService{db: db}
}

type meetingRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  *string        `db:"description"`
	OrganizerID  string         `db:"organizer_id"`
	Participants types.JSONText `db:"participants"`
	StartTime    time.Time      `db:"start_time"`
	EndTime      time.Time      `db:"end_time"`
	Timezone     string         `db:"timezone"`
	MeetingURL   *string        `db:"meeting_url"`
	ChatID       *string        `db:"chat_id"`
	AISuggested  bool           `db:"ai_suggested"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func meetingFromRow(row meetingRow) (models.Meeting, error) {
	var participants []string
	if len(row.Participants) > 0 {
		if err := json.Unmarshal(row.Participants, &participants); err != nil {
			return models.Meeting{}, fmt.Errorf("decode participants: %w", err)
		}
	}
	return models.Meeting{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		OrganizerID:  row.OrganizerID,
		Participants: participants,
		StartTime:    row.StartTime,
		EndTime:      row.EndTime,
		Timezone:     row.Timezone,
		MeetingURL:   row.MeetingURL,
		ChatID:       row.ChatID,
		AISuggested:  row.AISuggested,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// CreateMeeting inserts a meeting. Reference existence checks happen in the
// handler before this write.
func (s *MeetingService) CreateMeeting(ctx context.Context, meeting models.Meeting) error {
	participants, err := json.Marshal(meeting.Participants)
	if err != nil {
		return fmt.Errorf("encode participants: %w", err)
	}

	query := `
		INSERT INTO meetings (id, title, description, organizer_id, participants, start_time, end_time,
			timezone, meeting_url, chat_id, ai_suggested, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = s.db.ExecContext(ctx, query,
		meeting.ID, meeting.Title, meeting.Description, meeting.OrganizerID, participants,
		meeting.StartTime, meeting.EndTime, meeting.Timezone, meeting.MeetingURL,
		meeting.ChatID, meeting.AISuggested, meeting.Status, meeting.CreatedAt, meeting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// GetMeeting returns one meeting by id.
func (s *MeetingService) GetMeeting(ctx context.Context, id string) (models.Meeting, error) {
	var row meetingRow
	query := `
		SELECT id, title, description, organizer_id, participants, start_time, end_time,
			timezone, meeting_url, chat_id, ai_suggested, status, created_at, updated_at
		FROM meetings WHERE id = $1
	`
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return models.Meeting{}, notFoundOr(err, fmt.Errorf("%w: %s", ErrMeetingNotFound, id), "failed to get meeting")
	}
	return meetingFromRow(row)
}

// UpdateMeeting persists an already-validated meeting record. The handler
// loads the current row, applies the partial update and re-checks the
// start/end invariant on the effective values before calling this.
func (s *MeetingService) UpdateMeeting(ctx context.Context, meeting models.Meeting) error {
	query := `
		UPDATE meetings
		SET title = $1, description = $2, start_time = $3, end_time = $4,
			timezone = $5, meeting_url = $6, status = $7, updated_at = $8
		WHERE id = $9
	`
	res, err := s.db.ExecContext(ctx, query,
		meeting.Title, meeting.Description, meeting.StartTime, meeting.EndTime,
		meeting.Timezone, meeting.MeetingURL, meeting.Status, meeting.UpdatedAt, meeting.ID)
	if err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("%w: %s", ErrMeetingNotFound, meeting.ID)
	}
	return nil
}

// ListUserMeetings returns meetings the user organizes or participates in,
// soonest first.
func (s *MeetingService) ListUserMeetings(ctx context.Context, userID string) ([]models.Meeting, error) {
	member, err := json.Marshal([]string{userID})
	if err != nil {
		return nil, fmt.Errorf("encode member filter: %w", err)
	}

	var rows []meetingRow
	query := `
		SELECT id, title, description, organizer_id, participants, start_time, end_time,
			timezone, meeting_url, chat_id, ai_suggested, status, created_at, updated_at
		FROM meetings
		WHERE organizer_id = $1 OR participants @> $2::jsonb
		ORDER BY start_time ASC
	`
	if err := s.db.SelectContext(ctx, &rows, query, userID, member); err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	meetings := make([]models.Meeting, 0, len(rows))
	for _, row := range rows {
		meeting, err := meetingFromRow(row)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	return meetings, nil
}
