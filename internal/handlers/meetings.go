package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"converse/internal/analyzer"
	"converse/internal/database"
	"converse/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// suggestedMeetingLength is the slot duration attached to heuristic
// suggestions; actual meetings carry whatever the organizer sets.
const suggestedMeetingLength = 30 * time.Minute

// MeetingSuggestionsHandler classifies recent chat activity against the
// weighted trigger groups and, when the winning confidence clears the
// threshold, proposes up to three time slots. Each suggesting run records a
// meeting_context row.
// @Summary Suggest meetings from chat activity
// @Tags meetings
// @Accept json
// @Produce json
// @Param id path string true "Chat id"
// @Param request body models.MeetingSuggestionRequest true "Suggestion request"
// @Success 200 {object} models.MeetingSuggestionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/chats/{id}/meeting-suggestions [post]
func MeetingSuggestionsHandler(chats *database.ChatService, messages *database.MessageService, contexts *database.ContextService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.MeetingSuggestionRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}
		if strings.TrimSpace(req.UserID) == "" {
			return badRequest(c, "user_id is required")
		}
		limit := req.Limit
		if limit <= 0 {
			limit = 20
		}

		ctx := c.Request().Context()
		chat, err := chats.GetChat(ctx, c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		if !isParticipant(chat.Participants, req.UserID) {
			return forbidden(c, "user %s is not a participant of chat %s", req.UserID, chat.ID)
		}

		recent, err := messages.RecentContents(ctx, chat.ID, limit)
		if err != nil {
			return storeError(c, err)
		}

		trigger := analyzer.ClassifyMeetingTrigger(recent)
		response := models.MeetingSuggestionResponse{
			Suggest:     trigger.Suggest,
			TriggerType: trigger.Type,
			Confidence:  trigger.Confidence,
		}
		if !trigger.Suggest {
			return c.JSON(http.StatusOK, response)
		}

		now := time.Now().UTC()
		for _, slot := range analyzer.SuggestTimes(trigger, now) {
			response.Suggestions = append(response.Suggestions, models.MeetingSuggestion{
				Title:      fmt.Sprintf("Suggested %s meeting", trigger.Type),
				StartTime:  slot.Start,
				EndTime:    slot.Start.Add(suggestedMeetingLength),
				Confidence: slot.Confidence,
			})
		}

		chatID := chat.ID
		triggerType := trigger.Type
		confidence := trigger.Confidence
		record := models.AIContext{
			ID:          uuid.NewString(),
			UserID:      req.UserID,
			ChatID:      &chatID,
			ContextType: models.ContextMeetingContext,
			Content:     fmt.Sprintf("meeting trigger %s in chat %s", trigger.Type, chat.ID),
			Metadata: &models.ContextMetadata{
				TriggerType: &triggerType,
				Confidence:  &confidence,
			},
			RelevanceScore: confidence,
			CreatedAt:      now,
		}
		if err := contexts.CreateContext(ctx, record); err != nil {
			return storeError(c, err)
		}

		return c.JSON(http.StatusOK, response)
	}
}

// CreateMeetingHandler schedules a meeting. The organizer, every participant
// and the optional chat must exist before the row is written; the first
// missing reference aborts the request.
// @Summary Create meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Param meeting body models.CreateMeetingRequest true "Meeting"
// @Success 201 {object} models.Meeting
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/meetings [post]
func CreateMeetingHandler(users *database.UserService, chats *database.ChatService, meetings *database.MeetingService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateMeetingRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}

		if strings.TrimSpace(req.Title) == "" {
			return badRequest(c, "title is required")
		}
		if strings.TrimSpace(req.OrganizerID) == "" {
			return badRequest(c, "organizer_id is required")
		}
		if len(req.Participants) == 0 {
			return badRequest(c, "participants cannot be empty")
		}
		if !req.StartTime.Before(req.EndTime) {
			return badRequest(c, "start_time must be before end_time")
		}
		timezone := req.Timezone
		if timezone == "" {
			timezone = "UTC"
		}

		ctx := c.Request().Context()
		exists, err := users.UserExists(ctx, req.OrganizerID)
		if err != nil {
			return storeError(c, err)
		}
		if !exists {
			return notFound(c, "user not found: %s", req.OrganizerID)
		}
		for _, participant := range req.Participants {
			exists, err := users.UserExists(ctx, participant)
			if err != nil {
				return storeError(c, err)
			}
			if !exists {
				return notFound(c, "user not found: %s", participant)
			}
		}
		if req.ChatID != nil {
			if _, err := chats.GetChat(ctx, *req.ChatID); err != nil {
				return storeError(c, err)
			}
		}

		now := time.Now().UTC()
		meeting := models.Meeting{
			ID:           uuid.NewString(),
			Title:        strings.TrimSpace(req.Title),
			Description:  req.Description,
			OrganizerID:  req.OrganizerID,
			Participants: req.Participants,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Timezone:     timezone,
			MeetingURL:   req.MeetingURL,
			ChatID:       req.ChatID,
			AISuggested:  req.AISuggested,
			Status:       models.MeetingStatusScheduled,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := meetings.CreateMeeting(ctx, meeting); err != nil {
			return storeError(c, err)
		}
		if req.ChatID != nil {
			if err := chats.TouchChat(ctx, *req.ChatID, now); err != nil {
				return storeError(c, err)
			}
		}
		return c.JSON(http.StatusCreated, meeting)
	}
}

// GetMeetingHandler returns a single meeting by id
func GetMeetingHandler(meetings *database.MeetingService) echo.HandlerFunc {
	return func(c echo.Context) error {
		meeting, err := meetings.GetMeeting(c.Request().Context(), c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, meeting)
	}
}

// UpdateMeetingHandler applies a partial update. The start/end invariant is
// checked against the effective values after the merge, so moving only one
// endpoint past the other fails validation.
func UpdateMeetingHandler(meetings *database.MeetingService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.UpdateMeetingRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}
		if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
			return badRequest(c, "title cannot be blank")
		}
		if req.Status != nil && !models.ValidMeetingStatus(*req.Status) {
			return badRequest(c, "Unsupported meeting status: %s", *req.Status)
		}

		ctx := c.Request().Context()
		meeting, err := meetings.GetMeeting(ctx, c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}

		if req.Title != nil {
			meeting.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			meeting.Description = req.Description
		}
		if req.StartTime != nil {
			meeting.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			meeting.EndTime = *req.EndTime
		}
		if req.Timezone != nil {
			meeting.Timezone = *req.Timezone
		}
		if req.MeetingURL != nil {
			meeting.MeetingURL = req.MeetingURL
		}
		if req.Status != nil {
			meeting.Status = *req.Status
		}
		if !meeting.StartTime.Before(meeting.EndTime) {
			return badRequest(c, "start_time must be before end_time")
		}
		meeting.UpdatedAt = time.Now().UTC()

		if err := meetings.UpdateMeeting(ctx, meeting); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, meeting)
	}
}

// ListUserMeetingsHandler lists a user's meetings, soonest first.
func ListUserMeetingsHandler(users *database.UserService, meetings *database.MeetingService) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID := c.Param("id")

		if _, err := users.GetUser(ctx, userID); err != nil {
			return storeError(c, err)
		}
		list, err := meetings.ListUserMeetings(ctx, userID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}
