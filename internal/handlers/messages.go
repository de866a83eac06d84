package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"converse/internal/config"
	"converse/internal/database"
	"converse/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SendMessageHandler posts a message to a chat. The sender must be a
// participant and a reply target must belong to the same chat. Each message
// bumps the chat's updated_at so recency ordering stays correct.
// @Summary Send message
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Chat id"
// @Param message body models.SendMessageRequest true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/chats/{id}/messages [post]
func SendMessageHandler(cfg *config.Config, chats *database.ChatService, messages *database.MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.SendMessageRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}

		if strings.TrimSpace(req.SenderID) == "" {
			return badRequest(c, "sender_id is required")
		}
		if strings.TrimSpace(req.Content) == "" {
			return badRequest(c, "content is required")
		}
		if len(req.Content) > cfg.MaxMessageLength {
			return badRequest(c, "content exceeds maximum length of %d", cfg.MaxMessageLength)
		}
		msgType := req.Type
		if msgType == "" {
			msgType = models.MessageTypeText
		}
		if !models.ValidMessageType(msgType) {
			return badRequest(c, "Unsupported message type: %s", msgType)
		}

		ctx := c.Request().Context()
		chat, err := chats.GetChat(ctx, c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		if !isParticipant(chat.Participants, req.SenderID) {
			return forbidden(c, "user %s is not a participant of chat %s", req.SenderID, chat.ID)
		}

		if req.ReplyTo != nil {
			target, err := messages.GetMessage(ctx, *req.ReplyTo)
			if err != nil {
				return storeError(c, err)
			}
			if target.ChatID != chat.ID {
				return badRequest(c, "reply_to message %s belongs to a different chat", target.ID)
			}
		}

		now := time.Now().UTC()
		msg := models.Message{
			ID:          uuid.NewString(),
			ChatID:      chat.ID,
			SenderID:    req.SenderID,
			Content:     req.Content,
			Type:        msgType,
			Metadata:    req.Metadata,
			ReplyTo:     req.ReplyTo,
			IsEncrypted: chat.IsEncrypted,
			CreatedAt:   now,
		}
		if err := messages.CreateMessage(ctx, msg); err != nil {
			return storeError(c, err)
		}
		if err := chats.TouchChat(ctx, chat.ID, now); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, msg)
	}
}

// ListMessagesHandler returns a page of a chat's messages, newest first.
// Query params: user_id (required, must be a participant), limit, offset and
// an optional RFC 3339 `before` exclusive upper bound.
func ListMessagesHandler(chats *database.ChatService, messages *database.MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.QueryParam("user_id")
		if userID == "" {
			return badRequest(c, "user_id query parameter is required")
		}

		limit := 50
		if raw := c.QueryParam("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return badRequest(c, "Invalid limit: %s", raw)
			}
			limit = parsed
		}
		offset := 0
		if raw := c.QueryParam("offset"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				return badRequest(c, "Invalid offset: %s", raw)
			}
			offset = parsed
		}
		var before *time.Time
		if raw := c.QueryParam("before"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return badRequest(c, "Invalid before timestamp: %s", raw)
			}
			before = &parsed
		}

		ctx := c.Request().Context()
		chat, err := chats.GetChat(ctx, c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		if !isParticipant(chat.Participants, userID) {
			return forbidden(c, "user %s is not a participant of chat %s", userID, chat.ID)
		}

		list, err := messages.ListMessages(ctx, chat.ID, limit, offset, before)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, models.MessageListResponse{
			Messages: list,
			Limit:    limit,
			Offset:   offset,
		})
	}
}

// EditMessageHandler replaces a message's content. Only the original sender
// may edit; the edited flag is set permanently.
func EditMessageHandler(cfg *config.Config, messages *database.MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.EditMessageRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}
		if strings.TrimSpace(req.Content) == "" {
			return badRequest(c, "content is required")
		}
		if len(req.Content) > cfg.MaxMessageLength {
			return badRequest(c, "content exceeds maximum length of %d", cfg.MaxMessageLength)
		}

		ctx := c.Request().Context()
		msg, err := messages.GetMessage(ctx, c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		if msg.SenderID != req.SenderID {
			return forbidden(c, "only the sender can edit message %s", msg.ID)
		}

		if err := messages.EditMessage(ctx, msg.ID, req.Content); err != nil {
			return storeError(c, err)
		}
		msg.Content = req.Content
		msg.IsEdited = true
		return c.JSON(http.StatusOK, msg)
	}
}
