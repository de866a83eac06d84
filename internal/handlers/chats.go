package handlers

import (
	"net/http"
	"strings"
	"time"

	"converse/internal/database"
	"converse/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CreateChatHandler creates a chat. The creator and every listed participant
// must exist before the row is written; the first missing reference aborts
// the request, so a failed check never leaves a partial write.
// @Summary Create chat
// @Tags chats
// @Accept json
// @Produce json
// @Param chat body models.CreateChatRequest true "Chat"
// @Success 201 {object} models.Chat
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/chats [post]
func CreateChatHandler(users *database.UserService, chats *database.ChatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateChatRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}

		if strings.TrimSpace(req.Name) == "" {
			return badRequest(c, "name is required")
		}
		chatType := req.Type
		if chatType == "" {
			chatType = models.ChatTypeGroup
		}
		if !models.ValidChatType(chatType) {
			return badRequest(c, "Unsupported chat type: %s", chatType)
		}
		if strings.TrimSpace(req.CreatedBy) == "" {
			return badRequest(c, "created_by is required")
		}
		if len(req.Participants) == 0 {
			return badRequest(c, "participants cannot be empty")
		}

		ctx := c.Request().Context()
		exists, err := users.UserExists(ctx, req.CreatedBy)
		if err != nil {
			return storeError(c, err)
		}
		if !exists {
			return notFound(c, "user not found: %s", req.CreatedBy)
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

		now := time.Now().UTC()
		chat := models.Chat{
			ID:           uuid.NewString(),
			Name:         strings.TrimSpace(req.Name),
			Type:         chatType,
			Participants: req.Participants,
			IsEncrypted:  true,
			CreatedBy:    req.CreatedBy,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := chats.CreateChat(ctx, chat); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, chat)
	}
}

// GetChatHandler returns a single chat by id
// @Summary Get chat
// @Tags chats
// @Produce json
// @Param id path string true "Chat id"
// @Success 200 {object} models.Chat
// @Failure 404 {object} models.ErrorResponse
// @Router /api/chats/{id} [get]
func GetChatHandler(chats *database.ChatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		chat, err := chats.GetChat(c.Request().Context(), c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, chat)
	}
}

// GetUserChatsHandler lists the chats a user participates in, most recently
// updated first.
func GetUserChatsHandler(users *database.UserService, chats *database.ChatService) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID := c.Param("id")

		if _, err := users.GetUser(ctx, userID); err != nil {
			return storeError(c, err)
		}
		list, err := chats.GetUserChats(ctx, userID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}
