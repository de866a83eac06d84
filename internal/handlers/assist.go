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

// Reply templates keyed by detected tone. The topic list, when present, is
// appended as a focus hint.
var toneReplies = map[string]string{
	"professional": "Understood. I will review this and follow up with the details shortly.",
	"casual":       "Sounds good! I'll take a look and get back to you.",
	"empathetic":   "I hear you. Let's take this one step at a time and work it out together.",
	"concise":      "Noted. Will do.",
	"detailed":     "Thanks for the context. I'll go through each point and put together a thorough response covering everything you raised.",
}

// AssistHandler produces a suggested reply for a chat using the heuristic
// analyzers: tone and topics select a template, and the confidence scales
// with message length, recent activity and stored context. Topic extraction
// also reads the user's unexpired summary rows, so earlier assists keep
// steering the focus hint. Each call records a conversation_summary context
// row for later retrieval.
// @Summary Suggest a reply
// @Tags assist
// @Accept json
// @Produce json
// @Param id path string true "Chat id"
// @Param request body models.AssistRequest true "Assist request"
// @Success 200 {object} models.AssistResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/chats/{id}/assist [post]
func AssistHandler(chats *database.ChatService, messages *database.MessageService, contexts *database.ContextService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.AssistRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}
		if strings.TrimSpace(req.UserID) == "" {
			return badRequest(c, "user_id is required")
		}
		if strings.TrimSpace(req.Message) == "" {
			return badRequest(c, "message is required")
		}

		ctx := c.Request().Context()
		chat, err := chats.GetChat(ctx, c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		if !isParticipant(chat.Participants, req.UserID) {
			return forbidden(c, "user %s is not a participant of chat %s", req.UserID, chat.ID)
		}

		recent, err := messages.RecentContents(ctx, chat.ID, 20)
		if err != nil {
			return storeError(c, err)
		}
		contextCount, err := contexts.CountActiveContexts(ctx, req.UserID, chat.ID)
		if err != nil {
			return storeError(c, err)
		}
		prior, err := contexts.GetActiveContexts(ctx, req.UserID, chat.ID, models.ContextConversationSummary, 3)
		if err != nil {
			return storeError(c, err)
		}

		corpus := append(append([]string{}, recent...), req.Message)
		for _, p := range prior {
			corpus = append(corpus, p.Content)
		}

		tone := analyzer.DetectTone(req.Message)
		topics := analyzer.ExtractTopics(corpus)
		confidence := analyzer.CompletionConfidence(req.Message, len(recent), contextCount)

		response := toneReplies[tone]
		if response == "" {
			response = toneReplies["professional"]
		}
		if len(topics) > 0 {
			response += fmt.Sprintf(" We can focus on %s.", strings.Join(topics, ", "))
		}

		chatID := chat.ID
		record := models.AIContext{
			ID:          uuid.NewString(),
			UserID:      req.UserID,
			ChatID:      &chatID,
			ContextType: models.ContextConversationSummary,
			Content:     summaryLine(req.Message, tone, topics),
			Metadata: &models.ContextMetadata{
				Confidence: &confidence,
			},
			Embedding:      analyzer.Embed(req.Message),
			RelevanceScore: confidence,
			CreatedAt:      time.Now().UTC(),
		}
		if err := contexts.CreateContext(ctx, record); err != nil {
			return storeError(c, err)
		}

		return c.JSON(http.StatusOK, models.AssistResponse{
			Response:   response,
			Tone:       tone,
			Topics:     topics,
			Confidence: confidence,
		})
	}
}

func summaryLine(message, tone string, topics []string) string {
	if len(topics) == 0 {
		return fmt.Sprintf("%s exchange: %s", tone, truncate(message, 120))
	}
	return fmt.Sprintf("%s exchange about %s: %s", tone, strings.Join(topics, ", "), truncate(message, 120))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
