package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"converse/internal/analyzer"
	"converse/internal/cache"
	"converse/internal/config"
	"converse/internal/database"
	"converse/internal/models"

	"github.com/labstack/echo/v4"
)

const (
	SummaryBrief       = "brief"
	SummaryDetailed    = "detailed"
	SummaryActionItems = "action_items"
)

// SummaryHandler computes a conversation summary over recent messages.
// Results are memoized in the in-process TTL cache so repeated requests for
// the same chat window don't re-read the message table.
// @Summary Summarize a conversation
// @Tags assist
// @Accept json
// @Produce json
// @Param id path string true "Chat id"
// @Param request body models.SummaryRequest true "Summary request"
// @Success 200 {object} models.SummaryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/chats/{id}/summary [post]
func SummaryHandler(cfg *config.Config, chats *database.ChatService, messages *database.MessageService, memo *cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.SummaryRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}
		if strings.TrimSpace(req.UserID) == "" {
			return badRequest(c, "user_id is required")
		}
		summaryType := req.SummaryType
		if summaryType == "" {
			summaryType = SummaryBrief
		}
		if summaryType != SummaryBrief && summaryType != SummaryDetailed && summaryType != SummaryActionItems {
			return badRequest(c, "Unsupported summary_type: %s", summaryType)
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

		cacheKey := fmt.Sprintf("summary_%s_%s_%d", chat.ID, summaryType, limit)
		if cached, found := memo.Get(cacheKey); found {
			if response, ok := cached.(models.SummaryResponse); ok {
				return c.JSON(http.StatusOK, response)
			}
		}

		recent, err := messages.RecentContents(ctx, chat.ID, limit)
		if err != nil {
			return storeError(c, err)
		}

		response := buildSummary(summaryType, recent)
		memo.Set(cacheKey, response, time.Duration(cfg.SummaryCacheTTLMinutes)*time.Minute)
		return c.JSON(http.StatusOK, response)
	}
}

func buildSummary(summaryType string, recent []string) models.SummaryResponse {
	sentiment := analyzer.AnalyzeSentiment(recent)
	topics := analyzer.ExtractTopics(recent)
	response := models.SummaryResponse{
		SummaryType: summaryType,
		Sentiment:   sentiment,
		Topics:      topics,
	}

	switch summaryType {
	case SummaryActionItems:
		actions := analyzer.ExtractActionItems(recent)
		response.ActionItems = actions
		if len(actions) == 0 {
			response.Summary = "Action-focused conversation with no open items."
		} else {
			response.Summary = fmt.Sprintf("Action-focused conversation with %d open item(s): %s.",
				len(actions), strings.Join(actions, "; "))
		}
	case SummaryDetailed:
		response.KeyPoints = analyzer.KeyPoints(recent, 3)
		response.Summary = fmt.Sprintf("Conversation of %d recent message(s) with %s sentiment.%s%s",
			len(recent), sentiment, topicsClause(topics), keyPointsClause(response.KeyPoints))
	default:
		response.Summary = fmt.Sprintf("Conversation of %d recent message(s) with %s sentiment.%s",
			len(recent), sentiment, topicsClause(topics))
	}
	return response
}

func topicsClause(topics []string) string {
	if len(topics) == 0 {
		return ""
	}
	return fmt.Sprintf(" Main topics: %s.", strings.Join(topics, ", "))
}

func keyPointsClause(points []string) string {
	if len(points) == 0 {
		return ""
	}
	return fmt.Sprintf(" Key points: %s.", strings.Join(points, " | "))
}
