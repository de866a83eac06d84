package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"converse/internal/cache"
	"converse/internal/database"
	"converse/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryHandler_ActionItemsEndToEnd(t *testing.T) {
	db, mock := newMockDB(t)
	chatRowFor(mock, "c1", `["u1","u2"]`)
	mock.ExpectQuery("SELECT content FROM messages").
		WithArgs("c1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"content"}).
			AddRow("todo: review doc before Friday").
			AddRow("can we schedule a meeting tomorrow").
			AddRow("we need to respect the deadline"))

	body := `{"user_id":"u1","summary_type":"action_items"}`
	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/summary", body)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := SummaryHandler(testConfig(), database.NewChatService(db), database.NewMessageService(db), cache.New())
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Summary, "Action-focused conversation")
	require.NotEmpty(t, resp.ActionItems)

	found := false
	for _, item := range resp.ActionItems {
		if strings.Contains(item, "review doc") {
			found = true
		}
	}
	assert.True(t, found, "expected an action item capturing the review doc task, got %v", resp.ActionItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryHandler_MemoizesPerChatAndType(t *testing.T) {
	db, mock := newMockDB(t)
	memo := cache.New()

	// Two requests, but only one message-table read: the second run is
	// served from the memo cache after the chat lookup.
	chatRowFor(mock, "c1", `["u1","u2"]`)
	mock.ExpectQuery("SELECT content FROM messages").
		WithArgs("c1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"content"}).
			AddRow("great work on the project"))
	chatRowFor(mock, "c1", `["u1","u2"]`)

	handler := SummaryHandler(testConfig(), database.NewChatService(db), database.NewMessageService(db), memo)

	var first, second models.SummaryResponse
	for i, out := range []*models.SummaryResponse{&first, &second} {
		c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/summary", `{"user_id":"u1"}`)
		c.SetParamNames("id")
		c.SetParamValues("c1")
		require.NoError(t, handler(c), "request %d", i)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}

	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryHandler_UnsupportedType(t *testing.T) {
	db, _ := newMockDB(t)

	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/summary", `{"user_id":"u1","summary_type":"poetic"}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := SummaryHandler(testConfig(), database.NewChatService(db), database.NewMessageService(db), cache.New())
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryHandler_DetailedIncludesKeyPoints(t *testing.T) {
	db, mock := newMockDB(t)
	chatRowFor(mock, "c1", `["u1","u2"]`)
	mock.ExpectQuery("SELECT content FROM messages").
		WithArgs("c1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"content"}).
			AddRow("urgent: the deadline for the client report is tomorrow!").
			AddRow("ok"))

	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/summary", `{"user_id":"u1","summary_type":"detailed"}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := SummaryHandler(testConfig(), database.NewChatService(db), database.NewMessageService(db), cache.New())
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, SummaryDetailed, resp.SummaryType)
	assert.NotEmpty(t, resp.KeyPoints)
	assert.Contains(t, resp.Topics, "work")
	assert.NoError(t, mock.ExpectationsWereMet())
}
