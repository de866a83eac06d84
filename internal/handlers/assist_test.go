package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"converse/internal/database"
	"converse/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistHandler(t *testing.T) {
	db, mock := newMockDB(t)
	chatRowFor(mock, "c1", `["u1","u2"]`)
	mock.ExpectQuery("SELECT content FROM messages").
		WithArgs("c1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"content"}).
			AddRow("the project report is late").
			AddRow("client called about the invoice"))
	mock.ExpectQuery("SELECT COUNT(.+) FROM ai_contexts").
		WithArgs("u1", "c1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT id, user_id, (.+) FROM ai_contexts").
		WithArgs("u1", "c1", models.ContextConversationSummary, sqlmock.AnyArg(), 3).
		WillReturnRows(sqlmock.NewRows(contextColumns))
	mock.ExpectExec("INSERT INTO ai_contexts").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"user_id":"u1","message":"Could you please send the meeting agenda?"}`
	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/assist", body)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := AssistHandler(database.NewChatService(db), database.NewMessageService(db), database.NewContextService(db))
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AssistResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// "meeting" is a professional-tier keyword and outranks everything else.
	assert.Equal(t, "professional", resp.Tone)
	assert.Contains(t, resp.Topics, "work")
	// base 0.5 + length 0.1 + politeness 0.1 + 2 recents 0.1 + 2 contexts 0.2,
	// clamped to the ceiling.
	assert.InDelta(t, 0.95, resp.Confidence, 1e-9)
	assert.NotEmpty(t, resp.Response)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssistHandler_PriorSummariesSteerTopics(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	chatRowFor(mock, "c1", `["u1","u2"]`)
	mock.ExpectQuery("SELECT content FROM messages").
		WithArgs("c1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"content"}).
			AddRow("nothing notable here"))
	mock.ExpectQuery("SELECT COUNT(.+) FROM ai_contexts").
		WithArgs("u1", "c1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT id, user_id, (.+) FROM ai_contexts").
		WithArgs("u1", "c1", models.ContextConversationSummary, sqlmock.AnyArg(), 3).
		WillReturnRows(sqlmock.NewRows(contextColumns).
			AddRow("x1", "u1", "c1", models.ContextConversationSummary,
				"professional exchange about travel: booked the flight and hotel",
				nil, nil, 0.8, nil, now))
	mock.ExpectExec("INSERT INTO ai_contexts").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"user_id":"u1","message":"sounds fine to me"}`
	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/assist", body)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := AssistHandler(database.NewChatService(db), database.NewMessageService(db), database.NewContextService(db))
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AssistResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Neither the message nor the recent contents mention travel; the topic
	// comes from the stored summary row.
	assert.Contains(t, resp.Topics, "travel")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssistHandler_NonParticipantForbidden(t *testing.T) {
	db, mock := newMockDB(t)
	chatRowFor(mock, "c1", `["u1","u2"]`)

	body := `{"user_id":"u9","message":"hello"}`
	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/assist", body)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := AssistHandler(database.NewChatService(db), database.NewMessageService(db), database.NewContextService(db))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssistHandler_EmptyMessageRejected(t *testing.T) {
	db, _ := newMockDB(t)

	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/assist", `{"user_id":"u1","message":"  "}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := AssistHandler(database.NewChatService(db), database.NewMessageService(db), database.NewContextService(db))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
