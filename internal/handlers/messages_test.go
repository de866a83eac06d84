package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"converse/internal/config"
	"converse/internal/database"
	"converse/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxMessageLength:         10000,
		SummaryCacheTTLMinutes:   5,
		TranslationCacheTTLHours: 24,
	}
}

func chatRowFor(mock sqlmock.Sqlmock, chatID string, participants string) {
	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectQuery("FROM chats WHERE id =").
		WithArgs(chatID).
		WillReturnRows(sqlmock.NewRows(chatColumns).
			AddRow(chatID, "Team", "group", []byte(participants), true, "u1", now, now))
}

func TestSendMessageHandler_Success(t *testing.T) {
	db, mock := newMockDB(t)
	chatRowFor(mock, "c1", `["u1","u2"]`)
	mock.ExpectExec("INSERT INTO messages").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE chats SET updated_at =").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"sender_id":"u1","content":"hello there"}`
	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/messages", body)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := SendMessageHandler(testConfig(), database.NewChatService(db), database.NewMessageService(db))
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var msg models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "hello there", msg.Content)
	assert.Equal(t, models.MessageTypeText, msg.Type)
	// Messages inherit the chat's encryption flag.
	assert.True(t, msg.IsEncrypted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessageHandler_NonParticipantForbidden(t *testing.T) {
	db, mock := newMockDB(t)
	chatRowFor(mock, "c1", `["u1","u2"]`)

	body := `{"sender_id":"u3","content":"let me in"}`
	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/messages", body)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := SendMessageHandler(testConfig(), database.NewChatService(db), database.NewMessageService(db))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessageHandler_OversizedContent(t *testing.T) {
	db, _ := newMockDB(t)
	cfg := testConfig()
	cfg.MaxMessageLength = 10

	body := `{"sender_id":"u1","content":"` + strings.Repeat("a", 11) + `"}`
	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/messages", body)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := SendMessageHandler(cfg, database.NewChatService(db), database.NewMessageService(db))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageHandler_ReplyAcrossChatsRejected(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	chatRowFor(mock, "c1", `["u1","u2"]`)
	mock.ExpectQuery("FROM messages WHERE id =").
		WithArgs("m-other").
		WillReturnRows(sqlmock.NewRows([]string{"id", "chat_id", "sender_id", "content", "type", "metadata", "reply_to", "is_edited", "is_encrypted", "created_at"}).
			AddRow("m-other", "c2", "u2", "elsewhere", "text", nil, nil, false, false, now))

	body := `{"sender_id":"u1","content":"re: that","reply_to":"m-other"}`
	c, rec := newJSONRequest(http.MethodPost, "/api/chats/c1/messages", body)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := SendMessageHandler(testConfig(), database.NewChatService(db), database.NewMessageService(db))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "different chat")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMessagesHandler_InvalidBefore(t *testing.T) {
	db, _ := newMockDB(t)

	c, rec := newJSONRequest(http.MethodGet, "/api/chats/c1/messages?user_id=u1&before=yesterday", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := ListMessagesHandler(database.NewChatService(db), database.NewMessageService(db))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMessagesHandler_RequiresParticipant(t *testing.T) {
	db, mock := newMockDB(t)
	chatRowFor(mock, "c1", `["u1","u2"]`)

	c, rec := newJSONRequest(http.MethodGet, "/api/chats/c1/messages?user_id=u9", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	handler := ListMessagesHandler(database.NewChatService(db), database.NewMessageService(db))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditMessageHandler_OnlySenderMayEdit(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM messages WHERE id =").
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "chat_id", "sender_id", "content", "type", "metadata", "reply_to", "is_edited", "is_encrypted", "created_at"}).
			AddRow("m1", "c1", "u1", "original", "text", nil, nil, false, false, now))

	body := `{"sender_id":"u2","content":"hijacked"}`
	c, rec := newJSONRequest(http.MethodPatch, "/api/messages/m1", body)
	c.SetParamNames("id")
	c.SetParamValues("m1")

	handler := EditMessageHandler(testConfig(), database.NewMessageService(db))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditMessageHandler_SetsEditedFlag(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM messages WHERE id =").
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "chat_id", "sender_id", "content", "type", "metadata", "reply_to", "is_edited", "is_encrypted", "created_at"}).
			AddRow("m1", "c1", "u1", "original", "text", nil, nil, false, false, now))
	mock.ExpectExec("UPDATE messages SET content =").
		WithArgs("revised", "m1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"sender_id":"u1","content":"revised"}`
	c, rec := newJSONRequest(http.MethodPatch, "/api/messages/m1", body)
	c.SetParamNames("id")
	c.SetParamValues("m1")

	handler := EditMessageHandler(testConfig(), database.NewMessageService(db))
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var msg models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "revised", msg.Content)
	assert.True(t, msg.IsEdited)
	assert.NoError(t, mock.ExpectationsWereMet())
}
