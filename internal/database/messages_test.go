package database

import (
	"context"
	"testing"
	"time"

	"converse/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messageColumns = []string{"id", "chat_id", "sender_id", "content", "type", "metadata", "reply_to", "is_edited", "is_encrypted", "created_at"}

func TestListMessages_DefaultPage(t *testing.T) {
	db, mock := newMock(t)
	svc := NewMessageService(db)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery("FROM messages\\s+WHERE chat_id =").
		WithArgs("c1", 50, 0).
		WillReturnRows(sqlmock.NewRows(messageColumns).
			AddRow("m2", "c1", "u2", "second", "text", nil, nil, false, false, now).
			AddRow("m1", "c1", "u1", "first", "text", nil, nil, false, false, now.Add(-time.Minute)))

	msgs, err := svc.ListMessages(context.Background(), "c1", 0, 0, nil)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m2", msgs[0].ID)
	assert.Equal(t, "m1", msgs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMessages_BeforeBound(t *testing.T) {
	db, mock := newMock(t)
	svc := NewMessageService(db)
	before := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery("WHERE chat_id = (.+) AND created_at <").
		WithArgs("c1", before, 10, 5).
		WillReturnRows(sqlmock.NewRows(messageColumns))

	msgs, err := svc.ListMessages(context.Background(), "c1", 10, 5, &before)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMessages_MetadataDecoded(t *testing.T) {
	db, mock := newMock(t)
	svc := NewMessageService(db)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM messages\\s+WHERE chat_id =").
		WithArgs("c1", 50, 0).
		WillReturnRows(sqlmock.NewRows(messageColumns).
			AddRow("m1", "c1", "u1", "hola", "text",
				[]byte(`{"translated_from":"en","ai_tone":"casual"}`), nil, false, false, now))

	msgs, err := svc.ListMessages(context.Background(), "c1", 0, 0, nil)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].Metadata)
	require.NotNil(t, msgs[0].Metadata.TranslatedFrom)
	assert.Equal(t, "en", *msgs[0].Metadata.TranslatedFrom)
}

func TestCreateMessage(t *testing.T) {
	db, mock := newMock(t)
	svc := NewMessageService(db)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO messages").
		WithArgs("m1", "c1", "u1", "hello", "text", nil, nil, false, false, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.CreateMessage(context.Background(), models.Message{
		ID:        "m1",
		ChatID:    "c1",
		SenderID:  "u1",
		Content:   "hello",
		Type:      "text",
		CreatedAt: now,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditMessage(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMock(t)
		svc := NewMessageService(db)

		mock.ExpectExec("UPDATE messages SET content =").
			WithArgs("revised", "m1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, svc.EditMessage(context.Background(), "m1", "revised"))
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMock(t)
		svc := NewMessageService(db)

		mock.ExpectExec("UPDATE messages SET content =").
			WithArgs("revised", "m9").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := svc.EditMessage(context.Background(), "m9", "revised")
		assert.ErrorIs(t, err, ErrMessageNotFound)
	})
}

func TestRecentContents(t *testing.T) {
	db, mock := newMock(t)
	svc := NewMessageService(db)

	mock.ExpectQuery("SELECT content FROM messages").
		WithArgs("c1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"content"}).
			AddRow("newest").
			AddRow("older"))

	contents, err := svc.RecentContents(context.Background(), "c1", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "older"}, contents)
	assert.NoError(t, mock.ExpectationsWereMet())
}
