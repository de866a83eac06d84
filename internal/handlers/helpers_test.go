package handlers

import (
	"database/sql/driver"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func newJSONRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// timeWithin matches a time argument that falls within tolerance of the
// expected instant.
type timeWithin struct {
	expected  time.Time
	tolerance time.Duration
}

func (m timeWithin) Match(v driver.Value) bool {
	actual, ok := v.(time.Time)
	if !ok {
		return false
	}
	diff := actual.Sub(m.expected)
	if diff < 0 {
		diff = -diff
	}
	return diff <= m.tolerance
}

var (
	userColumns    = []string{"id", "email", "display_name", "avatar_url", "preferences", "created_at", "updated_at"}
	chatColumns    = []string{"id", "name", "type", "participants", "is_encrypted", "created_by", "created_at", "updated_at"}
	contextColumns = []string{"id", "user_id", "chat_id", "context_type", "content", "metadata", "embedding", "relevance_score", "expires_at", "created_at"}
	meetingColumns = []string{"id", "title", "description", "organizer_id", "participants", "start_time", "end_time",
		"timezone", "meeting_url", "chat_id", "ai_suggested", "status", "created_at", "updated_at"}
)
