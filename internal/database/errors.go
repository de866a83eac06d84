package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel errors surfaced to handlers. Handlers map these onto HTTP
// statuses; the database layer never decides transport concerns.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrChatNotFound    = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrContextNotFound = errors.New("context not found")
	ErrDuplicateEmail  = errors.New("user with email already exists")
)

// Postgres error codes we translate rather than propagate raw.
const (
	pgUniqueViolation = "23505"
	pgInvalidTextRep  = "22P02"
)

// notFoundOr normalizes a store error for a single-row lookup: missing rows
// and malformed identifiers (invalid uuid syntax) both become the entity's
// not-found sentinel, everything else is wrapped.
func notFoundOr(err error, sentinel error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgInvalidTextRep {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

// isInvalidIdentifier reports whether err is malformed-uuid syntax.
func isInvalidIdentifier(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgInvalidTextRep
}
