package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"converse/internal/database"
	"converse/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// storeError maps database sentinel errors onto HTTP statuses. Anything the
// store layer did not classify is logged and surfaced as a 500.
func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrChatNotFound),
		errors.Is(err, database.ErrMessageNotFound),
		errors.Is(err, database.ErrMeetingNotFound),
		errors.Is(err, database.ErrContextNotFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, database.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}

func badRequest(c echo.Context, format string, args ...interface{}) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf(format, args...)})
}

func forbidden(c echo.Context, format string, args ...interface{}) error {
	return c.JSON(http.StatusForbidden, models.ErrorResponse{Error: fmt.Sprintf(format, args...)})
}

func notFound(c echo.Context, format string, args ...interface{}) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: fmt.Sprintf(format, args...)})
}

// isParticipant reports whether userID appears in the participant list.
func isParticipant(participants []string, userID string) bool {
	for _, p := range participants {
		if p == userID {
			return true
		}
	}
	return false
}
