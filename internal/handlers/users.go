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

// CreateUserHandler registers a new user
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.CreateUserRequest true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/users [post]
func CreateUserHandler(users *database.UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}

		email := strings.TrimSpace(req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return badRequest(c, "A valid email is required")
		}
		if strings.TrimSpace(req.DisplayName) == "" {
			return badRequest(c, "display_name is required")
		}

		prefs := models.DefaultPreferences()
		if req.Preferences != nil {
			prefs = *req.Preferences
			if prefs.AssistanceLevel != "" && !models.ValidAssistanceLevel(prefs.AssistanceLevel) {
				return badRequest(c, "Unsupported assistance_level: %s", prefs.AssistanceLevel)
			}
		}

		now := time.Now().UTC()
		user := models.User{
			ID:          uuid.NewString(),
			Email:       email,
			DisplayName: strings.TrimSpace(req.DisplayName),
			AvatarURL:   req.AvatarURL,
			Preferences: prefs,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := users.CreateUser(c.Request().Context(), user); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, user)
	}
}

// GetUserHandler returns a single user by id
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id} [get]
func GetUserHandler(users *database.UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := users.GetUser(c.Request().Context(), c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}

// UpdateUserHandler applies a partial profile update. Preference fields
// merge into the stored record.
func UpdateUserHandler(users *database.UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}

		if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) == "" {
			return badRequest(c, "display_name cannot be blank")
		}
		if req.Preferences != nil && req.Preferences.AssistanceLevel != nil &&
			!models.ValidAssistanceLevel(*req.Preferences.AssistanceLevel) {
			return badRequest(c, "Unsupported assistance_level: %s", *req.Preferences.AssistanceLevel)
		}

		user, err := users.UpdateUser(c.Request().Context(), c.Param("id"), req)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}
