package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"converse/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

// UserService handles user storage.
type UserService struct {
	db *sqlx.DB
}

// NewUserService creates a new user service.
func NewUserService(db *sqlx.DB) *UserService {
	return &UserService{db: db}
}

// userRow is the database shape of a user.
type userRow struct {
	ID          string         `db:"id"`
	Email       string         `db:"email"`
	DisplayName string         `db:"display_name"`
	AvatarURL   *string        `db:"avatar_url"`
	Preferences types.JSONText `db:"preferences"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func userFromRow(row userRow) (models.User, error) {
	prefs := models.DefaultPreferences()
	if len(row.Preferences) > 0 {
		if err := json.Unmarshal(row.Preferences, &prefs); err != nil {
			return models.User{}, fmt.Errorf("decode preferences: %w", err)
		}
	}
	return models.User{
		ID:          row.ID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		AvatarURL:   row.AvatarURL,
		Preferences: prefs,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// CreateUser inserts a new user. A unique-constraint violation on email
// surfaces as ErrDuplicateEmail.
func (s *UserService) CreateUser(ctx context.Context, user models.User) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	query := `
		INSERT INTO users (id, email, display_name, avatar_url, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query,
		user.ID, user.Email, user.DisplayName, user.AvatarURL, prefs, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser returns one user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (models.User, error) {
	var row userRow
	query := `
		SELECT id, email, display_name, avatar_url, preferences, created_at, updated_at
		FROM users WHERE id = $1
	`
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return models.User{}, notFoundOr(err, fmt.Errorf("%w: %s", ErrUserNotFound, id), "failed to get user")
	}
	return userFromRow(row)
}

// UserExists reports whether a user id is present.
func (s *UserService) UserExists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE id = $1`, id); err != nil {
		// Malformed uuid syntax means the user cannot exist.
		if isInvalidIdentifier(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

// UpdateUser applies a partial profile update. Preference fields merge into
// the stored record; unspecified fields are preserved, never reset.
func (s *UserService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Preferences != nil {
		mergePreferences(&user.Preferences, *req.Preferences)
	}
	user.UpdatedAt = time.Now().UTC()

	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return models.User{}, fmt.Errorf("encode preferences: %w", err)
	}

	query := `
		UPDATE users
		SET display_name = $1, avatar_url = $2, preferences = $3, updated_at = $4
		WHERE id = $5
	`
	res, err := s.db.ExecContext(ctx, query,
		user.DisplayName, user.AvatarURL, prefs, user.UpdatedAt, id)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return models.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return user, nil
}

func mergePreferences(prefs *models.Preferences, update models.PreferencesUpdate) {
	if update.Language != nil {
		prefs.Language = *update.Language
	}
	if update.Timezone != nil {
		prefs.Timezone = *update.Timezone
	}
	if update.AssistanceLevel != nil {
		prefs.AssistanceLevel = *update.AssistanceLevel
	}
	if update.VoiceEnabled != nil {
		prefs.VoiceEnabled = *update.VoiceEnabled
	}
	if update.EncryptionEnabled != nil {
		prefs.EncryptionEnabled = *update.EncryptionEnabled
	}
}
