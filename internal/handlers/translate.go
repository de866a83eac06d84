package handlers

import (
	"net/http"
	"strings"
	"time"

	"converse/internal/config"
	"converse/internal/database"
	"converse/internal/models"
	"converse/internal/translation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Confidence assigned to freshly computed translations. Unsupported
// directions pass the text through and report low confidence instead of
// failing.
const (
	translationConfidence = 0.85
	passthroughConfidence = 0.3
)

// TranslateHandler translates a text for a user. Results are cached as
// translation_cache context rows with a 24 hour expiry; a second identical
// request is served from the stored payload. Same-language requests
// short-circuit with confidence 1.0 and are never cached. Two concurrent
// identical misses may both insert a row; reads tolerate the duplicate.
// @Summary Translate text
// @Tags assist
// @Accept json
// @Produce json
// @Param request body models.TranslateRequest true "Translation request"
// @Success 200 {object} models.TranslateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/translate [post]
func TranslateHandler(cfg *config.Config, users *database.UserService, contexts *database.ContextService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.TranslateRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body: %v", err)
		}
		if strings.TrimSpace(req.UserID) == "" {
			return badRequest(c, "user_id is required")
		}
		if strings.TrimSpace(req.Text) == "" {
			return badRequest(c, "text is required")
		}
		if strings.TrimSpace(req.TargetLang) == "" {
			return badRequest(c, "target_lang is required")
		}

		ctx := c.Request().Context()
		if _, err := users.GetUser(ctx, req.UserID); err != nil {
			return storeError(c, err)
		}

		detected := translation.DetectLanguage(req.Text)
		sourceLang := translation.NormalizeLang(req.SourceLang)
		if sourceLang == "" {
			sourceLang = detected.Code
		}
		targetLang := translation.NormalizeLang(req.TargetLang)

		if sourceLang == targetLang {
			return c.JSON(http.StatusOK, models.TranslateResponse{
				TranslatedText:   req.Text,
				DetectedLanguage: detected.Code,
				Confidence:       1.0,
				FromCache:        false,
			})
		}

		cacheKey := translation.CacheKey(req.Text, sourceLang, targetLang)
		cached, found, err := contexts.LookupTranslation(ctx, req.UserID, cacheKey)
		if err != nil {
			return storeError(c, err)
		}
		if found && cached.Metadata != nil && cached.Metadata.TranslatedText != nil {
			response := models.TranslateResponse{
				TranslatedText: *cached.Metadata.TranslatedText,
				Confidence:     cached.RelevanceScore,
				FromCache:      true,
			}
			if cached.Metadata.DetectedLanguage != nil {
				response.DetectedLanguage = *cached.Metadata.DetectedLanguage
			} else {
				response.DetectedLanguage = detected.Code
			}
			return c.JSON(http.StatusOK, response)
		}

		translated := translation.Translate(req.Text, sourceLang, targetLang)
		confidence := translationConfidence
		if !translation.Supported(sourceLang, targetLang) {
			confidence = passthroughConfidence
		}

		now := time.Now().UTC()
		expiry := now.Add(time.Duration(cfg.TranslationCacheTTLHours) * time.Hour)
		detectedCode := detected.Code
		record := models.AIContext{
			ID:          uuid.NewString(),
			UserID:      req.UserID,
			ContextType: models.ContextTranslationCache,
			Content:     cacheKey,
			Metadata: &models.ContextMetadata{
				TranslatedText:   &translated,
				DetectedLanguage: &detectedCode,
				SourceLanguage:   &sourceLang,
				TargetLanguage:   &targetLang,
			},
			RelevanceScore: confidence,
			ExpiresAt:      &expiry,
			CreatedAt:      now,
		}
		if err := contexts.CreateContext(ctx, record); err != nil {
			// A lost cache write only costs a recompute on the next request.
			log.Warn().Err(err).Str("user_id", req.UserID).Msg("translation cache write failed")
		}

		return c.JSON(http.StatusOK, models.TranslateResponse{
			TranslatedText:   translated,
			DetectedLanguage: detected.Code,
			Confidence:       confidence,
			FromCache:        false,
		})
	}
}
