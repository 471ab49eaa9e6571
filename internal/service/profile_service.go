package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"roseboard/backend/internal/affirmation"
	"roseboard/backend/internal/clock"
	apperrors "roseboard/backend/internal/errors"
	"roseboard/backend/internal/model"
	"roseboard/backend/internal/repository"
)

const (
	maxHeaderTitleLength   = 60
	maxHeaderInitialLength = 2
	maxNotesLength         = 20000
)

type ProfileService struct {
	store    ProfileStore
	clock    clock.Clock
	location *time.Location
	logger   *log.Logger
}

type UpdateSettingsInput struct {
	ThemeMode     *string
	HeaderTitle   *string
	HeaderInitial *string
}

func NewProfileService(store ProfileStore, c clock.Clock, location *time.Location, logger *log.Logger) *ProfileService {
	if location == nil {
		location = time.Local
	}
	return &ProfileService{
		store:    store,
		clock:    c,
		location: location,
		logger:   logger,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, *apperrors.APIError) {
	profile, err := s.store.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("profile_not_found", "profile not found")
	}
	if err != nil {
		s.logger.Error("failed to get profile", "uid", userID, "err", err)
		return nil, apperrors.Internal("failed to get profile")
	}
	return profile, nil
}

func (s *ProfileService) UpdateSettings(ctx context.Context, userID string, input UpdateSettingsInput) (*model.Profile, *apperrors.APIError) {
	profile, apiErr := s.Get(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	settings := profile.Settings
	if input.ThemeMode != nil {
		if !model.IsValidTheme(*input.ThemeMode) {
			return nil, apperrors.InvalidField("invalid_theme", "themeMode", "themeMode must be one of auto, light, dark")
		}
		settings.ThemeMode = *input.ThemeMode
	}
	if input.HeaderTitle != nil {
		title := strings.TrimSpace(*input.HeaderTitle)
		if title == "" || utf8.RuneCountInString(title) > maxHeaderTitleLength {
			return nil, apperrors.InvalidField("invalid_header_title", "headerTitle", "headerTitle must be 1-60 characters")
		}
		settings.HeaderTitle = title
	}
	if input.HeaderInitial != nil {
		initial := strings.TrimSpace(*input.HeaderInitial)
		if initial == "" || utf8.RuneCountInString(initial) > maxHeaderInitialLength {
			return nil, apperrors.InvalidField("invalid_header_initial", "headerInitial", "headerInitial must be 1-2 characters")
		}
		settings.HeaderInitial = initial
	}

	if err := s.store.UpdateSettings(ctx, userID, settings); err != nil {
		s.logger.Error("failed to update settings", "uid", userID, "err", err)
		return nil, apperrors.Internal("failed to update settings")
	}
	profile.Settings = settings
	return profile, nil
}

func (s *ProfileService) UpdateNotes(ctx context.Context, userID, notes string) (*model.Profile, *apperrors.APIError) {
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return nil, apperrors.InvalidField("notes_too_long", "globalNotes", "notes are too long")
	}
	if err := s.store.UpdateNotes(ctx, userID, notes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("profile_not_found", "profile not found")
		}
		s.logger.Error("failed to update notes", "uid", userID, "err", err)
		return nil, apperrors.Internal("failed to update notes")
	}
	return s.Get(ctx, userID)
}

// AddFocusMinutes adds completed focus time to the user's total.
func (s *ProfileService) AddFocusMinutes(ctx context.Context, userID string, minutes int) (*model.Profile, *apperrors.APIError) {
	if minutes <= 0 {
		return nil, apperrors.InvalidField("invalid_minutes", "minutes", "minutes must be a positive number")
	}
	if err := s.store.AddFocusTime(ctx, userID, minutes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("profile_not_found", "profile not found")
		}
		s.logger.Error("failed to add focus time", "uid", userID, "minutes", minutes, "err", err)
		return nil, apperrors.Internal("failed to add focus time")
	}
	return s.Get(ctx, userID)
}

// RecordLogin advances the login streak for today's date.
func (s *ProfileService) RecordLogin(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().In(s.location)
	today := affirmation.DateKey(now)
	if profile.LastLoginDate == today {
		return profile, nil
	}
	yesterday := affirmation.DateKey(now.AddDate(0, 0, -1))

	streak := NextStreak(profile.Streak, profile.LastLoginDate, today, yesterday)
	if err := s.store.UpdateLogin(ctx, userID, streak, today); err != nil {
		return nil, err
	}
	profile.Streak = streak
	profile.LastLoginDate = today
	return profile, nil
}

// NextStreak returns the streak after a login on today. Logging in again the
// same day keeps it, logging in the day after the last login extends it, and
// anything else starts over at 1.
func NextStreak(streak int, lastLogin, today, yesterday string) int {
	switch lastLogin {
	case today:
		if streak < 1 {
			return 1
		}
		return streak
	case yesterday:
		return streak + 1
	default:
		return 1
	}
}
