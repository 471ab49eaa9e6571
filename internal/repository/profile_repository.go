package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roseboard/backend/internal/model"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT user_id, theme_mode, header_title, header_initial, streak,
		        focus_time, last_login_date, global_notes, updated_at
		 FROM profiles WHERE user_id = ?`,
		userID,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) UpdateSettings(ctx context.Context, userID string, settings model.Settings) error {
	return r.exec(ctx, "update settings",
		`UPDATE profiles
		 SET theme_mode = ?, header_title = ?, header_initial = ?, updated_at = ?
		 WHERE user_id = ?`,
		settings.ThemeMode, settings.HeaderTitle, settings.HeaderInitial, now(), userID,
	)
}

func (r *ProfileRepository) UpdateNotes(ctx context.Context, userID, notes string) error {
	return r.exec(ctx, "update notes",
		`UPDATE profiles SET global_notes = ?, updated_at = ? WHERE user_id = ?`,
		notes, now(), userID,
	)
}

// AddFocusTime increments the stored focus minutes in place.
func (r *ProfileRepository) AddFocusTime(ctx context.Context, userID string, minutes int) error {
	return r.exec(ctx, "add focus time",
		`UPDATE profiles SET focus_time = focus_time + ?, updated_at = ? WHERE user_id = ?`,
		minutes, now(), userID,
	)
}

func (r *ProfileRepository) UpdateLogin(ctx context.Context, userID string, streak int, loginDate string) error {
	return r.exec(ctx, "update login",
		`UPDATE profiles SET streak = ?, last_login_date = ?, updated_at = ? WHERE user_id = ?`,
		streak, loginDate, now(), userID,
	)
}

func (r *ProfileRepository) exec(ctx context.Context, op, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectOneRow(result, op)
}

func scanProfile(s scanner) (*model.Profile, error) {
	profile := model.Profile{}
	var updatedAt string
	err := s.Scan(
		&profile.UserID,
		&profile.Settings.ThemeMode,
		&profile.Settings.HeaderTitle,
		&profile.Settings.HeaderInitial,
		&profile.Streak,
		&profile.FocusTime,
		&profile.LastLoginDate,
		&profile.GlobalNotes,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse profile updated_at: %w", err)
	}
	profile.UpdatedAt = parsedUpdatedAt
	return &profile, nil
}
