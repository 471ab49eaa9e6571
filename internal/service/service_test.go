package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roseboard/backend/internal/affirmation"
	"roseboard/backend/internal/clock"
	"roseboard/backend/internal/model"
	"roseboard/backend/internal/realtime"
	"roseboard/backend/internal/repository"
)

var quietLogger = log.New(io.Discard)

type memoryProfiles struct {
	profiles map[string]*model.Profile
	failGet  error
}

func newMemoryProfiles(userIDs ...string) *memoryProfiles {
	m := &memoryProfiles{profiles: make(map[string]*model.Profile)}
	for _, id := range userIDs {
		m.profiles[id] = &model.Profile{UserID: id, Settings: model.DefaultSettings()}
	}
	return m
}

func (m *memoryProfiles) Get(_ context.Context, userID string) (*model.Profile, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memoryProfiles) UpdateSettings(_ context.Context, userID string, settings model.Settings) error {
	p, ok := m.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Settings = settings
	return nil
}

func (m *memoryProfiles) UpdateNotes(_ context.Context, userID, notes string) error {
	p, ok := m.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	p.GlobalNotes = notes
	return nil
}

func (m *memoryProfiles) AddFocusTime(_ context.Context, userID string, minutes int) error {
	p, ok := m.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	p.FocusTime += minutes
	return nil
}

func (m *memoryProfiles) UpdateLogin(_ context.Context, userID string, streak int, loginDate string) error {
	p, ok := m.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Streak = streak
	p.LastLoginDate = loginDate
	return nil
}

type memoryTasks struct {
	tasks map[string]model.Task
}

func newMemoryTasks() *memoryTasks {
	return &memoryTasks{tasks: make(map[string]model.Task)}
}

func (m *memoryTasks) Create(_ context.Context, task *model.Task) error {
	m.tasks[task.ID] = *task
	return nil
}

func (m *memoryTasks) Get(_ context.Context, userID, taskID string) (*model.Task, error) {
	task, ok := m.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &task, nil
}

func (m *memoryTasks) List(_ context.Context, userID string) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for _, task := range m.tasks {
		if task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt > tasks[j].CreatedAt
	})
	return tasks, nil
}

func (m *memoryTasks) Update(_ context.Context, task *model.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	m.tasks[task.ID] = *task
	return nil
}

func (m *memoryTasks) Delete(_ context.Context, userID, taskID string) error {
	task, ok := m.tasks[taskID]
	if !ok || task.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.tasks, taskID)
	return nil
}

func TestNextStreak(t *testing.T) {
	const (
		today     = "Fri Jan 03 2025"
		yesterday = "Thu Jan 02 2025"
	)
	tests := []struct {
		name      string
		streak    int
		lastLogin string
		want      int
	}{
		{"first login ever", 0, "", 1},
		{"same day keeps streak", 4, today, 4},
		{"consecutive day extends", 4, yesterday, 5},
		{"gap resets", 9, "Mon Dec 30 2024", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStreak(tt.streak, tt.lastLogin, today, yesterday))
		})
	}
}

func TestRecordLoginAcrossDays(t *testing.T) {
	c := clock.NewManual(time.Date(2025, time.January, 2, 8, 0, 0, 0, time.UTC))
	store := newMemoryProfiles("u1")
	svc := NewProfileService(store, c, time.UTC, quietLogger)
	ctx := context.Background()

	profile, err := svc.RecordLogin(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Streak)
	assert.Equal(t, "Thu Jan 02 2025", profile.LastLoginDate)

	c.Advance(3 * time.Hour)
	profile, err = svc.RecordLogin(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Streak)

	c.Advance(24 * time.Hour)
	profile, err = svc.RecordLogin(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Streak)

	c.Advance(72 * time.Hour)
	profile, err = svc.RecordLogin(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Streak)
	assert.Equal(t, "Mon Jan 06 2025", profile.LastLoginDate)
}

func TestUpdateSettingsValidates(t *testing.T) {
	store := newMemoryProfiles("u1")
	svc := NewProfileService(store, clock.System{}, time.UTC, quietLogger)
	ctx := context.Background()

	bad := "sepia"
	_, apiErr := svc.UpdateSettings(ctx, "u1", UpdateSettingsInput{ThemeMode: &bad})
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_theme", apiErr.Code)

	blank := "   "
	_, apiErr = svc.UpdateSettings(ctx, "u1", UpdateSettingsInput{HeaderTitle: &blank})
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_header_title", apiErr.Code)

	dark := model.ThemeDark
	title := "  My board "
	profile, apiErr := svc.UpdateSettings(ctx, "u1", UpdateSettingsInput{ThemeMode: &dark, HeaderTitle: &title})
	require.Nil(t, apiErr)
	assert.Equal(t, model.ThemeDark, profile.Settings.ThemeMode)
	assert.Equal(t, "My board", profile.Settings.HeaderTitle)
	assert.Equal(t, model.DefaultHeaderInitial, profile.Settings.HeaderInitial)
}

func TestAddFocusMinutes(t *testing.T) {
	svc := NewProfileService(newMemoryProfiles("u1"), clock.System{}, time.UTC, quietLogger)
	ctx := context.Background()

	_, apiErr := svc.AddFocusMinutes(ctx, "u1", 0)
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_minutes", apiErr.Code)

	profile, apiErr := svc.AddFocusMinutes(ctx, "u1", 25)
	require.Nil(t, apiErr)
	assert.Equal(t, 25, profile.FocusTime)

	_, apiErr = svc.AddFocusMinutes(ctx, "ghost", 25)
	require.NotNil(t, apiErr)
	assert.Equal(t, "profile_not_found", apiErr.Code)
}

func TestGetProfileStoreFailure(t *testing.T) {
	store := newMemoryProfiles("u1")
	store.failGet = errors.New("disk on fire")
	svc := NewProfileService(store, clock.System{}, time.UTC, quietLogger)

	_, apiErr := svc.Get(context.Background(), "u1")
	require.NotNil(t, apiErr)
	assert.Equal(t, "internal_error", apiErr.Code)
}

func TestMessageServiceToday(t *testing.T) {
	c := clock.NewManual(time.Date(2025, time.January, 2, 23, 30, 0, 0, time.UTC))
	svc := NewMessageService(c, time.UTC)

	view := svc.Today()
	assert.Equal(t, "Thu Jan 02 2025", view.Date)
	assert.Equal(t, affirmation.Generate("Thu Jan 02 2025"), view.Message)

	// the server's location decides which day it is
	tokyo := time.FixedZone("JST", 9*60*60)
	view = NewMessageService(c, tokyo).Today()
	assert.Equal(t, "Fri Jan 03 2025", view.Date)
}

func TestTaskServicePublishesFullSnapshots(t *testing.T) {
	c := clock.NewManual(time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC))
	hub := realtime.NewHub()
	svc := NewTaskService(newMemoryTasks(), hub, c, quietLogger)
	ctx := context.Background()

	watch, apiErr := svc.Watch(ctx, "u1")
	require.Nil(t, apiErr)
	defer watch.Cancel()
	assert.Empty(t, watch.Snapshot)

	first, apiErr := svc.Create(ctx, "u1", CreateTaskInput{Title: "  water plants  "})
	require.Nil(t, apiErr)
	assert.Equal(t, "water plants", first.Title)
	assert.Equal(t, c.Now().UnixMilli(), first.CreatedAt)
	assert.Len(t, <-watch.Updates, 1)

	c.Advance(time.Second)
	second, apiErr := svc.Create(ctx, "u1", CreateTaskInput{Title: "call mom"})
	require.Nil(t, apiErr)
	snapshot := <-watch.Updates
	require.Len(t, snapshot, 2)
	assert.Equal(t, second.ID, snapshot[0].ID)

	done := true
	_, apiErr = svc.Update(ctx, "u1", first.ID, model.TaskPatch{Done: &done})
	require.Nil(t, apiErr)
	snapshot = <-watch.Updates
	require.Len(t, snapshot, 2)
	assert.True(t, snapshot[1].Done)

	require.Nil(t, svc.Delete(ctx, "u1", second.ID))
	snapshot = <-watch.Updates
	require.Len(t, snapshot, 1)
	assert.Equal(t, first.ID, snapshot[0].ID)
}

func TestTaskServiceValidation(t *testing.T) {
	svc := NewTaskService(newMemoryTasks(), realtime.NewHub(), clock.System{}, quietLogger)
	ctx := context.Background()

	_, apiErr := svc.Create(ctx, "u1", CreateTaskInput{Title: "   "})
	require.NotNil(t, apiErr)
	assert.Equal(t, "invalid_title", apiErr.Code)

	_, apiErr = svc.Update(ctx, "u1", "missing", model.TaskPatch{})
	require.NotNil(t, apiErr)
	assert.Equal(t, "task_not_found", apiErr.Code)

	apiErr = svc.Delete(ctx, "u1", "missing")
	require.NotNil(t, apiErr)
	assert.Equal(t, "task_not_found", apiErr.Code)
}

func TestTaskPatchClearsDueDate(t *testing.T) {
	svc := NewTaskService(newMemoryTasks(), realtime.NewHub(), clock.System{}, quietLogger)
	ctx := context.Background()

	due := "2025-01-03"
	task, apiErr := svc.Create(ctx, "u1", CreateTaskInput{Title: "pay rent", DueDate: &due})
	require.Nil(t, apiErr)
	require.NotNil(t, task.DueDate)

	empty := ""
	task, apiErr = svc.Update(ctx, "u1", task.ID, model.TaskPatch{DueDate: &empty})
	require.Nil(t, apiErr)
	assert.Nil(t, task.DueDate)
}
