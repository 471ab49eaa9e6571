package service

import (
	"context"

	"roseboard/backend/internal/model"
)

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// ProfileStore persists per-user settings and statistics.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	UpdateSettings(ctx context.Context, userID string, settings model.Settings) error
	UpdateNotes(ctx context.Context, userID, notes string) error
	AddFocusTime(ctx context.Context, userID string, minutes int) error
	UpdateLogin(ctx context.Context, userID string, streak int, loginDate string) error
}

// TaskStore persists the per-user task list.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	Get(ctx context.Context, userID, taskID string) (*model.Task, error)
	List(ctx context.Context, userID string) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, userID, taskID string) error
}

// TaskFeed broadcasts full task-list snapshots to live subscribers.
type TaskFeed interface {
	Publish(userID string, tasks []model.Task)
	Subscribe(userID string) (<-chan []model.Task, func())
}
