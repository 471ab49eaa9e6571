package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"roseboard/backend/internal/clock"
	apperrors "roseboard/backend/internal/errors"
	"roseboard/backend/internal/model"
	"roseboard/backend/internal/repository"
)

const maxTaskTitleLength = 500

type TaskService struct {
	store  TaskStore
	feed   TaskFeed
	clock  clock.Clock
	logger *log.Logger
}

type CreateTaskInput struct {
	Title       string
	DueDate     *string
	IsRecurring *bool
	Notes       *string
}

// TaskWatch is a live view of a user's task list. Snapshot holds the
// initial list; Updates delivers every later full replacement.
type TaskWatch struct {
	Snapshot []model.Task
	Updates  <-chan []model.Task
	Cancel   func()
}

func NewTaskService(store TaskStore, feed TaskFeed, c clock.Clock, logger *log.Logger) *TaskService {
	return &TaskService{
		store:  store,
		feed:   feed,
		clock:  c,
		logger: logger,
	}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, *apperrors.APIError) {
	tasks, err := s.store.List(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list tasks", "uid", userID, "err", err)
		return nil, apperrors.Internal("failed to list tasks")
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (*model.Task, *apperrors.APIError) {
	title, apiErr := normalizeTitle(input.Title)
	if apiErr != nil {
		return nil, apiErr
	}

	task := model.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		CreatedAt:   s.clock.Now().UnixMilli(),
		DueDate:     emptyToNil(input.DueDate),
		IsRecurring: input.IsRecurring,
		Notes:       input.Notes,
	}
	if err := s.store.Create(ctx, &task); err != nil {
		s.logger.Error("failed to create task", "uid", userID, "err", err)
		return nil, apperrors.Internal("failed to create task")
	}

	s.publish(ctx, userID)
	return &task, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch model.TaskPatch) (*model.Task, *apperrors.APIError) {
	task, err := s.store.Get(ctx, userID, taskID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("task_not_found", "task not found")
	}
	if err != nil {
		s.logger.Error("failed to get task", "uid", userID, "tid", taskID, "err", err)
		return nil, apperrors.Internal("failed to get task")
	}

	if patch.Title != nil {
		title, apiErr := normalizeTitle(*patch.Title)
		if apiErr != nil {
			return nil, apiErr
		}
		task.Title = title
	}
	if patch.Done != nil {
		task.Done = *patch.Done
	}
	if patch.DueDate != nil {
		task.DueDate = emptyToNil(patch.DueDate)
	}
	if patch.IsRecurring != nil {
		task.IsRecurring = patch.IsRecurring
	}
	if patch.Notes != nil {
		task.Notes = patch.Notes
	}

	if err := s.store.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("task_not_found", "task not found")
		}
		s.logger.Error("failed to update task", "uid", userID, "tid", taskID, "err", err)
		return nil, apperrors.Internal("failed to update task")
	}

	s.publish(ctx, userID)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) *apperrors.APIError {
	if err := s.store.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("task_not_found", "task not found")
		}
		s.logger.Error("failed to delete task", "uid", userID, "tid", taskID, "err", err)
		return apperrors.Internal("failed to delete task")
	}

	s.publish(ctx, userID)
	return nil
}

// Watch subscribes before reading the initial list so no mutation between
// the two is missed. The caller must call Cancel.
func (s *TaskService) Watch(ctx context.Context, userID string) (*TaskWatch, *apperrors.APIError) {
	updates, cancel := s.feed.Subscribe(userID)
	tasks, apiErr := s.List(ctx, userID)
	if apiErr != nil {
		cancel()
		return nil, apiErr
	}
	return &TaskWatch{
		Snapshot: tasks,
		Updates:  updates,
		Cancel:   cancel,
	}, nil
}

// publish pushes the full list to subscribers. The mutation has already been
// stored, so a failure here is only logged.
func (s *TaskService) publish(ctx context.Context, userID string) {
	tasks, err := s.store.List(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to publish task snapshot", "uid", userID, "err", err)
		return
	}
	s.feed.Publish(userID, tasks)
}

func normalizeTitle(raw string) (string, *apperrors.APIError) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", apperrors.InvalidField("invalid_title", "title", "title is required")
	}
	if utf8.RuneCountInString(title) > maxTaskTitleLength {
		return "", apperrors.InvalidField("invalid_title", "title", "title is too long")
	}
	return title, nil
}

func emptyToNil(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
