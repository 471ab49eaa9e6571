package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roseboard/backend/internal/model"
)

const taskColumns = `id, user_id, title, done, created_at, due_date, is_recurring, notes`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.UserID,
		task.Title,
		task.Done,
		task.CreatedAt,
		nullableString(task.DueDate),
		nullableBool(task.IsRecurring),
		nullableString(task.Notes),
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND id = ?`,
		userID,
		taskID,
	)
	return scanTask(row)
}

// List returns the user's tasks, newest first.
func (r *TaskRepository) List(ctx context.Context, userID string) ([]model.Task, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE tasks
		 SET title = ?,
		     done = ?,
		     due_date = ?,
		     is_recurring = ?,
		     notes = ?
		 WHERE user_id = ? AND id = ?`,
		task.Title,
		task.Done,
		nullableString(task.DueDate),
		nullableBool(task.IsRecurring),
		nullableString(task.Notes),
		task.UserID,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return expectOneRow(result, "update task")
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectOneRow(result, "delete task")
}

func expectOneRow(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(s scanner) (*model.Task, error) {
	task := model.Task{}
	var dueDate sql.NullString
	var isRecurring sql.NullBool
	var notes sql.NullString
	err := s.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Done,
		&task.CreatedAt,
		&dueDate,
		&isRecurring,
		&notes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	if dueDate.Valid {
		value := dueDate.String
		task.DueDate = &value
	}
	if isRecurring.Valid {
		value := isRecurring.Bool
		task.IsRecurring = &value
	}
	if notes.Valid {
		value := notes.String
		task.Notes = &value
	}
	return &task, nil
}

func nullableString(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

func nullableBool(value *bool) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
