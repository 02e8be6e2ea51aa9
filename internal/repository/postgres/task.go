package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/taskmanager-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	db DB
}

func NewTaskRepository(db DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

const taskColumns = `id, owner_id, title, description, status, priority, due_date, completed_at, created_at, updated_at`

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		INSERT INTO tasks (id, owner_id, title, description, status, priority, due_date, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description,
		string(task.Status), string(task.Priority), task.DueDate, task.CompletedAt,
	))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", mapWriteError(err))
	}

	return saved, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by owner id: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
		    due_date = $6, completed_at = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID, task.Title, task.Description, string(task.Status), string(task.Priority),
		task.DueDate, task.CompletedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", mapWriteError(err))
	}

	return saved, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (model.Task, error) {
	var (
		task     model.Task
		status   string
		priority string
	)
	err := row.Scan(
		&task.ID, &task.OwnerID, &task.Title, &task.Description, &status, &priority,
		&task.DueDate, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	task.Status = model.TaskStatus(status)
	task.Priority = model.TaskPriority(priority)
	return task, err
}
