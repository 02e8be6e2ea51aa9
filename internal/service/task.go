package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/taskmanager-server/internal/apierror"
	"github.com/dtroode/taskmanager-server/internal/logger"
	"github.com/dtroode/taskmanager-server/internal/model"
)

const (
	msgTitleRequired   = "Title is required"
	msgInvalidStatus   = "Status must be one of: pending, in_progress, completed"
	msgInvalidPriority = "Priority must be one of: low, medium, high"
	msgInvalidDueDate  = "Invalid due date format. If provided, must be a valid date"
)

// Task implements CRUD over tasks owned by the authenticated user.
type Task struct {
	taskStore model.TaskStore
	userStore model.UserStore
	logger    *logger.Logger
	now       func() time.Time
}

func NewTask(
	taskStore model.TaskStore,
	userStore model.UserStore,
	logger *logger.Logger,
) *Task {
	return &Task{
		taskStore: taskStore,
		userStore: userStore,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Task) Create(ctx context.Context, userID uuid.UUID, params model.CreateTaskParams) (model.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return model.Task{}, apierror.NewErrInvalidArgument(msgTitleRequired)
	}

	status := params.Status
	if status == "" {
		status = model.TaskStatusPending
	}
	if !status.Valid() {
		return model.Task{}, apierror.NewErrInvalidArgument(msgInvalidStatus)
	}

	priority := params.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}
	if !priority.Valid() {
		return model.Task{}, apierror.NewErrInvalidArgument(msgInvalidPriority)
	}

	dueDate, err := parseDueDate(params.DueDate)
	if err != nil {
		return model.Task{}, err
	}

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, apierror.NewErrUserNotFound()
		}
		return model.Task{}, s.internal("failed to get user by id", err)
	}

	task := model.Task{
		ID:          uuid.New(),
		OwnerID:     userID,
		Title:       title,
		Description: params.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
	}
	if status == model.TaskStatusCompleted {
		now := s.now()
		task.CompletedAt = &now
	}

	task, err = s.taskStore.Create(ctx, task)
	if err != nil {
		if errors.Is(err, model.ErrInvalidField) {
			return model.Task{}, apierror.NewErrRejectedByStore(err)
		}
		return model.Task{}, s.internal("failed to create task", err)
	}

	s.logger.Debug("Task service: task created", "user_id", userID, "task_id", task.ID)

	return task, nil
}

func (s *Task) List(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.taskStore.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, s.internal("failed to get tasks by owner id", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *Task) Get(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, apierror.NewErrTaskNotFound(taskID.String())
		}
		return model.Task{}, s.internal("failed to get task by id", err)
	}

	if task.OwnerID != userID {
		return model.Task{}, apierror.NewErrTaskNotFound(taskID.String())
	}

	return task, nil
}

// Update applies a partial update. Moving into the completed status stamps
// CompletedAt and moving out of it clears the stamp.
func (s *Task) Update(ctx context.Context, userID, taskID uuid.UUID, params model.UpdateTaskParams) (model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return model.Task{}, apierror.NewErrInvalidArgument(msgTitleRequired)
		}
		task.Title = title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Priority != nil {
		if !params.Priority.Valid() {
			return model.Task{}, apierror.NewErrInvalidArgument(msgInvalidPriority)
		}
		task.Priority = *params.Priority
	}
	if params.ClearDueDate {
		task.DueDate = nil
	} else if params.DueDate != nil {
		dueDate, err := parseDueDate(params.DueDate)
		if err != nil {
			return model.Task{}, err
		}
		task.DueDate = dueDate
	}
	if params.Status != nil {
		if !params.Status.Valid() {
			return model.Task{}, apierror.NewErrInvalidArgument(msgInvalidStatus)
		}
		switch {
		case *params.Status == model.TaskStatusCompleted && task.Status != model.TaskStatusCompleted:
			now := s.now()
			task.CompletedAt = &now
		case *params.Status != model.TaskStatusCompleted:
			task.CompletedAt = nil
		}
		task.Status = *params.Status
	}

	updated, err := s.taskStore.Update(ctx, task)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return model.Task{}, apierror.NewErrTaskNotFound(taskID.String())
		case errors.Is(err, model.ErrInvalidField):
			return model.Task{}, apierror.NewErrRejectedByStore(err)
		}
		return model.Task{}, s.internal("failed to update task", err)
	}

	return updated, nil
}

// Delete removes a task and returns it as it was before deletion.
func (s *Task) Delete(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, apierror.NewErrTaskNotFound(taskID.String())
		}
		return model.Task{}, s.internal("failed to delete task", err)
	}

	s.logger.Debug("Task service: task deleted", "user_id", userID, "task_id", taskID)

	return task, nil
}

func (s *Task) internal(msg string, err error) error {
	s.logger.Error("Task service: "+msg, "error", err.Error())
	return apierror.NewErrInternalServerError(fmt.Errorf("%s: %w", msg, err))
}

// dueDateLayouts are tried in order. Month names match case-insensitively,
// so "12 sep 2025" parses with "2 Jan 2006".
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	model.DateLayout,
	"2006/01/02",
	"01/02/2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, 02 Jan 2006 15:04:05 MST",
}

// parseDueDate accepts ISO timestamps, calendar dates and common written forms.
// Values without a zone are taken as UTC.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}

	value := strings.Join(strings.Fields(*raw), " ")
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}

	return nil, apierror.NewErrInvalidArgument(msgInvalidDueDate)
}
