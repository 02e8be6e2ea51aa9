package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/taskmanager-server/internal/api/http/response"
	"github.com/dtroode/taskmanager-server/internal/apierror"
	"github.com/dtroode/taskmanager-server/internal/logger"
	"github.com/dtroode/taskmanager-server/internal/model"
)

// TaskService defines task operations scoped to their owner.
type TaskService interface {
	Create(ctx context.Context, userID uuid.UUID, params model.CreateTaskParams) (model.Task, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	Get(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, params model.UpdateTaskParams) (model.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error)
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

type updateTaskRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Priority    *string        `json:"priority"`
	DueDate     nullableString `json:"dueDate"`
}

// nullableString tells an absent field apart from an explicit null.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type createTaskResponse struct {
	Message string     `json:"message"`
	Task    model.Task `json:"task"`
}

type deleteTaskResponse struct {
	Message     string     `json:"message"`
	DeletedTask model.Task `json:"deletedTask"`
}

// Task handles HTTP endpoints for tasks of the authenticated user.
type Task struct {
	taskService    TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(taskService TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{
		taskService:    taskService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// List returns every task of the caller.
func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(r.Context(), userID)
	if err != nil {
		response.Error(w, r, err, h.logger)
		return
	}

	response.JSON(w, http.StatusOK, tasks)
}

// Get returns a single task of the caller.
func (h *Task) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.ids(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), userID, taskID)
	if err != nil {
		response.Error(w, r, err, h.logger)
		return
	}

	response.JSON(w, http.StatusOK, task)
}

// Create adds a task for the caller.
func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, err, h.logger)
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, model.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatus(req.Status),
		Priority:    model.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		response.Error(w, r, err, h.logger)
		return
	}

	response.JSON(w, http.StatusCreated, createTaskResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

// Update applies a partial update to a task of the caller.
func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.ids(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, err, h.logger)
		return
	}

	params := model.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		params.Status = &status
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		params.Priority = &priority
	}
	if req.DueDate.Set {
		params.DueDate = req.DueDate.Value
		params.ClearDueDate = req.DueDate.Value == nil
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, params)
	if err != nil {
		response.Error(w, r, err, h.logger)
		return
	}

	response.JSON(w, http.StatusOK, task)
}

// Delete removes a task of the caller and echoes it back.
func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := h.ids(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Delete(r.Context(), userID, taskID)
	if err != nil {
		response.Error(w, r, err, h.logger)
		return
	}

	response.JSON(w, http.StatusOK, deleteTaskResponse{
		Message:     "Task deleted successfully",
		DeletedTask: task,
	})
}

func (h *Task) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, apierror.NewErrMissingAuthorizationToken(), h.logger)
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// ids resolves the caller and the {id} path parameter. A malformed id cannot
// name an existing task, so it is reported as not found.
func (h *Task) ids(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := h.userID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	raw := chi.URLParam(r, "id")
	taskID, err := uuid.Parse(raw)
	if err != nil {
		response.Error(w, r, apierror.NewErrTaskNotFound(raw), h.logger)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, taskID, true
}
