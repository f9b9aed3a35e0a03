package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/storage"
)

// TaskService manages tasks and their subtasks. Completion timestamps are
// derived from status transitions, never accepted from the client.
type TaskService struct {
	store *storage.Store
	now   func() time.Time
}

func NewTaskService(store *storage.Store) *TaskService {
	return &TaskService{store: store, now: time.Now}
}

func (s *TaskService) CreateTask(ctx context.Context, t core.Task) (*core.Task, error) {
	if t.Priority == "" {
		t.Priority = core.PriorityMedium
	}
	if t.Status == "" {
		t.Status = core.StatusTodo
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	t.ID = uuid.NewString()
	t.CreatedAt = s.now()
	t.ApplyStatus(t.Status, t.CreatedAt)

	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	t.Subtasks = []core.Subtask{}
	return &t, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, id string) (*core.Task, error) {
	return s.store.GetTask(ctx, userID, id)
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]core.Task, error) {
	tasks, err := s.store.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []core.Task{}
	}
	return tasks, nil
}

// TaskUpdate carries the mutable task fields. Status transitions go through
// ApplyStatus so completedAt stays consistent.
type TaskUpdate struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Priority        core.Priority   `json:"priority"`
	Status          core.TaskStatus `json:"status"`
	DueDate         *time.Time      `json:"dueDate"`
	ReminderEnabled bool            `json:"reminderEnabled"`
	ReminderTime    *time.Time      `json:"reminderTime"`
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, id string, update TaskUpdate) (*core.Task, error) {
	task, err := s.store.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	task.Title = update.Title
	task.Description = update.Description
	task.Priority = update.Priority
	task.DueDate = update.DueDate
	task.ReminderEnabled = update.ReminderEnabled
	task.ReminderTime = update.ReminderTime
	task.ApplyStatus(update.Status, s.now())
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateTask(ctx, *task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// SetTaskStatus moves the task to the given status only.
func (s *TaskService) SetTaskStatus(ctx context.Context, userID, id string, status core.TaskStatus) (*core.Task, error) {
	if !status.Valid() {
		return nil, core.BadRequestf("invalid status %q", status)
	}

	task, err := s.store.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	task.ApplyStatus(status, s.now())

	if err := s.store.UpdateTask(ctx, *task); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, id string) error {
	return s.store.DeleteTask(ctx, userID, id)
}

func (s *TaskService) AddSubtask(ctx context.Context, userID, taskID, title string) (*core.Task, error) {
	if title == "" {
		return nil, core.BadRequestf("subtask title is required")
	}

	task, err := s.store.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	st := core.Subtask{ID: uuid.NewString(), TaskID: task.ID, Title: title}
	if err := s.store.AddSubtask(ctx, st); err != nil {
		return nil, fmt.Errorf("add subtask: %w", err)
	}
	task.Subtasks = append(task.Subtasks, st)
	return task, nil
}

// ToggleSubtask flips a subtask's completion state.
func (s *TaskService) ToggleSubtask(ctx context.Context, userID, taskID, subtaskID string, completed bool) (*core.Task, error) {
	task, err := s.store.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	var st *core.Subtask
	for i := range task.Subtasks {
		if task.Subtasks[i].ID == subtaskID {
			st = &task.Subtasks[i]
			break
		}
	}
	if st == nil {
		return nil, core.NotFoundf("subtask not found")
	}

	st.ApplyCompletion(completed, s.now())
	if err := s.store.UpdateSubtask(ctx, *st); err != nil {
		return nil, fmt.Errorf("update subtask: %w", err)
	}
	return task, nil
}
