package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/storage"
)

func newTaskService(t *testing.T) (*TaskService, *storage.Store, string) {
	t.Helper()
	store := newTestStore(t)
	svc := NewTaskService(store)
	svc.now = func() time.Time { return testNow }
	return svc, store, seedUser(t, store)
}

func TestCreateTaskDefaults(t *testing.T) {
	svc, _, userID := newTaskService(t)

	task, err := svc.CreateTask(context.Background(), core.Task{UserID: userID, Title: "Buy milk"})
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Equal(t, core.PriorityMedium, task.Priority)
	require.Equal(t, core.StatusTodo, task.Status)
	require.Nil(t, task.CompletedAt)
	require.NotNil(t, task.Subtasks)
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _, userID := newTaskService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, core.Task{UserID: userID, Title: ""})
	require.ErrorIs(t, err, core.ErrBadRequest)

	_, err = svc.CreateTask(ctx, core.Task{UserID: userID, Title: "x", Priority: "critical"})
	require.ErrorIs(t, err, core.ErrBadRequest)
}

func TestSetTaskStatus(t *testing.T) {
	svc, _, userID := newTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, core.Task{UserID: userID, Title: "Buy milk"})
	require.NoError(t, err)

	completed, err := svc.SetTaskStatus(ctx, userID, task.ID, core.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, core.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	require.True(t, completed.CompletedAt.Equal(testNow))

	// Reopening clears the completion timestamp.
	reopened, err := svc.SetTaskStatus(ctx, userID, task.ID, core.StatusTodo)
	require.NoError(t, err)
	require.Nil(t, reopened.CompletedAt)

	_, err = svc.SetTaskStatus(ctx, userID, task.ID, "done")
	require.ErrorIs(t, err, core.ErrBadRequest)

	_, err = svc.SetTaskStatus(ctx, userID, "missing", core.StatusCompleted)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateTask(t *testing.T) {
	svc, _, userID := newTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, core.Task{UserID: userID, Title: "Draft"})
	require.NoError(t, err)

	due := testNow.AddDate(0, 0, 3)
	updated, err := svc.UpdateTask(ctx, userID, task.ID, TaskUpdate{
		Title:    "Draft report",
		Priority: core.PriorityHigh,
		Status:   core.StatusInProgress,
		DueDate:  &due,
	})
	require.NoError(t, err)
	require.Equal(t, "Draft report", updated.Title)
	require.Equal(t, core.PriorityHigh, updated.Priority)
	require.Equal(t, core.StatusInProgress, updated.Status)
	require.NotNil(t, updated.DueDate)
	require.Nil(t, updated.CompletedAt)
}

func TestSubtasks(t *testing.T) {
	svc, _, userID := newTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, core.Task{UserID: userID, Title: "Pack"})
	require.NoError(t, err)

	_, err = svc.AddSubtask(ctx, userID, task.ID, "")
	require.ErrorIs(t, err, core.ErrBadRequest)

	withSub, err := svc.AddSubtask(ctx, userID, task.ID, "Passport")
	require.NoError(t, err)
	require.Len(t, withSub.Subtasks, 1)
	require.False(t, withSub.Subtasks[0].Completed)

	subID := withSub.Subtasks[0].ID
	toggled, err := svc.ToggleSubtask(ctx, userID, task.ID, subID, true)
	require.NoError(t, err)
	require.True(t, toggled.Subtasks[0].Completed)
	require.NotNil(t, toggled.Subtasks[0].CompletedAt)

	back, err := svc.ToggleSubtask(ctx, userID, task.ID, subID, false)
	require.NoError(t, err)
	require.False(t, back.Subtasks[0].Completed)
	require.Nil(t, back.Subtasks[0].CompletedAt)

	_, err = svc.ToggleSubtask(ctx, userID, task.ID, "missing", true)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteTaskCascadesSubtasks(t *testing.T) {
	svc, store, userID := newTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, core.Task{UserID: userID, Title: "Pack"})
	require.NoError(t, err)
	_, err = svc.AddSubtask(ctx, userID, task.ID, "Passport")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, userID, task.ID))

	_, err = store.GetTask(ctx, userID, task.ID)
	require.ErrorIs(t, err, core.ErrNotFound)
}
