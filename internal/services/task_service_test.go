package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskpilot/internal/models"
	"taskpilot/internal/repositories"
)

type fakeTaskRepo struct {
	tasks  map[int64]*models.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]*models.Task{}}
}

func (f *fakeTaskRepo) Store(ctx context.Context, task *models.Task) error {
	f.nextID++
	task.ID = f.nextID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	if t, ok := f.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repositories.ErrTaskNotFound
}

func (f *fakeTaskRepo) FindByUser(ctx context.Context, userID int) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return repositories.ErrTaskNotFound
	}
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return repositories.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) ListDueForReminder(ctx context.Context, limit int) ([]models.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) SetReminderFired(ctx context.Context, id int64) error {
	return nil
}

func seedTask(t *testing.T, svc TaskService) *models.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), &models.Task{
		UserID:       7,
		Name:         "buy milk",
		ScheduledFor: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return task
}

func TestTaskUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo())
	ctx := context.Background()
	task := seedTask(t, svc)

	done := true
	updated, err := svc.Update(ctx, task.ID, &models.TaskUpdate{Completed: &done})
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, "buy milk", updated.Name)
	require.True(t, task.ScheduledFor.Equal(updated.ScheduledFor))

	name := "buy bread"
	updated, err = svc.Update(ctx, task.ID, &models.TaskUpdate{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "buy bread", updated.Name)
	require.True(t, updated.Completed)
}

func TestTaskRescheduleResetsReminder(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ctx := context.Background()
	task := seedTask(t, svc)

	fired := time.Now()
	stored := repo.tasks[task.ID]
	stored.LastRemindedAt = &fired

	newTime := time.Now().Add(48 * time.Hour)
	updated, err := svc.Update(ctx, task.ID, &models.TaskUpdate{ScheduledFor: &newTime})
	require.NoError(t, err)
	require.Nil(t, updated.LastRemindedAt)
	require.True(t, newTime.Equal(updated.ScheduledFor))

	// перенос без изменения срока напоминание не трогает
	stored = repo.tasks[task.ID]
	stored.LastRemindedAt = &fired
	name := "renamed"
	updated, err = svc.Update(ctx, task.ID, &models.TaskUpdate{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, updated.LastRemindedAt)
}

func TestTaskUpdateMissing(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo())

	name := "x"
	_, err := svc.Update(context.Background(), 999, &models.TaskUpdate{Name: &name})
	require.ErrorIs(t, err, repositories.ErrTaskNotFound)
}

func TestTaskDelete(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo())
	ctx := context.Background()
	task := seedTask(t, svc)

	require.NoError(t, svc.Delete(ctx, task.ID))
	_, err := svc.GetByID(ctx, task.ID)
	require.ErrorIs(t, err, repositories.ErrTaskNotFound)
	require.ErrorIs(t, svc.Delete(ctx, task.ID), repositories.ErrTaskNotFound)
}
