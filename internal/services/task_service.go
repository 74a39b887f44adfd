// internal/services/task_service.go
package services

import (
	"context"

	"taskpilot/internal/models"
	"taskpilot/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetByUser(ctx context.Context, userID int) ([]models.Task, error)
	Update(ctx context.Context, id int64, patch *models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	repo repositories.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) GetByUser(ctx context.Context, userID int) ([]models.Task, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *taskService) Update(ctx context.Context, id int64, patch *models.TaskUpdate) (*models.Task, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.ScheduledFor != nil {
		existing.ScheduledFor = *patch.ScheduledFor
		// перенос срока реактивирует напоминание
		existing.LastRemindedAt = nil
	}
	if patch.Completed != nil {
		existing.Completed = *patch.Completed
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
