package repositories

import (
	"context"
	"database/sql"
	"errors"

	"taskpilot/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindByUser(ctx context.Context, userID int) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error

	ListDueForReminder(ctx context.Context, limit int) ([]models.Task, error)
	SetReminderFired(ctx context.Context, id int64) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	const q = `
		INSERT INTO tasks (user_id, name, scheduled_for, completed, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		task.UserID, task.Name, task.ScheduledFor, task.Completed,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	const q = `
		SELECT id, user_id, name, scheduled_for, completed, last_reminded_at, created_at, updated_at
		FROM tasks WHERE id = $1`
	t := &models.Task{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.UserID, &t.Name, &t.ScheduledFor, &t.Completed,
		&t.LastRemindedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *taskRepository) FindByUser(ctx context.Context, userID int) ([]models.Task, error) {
	const q = `
		SELECT id, user_id, name, scheduled_for, completed, last_reminded_at, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY scheduled_for DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Name, &t.ScheduledFor, &t.Completed,
			&t.LastRemindedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	const q = `
		UPDATE tasks
		SET name=$1, scheduled_for=$2, completed=$3, last_reminded_at=$4, updated_at=NOW()
		WHERE id=$5`
	_, err := r.db.ExecContext(ctx, q, task.Name, task.ScheduledFor, task.Completed, task.LastRemindedAt, task.ID)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) ListDueForReminder(ctx context.Context, limit int) ([]models.Task, error) {
	const q = `
		SELECT id, user_id, name, scheduled_for, completed, last_reminded_at, created_at, updated_at
		FROM tasks
		WHERE scheduled_for <= NOW()
		  AND completed = FALSE
		  AND last_reminded_at IS NULL
		ORDER BY scheduled_for ASC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Name, &t.ScheduledFor, &t.Completed,
			&t.LastRemindedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *taskRepository) SetReminderFired(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET last_reminded_at = NOW(), updated_at=NOW() WHERE id=$1`, id)
	return err
}
