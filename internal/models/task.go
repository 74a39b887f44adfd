// internal/models/task.go
package models

import "time"

// Task represents a scheduled task belonging to a user.
type Task struct {
	ID             int64      `json:"id"`
	UserID         int        `json:"user_id"`
	Name           string     `json:"name"`
	ScheduledFor   time.Time  `json:"scheduledFor"`
	Completed      bool       `json:"completed"`
	LastRemindedAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TaskUpdate carries the patchable fields; nil means "leave as is".
type TaskUpdate struct {
	Name         *string    `json:"name"`
	ScheduledFor *time.Time `json:"scheduledFor"`
	Completed    *bool      `json:"completed"`
}
