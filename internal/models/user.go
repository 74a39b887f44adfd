package models

import "time"

type UserStatus string

const (
	StatusActive  UserStatus = "active"
	StatusBlocked UserStatus = "blocked"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // не отдаём наружу
	ProfileURL   string     `json:"profile_url,omitempty"`
	IsGoogle     bool       `json:"is_google"`
	Status       UserStatus `json:"status"`
	Role         UserRole   `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// telegram-уведомления по задачам
	TelegramChatID int64 `json:"-"`
	NotifyTelegram bool  `json:"-"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationRequest — полный payload регистрации; один и тот же
// валидируется при запросе OTP и при создании аккаунта после verify.
type RegistrationRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	ProfileURL string `json:"profile_url"`
	IsGoogle   bool   `json:"is_google"`
}
