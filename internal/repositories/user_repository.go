package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"taskpilot/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// DuplicateUserError — нарушение уникальности email/username на уровне БД.
// Два конкурентных verify-and-create на один email: выигрывает один,
// второй получает эту ошибку.
type DuplicateUserError struct {
	Field string // "email" | "username"
}

func (e *DuplicateUserError) Error() string {
	return "user with this " + e.Field + " already exists"
}

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByUsername(username string) (bool, error)
	List(limit, offset int) ([]*models.User, error)
	UpdateTelegramLink(userID int, chatID int64, enable bool) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, username, email, password_hash, profile_url, is_google,
	status, role,
	COALESCE(telegram_chat_id,0), COALESCE(notify_telegram,FALSE),
	created_at, updated_at`

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			username, email, password_hash, profile_url, is_google,
			status, role, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		user.Username,
		user.Email,
		user.PasswordHash,
		nullIfEmpty(user.ProfileURL),
		user.IsGoogle,
		user.Status,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return mapUserConstraintError(err)
	}
	return nil
}

// mapUserConstraintError переводит unique_violation постгреса
// в DuplicateUserError с именем поля.
func mapUserConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch {
		case strings.Contains(pqErr.Constraint, "username"):
			return &DuplicateUserError{Field: "username"}
		default:
			return &DuplicateUserError{Field: "email"}
		}
	}
	return err
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		profileURL sql.NullString
		tgChatID   sql.NullInt64
		tgNotify   sql.NullBool
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &profileURL, &u.IsGoogle,
		&u.Status, &u.Role,
		&tgChatID, &tgNotify,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if profileURL.Valid {
		u.ProfileURL = profileURL.String
	}
	if tgChatID.Valid {
		u.TelegramChatID = tgChatID.Int64
	}
	if tgNotify.Valid {
		u.NotifyTelegram = tgNotify.Bool
	}
	return u, nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *userRepository) ExistsByUsername(username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		var (
			profileURL sql.NullString
			tgChatID   sql.NullInt64
			tgNotify   sql.NullBool
		)
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &profileURL, &u.IsGoogle,
			&u.Status, &u.Role,
			&tgChatID, &tgNotify,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if profileURL.Valid {
			u.ProfileURL = profileURL.String
		}
		if tgChatID.Valid {
			u.TelegramChatID = tgChatID.Int64
		}
		if tgNotify.Valid {
			u.NotifyTelegram = tgNotify.Bool
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) UpdateTelegramLink(userID int, chatID int64, enable bool) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET telegram_chat_id=$1, notify_telegram=$2, updated_at=NOW()
		WHERE id=$3
	`, chatID, enable, userID)
	return err
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
