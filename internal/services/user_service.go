package services

import (
	"fmt"
	"strings"

	"taskpilot/internal/models"
	"taskpilot/internal/repositories"
)

type UserService interface {
	CreateFromRegistration(req *models.RegistrationRequest) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByUsername(username string) (bool, error)
	ListUsers(limit, offset int) ([]*models.User, error)
	LinkTelegram(userID int, chatID int64, enable bool) error
}

type userService struct {
	repo        repositories.UserRepository
	authService AuthService
}

func NewUserService(repo repositories.UserRepository, authService AuthService) UserService {
	return &userService{
		repo:        repo,
		authService: authService,
	}
}

// CreateFromRegistration — хэширует пароль и создаёт пользователя.
// Plaintext-пароль дальше этого места не живёт.
func (s *userService) CreateFromRegistration(req *models.RegistrationRequest) (*models.User, error) {
	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	hashedPassword, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hashedPassword,
		ProfileURL:   req.ProfileURL,
		IsGoogle:     req.IsGoogle,
		Status:       models.StatusActive,
		Role:         models.RoleUser,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

func (s *userService) ExistsByEmail(email string) (bool, error) {
	return s.repo.ExistsByEmail(email)
}

func (s *userService) ExistsByUsername(username string) (bool, error) {
	return s.repo.ExistsByUsername(username)
}

func (s *userService) ListUsers(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}

func (s *userService) LinkTelegram(userID int, chatID int64, enable bool) error {
	return s.repo.UpdateTelegramLink(userID, chatID, enable)
}
