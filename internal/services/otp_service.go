package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"taskpilot/internal/cache"
	"taskpilot/internal/models"
	"taskpilot/internal/utils"
)

var (
	ErrOtpNotFound = errors.New("otp not found")
	ErrOtpExpired  = errors.New("otp expired")
	ErrOtpMismatch = errors.New("otp mismatch")
)

// OtpService — выпуск и проверка кодов подтверждения регистрации.
//
// Выпуск идемпотентен: повторный запрос на тот же email перетирает
// предыдущий код. Число попыток ввода кода в пределах TTL не ограничено —
// унаследовано от исходной системы, осознанно не ужесточаем здесь.
type OtpService interface {
	// RequestOtp валидирует payload регистрации, генерирует код, кладёт его
	// в store и отправляет на email. Возвращает email, на который ушёл код.
	// Ошибка валидации — FieldErrors, без побочных эффектов.
	RequestOtp(ctx context.Context, req *models.RegistrationRequest) (string, error)

	// VerifyOtp сверяет код и при совпадении создаёт пользователя.
	VerifyOtp(ctx context.Context, email, code string, req *models.RegistrationRequest) (*models.User, error)
}

type otpService struct {
	store   cache.OtpStore
	userSvc UserService
	email   EmailService

	ttl    time.Duration
	digits int
	now    func() time.Time
}

func NewOtpService(store cache.OtpStore, userSvc UserService, email EmailService, ttl time.Duration, digits int) OtpService {
	return &otpService{
		store:   store,
		userSvc: userSvc,
		email:   email,
		ttl:     ttl,
		digits:  digits,
		now:     time.Now,
	}
}

func (s *otpService) RequestOtp(ctx context.Context, req *models.RegistrationRequest) (string, error) {
	errs, err := ValidateRegistration(req, s.userSvc)
	if err != nil {
		return "", err
	}
	if errs != nil {
		return "", errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	code, err := utils.GenerateOtp(s.digits)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	entry := &models.PendingOtp{
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl).Unix(),
	}
	if err := s.store.Set(ctx, email, entry, s.ttl); err != nil {
		return "", err
	}

	// отправка обязана быть громкой: провал почты — провал запроса
	if err := s.email.SendOtpEmail(email, code); err != nil {
		return "", err
	}

	log.Printf("[otp][request] issued for email=%q ttl=%s", email, s.ttl)
	return email, nil
}

func (s *otpService) VerifyOtp(ctx context.Context, email, code string, req *models.RegistrationRequest) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	entry, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, ErrOtpNotFound
		}
		return nil, err
	}

	// логическое истечение: запись может пережить свой expires_at в redis
	if s.now().Unix() >= entry.ExpiresAt {
		return nil, ErrOtpExpired
	}

	if entry.Code != code {
		return nil, ErrOtpMismatch
	}

	// код совпал — повторная валидация полного payload перед созданием
	errs, err := ValidateRegistration(req, s.userSvc)
	if err != nil {
		return nil, err
	}
	if errs != nil {
		return nil, errs
	}

	user, err := s.userSvc.CreateFromRegistration(req)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, email); err != nil {
		// аккаунт уже создан; запись добьёт redis по TTL
		log.Printf("[otp][verify] warning: failed to delete entry for email=%q: %v", email, err)
	}

	log.Printf("[otp][verify] account created userID=%d email=%q", user.ID, email)
	return user, nil
}
