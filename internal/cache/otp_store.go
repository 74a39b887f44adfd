package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskpilot/internal/models"
)

const otpKeyPrefix = "otp:"

// ErrNotFound — по ключу нет записи (не выдавалась, истекла или уже
// использована).
var ErrNotFound = errors.New("otp entry not found")

// OtpStore — эфемерное хранилище кодов подтверждения, ключ — email.
// Set перезаписывает предыдущую запись (на email всегда не больше одного
// актуального кода), гонки issue/resend решаются как last-writer-wins.
type OtpStore interface {
	Set(ctx context.Context, email string, entry *models.PendingOtp, ttl time.Duration) error
	Get(ctx context.Context, email string) (*models.PendingOtp, error)
	Delete(ctx context.Context, email string) error
}

type redisOtpStore struct {
	client *redis.Client
}

func NewOtpStore(client *redis.Client) OtpStore {
	return &redisOtpStore{client: client}
}

func (s *redisOtpStore) key(email string) string {
	return otpKeyPrefix + email
}

func (s *redisOtpStore) Set(ctx context.Context, email string, entry *models.PendingOtp, ttl time.Duration) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(email), b, ttl).Err(); err != nil {
		return fmt.Errorf("otp store set: %w", err)
	}
	return nil
}

func (s *redisOtpStore) Get(ctx context.Context, email string) (*models.PendingOtp, error) {
	b, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("otp store get: %w", err)
	}
	var entry models.PendingOtp
	if err := json.Unmarshal(b, &entry); err != nil {
		return nil, fmt.Errorf("otp store decode: %w", err)
	}
	return &entry, nil
}

func (s *redisOtpStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("otp store delete: %w", err)
	}
	return nil
}
