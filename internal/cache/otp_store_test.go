package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"taskpilot/internal/models"
)

func newTestStore(t *testing.T) (OtpStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewOtpStore(client), mr
}

func TestOtpStoreSetGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	exp := time.Now().Add(5 * time.Minute).Unix()
	err := store.Set(ctx, "a@x.com", &models.PendingOtp{Code: "12345", ExpiresAt: exp}, 5*time.Minute)
	require.NoError(t, err)

	got, err := store.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "12345", got.Code)
	require.Equal(t, exp, got.ExpiresAt)
}

func TestOtpStoreGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOtpStoreOverwrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a@x.com", &models.PendingOtp{Code: "11111", ExpiresAt: 1}, time.Minute))
	require.NoError(t, store.Set(ctx, "a@x.com", &models.PendingOtp{Code: "22222", ExpiresAt: 2}, time.Minute))

	got, err := store.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "22222", got.Code)
}

func TestOtpStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a@x.com", &models.PendingOtp{Code: "12345", ExpiresAt: 1}, time.Minute))
	require.NoError(t, store.Delete(ctx, "a@x.com"))

	_, err := store.Get(ctx, "a@x.com")
	require.ErrorIs(t, err, ErrNotFound)

	// delete по отсутствующему ключу — не ошибка
	require.NoError(t, store.Delete(ctx, "a@x.com"))
}

func TestOtpStorePhysicalTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a@x.com", &models.PendingOtp{Code: "12345", ExpiresAt: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "a@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}
