package sessionstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tarotlabs/go-tarot-server/auth"
	apperrors "github.com/tarotlabs/go-tarot-server/internal/errors"
	"github.com/tarotlabs/go-tarot-server/server/sessionstore"
)

func TestInMemoryStore(t *testing.T) {
	t.Run("set then get returns a copy", func(t *testing.T) {
		store := sessionstore.NewInMemoryStore(time.Minute)
		data := &sessionstore.Data{
			Attempt:   &auth.LoginAttempt{State: "abc", CodeVerifier: "ver", CreatedAt: time.Now()},
			CreatedAt: time.Now(),
		}
		require.NoError(t, store.Set("sid-1", data))

		got, err := store.Get("sid-1")
		require.NoError(t, err)
		require.Equal(t, "abc", got.Attempt.State)

		// Mutating the returned copy must not affect the stored record.
		got.Attempt.State = "mutated"
		again, err := store.Get("sid-1")
		require.NoError(t, err)
		require.Equal(t, "abc", again.Attempt.State)
	})

	t.Run("missing session", func(t *testing.T) {
		store := sessionstore.NewInMemoryStore(time.Minute)
		_, err := store.Get("nope")
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("delete removes all state", func(t *testing.T) {
		store := sessionstore.NewInMemoryStore(time.Minute)
		require.NoError(t, store.Set("sid-1", &sessionstore.Data{CreatedAt: time.Now()}))
		require.NoError(t, store.Delete("sid-1"))
		_, err := store.Get("sid-1")
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("stale session is expired on access", func(t *testing.T) {
		store := sessionstore.NewInMemoryStore(time.Minute)
		require.NoError(t, store.Set("sid-1", &sessionstore.Data{
			Attempt:   &auth.LoginAttempt{State: "abc"},
			CreatedAt: time.Now().Add(-2 * time.Minute),
		}))
		_, err := store.Get("sid-1")
		require.ErrorIs(t, err, apperrors.ErrSessionExpired)

		// The expired record is gone entirely.
		_, err = store.Get("sid-1")
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("zero ttl disables expiry", func(t *testing.T) {
		store := sessionstore.NewInMemoryStore(0)
		require.NoError(t, store.Set("sid-1", &sessionstore.Data{
			CreatedAt: time.Now().Add(-24 * time.Hour),
		}))
		_, err := store.Get("sid-1")
		require.NoError(t, err)
	})

	t.Run("empty session id is rejected", func(t *testing.T) {
		store := sessionstore.NewInMemoryStore(time.Minute)
		require.Error(t, store.Set("", &sessionstore.Data{}))
		_, err := store.Get("")
		require.Error(t, err)
		require.Error(t, store.Delete(""))
	})
}
