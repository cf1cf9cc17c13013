package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/telemost/accountd/internal/account/store"
	"github.com/telemost/accountd/internal/account/store/drivers/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestDirectoryCreate(t *testing.T) {
	ctx := context.Background()
	dir := &Directory{Store: newTestStore(t)}

	t.Run("registers a new user", func(t *testing.T) {
		user, err := dir.Create(ctx, "Alice", "alice@example.com", "0400000001", nil, "s3cret")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "alice@example.com", user.Email)
		require.NotEqual(t, "s3cret", user.PasswordHash)

		stored, err := dir.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, user.ID, stored.ID)
		require.Nil(t, stored.PlanID)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		for _, tc := range []struct {
			name, email, phone, password string
		}{
			{"", "bob@example.com", "0400000002", "pw"},
			{"Bob", "", "0400000002", "pw"},
			{"Bob", "bob@example.com", "", "pw"},
			{"Bob", "bob@example.com", "0400000002", ""},
		} {
			_, err := dir.Create(ctx, tc.name, tc.email, tc.phone, nil, tc.password)
			require.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := dir.Create(ctx, "Alice Again", "alice@example.com", "0400000003", nil, "other")
		require.ErrorIs(t, err, ErrDuplicateEmail)

		// The original record must be untouched.
		stored, err := dir.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "Alice", stored.Name)
		require.Equal(t, "0400000001", stored.PhoneNumber)
	})

	t.Run("stores an initial plan selection", func(t *testing.T) {
		plan := int64(3)
		user, err := dir.Create(ctx, "Carol", "carol@example.com", "0400000004", &plan, "pw")
		require.NoError(t, err)

		stored, err := dir.FindByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.NotNil(t, stored.PlanID)
		require.Equal(t, int64(3), *stored.PlanID)
	})
}

func TestDirectoryCreateConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	dir := &Directory{Store: newTestStore(t)}

	// Racing registrations for one email: exactly one row may win, the
	// rest must come back as duplicates with nothing half-written.
	const racers = 8
	results := make([]error, racers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := dir.Create(ctx, "Racer", "race@example.com",
				fmt.Sprintf("049900%02d", i), nil, "pw")
			results[i] = err
		}()
	}
	close(start)
	wg.Wait()

	var created, duplicates int
	for _, err := range results {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicateEmail):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, created)
	require.Equal(t, racers-1, duplicates)

	user, err := dir.FindByEmail(ctx, "race@example.com")
	require.NoError(t, err)
	require.Equal(t, "Racer", user.Name)
}

func TestDirectoryAuthenticate(t *testing.T) {
	ctx := context.Background()
	dir := &Directory{Store: newTestStore(t)}

	user, err := dir.Create(ctx, "Dave", "dave@example.com", "0400000005", nil, "correct-horse")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		got, err := dir.Authenticate(ctx, "dave@example.com", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := dir.Authenticate(ctx, "nobody@example.com", "correct-horse")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := dir.Authenticate(ctx, "dave@example.com", "battery-staple")
		require.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestDirectoryUpdateEmail(t *testing.T) {
	ctx := context.Background()
	dir := &Directory{Store: newTestStore(t)}

	alice, err := dir.Create(ctx, "Alice", "alice@example.com", "0400000001", nil, "pw")
	require.NoError(t, err)
	_, err = dir.Create(ctx, "Bob", "bob@example.com", "0400000002", nil, "pw")
	require.NoError(t, err)

	t.Run("changes the login email", func(t *testing.T) {
		require.NoError(t, dir.UpdateEmail(ctx, alice.ID, "alice2@example.com"))

		_, err := dir.FindByEmail(ctx, "alice@example.com")
		require.ErrorIs(t, err, ErrUserNotFound)

		stored, err := dir.FindByEmail(ctx, "alice2@example.com")
		require.NoError(t, err)
		require.Equal(t, alice.ID, stored.ID)
	})

	t.Run("rejects an email owned by another user", func(t *testing.T) {
		err := dir.UpdateEmail(ctx, alice.ID, "bob@example.com")
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("setting the current email again is a no-op", func(t *testing.T) {
		require.NoError(t, dir.UpdateEmail(ctx, alice.ID, "alice2@example.com"))
	})

	t.Run("rejects empty email", func(t *testing.T) {
		require.ErrorIs(t, dir.UpdateEmail(ctx, alice.ID, ""), ErrInvalidInput)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := dir.UpdateEmail(ctx, "missing-id", "fresh@example.com")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDirectoryUpdatePassword(t *testing.T) {
	ctx := context.Background()
	dir := &Directory{Store: newTestStore(t)}

	user, err := dir.Create(ctx, "Erin", "erin@example.com", "0400000006", nil, "old-password")
	require.NoError(t, err)

	require.NoError(t, dir.UpdatePassword(ctx, user.ID, "new-password"))

	_, err = dir.Authenticate(ctx, "erin@example.com", "old-password")
	require.ErrorIs(t, err, ErrBadCredentials)

	_, err = dir.Authenticate(ctx, "erin@example.com", "new-password")
	require.NoError(t, err)

	t.Run("rejects empty password", func(t *testing.T) {
		require.ErrorIs(t, dir.UpdatePassword(ctx, user.ID, ""), ErrInvalidInput)
	})

	t.Run("unknown user", func(t *testing.T) {
		require.ErrorIs(t, dir.UpdatePassword(ctx, "missing-id", "pw"), ErrUserNotFound)
	})
}

func TestDirectorySetPlan(t *testing.T) {
	ctx := context.Background()
	dir := &Directory{Store: newTestStore(t)}

	user, err := dir.Create(ctx, "Frank", "frank@example.com", "0400000007", nil, "pw")
	require.NoError(t, err)

	require.NoError(t, dir.SetPlan(ctx, user.ID, 7))

	stored, err := dir.FindByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, stored.PlanID)
	require.Equal(t, int64(7), *stored.PlanID)

	// Overwriting an existing selection is allowed.
	require.NoError(t, dir.SetPlan(ctx, user.ID, 2))
	stored, err = dir.FindByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.Equal(t, int64(2), *stored.PlanID)

	t.Run("unknown user", func(t *testing.T) {
		require.ErrorIs(t, dir.SetPlan(ctx, "missing-id", 1), ErrUserNotFound)
	})
}
