package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/telemost/accountd/internal/account/domain"
	"github.com/telemost/accountd/internal/account/store"
	"github.com/telemost/accountd/pkg/cryptox"
	"github.com/telemost/accountd/pkg/idx"
)

var (
	ErrInvalidInput   = errors.New("invalid_input")
	ErrDuplicateEmail = errors.New("duplicate_email")
	ErrUserNotFound   = errors.New("user_not_found")
	ErrBadCredentials = errors.New("bad_credentials")
)

// Directory owns the user record lifecycle: registration, lookup,
// credential checks and the three authenticated mutations. Every call
// re-reads current state from the store; user rows are never cached
// in-process because email, password and plan can change between requests.
type Directory struct {
	Store store.Store
}

// Create registers a new user. All of name, email, phone and password must
// be non-empty. The email pre-check runs in the same transaction as the
// insert; the UNIQUE index on users.email remains the authoritative guard,
// so a lost race still comes back as ErrDuplicateEmail.
func (s *Directory) Create(
	ctx context.Context,
	name, email, phone string,
	planID *int64,
	password string,
) (domain.User, error) {
	if name == "" || email == "" || phone == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		PlanID:       planID,
		PasswordHash: hash,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		if err == nil {
			return ErrDuplicateEmail
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

// FindByEmail does an exact, case-sensitive lookup by login email.
func (s *Directory) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// Authenticate checks the email/password pair. An unknown email and a wrong
// password fail differently (ErrUserNotFound vs ErrBadCredentials); keeping
// them distinguishable is part of the preserved API contract.
func (s *Directory) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrBadCredentials
	}

	return user, nil
}

// UpdateEmail changes the login email of an existing user. The new email
// must not belong to a different record; the check and the write run in one
// transaction with the UNIQUE index backstopping the race.
func (s *Directory) UpdateEmail(ctx context.Context, userID, newEmail string) error {
	if newEmail == "" {
		return ErrInvalidInput
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Users().GetUserByEmail(ctx, newEmail)
		if err == nil && existing.ID != userID {
			return ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Users().UpdateEmail(ctx, userID, newEmail); err != nil {
			switch {
			case errors.Is(err, store.ErrAlreadyExists):
				return ErrDuplicateEmail
			case errors.Is(err, store.ErrNotFound):
				return ErrUserNotFound
			}
			return err
		}
		return nil
	})
}

// UpdatePassword re-hashes and overwrites the stored credential.
func (s *Directory) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// SetPlan overwrites the plan selection. There is no plan catalog in this
// system, so the value is not validated against anything.
func (s *Directory) SetPlan(ctx context.Context, userID string, planID int64) error {
	if err := s.Store.Users().UpdatePlanID(ctx, userID, &planID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
