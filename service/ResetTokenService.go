package service

import (
	"errors"
	"time"

	"logistics-accounts/repository"

	"github.com/google/uuid"
)

const resetTokenValidity = 1 * time.Hour

// ResetTokenService issues and validates single-use password-reset tokens.
// The token itself lives on the user row, so one active token per user falls
// out of the storage shape: issuing a new one overwrites the old.
//
// Validation does not consume the token. The caller must call
// InvalidateResetToken right after a successful password update; until then
// (or until expiry) the token stays valid.
type ResetTokenService struct {
	users    repository.UserRepository
	validity time.Duration
	now      func() time.Time
}

func NewResetTokenService(users repository.UserRepository) *ResetTokenService {
	return &ResetTokenService{
		users:    users,
		validity: resetTokenValidity,
		now:      time.Now,
	}
}

// GenerateResetToken creates a random token valid for one hour and persists it
// on the user record.
func (s *ResetTokenService) GenerateResetToken(email string) (string, error) {
	token := uuid.New().String()
	expiry := s.now().Add(s.validity)

	if err := s.users.SaveResetToken(email, token, expiry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", persistenceErr(err)
	}
	return token, nil
}

// ValidateResetToken reports whether the token is known and not yet expired.
func (s *ResetTokenService) ValidateResetToken(token string) (bool, error) {
	user, err := s.users.FindByResetToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, persistenceErr(err)
	}
	return user.HasActiveResetToken(s.now()), nil
}

// GetEmailFromToken resolves the owning email; callers validate first.
func (s *ResetTokenService) GetEmailFromToken(token string) (string, error) {
	user, err := s.users.FindByResetToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidResetToken
		}
		return "", persistenceErr(err)
	}
	return user.Email, nil
}

// InvalidateResetToken clears the token and expiry fields. Idempotent.
func (s *ResetTokenService) InvalidateResetToken(token string) error {
	if err := s.users.ClearResetToken(token); err != nil {
		return persistenceErr(err)
	}
	return nil
}
