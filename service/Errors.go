package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the auth services. Controllers match these with
// errors.Is and map them to HTTP statuses; the messages themselves never carry
// stored secrets or internal detail.
var (
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidOrExpiredOTP     = errors.New("invalid or expired otp")
	ErrExpiredToken            = errors.New("token has expired")
	ErrMalformedToken          = errors.New("malformed token")
	ErrRevokedToken            = errors.New("token has been revoked")
	ErrMissingOrMalformedToken = errors.New("token is missing or invalid")
	ErrPersistenceUnavailable  = errors.New("persistence unavailable")
	ErrNotificationFailed      = errors.New("failed to send notification")
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailTaken              = errors.New("email is already taken")
	ErrPhoneTaken              = errors.New("phone number is already taken")
	ErrInvalidRole             = errors.New("invalid role specified")
	ErrInvalidResetToken       = errors.New("invalid or expired reset token")
	ErrPasswordMismatch        = errors.New("new passwords do not match")
	ErrWrongOldPassword        = errors.New("old password is incorrect")
)

// persistenceErr wraps a store fault so callers can match ErrPersistenceUnavailable
// while the cause stays in the chain for logging.
func persistenceErr(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
}
