package service

import (
	"time"

	"logistics-accounts/repository"
	"logistics-accounts/util"
)

const (
	otpLength   = 6
	otpValidity = 5 * time.Minute
)

// OtpService owns the one-active-code-per-email state machine for login OTPs.
// Codes are keyed by the account's email and expire lazily: nothing sweeps
// stale records, they are checked (and evicted) at validation time.
type OtpService struct {
	repo     repository.OtpRepository
	validity time.Duration
	now      func() time.Time
}

func NewOtpService(repo repository.OtpRepository) *OtpService {
	return &OtpService{
		repo:     repo,
		validity: otpValidity,
		now:      time.Now,
	}
}

// Generate produces a fresh 6-digit code and stores it, replacing any pending
// code for that email. The caller is responsible for delivery.
func (s *OtpService) Generate(email string) (string, error) {
	code := util.GenerateRandomDigits(otpLength)
	if err := s.repo.Save(email, repository.OtpRecord{Code: code, IssuedAt: s.now()}); err != nil {
		return "", err
	}
	return code, nil
}

// Store persists an externally-generated code verbatim, replacing any pending
// record for that email.
func (s *OtpService) Store(email, code string) error {
	return s.repo.Save(email, repository.OtpRecord{Code: code, IssuedAt: s.now()})
}

// Validate reports whether the supplied code matches the pending record.
// A stale record is evicted and rejected; the window is strict, a code
// presented exactly at the 5-minute mark is already invalid. A successful
// validation does NOT consume the record; Invalidate is a separate step.
func (s *OtpService) Validate(email, code string) bool {
	rec, ok, err := s.repo.Get(email)
	if err != nil || !ok {
		return false
	}
	if rec.Code != code {
		return false
	}
	if !s.now().Before(rec.IssuedAt.Add(s.validity)) {
		_ = s.repo.Delete(email)
		return false
	}
	return true
}

// Invalidate removes any pending code for the email. Safe to call twice.
func (s *OtpService) Invalidate(email string) {
	_ = s.repo.Delete(email)
}
