package repository

import (
	"time"
)

// OtpRecord is a pending one-time code for a single email.
type OtpRecord struct {
	Code     string
	IssuedAt time.Time
}

// OtpRepository stores one active OTP record per email. A Save for an email
// that already holds a record replaces it (last writer wins).
type OtpRepository interface {
	// Save stores the record, overwriting any previous one for the key
	Save(key string, rec OtpRecord) error

	// Get retrieves the record. ok is false when none exists.
	Get(key string) (rec OtpRecord, ok bool, err error)

	// Delete removes the record (no-op when absent)
	Delete(key string) error
}
