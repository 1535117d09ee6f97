package service

import (
	"testing"
	"time"

	"logistics-accounts/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOtpServiceAt(start time.Time) (*OtpService, *time.Time) {
	current := start
	svc := NewOtpService(repository.NewInMemoryOtpRepo())
	svc.now = func() time.Time { return current }
	return svc, &current
}

func TestOtpService_GenerateAndValidate(t *testing.T) {
	svc, _ := newOtpServiceAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	code, err := svc.Generate("a@x.com")
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit %q in code %q", r, code)
		}
	}

	assert.True(t, svc.Validate("a@x.com", code))
	assert.False(t, svc.Validate("a@x.com", "000000"), "wrong code must not validate")
	assert.False(t, svc.Validate("b@x.com", code), "code is bound to its email")
}

func TestOtpService_ValidateDoesNotConsume(t *testing.T) {
	svc, _ := newOtpServiceAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	code, err := svc.Generate("a@x.com")
	require.NoError(t, err)

	// Success leaves the record in place; eviction is an explicit step
	assert.True(t, svc.Validate("a@x.com", code))
	assert.True(t, svc.Validate("a@x.com", code))

	svc.Invalidate("a@x.com")
	assert.False(t, svc.Validate("a@x.com", code))
}

func TestOtpService_ExpiryBoundary(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc, current := newOtpServiceAt(start)

	code, err := svc.Generate("a@x.com")
	require.NoError(t, err)

	// Within the window
	*current = start.Add(4 * time.Minute)
	assert.True(t, svc.Validate("a@x.com", code))

	*current = start.Add(5*time.Minute - time.Nanosecond)
	assert.True(t, svc.Validate("a@x.com", code))

	// Exactly at the boundary: rejected and evicted
	*current = start.Add(5 * time.Minute)
	assert.False(t, svc.Validate("a@x.com", code))

	// The record is gone now, even if time rolled back
	*current = start
	assert.False(t, svc.Validate("a@x.com", code))
}

func TestOtpService_ExpiredAfterSixMinutes(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc, current := newOtpServiceAt(start)

	require.NoError(t, svc.Store("a@x.com", "482913"))

	*current = start.Add(6 * time.Minute)
	assert.False(t, svc.Validate("a@x.com", "482913"))

	// Second attempt sees no record at all
	assert.False(t, svc.Validate("a@x.com", "482913"))
}

func TestOtpService_RegenerateInvalidatesOldCode(t *testing.T) {
	svc, _ := newOtpServiceAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	c1, err := svc.Generate("a@x.com")
	require.NoError(t, err)
	c2, err := svc.Generate("a@x.com")
	require.NoError(t, err)

	if c1 == c2 {
		t.Skip("collided codes, cannot distinguish old from new")
	}
	assert.False(t, svc.Validate("a@x.com", c1), "resend must invalidate the previous code")
	assert.True(t, svc.Validate("a@x.com", c2))
}

func TestOtpService_InvalidateIsIdempotent(t *testing.T) {
	svc, _ := newOtpServiceAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	_, err := svc.Generate("a@x.com")
	require.NoError(t, err)

	svc.Invalidate("a@x.com")
	svc.Invalidate("a@x.com") // second call is a no-op, never panics
	svc.Invalidate("never-seen@x.com")
}

func TestOtpService_StoreVerbatim(t *testing.T) {
	svc, _ := newOtpServiceAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	require.NoError(t, svc.Store("a@x.com", "123456"))
	assert.True(t, svc.Validate("a@x.com", "123456"))
	assert.False(t, svc.Validate("a@x.com", "12345"), "no partial match")
}
