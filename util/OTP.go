package util

import (
	"crypto/rand"
	"math/big"
)

// GenerateRandomDigits draws each digit from crypto/rand. Never swap this for
// math/rand: OTP codes must come from a cryptographically secure source.
func GenerateRandomDigits(length int) string {
	digits := "0123456789"
	b := make([]byte, length)
	for i := range b {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		b[i] = digits[num.Int64()]
	}
	return string(b)
}
