package service

import (
	"errors"
	"sync"
	"time"

	"logistics-accounts/dto"
	"logistics-accounts/util"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenTTL = 24 * time.Hour

// Principal is the identity carried by a validated session token. Roles keep
// the order they were issued with; downstream authorization relies on it.
type Principal struct {
	Subject string
	Roles   []string
}

// TokenService issues and validates HS256-signed session tokens and keeps the
// in-process revocation set. Issuance is stateless; only revocations are held,
// keyed by token hash, and an entry matters only until the token's natural
// expiry, after which PruneRevoked may drop it.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	revoked sync.Map // util.HashToken(token) -> expiresAt time.Time
	now     func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    sessionTokenTTL,
		now:    time.Now,
	}
}

// Issue builds a signed session token for the subject. roles may be nil; when
// present they are baked in as a claim and come back verbatim on validation.
func (s *TokenService) Issue(subject string, roles []string) (string, error) {
	now := s.now()
	claims := dto.AuthClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateAndGetSubject verifies the token and returns its subject. The
// revocation set is consulted on every validation path, not just the
// principal one.
func (s *TokenService) ValidateAndGetSubject(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ValidateAndGetPrincipal verifies the token and returns subject plus roles.
func (s *TokenService) ValidateAndGetPrincipal(token string) (Principal, error) {
	claims, err := s.parse(token)
	if err != nil {
		return Principal{}, err
	}
	return Principal{Subject: claims.Subject, Roles: claims.Roles}, nil
}

// Invalidate records the token in the revocation set until its natural
// expiry. Invalidating an already-expired token is a no-op; a malformed one
// is an error.
func (s *TokenService) Invalidate(token string) error {
	claims := &dto.AuthClaims{}
	_, err := s.parser().ParseWithClaims(token, claims, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil
		}
		return ErrMalformedToken
	}
	expiresAt := s.now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	s.revoked.Store(util.HashToken(token), expiresAt)
	return nil
}

// PruneRevoked drops revocation entries whose natural expiry has passed and
// returns how many were removed.
func (s *TokenService) PruneRevoked(now time.Time) int {
	pruned := 0
	s.revoked.Range(func(key, value interface{}) bool {
		if value.(time.Time).Before(now) {
			s.revoked.Delete(key)
			pruned++
		}
		return true
	})
	return pruned
}

// parser builds a jwt parser bound to the service clock so expiry checks and
// issuance share one notion of now.
func (s *TokenService) parser() *jwt.Parser {
	return jwt.NewParser(jwt.WithTimeFunc(s.now))
}

func (s *TokenService) parse(token string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	parsed, err := s.parser().ParseWithClaims(token, claims, s.keyFunc)
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrMalformedToken
	}
	if _, revoked := s.revoked.Load(util.HashToken(token)); revoked {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

func (s *TokenService) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("invalid signing method, expected HS256")
	}
	return s.secret, nil
}
