// Package token issues and verifies the signed tokens embedded in
// newsletter confirm and unsubscribe links.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind discriminates what a token authorizes.
type Kind string

const (
	KindConfirm     Kind = "confirm"
	KindUnsubscribe Kind = "unsubscribe"
)

// Verification outcomes. Handlers map these to user-facing copy; the
// distinction between expired and invalid matters because an expired
// confirm link should prompt a re-subscribe, not an error page.
var (
	ErrExpired   = errors.New("token has expired")
	ErrInvalid   = errors.New("token is invalid")
	ErrWrongKind = errors.New("token used for the wrong action")
)

// Service mints and verifies HMAC-signed JWTs.
type Service struct {
	secret []byte
	issuer string
	now    func() time.Time
}

type claims struct {
	Kind Kind `json:"kind"`
	jwt.RegisteredClaims
}

// NewService creates a token service. The secret must be non-empty;
// the issuer is embedded and checked on verification.
func NewService(secret, issuer string) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	return &Service{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// SetNow overrides the clock (tests only).
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// Issue mints a signed token of the given kind for an email address.
func (s *Service) Issue(kind Kind, email string, ttl time.Duration) (string, error) {
	now := s.now()
	c := claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks the signature, expiry, issuer, and kind of a token and
// returns the email address it was minted for. Library errors are mapped
// to the package's sentinel errors so callers can branch on reason.
func (s *Service) Verify(kind Kind, raw string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if c.Kind != kind {
		return "", ErrWrongKind
	}
	if c.Subject == "" {
		return "", ErrInvalid
	}
	return c.Subject, nil
}
