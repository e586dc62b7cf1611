// Package session keeps the operator's auth token in the local metadata
// store and answers whether it is still usable.
//
// The token's signature is never checked here; the server does that. Only
// the exp claim is decoded to decide validity locally.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/pdfdrop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pdfdrop/internal/common"
)

// UsernameKey stores who logged in, next to common.SessionTokenKey.
const UsernameKey = "pdf_uploader_username"

var ErrNoExpiry = errors.New("token has no exp claim")

// Authenticator exchanges credentials for a token. client.HTTPClient
// satisfies it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type Store struct {
	repo metadata.Repository
	auth Authenticator
	now  func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(repo metadata.Repository, auth Authenticator, opts ...Option) *Store {
	s := &Store{repo: repo, auth: auth, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Login authenticates against the server and persists the returned token.
// On failure nothing is stored and the previous session, if any, is kept.
func (s *Store) Login(ctx context.Context, username, password string) (string, error) {
	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return "", err
	}

	err = s.repo.SetAll(ctx, map[string][]byte{
		common.SessionTokenKey: []byte(token),
		UsernameKey:            []byte(username),
	})
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *Store) Logout(ctx context.Context) error {
	return s.repo.Delete(ctx, common.SessionTokenKey, UsernameKey)
}

// CurrentToken returns the stored token. ok is false when there is none or
// the store cannot be read.
func (s *Store) CurrentToken(ctx context.Context) (string, bool) {
	v, err := s.repo.Get(ctx, common.SessionTokenKey)
	if err != nil || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

func (s *Store) Username(ctx context.Context) string {
	v, err := s.repo.Get(ctx, UsernameKey)
	if err != nil {
		return ""
	}
	return string(v)
}

// IsValid reports whether a token is stored and now is strictly before its
// exp claim. A missing or malformed token is simply invalid.
func (s *Store) IsValid(ctx context.Context) bool {
	token, ok := s.CurrentToken(ctx)
	if !ok {
		return false
	}
	exp, err := ExpiryOf(token)
	if err != nil {
		return false
	}
	return s.now().Before(exp)
}

// Expiry returns the exp of the stored token.
func (s *Store) Expiry(ctx context.Context) (time.Time, bool) {
	token, ok := s.CurrentToken(ctx)
	if !ok {
		return time.Time{}, false
	}
	exp, err := ExpiryOf(token)
	if err != nil {
		return time.Time{}, false
	}
	return exp, true
}

// ExpiryOf decodes the exp claim of a JWT without verifying its signature.
func ExpiryOf(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}
