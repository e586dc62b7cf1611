// Package auth implements the single-operator auth gate: bcrypt password
// check, HS256 token issuance and bearer token verification.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pdfdrop/internal/common"
)

var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials is returned for a wrong username or password.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", common.ErrorUnauthorized)
)

var checkPasswordFn = CheckPassword

// Principal is the authenticated caller attached to a request.
type Principal struct {
	Username string
}

// Gate checks operator credentials and the bearer tokens it hands out.
type Gate struct {
	username     string
	passwordHash string
	secret       []byte
	validity     time.Duration
	now          func() time.Time
}

// Option customises a Gate.
type Option func(*Gate)

// WithClock overrides time.Now for token issue and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

func NewGate(username, passwordHash string, secret []byte, validity time.Duration, opts ...Option) *Gate {
	g := &Gate{
		username:     username,
		passwordHash: passwordHash,
		secret:       secret,
		validity:     validity,
		now:          time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Login returns a signed token when username and password match the
// configured operator.
func (g *Gate) Login(_ context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}
	// bcrypt runs for unknown usernames too.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	ok, err := checkPasswordFn(g.passwordHash, password)
	if err != nil {
		return "", fmt.Errorf("check password: %w", err)
	}
	if !userOK || !ok {
		return "", ErrInvalidCredentials
	}

	return GenerateToken(username, g.secret, g.validity, g.now())
}

// Authenticate resolves a bearer token to its Principal.
func (g *Gate) Authenticate(_ context.Context, token string) (Principal, error) {
	if token == "" {
		return Principal{}, common.ErrInvalidToken
	}
	username, err := ParseToken(token, g.secret, g.now)
	if err != nil {
		return Principal{}, err
	}
	return Principal{Username: username}, nil
}
