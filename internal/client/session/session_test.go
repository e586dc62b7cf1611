package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/pdfdrop/internal/client/client"
	"github.com/dmitrijs2005/pdfdrop/internal/common"
)

// memRepo is an in-memory metadata.Repository.
type memRepo struct {
	data   map[string][]byte
	setErr error
	getErr error
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memRepo) SetAll(_ context.Context, values map[string][]byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	for k, v := range values {
		m.data[k] = v
	}
	return nil
}

func (m *memRepo) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memRepo) List(context.Context) (map[string][]byte, error) { return m.data, nil }

func (m *memRepo) Clear(context.Context) error {
	m.data = map[string][]byte{}
	return nil
}

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Login(context.Context, string, string) (string, error) {
	f.calls++
	return f.token, f.err
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "admin", ExpiresAt: jwt.NewNumericDate(exp)}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func TestLogin_StoresTokenAndUsername(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := newMemRepo()
	auth := &fakeAuth{token: signed(t, now.Add(time.Hour))}
	s := NewStore(repo, auth, WithClock(func() time.Time { return now }))

	tok, err := s.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, auth.token, tok)

	cur, ok := s.CurrentToken(context.Background())
	require.True(t, ok)
	assert.Equal(t, tok, cur)
	assert.Equal(t, "admin", s.Username(context.Background()))
	assert.True(t, s.IsValid(context.Background()))

	exp, ok := s.Expiry(context.Background())
	require.True(t, ok)
	assert.True(t, exp.Equal(now.Add(time.Hour)))
}

func TestLogin_BadCredentialsStoresNothing(t *testing.T) {
	repo := newMemRepo()
	auth := &fakeAuth{err: &client.APIError{Status: 401, Message: "Invalid credentials"}}
	s := NewStore(repo, auth)

	_, err := s.Login(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, repo.data)
	assert.False(t, s.IsValid(context.Background()))
}

func TestLogin_StoreFailure(t *testing.T) {
	repo := newMemRepo()
	repo.setErr = errors.New("disk full")
	s := NewStore(repo, &fakeAuth{token: "x"})

	_, err := s.Login(context.Background(), "admin", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestLogout(t *testing.T) {
	repo := newMemRepo()
	repo.data[common.SessionTokenKey] = []byte("tok")
	repo.data[UsernameKey] = []byte("admin")
	repo.data["other"] = []byte("kept")

	s := NewStore(repo, &fakeAuth{})
	require.NoError(t, s.Logout(context.Background()))

	_, ok := s.CurrentToken(context.Background())
	assert.False(t, ok)
	assert.Empty(t, s.Username(context.Background()))
	assert.Equal(t, []byte("kept"), repo.data["other"])
}

func TestIsValid_ExpiryBoundary(t *testing.T) {
	exp := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := newMemRepo()
	repo.data[common.SessionTokenKey] = []byte(signed(t, exp))

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before", exp.Add(-time.Hour), true},
		{"just before", exp.Add(-time.Nanosecond), true},
		{"at exp", exp, false},
		{"after", exp.Add(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(repo, &fakeAuth{}, WithClock(func() time.Time { return tt.now }))
			assert.Equal(t, tt.want, s.IsValid(context.Background()))
		})
	}
}

func TestIsValid_MalformedTokens(t *testing.T) {
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "a"}).SignedString([]byte("k"))
	require.NoError(t, err)

	for _, tok := range []string{"", "garbage", "a.b.c", "a.b", "....", "eyJhbGciOiJIUzI1NiJ9.!!!.x", noExp} {
		repo := newMemRepo()
		repo.data[common.SessionTokenKey] = []byte(tok)
		s := NewStore(repo, &fakeAuth{})
		assert.NotPanics(t, func() {
			assert.False(t, s.IsValid(context.Background()), "token %q", tok)
		})
	}
}

func TestIsValid_RepoError(t *testing.T) {
	repo := newMemRepo()
	repo.getErr = errors.New("boom")
	s := NewStore(repo, &fakeAuth{})
	assert.False(t, s.IsValid(context.Background()))
	_, ok := s.Expiry(context.Background())
	assert.False(t, ok)
}

func TestExpiryOf(t *testing.T) {
	exp := time.Unix(1_900_000_000, 0)
	got, err := ExpiryOf(signed(t, exp))
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))

	_, err = ExpiryOf("not-a-jwt")
	require.Error(t, err)
}
