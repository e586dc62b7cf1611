package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/pdfdrop/internal/client/client"
	"github.com/dmitrijs2005/pdfdrop/internal/client/models"
	"github.com/dmitrijs2005/pdfdrop/internal/client/repositories"
	"github.com/dmitrijs2005/pdfdrop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pdfdrop/internal/client/transfer"
	"github.com/dmitrijs2005/pdfdrop/internal/logging"
)

type fakeAPI struct {
	token     string
	loginErr  error
	presigned []string
	hash      string
	hashErr   error
	healthErr error
}

func (f *fakeAPI) Login(context.Context, string, string) (string, error) {
	return f.token, f.loginErr
}

func (f *fakeAPI) PresignedURL(_ context.Context, _, filename string) (*models.Authorization, error) {
	f.presigned = append(f.presigned, filename)
	return &models.Authorization{UploadURL: "http://s3.invalid/" + filename, Key: "uploads/" + filename}, nil
}

func (f *fakeAPI) HashPassword(context.Context, string) (string, error) { return f.hash, f.hashErr }

func (f *fakeAPI) Health(context.Context) (*client.Health, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return &client.Health{Status: "ok", Timestamp: "2025-01-01T00:00:00Z"}, nil
}

type okTransfer struct{ names []string }

func (o *okTransfer) Transfer(_ context.Context, file models.File, _ models.Authorization, sink transfer.ProgressSink) error {
	o.names = append(o.names, file.Name())
	sink.Progress(100)
	return nil
}

func validToken(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func newTestApp(t *testing.T, api *fakeAPI, input string) (*App, *bytes.Buffer, *okTransfer) {
	t.Helper()
	db, err := repositories.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	out := &bytes.Buffer{}
	tr := &okTransfer{}
	a := newApp(api, metadata.NewSQLiteRepository(db), tr, logging.Nop{}, strings.NewReader(input), out)
	return a, out, tr
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = old })
}

func writeFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for _, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4\n"), 0o600))
		paths = append(paths, p)
	}
	return paths
}

func TestLogin_Success(t *testing.T) {
	stubPassword(t, "pw")
	a, out, _ := newTestApp(t, &fakeAPI{token: validToken(t)}, "admin\n")
	ctx := context.Background()

	require.NoError(t, a.Login(ctx))
	assert.Contains(t, out.String(), "Logged in as admin")
	assert.True(t, a.isLoggedIn(ctx))
	assert.Equal(t, "pdfdrop (admin)> ", a.prompt())

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn(ctx))
	assert.Equal(t, "pdfdrop> ", a.prompt())
}

func TestLogout_DropsQueue(t *testing.T) {
	stubPassword(t, "pw")
	a, out, _ := newTestApp(t, &fakeAPI{token: validToken(t)}, "admin\n")
	ctx := context.Background()

	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.Add(ctx, writeFiles(t, "a.pdf", "b.pdf")))
	require.Len(t, a.queue.Snapshot(), 2)

	out.Reset()
	require.NoError(t, a.Logout(ctx))
	assert.Contains(t, out.String(), "Logged out, removed 2 queued task(s)")
	assert.Empty(t, a.queue.Snapshot())
}

func TestLogin_WrongPassword(t *testing.T) {
	stubPassword(t, "wrong")
	api := &fakeAPI{loginErr: &client.APIError{Status: 401, Message: "Invalid credentials"}}
	a, out, tr := newTestApp(t, api, "admin\n")
	ctx := context.Background()

	require.Error(t, a.Login(ctx))
	assert.Contains(t, out.String(), "Login failed: Invalid credentials")
	assert.False(t, a.isLoggedIn(ctx))

	paths := writeFiles(t, "a.pdf")
	require.NoError(t, a.Add(ctx, paths))
	out.Reset()
	require.Error(t, a.Upload(ctx))
	assert.Contains(t, out.String(), "Please log in first")
	assert.Empty(t, tr.names)
	assert.Empty(t, api.presigned)
}

func TestLogin_EmptyFields(t *testing.T) {
	stubPassword(t, "")
	a, out, _ := newTestApp(t, &fakeAPI{}, "admin\n")
	require.NoError(t, a.Login(context.Background()))
	assert.Contains(t, out.String(), "Username and password are required")
}

func TestLogin_ServerUnavailable(t *testing.T) {
	stubPassword(t, "pw")
	a, out, _ := newTestApp(t, &fakeAPI{loginErr: client.ErrUnavailable}, "admin\n")
	require.Error(t, a.Login(context.Background()))
	assert.Contains(t, out.String(), "Login failed: server unavailable")
}

func TestAddListRemoveClear(t *testing.T) {
	a, out, _ := newTestApp(t, &fakeAPI{}, "")
	ctx := context.Background()

	require.NoError(t, a.Add(ctx, nil))
	assert.Contains(t, out.String(), "Usage: add")

	paths := writeFiles(t, "report.pdf", "notes.PDF", "image.png")
	out.Reset()
	require.NoError(t, a.Add(ctx, append(paths, "/does/not/exist.pdf")))
	assert.Contains(t, out.String(), "Skipping /does/not/exist.pdf")
	assert.Contains(t, out.String(), "Added 2 file(s)")
	assert.Contains(t, out.String(), "Ignored 1 non-PDF file(s)")

	out.Reset()
	require.Error(t, a.Add(ctx, paths[2:]))
	assert.Contains(t, out.String(), "Only PDF files are allowed")

	out.Reset()
	require.NoError(t, a.List(ctx))
	assert.Contains(t, out.String(), "report.pdf")
	assert.Contains(t, out.String(), "notes.PDF")
	assert.NotContains(t, out.String(), "image.png")

	out.Reset()
	require.NoError(t, a.Remove(ctx, []string{"1"}))
	assert.Contains(t, out.String(), "Removed")
	snap := a.queue.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "notes.PDF", snap[0].File.Name())

	out.Reset()
	require.NoError(t, a.Remove(ctx, []string{snap[0].ID[:8]}))
	assert.Empty(t, a.queue.Snapshot())

	out.Reset()
	require.Error(t, a.Remove(ctx, []string{"7"}))
	assert.Contains(t, out.String(), "No such task: 7")

	require.NoError(t, a.Add(ctx, paths[:1]))
	out.Reset()
	require.NoError(t, a.Clear(ctx))
	assert.Contains(t, out.String(), "Removed 1 task(s)")
}

func TestUpload_Success(t *testing.T) {
	stubPassword(t, "pw")
	api := &fakeAPI{token: validToken(t)}
	a, out, tr := newTestApp(t, api, "admin\n")
	ctx := context.Background()

	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.Add(ctx, writeFiles(t, "report.pdf")))

	out.Reset()
	require.NoError(t, a.Upload(ctx))
	assert.Equal(t, []string{"report.pdf"}, api.presigned)
	assert.Equal(t, []string{"report.pdf"}, tr.names)
	assert.Contains(t, out.String(), "report.pdf uploaded")
	assert.Contains(t, out.String(), "Upload finished: 1 succeeded, 0 failed")

	out.Reset()
	require.NoError(t, a.Upload(ctx))
	assert.Contains(t, out.String(), "Nothing to upload")
}

func TestHashPassword(t *testing.T) {
	stubPassword(t, "pw")
	a, out, _ := newTestApp(t, &fakeAPI{hash: "$2a$12$abc"}, "")
	require.NoError(t, a.HashPassword(context.Background()))
	assert.Contains(t, out.String(), "$2a$12$abc")

	a, out, _ = newTestApp(t, &fakeAPI{hashErr: &client.APIError{Status: 404, Message: "Not found"}}, "")
	require.Error(t, a.HashPassword(context.Background()))
	assert.Contains(t, out.String(), "Hashing failed: not available on this server")
}

func TestStatus(t *testing.T) {
	a, out, _ := newTestApp(t, &fakeAPI{}, "")
	require.NoError(t, a.Status(context.Background()))
	assert.Contains(t, out.String(), "Not logged in")
	assert.Contains(t, out.String(), "Server: ok")

	a, out, _ = newTestApp(t, &fakeAPI{healthErr: errors.New("dial tcp: refused")}, "")
	require.Error(t, a.Status(context.Background()))
	assert.Contains(t, out.String(), "Server unavailable")
}

func TestRun_ReadsCommandsAndPrompts(t *testing.T) {
	stubPassword(t, "pw")
	a, out, _ := newTestApp(t, &fakeAPI{token: validToken(t)}, "login\nadmin\nlist\nexit\n")

	origPrint, origPrintln := printFn, printlnFn
	printFn = func(...any) (int, error) { return 0, nil }
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printFn, printlnFn = origPrint, origPrintln })

	a.Run(context.Background())
	assert.Contains(t, out.String(), "Logged in as admin")
	assert.Contains(t, out.String(), "Queue is empty")
}
