package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pdfdrop/internal/client/client"
	"github.com/dmitrijs2005/pdfdrop/internal/client/models"
	"github.com/dmitrijs2005/pdfdrop/internal/client/queue"
	"github.com/dmitrijs2005/pdfdrop/internal/common"
)

// notifyContext is a test seam for signal.NotifyContext.
var notifyContext = signal.NotifyContext

const healthTimeout = 3 * time.Second

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if username == "" || len(password) == 0 {
		fmt.Fprintln(a.out, "Username and password are required")
		return nil
	}

	if _, err := a.session.Login(ctx, username, string(password)); err != nil {
		a.reportAPIError("Login failed", err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %v\n", err)
		return err
	}
	// Queued files belong to the session that added them.
	if n := a.queue.Clear(); n > 0 {
		fmt.Fprintf(a.out, "Logged out, removed %d queued task(s)\n", n)
		return nil
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	if exp, ok := a.session.Expiry(ctx); ok && a.session.IsValid(ctx) {
		fmt.Fprintf(a.out, "Logged in as %s until %s\n", a.session.Username(ctx), exp.Local().Format(time.RFC1123))
	} else {
		fmt.Fprintln(a.out, "Not logged in")
	}

	hctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	h, err := a.api.Health(hctx)
	if err != nil {
		fmt.Fprintf(a.out, "Server unavailable: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Server: %s (%s)\n", h.Status, h.Timestamp)
	return nil
}

func (a *App) Add(_ context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: add <file.pdf> [more.pdf ...]")
		return nil
	}

	var files []models.File
	for _, p := range args {
		f, err := models.NewLocalFile(p)
		if err != nil {
			fmt.Fprintf(a.out, "Skipping %s: %v\n", p, err)
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil
	}

	added, err := a.queue.Add(files...)
	if errors.Is(err, queue.ErrNoAdmissibleFiles) {
		fmt.Fprintln(a.out, "Only PDF files are allowed")
		return err
	}

	fmt.Fprintf(a.out, "Added %d file(s)\n", len(added))
	if skipped := len(files) - len(added); skipped > 0 {
		fmt.Fprintf(a.out, "Ignored %d non-PDF file(s)\n", skipped)
	}
	return nil
}

func (a *App) List(context.Context) error {
	renderTasks(a.out, a.queue.Snapshot())
	return nil
}

func (a *App) Remove(_ context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: remove <number|id>")
		return nil
	}

	id := a.resolveTask(args[0])
	err := a.queue.Remove(id)
	switch {
	case errors.Is(err, queue.ErrTaskNotFound):
		fmt.Fprintf(a.out, "No such task: %s\n", args[0])
	case errors.Is(err, queue.ErrTaskUploading):
		fmt.Fprintln(a.out, "Cannot remove a file while it is uploading")
	case err == nil:
		fmt.Fprintln(a.out, "Removed")
	}
	return err
}

// resolveTask maps a 1-based row number or an id prefix to a task id.
func (a *App) resolveTask(ref string) string {
	tasks := a.queue.Snapshot()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(tasks) {
		return tasks[n-1].ID
	}

	match := ""
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return ref
			}
			match = t.ID
		}
	}
	if match == "" {
		return ref
	}
	return match
}

func (a *App) Clear(context.Context) error {
	n := a.queue.Clear()
	fmt.Fprintf(a.out, "Removed %d task(s)\n", n)
	return nil
}

func (a *App) Upload(ctx context.Context) error {
	ctx, stop := notifyContext(ctx, os.Interrupt)
	defer stop()

	sum, err := a.queue.Run(ctx)
	switch {
	case errors.Is(err, queue.ErrNotAuthenticated):
		fmt.Fprintln(a.out, "Please log in first")
	case errors.Is(err, queue.ErrAlreadyRunning):
		fmt.Fprintln(a.out, "An upload is already running")
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(a.out, "Upload interrupted; remaining files stay pending")
	case err == nil && sum.Total() == 0:
		fmt.Fprintln(a.out, "Nothing to upload")
	}
	return err
}

func (a *App) HashPassword(ctx context.Context) error {
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if len(password) == 0 {
		fmt.Fprintln(a.out, "Password is required")
		return nil
	}

	hash, err := a.api.HashPassword(ctx, string(password))
	if err != nil {
		a.reportAPIError("Hashing failed", err)
		return err
	}
	fmt.Fprintln(a.out, hash)
	return nil
}

func (a *App) reportAPIError(what string, err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		fmt.Fprintf(a.out, "%s: not available on this server\n", what)
	case errors.As(err, &apiErr):
		fmt.Fprintf(a.out, "%s: %s\n", what, apiErr.Message)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "%s: server unavailable\n", what)
		a.logger.Debug(context.Background(), "api call failed", "error", err)
	default:
		fmt.Fprintf(a.out, "%s: %v\n", what, err)
	}
}
