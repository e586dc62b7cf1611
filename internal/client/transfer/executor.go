// Package transfer performs the direct PUT of a file's bytes to a presigned
// URL and reports how far along it is.
package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/pdfdrop/internal/client/models"
	"github.com/dmitrijs2005/pdfdrop/internal/logging"
)

// ProgressSink receives integer percentages in 0..100, never decreasing.
type ProgressSink interface {
	Progress(percent int)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(percent int)

func (f ProgressFunc) Progress(percent int) { f(percent) }

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 4 << 10

type Executor struct {
	client *http.Client
	logger logging.Logger
}

// NewExecutor uses client for the PUT, http.DefaultClient when nil. Timeouts
// belong on ctx: a large file may legitimately take a long time.
func NewExecutor(client *http.Client, logger logging.Logger) *Executor {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Executor{client: client, logger: logger.With("module", "transfer")}
}

// Transfer streams file to auth.UploadURL in a single PUT, replaying
// auth.Headers verbatim. sink may be nil.
func (e *Executor) Transfer(ctx context.Context, file models.File, auth models.Authorization, sink ProgressSink) error {
	if ctx.Err() != nil {
		return ErrCancelled
	}

	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Name(), err)
	}
	defer rc.Close()

	// The transport may still read the body after Do returns on error, so
	// progress is muted once Transfer has decided the outcome.
	var (
		mu   sync.Mutex
		done bool
	)
	tracker := newPercentTracker(func(pct int) {
		if sink != nil {
			sink.Progress(pct)
		}
	})
	defer func() {
		mu.Lock()
		done = true
		mu.Unlock()
	}()

	size := file.Size()
	var body io.Reader
	if size == 0 {
		body = http.NoBody
	} else {
		body = newProgressReader(rc, size, func(processed, total int64) {
			mu.Lock()
			defer mu.Unlock()
			if !done {
				tracker.update(processed, total)
			}
		})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, auth.UploadURL, body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.ContentLength = size
	for k, v := range auth.Headers {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			e.logger.Info(ctx, "upload cancelled", "key", auth.Key)
			return ErrCancelled
		}
		e.logger.Warn(ctx, "upload transport error", "key", auth.Key, "error", err)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		e.logger.Debug(ctx, "upload complete", "key", auth.Key, "size", size, "status", resp.StatusCode)
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	e.logger.Warn(ctx, "upload rejected", "key", auth.Key, "status", resp.StatusCode, "body", string(detail))

	if resp.StatusCode == http.StatusPreconditionFailed {
		return ErrAlreadyExists
	}
	return &UploadFailedError{Status: resp.StatusCode}
}
