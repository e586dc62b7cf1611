// Package queue holds the operator's pending uploads and drives them one at
// a time: ask the server for a presigned URL, PUT the bytes, record the
// outcome, move on.
//
// At most one task is ever uploading. Run is single-flight: a second call
// while a run is in progress returns ErrAlreadyRunning and touches nothing.
package queue

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/pdfdrop/internal/client/models"
	"github.com/dmitrijs2005/pdfdrop/internal/client/transfer"
	"github.com/dmitrijs2005/pdfdrop/internal/logging"
)

// Session gates Run and supplies the bearer token.
type Session interface {
	IsValid(ctx context.Context) bool
	CurrentToken(ctx context.Context) (string, bool)
}

type Issuer interface {
	PresignedURL(ctx context.Context, token, filename string) (*models.Authorization, error)
}

type Transferer interface {
	Transfer(ctx context.Context, file models.File, auth models.Authorization, sink transfer.ProgressSink) error
}

// Sink observes the queue. Calls are synchronous and made without the queue
// lock held; tasks are copies.
type Sink interface {
	TaskChanged(t Task)
	TaskRemoved(t Task)
	RunFinished(s Summary)
}

type NopSink struct{}

func (NopSink) TaskChanged(Task)    {}
func (NopSink) TaskRemoved(Task)    {}
func (NopSink) RunFinished(Summary) {}

type Options struct {
	Session  Session
	Issuer   Issuer
	Transfer Transferer
	Sink     Sink
	Logger   logging.Logger
}

type Queue struct {
	session  Session
	issuer   Issuer
	transfer Transferer
	sink     Sink
	logger   logging.Logger

	mu      sync.Mutex
	tasks   []*Task
	running bool
}

func New(opts Options) *Queue {
	q := &Queue{
		session:  opts.Session,
		issuer:   opts.Issuer,
		transfer: opts.Transfer,
		sink:     opts.Sink,
		logger:   opts.Logger,
	}
	if q.sink == nil {
		q.sink = NopSink{}
	}
	if q.logger == nil {
		q.logger = logging.Nop{}
	}
	q.logger = q.logger.With("module", "queue")
	return q
}

// Add enqueues the PDF files among files as pending tasks and drops the rest.
func (q *Queue) Add(files ...models.File) ([]Task, error) {
	var fresh []*Task
	for _, f := range files {
		if f == nil || !admissible(f) {
			continue
		}
		fresh = append(fresh, &Task{ID: uuid.NewString(), File: f, Status: StatusPending})
	}
	if len(fresh) == 0 {
		return nil, ErrNoAdmissibleFiles
	}

	q.mu.Lock()
	q.tasks = append(q.tasks, fresh...)
	added := make([]Task, len(fresh))
	for i, t := range fresh {
		added[i] = *t
	}
	q.mu.Unlock()

	for _, t := range added {
		q.sink.TaskChanged(t)
	}
	return added, nil
}

func (q *Queue) Remove(id string) error {
	q.mu.Lock()
	i := q.indexOf(id)
	if i < 0 {
		q.mu.Unlock()
		return ErrTaskNotFound
	}
	if q.tasks[i].Status == StatusUploading {
		q.mu.Unlock()
		return ErrTaskUploading
	}
	removed := *q.tasks[i]
	q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
	q.mu.Unlock()

	q.sink.TaskRemoved(removed)
	return nil
}

// Clear removes every task that is not uploading and returns how many went.
func (q *Queue) Clear() int {
	q.mu.Lock()
	var removed []Task
	kept := q.tasks[:0]
	for _, t := range q.tasks {
		if t.Status == StatusUploading {
			kept = append(kept, t)
			continue
		}
		removed = append(removed, *t)
	}
	for i := len(kept); i < len(q.tasks); i++ {
		q.tasks[i] = nil
	}
	q.tasks = kept
	q.mu.Unlock()

	for _, t := range removed {
		q.sink.TaskRemoved(t)
	}
	return len(removed)
}

// Snapshot returns copies of all tasks in insertion order.
func (q *Queue) Snapshot() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Task, len(q.tasks))
	for i, t := range q.tasks {
		out[i] = *t
	}
	return out
}

func (q *Queue) Running() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.running
}

// Run uploads pending tasks in insertion order until none remain. A failed
// task does not stop the run. When ctx is cancelled the current task ends
// in error and the rest stay pending.
func (q *Queue) Run(ctx context.Context) (Summary, error) {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return Summary{}, ErrAlreadyRunning
	}
	q.running = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.running = false
		q.mu.Unlock()
	}()

	if !q.session.IsValid(ctx) {
		return Summary{}, ErrNotAuthenticated
	}
	token, ok := q.session.CurrentToken(ctx)
	if !ok {
		return Summary{}, ErrNotAuthenticated
	}

	var sum Summary
	for ctx.Err() == nil {
		t, ok := q.next()
		if !ok {
			break
		}
		q.sink.TaskChanged(t)

		err := q.upload(ctx, token, t)
		done := q.finish(t.ID, err)
		q.sink.TaskChanged(done)

		if err != nil {
			sum.Failed++
			q.logger.Warn(ctx, "upload failed", "task", t.ID, "file", t.File.Name(), "error", err)
		} else {
			sum.Succeeded++
			q.logger.Info(ctx, "upload succeeded", "task", t.ID, "file", t.File.Name())
		}
	}

	if sum.Total() > 0 {
		q.sink.RunFinished(sum)
	}
	return sum, ctx.Err()
}

func (q *Queue) upload(ctx context.Context, token string, t Task) error {
	auth, err := q.issuer.PresignedURL(ctx, token, t.File.Name())
	if err != nil {
		if ctx.Err() != nil {
			return transfer.ErrCancelled
		}
		return err
	}
	q.logger.Debug(ctx, "authorization issued", "task", t.ID, "key", auth.Key)

	return q.transfer.Transfer(ctx, t.File, *auth, transfer.ProgressFunc(func(pct int) {
		q.progress(t.ID, pct)
	}))
}

// next marks the first pending task as uploading.
func (q *Queue) next() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range q.tasks {
		if t.Status == StatusPending {
			t.Status = StatusUploading
			t.Progress = 0
			t.Err = ""
			return *t, true
		}
	}
	return Task{}, false
}

func (q *Queue) progress(id string, pct int) {
	q.mu.Lock()
	i := q.indexOf(id)
	if i < 0 || q.tasks[i].Status != StatusUploading || pct <= q.tasks[i].Progress {
		q.mu.Unlock()
		return
	}
	if pct > 100 {
		pct = 100
	}
	q.tasks[i].Progress = pct
	t := *q.tasks[i]
	q.mu.Unlock()

	q.sink.TaskChanged(t)
}

func (q *Queue) finish(id string, err error) Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(id)
	if i < 0 {
		return Task{ID: id}
	}
	t := q.tasks[i]
	if err != nil {
		t.Status = StatusError
		t.Err = err.Error()
	} else {
		t.Status = StatusSuccess
		t.Progress = 100
	}
	return *t
}

func (q *Queue) indexOf(id string) int {
	for i, t := range q.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
