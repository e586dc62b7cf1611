package queue

import (
	"fmt"

	"github.com/dmitrijs2005/pdfdrop/internal/client/models"
)

type Status int

const (
	StatusPending Status = iota
	StatusUploading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusUploading:
		return "uploading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Task is one file in the queue. Values handed out by the queue are copies.
type Task struct {
	ID       string
	File     models.File
	Status   Status
	Progress int
	// Err is set only when Status is StatusError.
	Err string
}

// Summary counts the outcomes of a single Run.
type Summary struct {
	Succeeded int
	Failed    int
}

func (s Summary) Total() int { return s.Succeeded + s.Failed }

func (s Summary) String() string {
	return fmt.Sprintf("%d succeeded, %d failed", s.Succeeded, s.Failed)
}
