package queue

import "errors"

var (
	ErrNoAdmissibleFiles = errors.New("only PDF files are allowed")
	ErrTaskUploading     = errors.New("task is uploading")
	ErrTaskNotFound      = errors.New("task not found")
	ErrAlreadyRunning    = errors.New("upload already running")
	ErrNotAuthenticated  = errors.New("not authenticated")
)
