// Package models holds the client-side value types shared by the queue, the
// transfer executor and the API client.
package models

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// File is the payload of an upload task: its metadata and a way to stream it.
// Open may be called more than once; each call returns a fresh reader.
type File interface {
	Name() string
	Size() int64
	ContentType() string
	Open() (io.ReadSeekCloser, error)
}

// LocalFile is a regular file on disk.
type LocalFile struct {
	path        string
	size        int64
	contentType string
}

// NewLocalFile stats path and derives the declared content type from its
// extension. Directories and other non-regular files are rejected.
func NewLocalFile(path string) (*LocalFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", path)
	}

	return &LocalFile{
		path:        path,
		size:        fi.Size(),
		contentType: typeByExtension(path),
	}, nil
}

func (f *LocalFile) Name() string        { return filepath.Base(f.path) }
func (f *LocalFile) Path() string        { return f.path }
func (f *LocalFile) Size() int64         { return f.size }
func (f *LocalFile) ContentType() string { return f.contentType }

func (f *LocalFile) Open() (io.ReadSeekCloser, error) {
	return os.Open(f.path)
}

// MemoryFile keeps its bytes in memory.
type MemoryFile struct {
	FileName string
	Type     string
	Data     []byte
}

func (f *MemoryFile) Name() string        { return f.FileName }
func (f *MemoryFile) Size() int64         { return int64(len(f.Data)) }
func (f *MemoryFile) ContentType() string { return f.Type }

func (f *MemoryFile) Open() (io.ReadSeekCloser, error) {
	return nopSeekCloser{bytes.NewReader(f.Data)}, nil
}

type nopSeekCloser struct {
	io.ReadSeeker
}

func (nopSeekCloser) Close() error { return nil }

// typeByExtension returns the bare media type for path's extension, or "".
func typeByExtension(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if t == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return ""
	}
	return mt
}
