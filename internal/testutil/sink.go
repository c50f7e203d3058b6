package testutil

import (
	"bytes"
	"io"
	"sync"

	"github.com/roach88/girgen/internal/errors"
)

// ErrWrite is the error returned by FailingWriter unless another is set.
var ErrWrite = errors.New("write rejected")

// MemorySink keeps saved files in memory.
//
// Save runs fill against a buffer and stores the result only when fill
// succeeds, mirroring the commit-on-success contract of the real saver. When
// FailAfter is positive the writer handed to fill rejects writes once that
// many bytes have been accepted.
//
// Thread-safety: all methods are safe for concurrent use.
type MemorySink struct {
	FailAfter int

	mu    sync.Mutex
	files map[string]string
	calls int
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string]string)}
}

// Save implements the output sink contract.
func (s *MemorySink) Save(path string, fill func(io.Writer) error) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	var buf bytes.Buffer
	var w io.Writer = &buf
	if s.FailAfter > 0 {
		w = &FailingWriter{W: &buf, Limit: s.FailAfter}
	}
	if err := fill(w); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = buf.String()
	return nil
}

// File returns the committed contents of path.
func (s *MemorySink) File(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[path]
	return content, ok
}

// Len returns the number of committed files.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Calls returns how many times Save was called.
func (s *MemorySink) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// FailingWriter accepts Limit bytes, then rejects every write with Err
// (ErrWrite when nil). A write that would cross the limit is rejected whole.
type FailingWriter struct {
	W     io.Writer // optional
	Limit int
	Err   error

	n int
}

func (f *FailingWriter) Write(p []byte) (int, error) {
	if f.n+len(p) > f.Limit {
		if f.Err != nil {
			return 0, f.Err
		}
		return 0, ErrWrite
	}
	f.n += len(p)
	if f.W != nil {
		return f.W.Write(p)
	}
	return len(p), nil
}
