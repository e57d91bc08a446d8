// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package writer

import (
	"errors"
	"io"
	"os"
	"sync"
)

// Writer forwards the dump to an underlying io.Writer.
type Writer struct {
	writer io.Writer
	path   string
	closer io.Closer

	lock   sync.Mutex
	closed bool
}

// NewStdout returns a Writer on w that is never closed, to keep the standard output usable.
func NewStdout(w io.Writer) *Writer {
	return &Writer{
		writer: w,
	}
}

// NewFile creates or truncates the file at path and returns a Writer on it.
func NewFile(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &Writer{
		writer: file,
		path:   path,
		closer: file,
	}, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.writer.Write(p)
}

// Close closes the underlying file, if any. It is safe to call it more than once.
func (w *Writer) Close() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed || w.closer == nil {
		w.closed = true
		return nil
	}

	w.closed = true
	return w.closer.Close()
}

// Abort closes the writer and removes the partially written file.
func (w *Writer) Abort(_ error) error {
	closeErr := w.Close()
	if w.path == "" {
		return closeErr
	}

	removeErr := os.Remove(w.path)
	if errors.Is(removeErr, os.ErrNotExist) {
		removeErr = nil
	}

	return errors.Join(closeErr, removeErr)
}
