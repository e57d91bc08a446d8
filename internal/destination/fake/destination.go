// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"bytes"
	"testing"

	"github.com/Dooptroop/database-janitor/internal/destination"
)

var _ destination.Destination = &FakeDestination{}

// FakeDestination keeps the dump in memory and records how it has been released.
type FakeDestination struct {
	tb testing.TB
	bytes.Buffer

	closeErr error

	Closed     bool
	Aborted    bool
	AbortCause error
}

// NewFakeDestination returns an empty FakeDestination.
func NewFakeDestination(tb testing.TB) *FakeDestination {
	tb.Helper()
	return &FakeDestination{tb: tb}
}

// NewFakeDestinationWithCloseError returns a FakeDestination whose Close fails with err.
func NewFakeDestinationWithCloseError(tb testing.TB, err error) *FakeDestination {
	tb.Helper()
	return &FakeDestination{tb: tb, closeErr: err}
}

// Close implements destination.Destination.
func (f *FakeDestination) Close() error {
	f.tb.Helper()
	f.Closed = true
	return f.closeErr
}

// Abort implements destination.Destination.
func (f *FakeDestination) Abort(cause error) error {
	f.tb.Helper()
	f.Aborted = true
	f.AbortCause = cause
	f.Reset()
	return nil
}
