// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"testing"

	"github.com/Dooptroop/database-janitor/internal/credentials"
)

var _ credentials.Prompter = &FakePrompter{}

// FakePrompter answers with fixed values and records the questions it receives.
type FakePrompter struct {
	tb testing.TB

	user     string
	password string
	err      error

	Questions []string
}

// NewFakePrompter returns a FakePrompter answering user and password.
func NewFakePrompter(tb testing.TB, user, password string) *FakePrompter {
	tb.Helper()
	return &FakePrompter{tb: tb, user: user, password: password}
}

// NewFakePrompterWithError returns a FakePrompter failing every question with err.
func NewFakePrompterWithError(tb testing.TB, err error) *FakePrompter {
	tb.Helper()
	return &FakePrompter{tb: tb, err: err}
}

// Input implements credentials.Prompter.
func (f *FakePrompter) Input(message string) (string, error) {
	f.tb.Helper()
	f.Questions = append(f.Questions, message)
	return f.user, f.err
}

// Password implements credentials.Prompter.
func (f *FakePrompter) Password(message string) (string, error) {
	f.tb.Helper()
	f.Questions = append(f.Questions, message)
	return f.password, f.err
}
