// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package credentials

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

var (
	// ErrMissingCredentials reports credentials that are needed but cannot be asked for.
	ErrMissingCredentials = errors.New("missing database credentials")
	// ErrPrompt reports a failure while asking the user for credentials.
	ErrPrompt = errors.New("credentials prompt")
)

// Credentials are the user and password used to connect to the database.
type Credentials struct {
	User     string
	Password string
}

// Prompter asks the user for a single value.
type Prompter interface {
	// Input asks for a value that is echoed back.
	Input(message string) (string, error)
	// Password asks for a value without echoing it.
	Password(message string) (string, error)
}

// Complete asks prompter for the user and the password that are missing from credentials.
// A nil prompter means that no one can answer: a missing user is an error while a missing
// password is left empty.
func Complete(credentials Credentials, prompter Prompter) (Credentials, error) {
	if credentials.User == "" {
		if prompter == nil {
			return credentials, fmt.Errorf("%w: %s", ErrMissingCredentials, "user is required when not running in a terminal")
		}

		user, err := prompter.Input("Enter database user:")
		if err != nil {
			return credentials, fmt.Errorf("%w: %w", ErrPrompt, err)
		}
		if user == "" {
			return credentials, fmt.Errorf("%w: %s", ErrMissingCredentials, "empty user")
		}
		credentials.User = user
	}

	if credentials.Password == "" && prompter != nil {
		password, err := prompter.Password(fmt.Sprintf("Enter database password for %s:", credentials.User))
		if err != nil {
			return credentials, fmt.Errorf("%w: %w", ErrPrompt, err)
		}
		credentials.Password = password
	}

	return credentials, nil
}

// IsTerminal reports whether file is attached to a terminal someone can type in.
func IsTerminal(file *os.File) bool {
	if file == nil {
		return false
	}

	return term.IsTerminal(int(file.Fd())) //nolint:gosec // file descriptors always fit an int
}
