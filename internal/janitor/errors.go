// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package janitor

import "errors"

var (
	// ErrRandomSource reports a failure while reading from the random source.
	ErrRandomSource = errors.New("random source failure")
	// ErrUnknownKind reports a value whose kind has not been classified by the randomizer.
	ErrUnknownKind = errors.New("unknown value kind")
)
