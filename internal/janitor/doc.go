// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package janitor contains the streaming sanitization engine used while dumping a database.
// A Hook receives every scalar value the dump engine is about to write, asks its RowSkipTracker
// whether the current row is protected and otherwise lets the Randomizer replace the value
// with a random placeholder of a compatible type.
//
// A Hook holds per-run state and must not be shared between concurrent dumps.
package janitor
