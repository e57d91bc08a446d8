// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package dump writes a logical SQL export of a source.Source.
// Rows are read from the source on a dedicated goroutine and handed, one row at a time,
// to a Transformer before being rendered as INSERT statements.
package dump
