// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package writer implements the dump destinations backed by a local io.Writer:
// the standard output and plain files.
package writer
