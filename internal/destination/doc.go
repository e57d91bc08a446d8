// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package destination resolves where a dump is written.
// A target can be the standard output, a local file or an Azure Blob Storage blob, optionally
// compressed with gzip.
package destination
