// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package source defines the contracts used by the dump engine to read a database.
// Sources list tables, return their create statements and stream their rows over a channel.
package source
