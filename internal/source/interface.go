// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"context"
)

// Source defines the interface for a database that can be dumped.
type Source interface {
	// Tables returns the tables and views of the database in dump order.
	Tables(ctx context.Context) ([]Table, error)

	// CreateStatement returns the statement that recreates table, without the trailing semicolon.
	CreateStatement(ctx context.Context, table Table) (string, error)

	// StreamRows sends every row of table on results, one row at a time and in a stable column
	// order. It must stop and return the context error as soon as ctx is cancelled. The channel
	// is owned by the caller and must not be closed.
	StreamRows(ctx context.Context, table Table, results chan<- Row) error
}

// ClosableSource defines the interface for a source that holds resources to release
// once the dump is over.
type ClosableSource interface {
	Close() error
}
