// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"github.com/Dooptroop/database-janitor/internal/janitor"
)

// Table identifies a table or a view of the dumped database.
type Table struct {
	Name string
	// View is true for views, whose data is never dumped.
	View bool
}

// Row holds the values of a single row, in the same order of its columns.
type Row struct {
	Table string
	// Columns lists the dumped columns, generated columns are left out since their
	// values are computed by the server on insert.
	Columns []string
	Values  []janitor.Value
}
