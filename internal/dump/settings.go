// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dump

import (
	"slices"

	"github.com/Dooptroop/database-janitor/internal/source"
)

// Settings control which tables end up in the dump and whether their rows are exported.
type Settings struct {
	// ExcludedTables are left out of the dump entirely.
	ExcludedTables []string
	// NoDataTables are dumped with their structure only.
	NoDataTables []string
	// KeepDataTables keep their rows when Trim is set.
	KeepDataTables []string
	// Trim dumps every table not listed in KeepDataTables with its structure only.
	Trim bool
	// AddDropTable precedes every create statement with a DROP IF EXISTS.
	AddDropTable bool
}

func (s Settings) excluded(table source.Table) bool {
	return slices.Contains(s.ExcludedTables, table.Name)
}

func (s Settings) dumpData(table source.Table) bool {
	switch {
	case table.View:
		return false
	case slices.Contains(s.NoDataTables, table.Name):
		return false
	case s.Trim:
		return slices.Contains(s.KeepDataTables, table.Name)
	default:
		return true
	}
}
