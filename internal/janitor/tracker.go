// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package janitor

// RowSkipTracker counts the rows of the table currently being dumped and decides
// whether they fall inside the table skip window.
//
// It has no explicit row boundary signal: a new row is recognised every time the
// tracking column of the active rule is seen, so the caller must present all the
// columns of a row contiguously and all the rows of a table contiguously.
// If the tracking column never shows up the window never closes and the whole
// table is left untouched.
type RowSkipTracker struct {
	config *Config

	activeTable    string
	rowCount       int
	trackingColumn string
	skipThreshold  int
}

// NewRowSkipTracker returns a tracker for the rules contained in config.
func NewRowSkipTracker(config *Config) *RowSkipTracker {
	return &RowSkipTracker{config: config}
}

// ShouldSkip records that column of table is about to be written and reports
// whether its value must be left as is because the row is inside the skip window.
func (t *RowSkipTracker) ShouldSkip(table, column string) bool {
	rule, ok := t.config.RowSkipRule(table)
	if !ok {
		t.activeTable = ""
		t.rowCount = 0
		return false
	}

	if table != t.activeTable {
		t.activeTable = table
		t.rowCount = 0
	}

	t.trackingColumn = rule.TrackingColumn
	t.skipThreshold = rule.SkipRows
	if column == t.trackingColumn {
		t.rowCount++
	}

	return t.rowCount <= t.skipThreshold
}

// TrackingColumn returns the tracking column configured for table, if any.
func (t *RowSkipTracker) TrackingColumn(table string) (string, bool) {
	rule, ok := t.config.RowSkipRule(table)
	return rule.TrackingColumn, ok
}
