// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package janitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// call is a single (table, column) pair presented to the tracker.
type call struct {
	table  string
	column string
}

func rows(table string, columns []string, count int) []call {
	calls := make([]call, 0, len(columns)*count)
	for range count {
		for _, column := range columns {
			calls = append(calls, call{table: table, column: column})
		}
	}

	return calls
}

func TestRowSkipTracker(t *testing.T) {
	t.Parallel()

	config := NewConfig(nil, map[string]RowSkipRule{
		"users":    {TrackingColumn: "id", SkipRows: 2},
		"sessions": {TrackingColumn: "id", SkipRows: 0},
		"posts":    {TrackingColumn: "missing", SkipRows: 1},
		"comments": {TrackingColumn: "id", SkipRows: 1},
	})

	testCases := map[string]struct {
		calls    []call
		expected []bool
	}{
		"first rows are skipped until the threshold": {
			calls: rows("users", []string{"id", "email"}, 4),
			expected: []bool{
				true, true,
				true, true,
				false, false,
				false, false,
			},
		},
		"zero skip rows never protects a row": {
			calls:    rows("sessions", []string{"id", "token"}, 2),
			expected: []bool{false, false, false, false},
		},
		"missing tracking column keeps the window open": {
			calls:    rows("posts", []string{"id", "title"}, 3),
			expected: []bool{true, true, true, true, true, true},
		},
		"table without rule is never skipped": {
			calls:    rows("orders", []string{"id", "email"}, 2),
			expected: []bool{false, false, false, false},
		},
		"count restarts when moving to another table with a rule": {
			calls: append(rows("users", []string{"id"}, 3), rows("comments", []string{"id"}, 2)...),
			expected: []bool{
				true, true, false,
				true, false,
			},
		},
		"count restarts after a table without rule": {
			calls: append(append(rows("users", []string{"id"}, 3), rows("orders", []string{"id"}, 1)...), rows("users", []string{"id"}, 3)...),
			expected: []bool{
				true, true, false,
				false,
				true, true, false,
			},
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tracker := NewRowSkipTracker(config)
			results := make([]bool, 0, len(test.calls))
			for _, c := range test.calls {
				results = append(results, tracker.ShouldSkip(c.table, c.column))
			}

			assert.Equal(t, test.expected, results)
		})
	}
}

func TestRowSkipTrackerRowCount(t *testing.T) {
	t.Parallel()

	config := NewConfig(nil, map[string]RowSkipRule{"users": {TrackingColumn: "id", SkipRows: 1}})
	tracker := NewRowSkipTracker(config)

	for _, c := range rows("users", []string{"id", "email"}, 3) {
		tracker.ShouldSkip(c.table, c.column)
	}
	assert.Equal(t, 3, tracker.rowCount)

	tracker.ShouldSkip("orders", "id")
	assert.Equal(t, 0, tracker.rowCount)

	column, ok := tracker.TrackingColumn("users")
	assert.True(t, ok)
	assert.Equal(t, "id", column)

	_, ok = tracker.TrackingColumn("orders")
	assert.False(t, ok)
}
