// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dooptroop/database-janitor/internal/source"
)

func TestSettingsDumpData(t *testing.T) {
	t.Parallel()

	settings := Settings{
		NoDataTables:   []string{"cache"},
		KeepDataTables: []string{"users", "cache"},
	}
	trimmed := settings
	trimmed.Trim = true

	testCases := map[string]struct {
		settings Settings
		table    source.Table
		expected bool
	}{
		"plain table": {
			settings: settings,
			table:    source.Table{Name: "orders"},
			expected: true,
		},
		"view": {
			settings: settings,
			table:    source.Table{Name: "orders", View: true},
			expected: false,
		},
		"no data table": {
			settings: settings,
			table:    source.Table{Name: "cache"},
			expected: false,
		},
		"trim drops tables not kept": {
			settings: trimmed,
			table:    source.Table{Name: "orders"},
			expected: false,
		},
		"trim keeps listed tables": {
			settings: trimmed,
			table:    source.Table{Name: "users"},
			expected: true,
		},
		"no data wins over keep data": {
			settings: trimmed,
			table:    source.Table{Name: "cache"},
			expected: false,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, test.settings.dumpData(test.table))
		})
	}
}
