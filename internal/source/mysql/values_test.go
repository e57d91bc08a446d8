// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package mysql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dooptroop/database-janitor/internal/janitor"
)

func TestKindFromDatabaseType(t *testing.T) {
	t.Parallel()

	testCases := map[string]janitor.Kind{
		"INT":             janitor.KindInteger,
		"UNSIGNED BIGINT": janitor.KindInteger,
		"tinyint":         janitor.KindInteger,
		"YEAR":            janitor.KindInteger,
		"DECIMAL":         janitor.KindDecimal,
		"DOUBLE":          janitor.KindFloat,
		"FLOAT":           janitor.KindFloat,
		"VARCHAR":         janitor.KindText,
		"LONGTEXT":        janitor.KindText,
		"ENUM":            janitor.KindText,
		"DATETIME":        janitor.KindTemporal,
		"TIMESTAMP":       janitor.KindTemporal,
		"JSON":            janitor.KindJSON,
		"BLOB":            janitor.KindBytes,
		"VARBINARY":       janitor.KindBytes,
		"GEOMETRY":        janitor.KindBytes,
		"":                janitor.KindBytes,
	}

	for typeName, expected := range testCases {
		t.Run(typeName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, expected, KindFromDatabaseType(typeName))
		})
	}
}

func TestValueFromDriver(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		kind          janitor.Kind
		raw           any
		expected      janitor.Value
		expectedError string
	}{
		"nil is null whatever the kind": {
			kind:     janitor.KindText,
			raw:      nil,
			expected: janitor.NullValue(),
		},
		"integer from text": {
			kind:     janitor.KindInteger,
			raw:      []byte("-42"),
			expected: janitor.IntValue(-42),
		},
		"unsigned bigint over int64": {
			kind:     janitor.KindInteger,
			raw:      []byte("18446744073709551615"),
			expected: janitor.DecimalValue("18446744073709551615"),
		},
		"integer from int64": {
			kind:     janitor.KindInteger,
			raw:      int64(7),
			expected: janitor.IntValue(7),
		},
		"float from text": {
			kind:     janitor.KindFloat,
			raw:      []byte("1.5"),
			expected: janitor.FloatValue(1.5),
		},
		"float from float64": {
			kind:     janitor.KindFloat,
			raw:      float64(2.25),
			expected: janitor.FloatValue(2.25),
		},
		"invalid float": {
			kind:          janitor.KindFloat,
			raw:           []byte("abc"),
			expectedError: `parsing float "abc"`,
		},
		"decimal keeps literal": {
			kind:     janitor.KindDecimal,
			raw:      []byte("10.500"),
			expected: janitor.DecimalValue("10.500"),
		},
		"text from string": {
			kind:     janitor.KindText,
			raw:      "hello",
			expected: janitor.TextValue("hello"),
		},
		"temporal from time": {
			kind:     janitor.KindTemporal,
			raw:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			expected: janitor.TemporalValue("2024-01-02 03:04:05"),
		},
		"json": {
			kind:     janitor.KindJSON,
			raw:      []byte(`{"a":1}`),
			expected: janitor.JSONValue(`{"a":1}`),
		},
		"bytes": {
			kind:     janitor.KindBytes,
			raw:      []byte{0x00, 0xff},
			expected: janitor.BytesValue([]byte{0x00, 0xff}),
		},
		"unsupported driver value": {
			kind:          janitor.KindText,
			raw:           struct{}{},
			expectedError: "unsupported driver value: struct {}",
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			value, err := ValueFromDriver(test.kind, test.raw)
			if test.expectedError != "" {
				require.ErrorContains(t, err, test.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expected, value)
		})
	}
}
