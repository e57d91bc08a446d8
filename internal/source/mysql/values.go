// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package mysql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dooptroop/database-janitor/internal/janitor"
)

var (
	errUnsupportedDriverValue = errors.New("unsupported driver value")
)

const temporalLayout = "2006-01-02 15:04:05.999999"

// KindFromDatabaseType maps a MySQL column type name, as returned by
// sql.ColumnType.DatabaseTypeName, to the value kind used by the janitor.
func KindFromDatabaseType(typeName string) janitor.Kind {
	typeName = strings.TrimPrefix(strings.ToUpper(typeName), "UNSIGNED ")

	switch typeName {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "YEAR":
		return janitor.KindInteger
	case "DECIMAL", "NUMERIC":
		return janitor.KindDecimal
	case "FLOAT", "DOUBLE", "REAL":
		return janitor.KindFloat
	case "CHAR", "VARCHAR", "TINYTEXT", "TEXT", "MEDIUMTEXT", "LONGTEXT", "ENUM", "SET":
		return janitor.KindText
	case "DATE", "DATETIME", "TIMESTAMP", "TIME":
		return janitor.KindTemporal
	case "JSON":
		return janitor.KindJSON
	default:
		return janitor.KindBytes
	}
}

// ValueFromDriver converts a raw value scanned into an *any to a janitor value of kind.
func ValueFromDriver(kind janitor.Kind, raw any) (janitor.Value, error) {
	if raw == nil {
		return janitor.NullValue(), nil
	}

	switch typed := raw.(type) {
	case []byte:
		return valueFromText(kind, string(typed), typed)
	case string:
		return valueFromText(kind, typed, []byte(typed))
	case int64:
		if kind == janitor.KindFloat {
			return janitor.FloatValue(float64(typed)), nil
		}
		return janitor.IntValue(typed), nil
	case uint64:
		if typed > 1<<63-1 {
			return janitor.DecimalValue(strconv.FormatUint(typed, 10)), nil
		}
		return janitor.IntValue(int64(typed)), nil
	case float32:
		return janitor.FloatValue(float64(typed)), nil
	case float64:
		return janitor.FloatValue(typed), nil
	case time.Time:
		return janitor.TemporalValue(typed.Format(temporalLayout)), nil
	default:
		return janitor.Value{}, fmt.Errorf("%w: %T", errUnsupportedDriverValue, raw)
	}
}

func valueFromText(kind janitor.Kind, text string, raw []byte) (janitor.Value, error) {
	switch kind {
	case janitor.KindInteger:
		number, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// BIGINT UNSIGNED over the int64 range
			return janitor.DecimalValue(text), nil
		}
		return janitor.IntValue(number), nil
	case janitor.KindFloat:
		number, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return janitor.Value{}, fmt.Errorf("parsing float %q: %w", text, err)
		}
		return janitor.FloatValue(number), nil
	case janitor.KindDecimal:
		return janitor.DecimalValue(text), nil
	case janitor.KindText:
		return janitor.TextValue(text), nil
	case janitor.KindTemporal:
		return janitor.TemporalValue(text), nil
	case janitor.KindJSON:
		return janitor.JSONValue(text), nil
	default:
		bytes := make([]byte, len(raw))
		copy(bytes, raw)
		return janitor.BytesValue(bytes), nil
	}
}
