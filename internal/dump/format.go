// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dump

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/Dooptroop/database-janitor/internal/janitor"
)

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"'", `\'`,
	`"`, `\"`,
	"\x1a", `\Z`,
)

// QuoteIdentifier returns name quoted with backticks for use in a statement.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Literal renders value as a SQL literal.
func Literal(value janitor.Value) string {
	switch value.Kind {
	case janitor.KindNull:
		return "NULL"
	case janitor.KindInteger:
		return strconv.FormatInt(value.Int, 10)
	case janitor.KindFloat:
		return strconv.FormatFloat(value.Float, 'g', -1, 64)
	case janitor.KindDecimal:
		return value.Text
	case janitor.KindBytes:
		if len(value.Bytes) == 0 {
			return "''"
		}
		return "0x" + strings.ToUpper(hex.EncodeToString(value.Bytes))
	default:
		return quoteString(value.Text)
	}
}

func quoteString(s string) string {
	return "'" + stringEscaper.Replace(s) + "'"
}
