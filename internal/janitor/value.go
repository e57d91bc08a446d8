// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package janitor

//go:generate ${TOOLS_BIN}/stringer -type=Kind -trimprefix Kind
type Kind int

const (
	// KindNull is a SQL NULL.
	KindNull Kind = iota
	// KindInteger is an exact integer that fits in an int64.
	KindInteger
	// KindFloat is an approximate numeric value.
	KindFloat
	// KindDecimal is an exact numeric value kept in its textual form.
	KindDecimal
	// KindText is a character string.
	KindText
	// KindBytes is binary data.
	KindBytes
	// KindTemporal is a date, time or timestamp kept in its textual form.
	KindTemporal
	// KindJSON is a JSON document kept in its textual form.
	KindJSON
)

// Value is a single column value as seen by the dump engine.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	// Text holds the literal for decimal, text, temporal and JSON values.
	Text  string
	Bytes []byte
}

// NullValue returns a SQL NULL value.
func NullValue() Value {
	return Value{Kind: KindNull}
}

// IntValue returns an integer value.
func IntValue(i int64) Value {
	return Value{Kind: KindInteger, Int: i}
}

// FloatValue returns a floating point value.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

// DecimalValue returns an exact numeric value from its literal.
func DecimalValue(literal string) Value {
	return Value{Kind: KindDecimal, Text: literal}
}

// TextValue returns a character string value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// BytesValue returns a binary value.
func BytesValue(b []byte) Value {
	return Value{Kind: KindBytes, Bytes: b}
}

// TemporalValue returns a date or time value from its literal.
func TemporalValue(literal string) Value {
	return Value{Kind: KindTemporal, Text: literal}
}

// JSONValue returns a JSON document value.
func JSONValue(document string) Value {
	return Value{Kind: KindJSON, Text: document}
}
