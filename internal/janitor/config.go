// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package janitor

// RowSkipRule protects the first SkipRows rows of a table from sanitization.
// Rows are counted by the occurrences of TrackingColumn.
type RowSkipRule struct {
	TrackingColumn string
	SkipRows       int
}

// Config is the immutable sanitization configuration of a single dump.
type Config struct {
	sanitizeTables map[string]map[string]struct{}
	rowSkipRules   map[string]RowSkipRule
}

// NewConfig builds a Config from the list of columns to sanitize for every table
// and the row skip rules keyed by table name. The input maps are copied.
func NewConfig(sanitizeTables map[string][]string, rowSkipRules map[string]RowSkipRule) *Config {
	config := &Config{
		sanitizeTables: make(map[string]map[string]struct{}, len(sanitizeTables)),
		rowSkipRules:   make(map[string]RowSkipRule, len(rowSkipRules)),
	}

	for table, columns := range sanitizeTables {
		set := make(map[string]struct{}, len(columns))
		for _, column := range columns {
			set[column] = struct{}{}
		}
		config.sanitizeTables[table] = set
	}

	for table, rule := range rowSkipRules {
		config.rowSkipRules[table] = rule
	}

	return config
}

// ShouldSanitize reports whether column of table is listed for sanitization.
func (c *Config) ShouldSanitize(table, column string) bool {
	if c == nil {
		return false
	}

	_, ok := c.sanitizeTables[table][column]
	return ok
}

// RowSkipRule returns the row skip rule configured for table, if any.
func (c *Config) RowSkipRule(table string) (RowSkipRule, bool) {
	if c == nil {
		return RowSkipRule{}, false
	}

	rule, ok := c.rowSkipRules[table]
	return rule, ok
}
