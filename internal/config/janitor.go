// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dooptroop/database-janitor/internal/janitor"
)

// keys of a sanitize_table_rows_exclude entry, used in validation messages
const (
	firstColField = "first_col"
	skipRowsField = "skip_rows"
)

var (
	// ErrParsing reports failures that occur while decoding configuration files.
	ErrParsing = errors.New("error parsing")
)

// JanitorConfig holds the sanitization and dump rules read from a configuration file.
type JanitorConfig struct {
	SanitizeTables           map[string][]string    `json:"sanitize_tables,omitempty" yaml:"sanitize_tables,omitempty"`
	SanitizeTableRowsExclude map[string]RowsExclude `json:"sanitize_table_rows_exclude,omitempty" yaml:"sanitize_table_rows_exclude,omitempty"`
	ExcludedTables           []string               `json:"excluded_tables,omitempty" yaml:"excluded_tables,omitempty"`
	ScrubTables              []string               `json:"scrub_tables,omitempty" yaml:"scrub_tables,omitempty"`
	KeepData                 []string               `json:"keep_data,omitempty" yaml:"keep_data,omitempty"`
}

// RowsExclude describes how many leading rows of a table are left untouched.
type RowsExclude struct {
	FirstCol string `json:"first_col" yaml:"first_col"`
	SkipRows int    `json:"skip_rows" yaml:"skip_rows"`
}

// NewJanitorConfigFromPath parses the YAML or JSON file at path. An empty file
// returns an empty configuration.
func NewJanitorConfigFromPath(path string) (*JanitorConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return NewJanitorConfig(file, path)
}

// NewJanitorConfig parses a configuration from reader; name is only used in error messages.
func NewJanitorConfig(reader io.Reader, name string) (*JanitorConfig, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	config := new(JanitorConfig)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, name, err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, name, err)
	}

	return config, nil
}

// validate checks the row exclusion rules, every other value is accepted as is.
func (c *JanitorConfig) validate() error {
	errorsList := []string{}
	for _, table := range slices.Sorted(maps.Keys(c.SanitizeTableRowsExclude)) {
		rule := c.SanitizeTableRowsExclude[table]
		if rule.FirstCol == "" {
			errorsList = append(errorsList, fmt.Sprintf("missing field '%s' for table '%s'", firstColField, table))
		}
		if rule.SkipRows < 0 {
			errorsList = append(errorsList, fmt.Sprintf("negative value '%d' in '%s' for table '%s'", rule.SkipRows, skipRowsField, table))
		}
	}

	if len(errorsList) > 0 {
		return errors.New(strings.Join(errorsList, "; "))
	}

	return nil
}

// SanitizeConfig returns the sanitization rules in the form used by the dump hook.
func (c *JanitorConfig) SanitizeConfig() *janitor.Config {
	rules := make(map[string]janitor.RowSkipRule, len(c.SanitizeTableRowsExclude))
	for table, rule := range c.SanitizeTableRowsExclude {
		rules[table] = janitor.RowSkipRule{
			TrackingColumn: rule.FirstCol,
			SkipRows:       rule.SkipRows,
		}
	}

	return janitor.NewConfig(c.SanitizeTables, rules)
}
