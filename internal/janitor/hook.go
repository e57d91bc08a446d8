// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package janitor

import (
	"fmt"
	"io"
)

// Hook is the column value transformer handed to the dump engine.
// It must be created fresh for every dump run.
type Hook struct {
	config     *Config
	tracker    *RowSkipTracker
	randomizer Randomizer

	sanitized int
}

// HookOption customizes a Hook.
type HookOption func(*Hook)

// WithRandomSource makes the Hook read entropy from random instead of crypto/rand.
func WithRandomSource(random io.Reader) HookOption {
	return func(h *Hook) {
		h.randomizer = NewRandomizer(random)
	}
}

// NewHook returns a Hook with a new RowSkipTracker for config.
func NewHook(config *Config, opts ...HookOption) *Hook {
	hook := &Hook{
		config:     config,
		tracker:    NewRowSkipTracker(config),
		randomizer: NewRandomizer(nil),
	}

	for _, opt := range opts {
		opt(hook)
	}

	return hook
}

// OnColumnValue returns the value to write for column of table.
// It must be called exactly once per value, in row-major order, table after table.
func (h *Hook) OnColumnValue(table, column string, value Value) (Value, error) {
	if h.tracker.ShouldSkip(table, column) {
		return value, nil
	}

	randomized, replaced, err := h.randomizer.randomize(table, column, value, h.config)
	if err != nil {
		return value, fmt.Errorf("table %q column %q: %w", table, column, err)
	}

	if replaced {
		h.sanitized++
	}

	return randomized, nil
}

// TransformRow applies OnColumnValue to every value of a single row, replacing
// values in place. The tracking column of the table, when present, is evaluated
// first so that every column of the row shares the same skip decision.
func (h *Hook) TransformRow(table string, columns []string, values []Value) error {
	if len(columns) != len(values) {
		return fmt.Errorf("table %q: %d columns but %d values", table, len(columns), len(values))
	}

	for _, i := range h.rowOrder(table, columns) {
		value, err := h.OnColumnValue(table, columns[i], values[i])
		if err != nil {
			return err
		}
		values[i] = value
	}

	return nil
}

// Sanitized returns how many values have been replaced so far.
func (h *Hook) Sanitized() int {
	return h.sanitized
}

// rowOrder returns the column indexes in evaluation order.
func (h *Hook) rowOrder(table string, columns []string) []int {
	order := make([]int, 0, len(columns))
	tracking := -1
	if trackingColumn, ok := h.tracker.TrackingColumn(table); ok {
		for i, column := range columns {
			if column == trackingColumn {
				tracking = i
				order = append(order, i)
				break
			}
		}
	}

	for i := range columns {
		if i != tracking {
			order = append(order, i)
		}
	}

	return order
}
