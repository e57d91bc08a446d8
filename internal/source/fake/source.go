// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/Dooptroop/database-janitor/internal/janitor"
	"github.com/Dooptroop/database-janitor/internal/source"
)

var _ source.Source = &FakeSource{}
var _ source.ClosableSource = &FakeSource{}

// FakeTable is an in memory table with its create statement and rows.
type FakeTable struct {
	source.Table

	Create  string
	Columns []string
	Rows    [][]janitor.Value
	// Generated names the columns left out of the streamed rows.
	Generated []string
}

// FakeSource serves FakeTables and records the calls it receives.
type FakeSource struct {
	tb testing.TB

	tables []FakeTable
	err    error

	StreamedTables []string
	Closed         bool
}

// NewFakeSource returns a FakeSource serving tables in the given order.
func NewFakeSource(tb testing.TB, tables ...FakeTable) *FakeSource {
	tb.Helper()
	return &FakeSource{tb: tb, tables: tables}
}

// NewFakeSourceWithError returns a FakeSource whose StreamRows fails with err after
// sending the rows of the table.
func NewFakeSourceWithError(tb testing.TB, err error, tables ...FakeTable) *FakeSource {
	tb.Helper()
	return &FakeSource{tb: tb, tables: tables, err: err}
}

// Tables implements source.Source.
func (f *FakeSource) Tables(ctx context.Context) ([]source.Table, error) {
	f.tb.Helper()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tables := make([]source.Table, 0, len(f.tables))
	for _, table := range f.tables {
		tables = append(tables, table.Table)
	}

	return tables, nil
}

// CreateStatement implements source.Source.
func (f *FakeSource) CreateStatement(_ context.Context, table source.Table) (string, error) {
	f.tb.Helper()
	fakeTable, err := f.table(table.Name)
	if err != nil {
		return "", err
	}

	return fakeTable.Create, nil
}

// StreamRows implements source.Source.
func (f *FakeSource) StreamRows(ctx context.Context, table source.Table, results chan<- source.Row) error {
	f.tb.Helper()
	fakeTable, err := f.table(table.Name)
	if err != nil {
		return err
	}

	columns := make([]string, 0, len(fakeTable.Columns))
	generated := make(map[int]bool)
	for i, column := range fakeTable.Columns {
		if slices.Contains(fakeTable.Generated, column) {
			generated[i] = true
			continue
		}
		columns = append(columns, column)
	}

	f.StreamedTables = append(f.StreamedTables, table.Name)
	for _, values := range fakeTable.Rows {
		row := source.Row{
			Table:   table.Name,
			Columns: columns,
			Values:  make([]janitor.Value, 0, len(values)),
		}
		for i, value := range values {
			if !generated[i] {
				row.Values = append(row.Values, value)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- row:
		}
	}

	return f.err
}

// Close implements source.ClosableSource.
func (f *FakeSource) Close() error {
	f.tb.Helper()
	f.Closed = true
	return nil
}

func (f *FakeSource) table(name string) (FakeTable, error) {
	for _, table := range f.tables {
		if table.Name == name {
			return table, nil
		}
	}

	return FakeTable{}, fmt.Errorf("fake source: unknown table %q", name)
}
