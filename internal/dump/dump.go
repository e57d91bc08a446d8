// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dump

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Dooptroop/database-janitor/internal/info"
	"github.com/Dooptroop/database-janitor/internal/janitor"
	"github.com/Dooptroop/database-janitor/internal/logger"
	"github.com/Dooptroop/database-janitor/internal/source"
)

const (
	loggerName = "janitor:dump"
)

// Transformer rewrites the values of a row in place before it is written.
type Transformer interface {
	TransformRow(table string, columns []string, values []janitor.Value) error
}

// sanitizedCounter is implemented by transformers able to report how many values they replaced.
type sanitizedCounter interface {
	Sanitized() int
}

// Stats reports what a Dump call has written.
type Stats struct {
	Tables int
	Views  int
	Rows   int
}

// Dumper writes the export of a single source. A Dumper is not safe for concurrent use.
type Dumper struct {
	source      source.Source
	transformer Transformer
	settings    Settings

	stats Stats
}

// New returns a Dumper reading from src. transformer can be nil to dump values as they are.
func New(src source.Source, transformer Transformer, settings Settings) *Dumper {
	return &Dumper{
		source:      src,
		transformer: transformer,
		settings:    settings,
	}
}

// Stats returns the counters of the last Dump call.
func (d *Dumper) Stats() Stats {
	return d.stats
}

// Dump writes the whole export to w. Base tables are written before views so that
// views can be recreated on top of them.
func (d *Dumper) Dump(ctx context.Context, w io.Writer) error {
	log := logger.FromContext(ctx).WithName(loggerName)
	d.stats = Stats{}

	tables, err := d.source.Tables(ctx)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}

	baseTables := make([]source.Table, 0, len(tables))
	views := make([]source.Table, 0)
	for _, table := range tables {
		if d.settings.excluded(table) {
			log.Debug("table excluded from dump", "table", table.Name)
			continue
		}

		if table.View {
			views = append(views, table)
			continue
		}
		baseTables = append(baseTables, table)
	}

	buffered := bufio.NewWriter(w)
	if err := writeHeader(buffered); err != nil {
		return err
	}

	for _, table := range append(baseTables, views...) {
		if err := d.dumpTable(ctx, buffered, table); err != nil {
			return err
		}
	}

	if err := writeFooter(buffered); err != nil {
		return err
	}

	if err := buffered.Flush(); err != nil {
		return err
	}

	sanitized := 0
	if counter, ok := d.transformer.(sanitizedCounter); ok {
		sanitized = counter.Sanitized()
	}

	log.Info("dump completed", "tables", d.stats.Tables, "views", d.stats.Views, "rows", d.stats.Rows, "sanitized", sanitized)
	return nil
}

func (d *Dumper) dumpTable(ctx context.Context, w *bufio.Writer, table source.Table) error {
	log := logger.FromContext(ctx).WithName(loggerName)

	create, err := d.source.CreateStatement(ctx, table)
	if err != nil {
		return &tableError{Table: table.Name, Step: "reading create statement", Err: err}
	}

	if err := writeStructure(w, table, create, d.settings.AddDropTable); err != nil {
		return err
	}

	if table.View {
		d.stats.Views++
		return nil
	}
	d.stats.Tables++

	if !d.settings.dumpData(table) {
		log.Debug("dumping structure only", "table", table.Name)
		return nil
	}

	log.Trace("dumping rows", "table", table.Name)
	rows, err := d.dumpRows(ctx, w, table)
	d.stats.Rows += rows
	if err != nil {
		return &tableError{Table: table.Name, Step: "dumping rows", Err: err}
	}

	log.Debug("table dumped", "table", table.Name, "rows", rows)
	return nil
}

// dumpRows streams the rows of table from the source on a separate goroutine and writes them
// as they arrive. On a transform or write failure the source is cancelled and the channel drained.
func (d *Dumper) dumpRows(ctx context.Context, w *bufio.Writer, table source.Table) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	channel := make(chan source.Row)
	streamDone := make(chan error, 1)
	go func() {
		err := d.source.StreamRows(ctx, table, channel)
		close(channel)
		streamDone <- err
	}()

	count := 0
	var writeErr error
	for row := range channel {
		if writeErr != nil {
			continue
		}

		if count == 0 {
			writeErr = writeDataHeader(w, table)
		}

		if writeErr == nil && d.transformer != nil {
			writeErr = d.transformer.TransformRow(table.Name, row.Columns, row.Values)
		}

		if writeErr == nil {
			writeErr = writeInsert(w, table, row.Columns, row.Values)
		}

		if writeErr != nil {
			cancel()
			continue
		}
		count++
	}

	streamErr := <-streamDone
	if writeErr != nil {
		return count, writeErr
	}

	return count, streamErr
}

// sessionSetup pins the session of the restoring client, the previous values are saved
// and set back by sessionRestore.
const sessionSetup = `/*!40101 SET @OLD_CHARACTER_SET_CLIENT=@@CHARACTER_SET_CLIENT */;
/*!40101 SET NAMES utf8mb4 */;
/*!40103 SET @OLD_TIME_ZONE=@@TIME_ZONE */;
/*!40103 SET TIME_ZONE='+00:00' */;
/*!40014 SET @OLD_FOREIGN_KEY_CHECKS=@@FOREIGN_KEY_CHECKS, FOREIGN_KEY_CHECKS=0 */;
/*!40101 SET @OLD_SQL_MODE=@@SQL_MODE, SQL_MODE='NO_AUTO_VALUE_ON_ZERO' */;
`

const sessionRestore = `/*!40101 SET SQL_MODE=@OLD_SQL_MODE */;
/*!40014 SET FOREIGN_KEY_CHECKS=@OLD_FOREIGN_KEY_CHECKS */;
/*!40103 SET TIME_ZONE=@OLD_TIME_ZONE */;
/*!40101 SET CHARACTER_SET_CLIENT=@OLD_CHARACTER_SET_CLIENT */;
`

func writeHeader(w *bufio.Writer) error {
	if _, err := fmt.Fprintf(w, "-- %s %s SQL dump\n--\n\n", info.AppName, info.Version); err != nil {
		return err
	}

	_, err := w.WriteString(sessionSetup)
	return err
}

func writeFooter(w *bufio.Writer) error {
	_, err := w.WriteString("\n" + sessionRestore + "\n-- Dump completed\n")
	return err
}

func writeStructure(w *bufio.Writer, table source.Table, create string, addDrop bool) error {
	kind := "TABLE"
	label := "Table structure for table"
	if table.View {
		kind = "VIEW"
		label = "Structure for view"
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "\n--\n-- %s %s\n--\n\n", label, QuoteIdentifier(table.Name))
	if addDrop {
		fmt.Fprintf(&builder, "DROP %s IF EXISTS %s;\n", kind, QuoteIdentifier(table.Name))
	}
	builder.WriteString(strings.TrimSuffix(strings.TrimSpace(create), ";"))
	builder.WriteString(";\n")

	_, err := w.WriteString(builder.String())
	return err
}

func writeDataHeader(w *bufio.Writer, table source.Table) error {
	_, err := fmt.Fprintf(w, "\n--\n-- Dumping data for table %s\n--\n\n", QuoteIdentifier(table.Name))
	return err
}

// writeInsert writes a single row insert. The column list is omitted only when the source
// could not tell the columns of the row.
func writeInsert(w *bufio.Writer, table source.Table, columns []string, values []janitor.Value) error {
	literals := make([]string, len(values))
	for i, value := range values {
		literals[i] = Literal(value)
	}

	if len(columns) == 0 {
		_, err := fmt.Fprintf(w, "INSERT INTO %s VALUES (%s);\n", QuoteIdentifier(table.Name), strings.Join(literals, ","))
		return err
	}

	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = QuoteIdentifier(column)
	}

	_, err := fmt.Fprintf(w, "INSERT INTO %s (%s) VALUES (%s);\n", QuoteIdentifier(table.Name), strings.Join(quoted, ","), strings.Join(literals, ","))
	return err
}
