// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package mysql implements a source.Source reading a MySQL or MariaDB database.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/Dooptroop/database-janitor/internal/janitor"
	"github.com/Dooptroop/database-janitor/internal/logger"
	"github.com/Dooptroop/database-janitor/internal/source"
)

var (
	// ErrMySQLSource is the sentinel error for all MySQL source errors.
	ErrMySQLSource = errors.New("mysql source")
)

const (
	logName = "janitor:source:mysql"

	driverName = "mysql"
	viewType   = "VIEW"

	columnsQuery = "SELECT COLUMN_NAME, EXTRA FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION"
)

var _ source.Source = &Source{}
var _ source.ClosableSource = &Source{}

// Connection holds what is needed to reach the database to dump.
type Connection struct {
	// Host is a hostname, an IP address or the absolute path of a unix socket.
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// DSN returns the go-sql-driver data source name for the connection.
func (c Connection) DSN() string {
	config := mysqldriver.NewConfig()
	config.User = c.User
	config.Passwd = c.Password
	config.DBName = c.Database
	if strings.HasPrefix(c.Host, "/") {
		config.Net = "unix"
		config.Addr = c.Host
	} else {
		config.Net = "tcp"
		config.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	}
	config.Params = map[string]string{
		"charset": "utf8mb4",
		// TIMESTAMP values are read in UTC, the dump restores them with the same zone
		"time_zone": "'+00:00'",
	}

	return config.FormatDSN()
}

// Source reads tables and rows of a single database.
type Source struct {
	db       *sql.DB
	database string
}

// Open connects to the database described by connection and checks it is reachable.
func Open(ctx context.Context, connection Connection) (*Source, error) {
	log := logger.FromContext(ctx).WithName(logName)

	db, err := sql.Open(driverName, connection.DSN())
	if err != nil {
		return nil, handleError(err)
	}

	log.Debug("connecting to database", "host", connection.Host, "port", connection.Port, "database", connection.Database)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, handleError(err)
	}

	return New(db, connection.Database), nil
}

// New returns a Source using an already opened database handle.
func New(db *sql.DB, database string) *Source {
	return &Source{
		db:       db,
		database: database,
	}
}

// Tables implements source.Source.
func (s *Source) Tables(ctx context.Context) ([]source.Table, error) {
	rows, err := s.db.QueryContext(ctx, "SHOW FULL TABLES")
	if err != nil {
		return nil, handleError(err)
	}
	defer rows.Close()

	tables := make([]source.Table, 0)
	for rows.Next() {
		var name, tableType string
		if err := rows.Scan(&name, &tableType); err != nil {
			return nil, handleError(err)
		}

		tables = append(tables, source.Table{
			Name: name,
			View: strings.EqualFold(tableType, viewType),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, handleError(err)
	}

	return tables, nil
}

// CreateStatement implements source.Source.
func (s *Source) CreateStatement(ctx context.Context, table source.Table) (string, error) {
	query := "SHOW CREATE TABLE " + quoteIdentifier(table.Name)
	if table.View {
		query = "SHOW CREATE VIEW " + quoteIdentifier(table.Name)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return "", handleError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", handleError(err)
	}
	if len(columns) < 2 {
		return "", fmt.Errorf("%w: unexpected columns %q for %s", ErrMySQLSource, columns, query)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", handleError(err)
		}
		return "", fmt.Errorf("%w: no create statement for %q", ErrMySQLSource, table.Name)
	}

	// the create statement is always the second column, views return some extra charset columns
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return "", handleError(err)
	}

	return values[1].String, nil
}

// StreamRows implements source.Source.
func (s *Source) StreamRows(ctx context.Context, table source.Table, results chan<- source.Row) error {
	log := logger.FromContext(ctx).WithName(logName)

	selected, err := s.dumpableColumns(ctx, table)
	if err != nil {
		return err
	}

	selectList := "*"
	if len(selected) > 0 {
		quoted := make([]string, len(selected))
		for i, column := range selected {
			quoted[i] = quoteIdentifier(column)
		}
		selectList = strings.Join(quoted, ",")
	}

	rows, err := s.db.QueryContext(ctx, "SELECT "+selectList+" FROM "+quoteIdentifier(table.Name))
	if err != nil {
		return handleError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return handleError(err)
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return handleError(err)
	}

	kinds := make([]janitor.Kind, len(columnTypes))
	for i, columnType := range columnTypes {
		kinds[i] = KindFromDatabaseType(columnType.DatabaseTypeName())
		log.Trace("column classified", "table", table.Name, "column", columns[i], "type", columnType.DatabaseTypeName(), "kind", kinds[i].String())
	}

	for rows.Next() {
		raw := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return handleError(err)
		}

		values := make([]janitor.Value, len(columns))
		for i := range raw {
			value, err := ValueFromDriver(kinds[i], raw[i])
			if err != nil {
				return fmt.Errorf("%w: table %q column %q: %w", ErrMySQLSource, table.Name, columns[i], err)
			}
			values[i] = value
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- source.Row{Table: table.Name, Columns: columns, Values: values}:
		}
	}

	if err := rows.Err(); err != nil {
		return handleError(err)
	}

	return nil
}

// dumpableColumns returns the columns of table in their ordinal order, without the generated
// ones whose values cannot be inserted back. An empty result means the columns are unknown.
func (s *Source) dumpableColumns(ctx context.Context, table source.Table) ([]string, error) {
	log := logger.FromContext(ctx).WithName(logName)

	rows, err := s.db.QueryContext(ctx, columnsQuery, s.database, table.Name)
	if err != nil {
		return nil, handleError(err)
	}
	defer rows.Close()

	columns := make([]string, 0)
	for rows.Next() {
		var name, extra string
		if err := rows.Scan(&name, &extra); err != nil {
			return nil, handleError(err)
		}

		if isGenerated(extra) {
			log.Debug("skipping generated column", "table", table.Name, "column", name)
			continue
		}
		columns = append(columns, name)
	}

	if err := rows.Err(); err != nil {
		return nil, handleError(err)
	}

	return columns, nil
}

// isGenerated reports whether the EXTRA attribute of a column marks a generated column.
// DEFAULT_GENERATED only flags an expression default and the column can be written.
func isGenerated(extra string) bool {
	extra = strings.ToUpper(extra)
	return strings.Contains(extra, "VIRTUAL GENERATED") ||
		strings.Contains(extra, "STORED GENERATED") ||
		strings.Contains(extra, "PERSISTENT GENERATED")
}

// Close implements source.ClosableSource.
func (s *Source) Close() error {
	return s.db.Close()
}

func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// handleError wraps err with ErrMySQLSource, context errors are returned as is.
func handleError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrMySQLSource, err)
}
