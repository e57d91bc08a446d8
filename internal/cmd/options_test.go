// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dooptroop/database-janitor/internal/config"
	"github.com/Dooptroop/database-janitor/internal/credentials"
	fakecredentials "github.com/Dooptroop/database-janitor/internal/credentials/fake"
	"github.com/Dooptroop/database-janitor/internal/destination"
	fakedestination "github.com/Dooptroop/database-janitor/internal/destination/fake"
	"github.com/Dooptroop/database-janitor/internal/janitor"
	"github.com/Dooptroop/database-janitor/internal/logger"
	"github.com/Dooptroop/database-janitor/internal/source"
	fakesource "github.com/Dooptroop/database-janitor/internal/source/fake"
	"github.com/Dooptroop/database-janitor/internal/source/mysql"
)

func testTables() []fakesource.FakeTable {
	return []fakesource.FakeTable{
		{
			Table:   source.Table{Name: "users"},
			Create:  "CREATE TABLE `users` (`id` int, `email` varchar(255))",
			Columns: []string{"id", "email"},
			Rows: [][]janitor.Value{
				{janitor.IntValue(1), janitor.TextValue("admin@example.com")},
				{janitor.IntValue(2), janitor.TextValue("someone@example.com")},
			},
		},
		{
			Table:   source.Table{Name: "orders"},
			Create:  "CREATE TABLE `orders` (`id` int)",
			Columns: []string{"id"},
			Rows:    [][]janitor.Value{{janitor.IntValue(10)}},
		},
		{
			Table:   source.Table{Name: "sessions"},
			Create:  "CREATE TABLE `sessions` (`id` int)",
			Columns: []string{"id"},
			Rows:    [][]janitor.Value{{janitor.IntValue(99)}},
		},
	}
}

func testJanitorConfig(t *testing.T) *config.JanitorConfig {
	t.Helper()

	janitorConfig, err := config.NewJanitorConfigFromPath(filepath.Join("testdata", "janitor.yaml"))
	require.NoError(t, err)
	return janitorConfig
}

// testSourceOpener returns a source opener serving src and recording the connection it receives.
func testSourceOpener(src source.Source, received *mysql.Connection) func(context.Context, mysql.Connection) (source.Source, error) {
	return func(_ context.Context, connection mysql.Connection) (source.Source, error) {
		*received = connection
		return src, nil
	}
}

func TestOptionsExecute(t *testing.T) {
	t.Parallel()

	src := fakesource.NewFakeSource(t, testTables()...)
	prompter := fakecredentials.NewFakePrompter(t, "janitor", "secret")
	stdout := new(bytes.Buffer)
	logs := new(bytes.Buffer)
	var received mysql.Connection

	opts := &options{
		database:      "shop",
		connection:    config.Connection{Host: "localhost", Port: 3306},
		janitorConfig: testJanitorConfig(t),
		output:        "-",
		stdout:        stdout,
		prompter:      prompter,
		sourceOpener:  testSourceOpener(src, &received),
	}
	require.NoError(t, opts.validate())

	ctx := logger.WithContext(t.Context(), logger.NewLogger(logs))
	require.NoError(t, opts.execute(ctx))

	assert.Equal(t, mysql.Connection{
		Host:     "localhost",
		Port:     3306,
		User:     "janitor",
		Password: "secret",
		Database: "shop",
	}, received)
	assert.True(t, src.Closed)
	assert.Equal(t, []string{"users", "orders"}, src.StreamedTables)

	dump := stdout.String()
	assert.Contains(t, dump, "INSERT INTO `users` (`id`,`email`) VALUES (1,'admin@example.com');\n")
	assert.Regexp(t, "INSERT INTO `users` \\(`id`,`email`\\) VALUES \\(2,'\\d{7}-janitor'\\);\n", dump)
	assert.Contains(t, dump, "INSERT INTO `orders` (`id`) VALUES (10);\n")
	assert.NotContains(t, dump, "`sessions`")
	assert.Contains(t, logs.String(), `"`+logger.RunIDKey+`":`)
}

func TestOptionsExecuteTrim(t *testing.T) {
	t.Parallel()

	src := fakesource.NewFakeSource(t, testTables()...)
	stdout := new(bytes.Buffer)
	var received mysql.Connection

	opts := &options{
		database:      "shop",
		connection:    config.Connection{Host: "localhost", Port: 3306, User: "root", Password: "root"},
		janitorConfig: testJanitorConfig(t),
		trim:          true,
		output:        "-",
		stdout:        stdout,
		sourceOpener:  testSourceOpener(src, &received),
	}
	require.NoError(t, opts.execute(t.Context()))

	assert.Equal(t, []string{"users"}, src.StreamedTables)
	assert.NotContains(t, stdout.String(), "INSERT INTO `orders`")
}

func TestOptionsSettings(t *testing.T) {
	t.Parallel()

	opts := &options{janitorConfig: testJanitorConfig(t)}
	settings := opts.settings()
	assert.Equal(t, []string{"sessions"}, settings.ExcludedTables)
	assert.Equal(t, []string{"cache"}, settings.NoDataTables)
	assert.Empty(t, settings.KeepDataTables)
	assert.False(t, settings.Trim)
	assert.True(t, settings.AddDropTable)

	opts.trim = true
	settings = opts.settings()
	assert.Equal(t, []string{"users"}, settings.KeepDataTables)
	assert.True(t, settings.Trim)
}

func TestOptionsExecuteErrors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		options     func(t *testing.T) *options
		expectedErr error
	}{
		"missing user without a terminal": {
			options: func(t *testing.T) *options {
				return &options{
					database:      "shop",
					connection:    config.Connection{Host: "localhost", Port: 3306},
					janitorConfig: testJanitorConfig(t),
					sourceOpener: func(context.Context, mysql.Connection) (source.Source, error) {
						t.Fatal("source must not be opened")
						return nil, nil
					},
				}
			},
			expectedErr: credentials.ErrMissingCredentials,
		},
		"source cannot be opened": {
			options: func(t *testing.T) *options {
				return &options{
					database:      "shop",
					connection:    config.Connection{Host: "localhost", Port: 3306, User: "root"},
					janitorConfig: testJanitorConfig(t),
					sourceOpener: func(context.Context, mysql.Connection) (source.Source, error) {
						return nil, assert.AnError
					},
				}
			},
			expectedErr: assert.AnError,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			err := test.options(t).execute(t.Context())
			assert.ErrorIs(t, err, test.expectedErr)
		})
	}
}

func TestOptionsExecuteRemovesPartialFile(t *testing.T) {
	t.Parallel()

	src := fakesource.NewFakeSourceWithError(t, assert.AnError, testTables()...)
	path := filepath.Join(t.TempDir(), "shop.sql")
	var received mysql.Connection

	opts := &options{
		database:      "shop",
		connection:    config.Connection{Host: "localhost", Port: 3306, User: "root"},
		janitorConfig: testJanitorConfig(t),
		output:        path,
		sourceOpener:  testSourceOpener(src, &received),
	}

	err := opts.execute(t.Context())
	require.ErrorIs(t, err, assert.AnError)

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, src.Closed)
}

func TestOptionsExecuteMalformedRow(t *testing.T) {
	t.Parallel()

	src := fakesource.NewFakeSource(t, fakesource.FakeTable{
		Table:   source.Table{Name: "users"},
		Create:  "CREATE TABLE `users` (`id` int, `email` varchar(255))",
		Columns: []string{"id", "email"},
		Rows:    [][]janitor.Value{{janitor.IntValue(1)}},
	})
	var received mysql.Connection

	opts := &options{
		database:      "shop",
		connection:    config.Connection{Host: "localhost", Port: 3306, User: "root"},
		janitorConfig: testJanitorConfig(t),
		output:        "-",
		stdout:        new(bytes.Buffer),
		sourceOpener:  testSourceOpener(src, &received),
	}

	err := opts.execute(t.Context())
	assert.ErrorContains(t, err, `table "users": 2 columns but 1 values`)
}

// testDestinationOpener returns a destination opener serving output.
func testDestinationOpener(output destination.Destination) func(context.Context, string, destination.Options) (destination.Destination, error) {
	return func(context.Context, string, destination.Options) (destination.Destination, error) {
		return output, nil
	}
}

func TestOptionsExecuteOutputRelease(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		output          func(t *testing.T) *fakedestination.FakeDestination
		expectedErr     error
		expectedAborted bool
	}{
		"successful close keeps the dump": {
			output: func(t *testing.T) *fakedestination.FakeDestination {
				return fakedestination.NewFakeDestination(t)
			},
		},
		"failed close discards the dump": {
			output: func(t *testing.T) *fakedestination.FakeDestination {
				return fakedestination.NewFakeDestinationWithCloseError(t, assert.AnError)
			},
			expectedErr:     assert.AnError,
			expectedAborted: true,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			src := fakesource.NewFakeSource(t, testTables()...)
			output := test.output(t)
			var received mysql.Connection

			opts := &options{
				database:          "shop",
				connection:        config.Connection{Host: "localhost", Port: 3306, User: "root"},
				janitorConfig:     testJanitorConfig(t),
				output:            "shop.sql",
				sourceOpener:      testSourceOpener(src, &received),
				destinationOpener: testDestinationOpener(output),
			}

			err := opts.execute(t.Context())
			assert.True(t, output.Closed)
			assert.Equal(t, test.expectedAborted, output.Aborted)
			assert.True(t, src.Closed)
			if test.expectedErr != nil {
				require.ErrorIs(t, err, test.expectedErr)
				assert.ErrorIs(t, output.AbortCause, test.expectedErr)
				assert.Zero(t, output.Len())
				return
			}

			require.NoError(t, err)
			assert.Contains(t, output.String(), "INSERT INTO `orders` (`id`) VALUES (10);\n")
		})
	}
}
