// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Dooptroop/database-janitor/internal/config"
	"github.com/Dooptroop/database-janitor/internal/credentials"
	"github.com/Dooptroop/database-janitor/internal/source"
	"github.com/Dooptroop/database-janitor/internal/source/mysql"
)

var (
	errNoArguments = errors.New("no database name provided")
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, credentials.ErrMissingCredentials), errors.Is(err, config.ErrInvalidConnection):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// openMySQLSource connects to the database described by connection.
func openMySQLSource(ctx context.Context, connection mysql.Connection) (source.Source, error) {
	return mysql.Open(ctx, connection)
}
