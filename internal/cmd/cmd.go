// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	dumpCmdUsage = "dump DATABASE"
	dumpCmdShort = "dump a MySQL database replacing sensitive values"
	dumpCmdLong  = `Dump a MySQL or MariaDB database as a SQL script, replacing the values of
	the configured columns with random placeholders while the rows are exported.

	The configuration file lists the columns to sanitize for each table, how many
	leading rows of a table must be left untouched, the tables to exclude from the
	dump and the tables to dump without data.

	Connection settings can also be provided with the JANITOR_DB_HOST, JANITOR_DB_PORT,
	JANITOR_DB_USER and JANITOR_DB_PASSWORD environment variables. When running in a
	terminal, a missing user or password is asked interactively.`

	dumpCmdExample = `# Dump the shop database to the standard output
	database-janitor dump shop -u root -c janitor.yaml

	# Dump only the data of the tables listed in keep_data, compressed
	database-janitor dump shop -u root -c janitor.yaml --trim --gzip -o shop.sql.gz

	# Upload the dump to an Azure Blob Storage container
	database-janitor dump shop -c janitor.yaml -o azblob://myaccount/dumps/shop.sql`
)

// DumpCmd returns the "dump" cli command that exports a sanitized database.
func DumpCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     dumpCmdUsage,
		Short:   heredoc.Doc(dumpCmdShort),
		Long:    heredoc.Doc(dumpCmdLong),
		Example: heredoc.Doc(dumpCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
