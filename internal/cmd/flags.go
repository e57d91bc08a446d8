// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dooptroop/database-janitor/internal/config"
	"github.com/Dooptroop/database-janitor/internal/credentials"
	"github.com/Dooptroop/database-janitor/internal/destination"
)

const (
	hostFlagName  = "host"
	hostFlagUsage = "database host, or the absolute path of a unix socket (default from JANITOR_DB_HOST or localhost)"

	portFlagName  = "port"
	portFlagUsage = "database port (default from JANITOR_DB_PORT or 3306)"

	userFlagName  = "user"
	userFlagShort = "u"
	userFlagUsage = "database user, asked interactively when missing"

	passwordFlagName  = "password"
	passwordFlagShort = "p"
	passwordFlagUsage = "database password, asked interactively when missing"

	configFlagName  = "config"
	configFlagShort = "c"
	configFlagUsage = "path to the YAML or JSON file with the sanitization rules"

	trimFlagName  = "trim"
	trimFlagShort = "t"
	trimFlagUsage = "dump the data only for the tables listed in keep_data"

	outputFlagName  = "output"
	outputFlagShort = "o"
	outputFlagUsage = "where to write the dump: a file path, an azblob://account/container/blob URL or - for the standard output"

	gzipFlagName  = "gzip"
	gzipFlagUsage = "compress the dump with gzip"
)

// flags holds the flags for the "dump" command.
type flags struct {
	host       string
	port       int
	user       string
	password   string
	configPath string
	trim       bool
	output     string
	gzip       bool
}

// addFlags adds the cli flags to the cobra command.
func (f *flags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.host, hostFlagName, "", hostFlagUsage)
	flags.IntVar(&f.port, portFlagName, 0, portFlagUsage)
	flags.StringVarP(&f.user, userFlagName, userFlagShort, "", userFlagUsage)
	flags.StringVarP(&f.password, passwordFlagName, passwordFlagShort, "", passwordFlagUsage)
	flags.StringVarP(&f.configPath, configFlagName, configFlagShort, "", configFlagUsage)
	flags.BoolVarP(&f.trim, trimFlagName, trimFlagShort, false, trimFlagUsage)
	flags.StringVarP(&f.output, outputFlagName, outputFlagShort, destination.StdoutTarget, outputFlagUsage)
	flags.BoolVar(&f.gzip, gzipFlagName, false, gzipFlagUsage)

	_ = cmd.MarkFlagFilename(configFlagName, "yaml", "yml", "json")
}

// toOptions converts the flags to options enriching them with the passed arguments
// and the environment.
func (f *flags) toOptions(cmd *cobra.Command, args []string) (*options, error) {
	database := ""
	if len(args) > 0 {
		database = strings.TrimSpace(args[0])
	}

	if database == "" {
		return nil, errNoArguments
	}

	connection, err := config.LoadConnectionFromEnv()
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed(hostFlagName) {
		connection.Host = f.host
	}
	if changed(portFlagName) {
		connection.Port = f.port
	}
	if changed(userFlagName) {
		connection.User = f.user
	}
	if changed(passwordFlagName) {
		connection.Password = f.password
	}

	janitorConfig := new(config.JanitorConfig)
	if f.configPath != "" {
		janitorConfig, err = config.NewJanitorConfigFromPath(f.configPath)
		if err != nil {
			return nil, err
		}
	}

	var prompter credentials.Prompter
	if credentials.IsTerminal(os.Stdin) {
		prompter = credentials.NewSurveyPrompter(os.Stdin, os.Stderr, cmd.ErrOrStderr())
	}

	return &options{
		database:          database,
		connection:        connection,
		janitorConfig:     janitorConfig,
		trim:              f.trim,
		output:            f.output,
		gzip:              f.gzip,
		stdout:            cmd.OutOrStdout(),
		prompter:          prompter,
		sourceOpener:      openMySQLSource,
		destinationOpener: destination.Open,
	}, nil
}
