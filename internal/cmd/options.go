// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/Dooptroop/database-janitor/internal/config"
	"github.com/Dooptroop/database-janitor/internal/credentials"
	"github.com/Dooptroop/database-janitor/internal/destination"
	"github.com/Dooptroop/database-janitor/internal/dump"
	"github.com/Dooptroop/database-janitor/internal/janitor"
	"github.com/Dooptroop/database-janitor/internal/logger"
	"github.com/Dooptroop/database-janitor/internal/source"
	"github.com/Dooptroop/database-janitor/internal/source/mysql"
)

const (
	loggerName = "janitor:cmd"
)

// options holds the options set for the current dump.
type options struct {
	database      string
	connection    config.Connection
	janitorConfig *config.JanitorConfig
	trim          bool
	output        string
	gzip          bool
	stdout        io.Writer

	prompter          credentials.Prompter
	sourceOpener      func(context.Context, mysql.Connection) (source.Source, error)
	destinationOpener func(context.Context, string, destination.Options) (destination.Destination, error)

	lock sync.Mutex
}

// validate validates the options and returns an error if something is wrong.
func (o *options) validate() error {
	if o.database == "" {
		return errNoArguments
	}

	return o.connection.Validate()
}

// settings returns the dump settings derived from the configuration file and the trim flag.
func (o *options) settings() dump.Settings {
	settings := dump.Settings{
		ExcludedTables: o.janitorConfig.ExcludedTables,
		NoDataTables:   o.janitorConfig.ScrubTables,
		Trim:           o.trim,
		AddDropTable:   true,
	}

	// keep_data has a meaning only when trimming
	if o.trim {
		settings.KeepDataTables = o.janitorConfig.KeepData
	}

	return settings
}

// execute connects to the database and writes the sanitized dump to the selected output.
func (o *options) execute(ctx context.Context) error {
	if !o.lock.TryLock() {
		return nil
	}
	defer o.lock.Unlock()

	ctx = logger.WithRunID(ctx, uuid.NewString())
	log := logger.FromContext(ctx).WithName(loggerName)

	creds, err := credentials.Complete(credentials.Credentials{
		User:     o.connection.User,
		Password: o.connection.Password,
	}, o.prompter)
	if err != nil {
		return err
	}

	log.Info("starting dump", "database", o.database, "host", o.connection.Host, "trim", o.trim)
	src, err := o.sourceOpener(ctx, mysql.Connection{
		Host:     o.connection.Host,
		Port:     o.connection.Port,
		User:     creds.User,
		Password: creds.Password,
		Database: o.database,
	})
	if err != nil {
		return err
	}

	if closable, ok := src.(source.ClosableSource); ok {
		defer func() {
			if closeErr := closable.Close(); closeErr != nil {
				log.Warn("error closing source", "error", closeErr)
			}
		}()
	}

	openDestination := o.destinationOpener
	if openDestination == nil {
		openDestination = destination.Open
	}

	output, err := openDestination(ctx, o.output, destination.Options{
		Gzip:   o.gzip,
		Stdout: o.stdout,
	})
	if err != nil {
		return err
	}

	hook := janitor.NewHook(o.janitorConfig.SanitizeConfig())
	if err := dump.New(src, hook, o.settings()).Dump(ctx, output); err != nil {
		log.Debug("dump failed, discarding output", "error", err)
		return errors.Join(err, output.Abort(err))
	}

	// a failed close can leave a truncated dump behind
	if err := output.Close(); err != nil {
		log.Debug("closing output failed, discarding it", "error", err)
		return errors.Join(err, output.Abort(err))
	}

	return nil
}
