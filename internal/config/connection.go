// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

var (
	// ErrEnvVariablesNotValid reports invalid connection environment variables.
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
	// ErrInvalidConnection reports connection settings that cannot be used.
	ErrInvalidConnection = errors.New("invalid connection settings")
)

// Connection holds the database connection settings that can be provided with
// environment variables. Command line flags take precedence over them.
type Connection struct {
	Host     string `env:"JANITOR_DB_HOST" envDefault:"localhost"`
	Port     int    `env:"JANITOR_DB_PORT" envDefault:"3306"`
	User     string `env:"JANITOR_DB_USER"`
	Password string `env:"JANITOR_DB_PASSWORD"`
}

// LoadConnectionFromEnv reads the connection settings from the environment.
func LoadConnectionFromEnv() (Connection, error) {
	connection, err := env.ParseAs[Connection]()
	if err != nil {
		return Connection{}, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	if err := connection.Validate(); err != nil {
		return Connection{}, fmt.Errorf("%w: %w", ErrEnvVariablesNotValid, err)
	}

	return connection, nil
}

// Validate checks the connection settings.
func (c Connection) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d is out of valid range (1-65535)", ErrInvalidConnection, c.Port)
	}

	return nil
}
