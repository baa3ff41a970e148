// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// ClientConfig is the top-level configuration container for the Exchange
// client. It is populated by merging values from environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type ClientConfig struct {
	// Exchange holds the Exchange Web Services endpoint and credentials.
	Exchange Exchange `envPrefix:"EXCHANGE_"`

	// Logging holds log output settings.
	Logging Logging `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Exchange holds connection settings for one Exchange Web Services endpoint.
type Exchange struct {
	// Endpoint is the full EWS URL, e.g.
	// https://outlook.example.com/EWS/Exchange.asmx.
	// Env: EXCHANGE_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// Username authenticates the Basic auth session. Must be kept
	// confidential together with Password.
	// Env: EXCHANGE_USERNAME
	Username string `env:"USERNAME"`

	// Password is the Basic auth secret.
	// Env: EXCHANGE_PASSWORD
	Password string `env:"PASSWORD"`

	// RequestTimeout bounds each outbound request (e.g. "30s", "1m").
	// Env: EXCHANGE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Retries is how many times a transient server fault is retried
	// before it is surfaced.
	// Env: EXCHANGE_RETRIES
	Retries uint `env:"RETRIES"`
}

// Logging holds log output settings.
type Logging struct {
	// Level is the minimum level emitted: debug, info, warn or error.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}
