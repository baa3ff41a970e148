// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"time"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultRetries        = 2
	defaultLogLevel       = "info"
)

// applyDefaults fills in the optional fields no source provided.
func (cfg *ClientConfig) applyDefaults() {
	if cfg.Exchange.RequestTimeout == 0 {
		cfg.Exchange.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Exchange.Retries == 0 {
		cfg.Exchange.Retries = defaultRetries
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
}

// validate checks that the final merged [ClientConfig] satisfies all
// invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *ClientConfig) validate() error {
	endpoint, err := url.Parse(cfg.Exchange.Endpoint)
	if err != nil || endpoint.Host == "" || (endpoint.Scheme != "http" && endpoint.Scheme != "https") {
		return ErrInvalidEndpoint
	}

	if cfg.Exchange.Username == "" || cfg.Exchange.Password == "" {
		return ErrMissingCredentials
	}

	if cfg.Exchange.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}
