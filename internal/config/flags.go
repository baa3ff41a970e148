package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-endpoint EWS endpoint URL
//	-username account user name
//	-password account password
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-retries transient fault retry count
//	-c/-config json file path with configs
//	-log-level minimum log level
func ParseFlags() *ClientConfig {
	var endpoint string
	var username string
	var password string
	var requestTimeout time.Duration
	var retries uint
	var jsonConfigPath string
	var logLevel string

	flag.StringVar(&endpoint, "endpoint", "", "EWS endpoint URL")
	flag.StringVar(&username, "username", "", "Account user name")
	flag.StringVar(&password, "password", "", "Account password")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.UintVar(&retries, "retries", 0, "Transient fault retry count")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&logLevel, "log-level", "", "Minimum log level (debug, info, warn, error)")

	flag.Parse()

	return &ClientConfig{
		Exchange: Exchange{
			Endpoint:       endpoint,
			Username:       username,
			Password:       password,
			RequestTimeout: requestTimeout,
			Retries:        retries,
		},
		Logging: Logging{
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}
}
