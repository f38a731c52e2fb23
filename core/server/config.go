package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// SyncIntervalSeconds runs a reconciliation pass periodically while serving. Zero disables it.
	SyncIntervalSeconds int `mapstructure:"sync_interval_seconds" default:"0"`
	// SyncOnStart runs one pass before the server starts accepting requests.
	SyncOnStart bool `mapstructure:"sync_on_start" default:"false"`
}

// SyncInterval returns the periodic pass interval, or zero when disabled.
func (c Config) SyncInterval() time.Duration {
	if c.SyncIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.SyncIntervalSeconds) * time.Second
}
