package database

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables the proxy manager container uses for its MySQL connection.
const (
	EnvHost     = "DB_MYSQL_HOST"
	EnvPort     = "DB_MYSQL_PORT"
	EnvName     = "DB_MYSQL_NAME"
	EnvUser     = "DB_MYSQL_USER"
	EnvPassword = "DB_MYSQL_PASSWORD"
)

// RequiredEnv lists the variables FromEnv needs, in reporting order.
var RequiredEnv = []string{EnvHost, EnvPort, EnvName, EnvUser, EnvPassword}

// MissingEnvError reports every required variable absent from an environment.
type MissingEnvError struct {
	Missing []string
}

func (e *MissingEnvError) Error() string {
	return "missing environment variables: " + strings.Join(e.Missing, ", ")
}

// FromEnv builds a MySQL configuration from a container environment.
// Fields not carried by the environment (timeouts, host override) are taken from base.
func FromEnv(env map[string]string, base Config) (Config, error) {
	var missing []string
	for _, key := range RequiredEnv {
		if _, ok := env[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, &MissingEnvError{Missing: missing}
	}

	port, err := strconv.Atoi(strings.TrimSpace(env[EnvPort]))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s %q: %w", EnvPort, env[EnvPort], err)
	}

	cfg := base
	cfg.Driver = DriverMySQL
	cfg.Host = env[EnvHost]
	cfg.Port = port
	cfg.Name = env[EnvName]
	cfg.User = env[EnvUser]
	cfg.Password = env[EnvPassword]
	if base.HostOverride != "" {
		cfg.Host = base.HostOverride
	}

	return cfg, nil
}
