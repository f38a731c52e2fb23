package container

import (
	"context"
	"fmt"
	"strings"
)

// Runtime defines the container operations the sync tooling relies on.
type Runtime interface {
	// Exists reports whether a container with the given name exists (running or not).
	Exists(ctx context.Context, name string) (bool, error)
	// Env returns the environment of the container as a key/value map.
	Env(ctx context.Context, name string) (map[string]string, error)
	// Exec runs cmd inside the container and waits for it to finish.
	Exec(ctx context.Context, name string, cmd []string) (ExecResult, error)
}

// ExecResult is the outcome of a command run inside a container.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Err converts a non-zero exit code into an error carrying stderr.
func (r ExecResult) Err() error {
	if r.ExitCode == 0 {
		return nil
	}
	msg := strings.TrimSpace(r.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(r.Stdout)
	}
	return fmt.Errorf("exit code %d: %s", r.ExitCode, msg)
}

// ParseEnv converts KEY=VALUE lines into a map.
// Entries without '=' are ignored; values may contain '='.
func ParseEnv(lines []string) map[string]string {
	env := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}
