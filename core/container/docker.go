package container

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/docker/docker/pkg/stdcopy"
)

// Docker implements Runtime on top of the Docker Engine API.
type Docker struct {
	cli     *client.Client
	timeout time.Duration
}

var _ Runtime = (*Docker)(nil)

// NewDocker creates a Docker Engine API client.
// The daemon is contacted lazily, so this does not fail when Docker is down.
func NewDocker(cfg Config) (*Docker, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if cfg.Host != "" {
		opts = append(opts, client.WithHost(cfg.Host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &Docker{cli: cli, timeout: time.Duration(timeout) * time.Second}, nil
}

// Close releases the client's transport.
func (d *Docker) Close() error {
	return d.cli.Close()
}

// Exists reports whether the named container exists.
func (d *Docker) Exists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	_, err := d.cli.ContainerInspect(ctx, name)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to query docker containers: %w", err)
	}
	return true, nil
}

// Env returns the configured environment of the named container.
func (d *Docker) Env(ctx context.Context, name string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	info, err := d.cli.ContainerInspect(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment of container %q: %w", name, err)
	}
	if info.Config == nil {
		return map[string]string{}, nil
	}
	return ParseEnv(info.Config.Env), nil
}

// Exec runs cmd in the named container, collecting stdout, stderr and the exit code.
func (d *Docker) Exec(ctx context.Context, name string, cmd []string) (ExecResult, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	created, err := d.cli.ContainerExecCreate(ctx, name, types.ExecConfig{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return ExecResult{}, fmt.Errorf("failed to create exec in %q: %w", name, err)
	}

	attach, err := d.cli.ContainerExecAttach(ctx, created.ID, types.ExecStartCheck{})
	if err != nil {
		return ExecResult{}, fmt.Errorf("failed to attach exec in %q: %w", name, err)
	}
	defer attach.Close()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, attach.Reader); err != nil {
		return ExecResult{}, fmt.Errorf("failed to read exec output: %w", err)
	}

	inspect, err := d.cli.ContainerExecInspect(ctx, created.ID)
	if err != nil {
		return ExecResult{}, fmt.Errorf("failed to inspect exec: %w", err)
	}

	return ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: inspect.ExitCode,
	}, nil
}
