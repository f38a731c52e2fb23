package proxyhost

import (
	"context"
	"fmt"

	"allowlist-sync/core/container"
	"allowlist-sync/core/reconcile"
)

// ContainerReloader reloads nginx inside the proxy manager container.
type ContainerReloader struct {
	runtime   container.Runtime
	container string
}

var _ reconcile.Reloader = (*ContainerReloader)(nil)

// NewContainerReloader creates a reloader for the named container.
func NewContainerReloader(rt container.Runtime, name string) *ContainerReloader {
	return &ContainerReloader{runtime: rt, container: name}
}

// Reload runs `nginx -s reload`.
func (r *ContainerReloader) Reload(ctx context.Context) error {
	res, err := r.runtime.Exec(ctx, r.container, []string{"nginx", "-s", "reload"})
	if err != nil {
		return fmt.Errorf("failed to exec nginx in %s: %w", r.container, err)
	}
	if err := res.Err(); err != nil {
		return fmt.Errorf("nginx reload failed: %w", err)
	}
	return nil
}
