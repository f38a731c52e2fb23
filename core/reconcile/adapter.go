package reconcile

import (
	"context"

	"allowlist-sync/core/resolver"
	"allowlist-sync/core/snapshot"

	"go.uber.org/zap"
)

// EntryStore loads and persists allowlist rows.
type EntryStore interface {
	// LoadEntries returns every allowlist row.
	LoadEntries(ctx context.Context) ([]Entry, error)

	// ApplyUpdates commits all updates in a single transaction: either every
	// update is stored or none is.
	ApplyUpdates(ctx context.Context, updates []EntryUpdate) error
}

// Patcher rewrites an IP address inside the proxy's generated configuration.
type Patcher interface {
	// ApplyAddressChange replaces every occurrence of oldAddr with newAddr.
	ApplyAddressChange(ctx context.Context, oldAddr, newAddr string) error
}

// Reloader tells the proxy to pick up its configuration again.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Spec bundles the collaborators of a reconciliation pass.
// Patcher and Reloader are optional.
type Spec struct {
	Entries   EntryStore
	Snapshots snapshot.Store
	Resolver  resolver.Resolver
	Patcher   Patcher
	Reloader  Reloader
	Logger    *zap.Logger
}

func (s *Spec) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
