package reconcile

import (
	"context"
	"errors"
	"net/netip"

	"allowlist-sync/core/resolver"
	"allowlist-sync/core/snapshot"

	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory EntryStore
type memStore struct {
	entries  []Entry
	applyErr error
	applied  [][]EntryUpdate
}

func (m *memStore) LoadEntries(ctx context.Context) ([]Entry, error) {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *memStore) ApplyUpdates(ctx context.Context, updates []EntryUpdate) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applied = append(m.applied, updates)
	for _, u := range updates {
		for i := range m.entries {
			if m.entries[i].ID != u.ID {
				continue
			}
			if u.Domain != nil {
				m.entries[i].Domain = *u.Domain
			}
			if u.Address != nil {
				m.entries[i].Address = *u.Address
			}
		}
	}
	return nil
}

// memSnapshots is an in-memory snapshot.Store
type memSnapshots struct {
	snap    snapshot.Snapshot
	loadErr error
	saveErr error
	saves   int
}

func (m *memSnapshots) Load(ctx context.Context) (snapshot.Snapshot, error) {
	if m.loadErr != nil {
		return snapshot.Snapshot{}, m.loadErr
	}
	return m.snap.Clone(), nil
}

func (m *memSnapshots) Save(ctx context.Context, s snapshot.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.snap = s.Clone()
	return nil
}

// staticResolver answers from a fixed table; unknown names fail
type staticResolver struct {
	records map[string]string
	calls   map[string]int
}

func newStaticResolver(records map[string]string) *staticResolver {
	return &staticResolver{records: records, calls: map[string]int{}}
}

func (r *staticResolver) LookupIPv4(ctx context.Context, domain string) (netip.Addr, error) {
	r.calls[domain]++
	ip, ok := r.records[domain]
	if !ok {
		return netip.Addr{}, resolver.ErrNotFound
	}
	return netip.MustParseAddr(ip), nil
}

type mockPatcher struct {
	mock.Mock
}

func (m *mockPatcher) ApplyAddressChange(ctx context.Context, oldAddr, newAddr string) error {
	args := m.Called(ctx, oldAddr, newAddr)
	return args.Error(0)
}

type mockReloader struct {
	mock.Mock
}

func (m *mockReloader) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var errBoom = errors.New("boom")
