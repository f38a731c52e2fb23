package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrCorrupt is returned by Store.Load when the persisted snapshot cannot be decoded.
// The accompanying Snapshot is empty and usable.
var ErrCorrupt = errors.New("snapshot is corrupt")

// Snapshot maps the last known IP address of an allowlist entry to the domain it
// was resolved from.
type Snapshot map[string]string

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for ip, domain := range s {
		out[ip] = domain
	}
	return out
}

// IPs returns the snapshot keys in sorted order.
func (s Snapshot) IPs() []string {
	ips := make([]string, 0, len(s))
	for ip := range s {
		ips = append(ips, ip)
	}
	sort.Strings(ips)
	return ips
}

// Store persists snapshots between runs.
type Store interface {
	// Load returns the persisted snapshot, or an empty one if none exists yet.
	Load(ctx context.Context) (Snapshot, error)
	// Save replaces the persisted snapshot.
	Save(ctx context.Context, s Snapshot) error
}

// Encode renders a snapshot as indented UTF-8 JSON with sorted keys.
func Encode(s Snapshot) ([]byte, error) {
	if s == nil {
		s = Snapshot{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a snapshot. Empty input yields an empty snapshot.
func Decode(data []byte) (Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Snapshot{}, nil
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if s == nil {
		s = Snapshot{}
	}
	return s, nil
}
