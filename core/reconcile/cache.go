package reconcile

import (
	"context"
	"net/netip"
	"strings"

	"allowlist-sync/core/resolver"
)

type lookupResult struct {
	addr netip.Addr
	err  error
}

// lookupCache memoizes resolutions for the duration of one pass so that entries
// sharing a domain resolve once and agree on the result.
type lookupCache struct {
	resolver resolver.Resolver
	results  map[string]lookupResult
}

func newLookupCache(r resolver.Resolver) *lookupCache {
	return &lookupCache{resolver: r, results: make(map[string]lookupResult)}
}

func (c *lookupCache) lookup(ctx context.Context, domain string) (netip.Addr, error) {
	key := strings.ToLower(strings.TrimSpace(domain))
	if res, ok := c.results[key]; ok {
		return res.addr, res.err
	}

	addr, err := c.resolver.LookupIPv4(ctx, key)
	if err == nil && !addr.Is4() {
		addr, err = netip.Addr{}, resolver.ErrNotFound
	}
	// Results of a cancelled lookup are not cached
	if ctx.Err() == nil {
		c.results[key] = lookupResult{addr: addr, err: err}
	}
	return addr, err
}
