package reconcile

import (
	"context"

	"allowlist-sync/core/resolver"
	"allowlist-sync/core/snapshot"

	"go.uber.org/zap"
)

// BuildPlan computes the reconciliation of entries against snap without
// mutating either. The returned plan holds the target rows and snapshot.
//
// The pass runs in two steps:
//  1. Restore: every snapshot pair whose IP is no longer in the table is purged;
//     otherwise the matching entry gets the snapshot's domain back if it differs.
//  2. Resolution: every entry with a domain is resolved. Failures skip the entry.
//     A changed IP rewrites the address to ip/32. The snapshot maps the new IP to
//     the domain and forgets the old one.
//
// Only context cancellation makes BuildPlan fail.
func BuildPlan(ctx context.Context, entries []Entry, snap snapshot.Snapshot, r resolver.Resolver, l *zap.Logger) (*ReconcilePlan, error) {
	if l == nil {
		l = zap.NewNop()
	}

	work := make([]Entry, len(entries))
	copy(work, entries)
	snapOut := snap.Clone()

	plan := &ReconcilePlan{}

	// Index rows by current IP; rows without an address share the empty key.
	byIP := make(map[string]int, len(work))
	for i := range work {
		byIP[work[i].IP()] = i
	}

	// Step 1: restore domains cleared outside of this tool
	for _, ip := range snapOut.IPs() {
		domain := snapOut[ip]
		idx, ok := byIP[ip]
		if !ok || ip == "" {
			delete(snapOut, ip)
			plan.Purged = append(plan.Purged, ip)
			continue
		}

		entry := &work[idx]
		if entry.Domain != domain {
			l.Info("Domain restored",
				zap.Uint("id", entry.ID),
				zap.String("ip", ip),
				zap.String("domain", domain),
			)
			plan.Restores = append(plan.Restores, Restore{
				EntryID:  entry.ID,
				IP:       ip,
				Domain:   domain,
				Previous: entry.Domain,
			})
			entry.Domain = domain
		}
	}

	// Step 2: resolve domains and move addresses
	cache := newLookupCache(r)
	// IPs mapped during this step survive later entries moving away from them
	claimed := make(map[string]bool, len(work))
	for i := range work {
		entry := &work[i]
		if entry.Domain == "" {
			continue
		}

		addr, err := cache.lookup(ctx, entry.Domain)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			l.Warn("Domain resolution failed",
				zap.Uint("id", entry.ID),
				zap.String("domain", entry.Domain),
				zap.Error(err),
			)
			plan.Failures = append(plan.Failures, ResolveFailure{
				EntryID: entry.ID,
				Domain:  entry.Domain,
				Reason:  err.Error(),
			})
			continue
		}

		oldIP := entry.IP()
		newIP := addr.String()

		if newIP != oldIP {
			l.Info("IP updated",
				zap.Uint("id", entry.ID),
				zap.String("domain", entry.Domain),
				zap.String("old_ip", oldIP),
				zap.String("new_ip", newIP),
			)
			entry.Address = HostAddress(newIP)
			plan.AddressChanges = append(plan.AddressChanges, AddressChange{
				EntryID: entry.ID,
				Domain:  entry.Domain,
				OldIP:   oldIP,
				NewIP:   newIP,
			})
		}

		snapOut[newIP] = entry.Domain
		claimed[newIP] = true
		if oldIP != newIP && !claimed[oldIP] {
			delete(snapOut, oldIP)
		}
	}

	plan.Entries = work
	plan.Snapshot = snapOut
	plan.Updates = diffEntries(entries, work)
	plan.Summary = PlanSummary{
		TotalEntries:    len(work),
		Restored:        len(plan.Restores),
		AddressChanges:  len(plan.AddressChanges),
		ResolveFailures: len(plan.Failures),
		Purged:          len(plan.Purged),
		Changes:         len(plan.Restores) + len(plan.AddressChanges),
	}

	return plan, nil
}

// diffEntries returns one update per row whose domain or address differs.
// before and after must be index aligned.
func diffEntries(before, after []Entry) []EntryUpdate {
	var updates []EntryUpdate
	for i := range after {
		var u EntryUpdate
		if before[i].Domain != after[i].Domain {
			domain := after[i].Domain
			u.Domain = &domain
		}
		if before[i].Address != after[i].Address {
			address := after[i].Address
			u.Address = &address
		}
		if u.Domain != nil || u.Address != nil {
			u.ID = after[i].ID
			updates = append(updates, u)
		}
	}
	return updates
}
