package reconcile

import (
	"strings"

	"allowlist-sync/core/snapshot"
)

// Entry is one allowlist row as seen by the reconciliation pass.
// Empty Domain or Address stand for NULL columns.
type Entry struct {
	// ID is the opaque row identifier.
	ID uint `json:"id"`

	// Domain is the name the address is derived from.
	Domain string `json:"domain"`

	// Address is the allowed network in CIDR form, always /32 once resolved.
	Address string `json:"address"`
}

// IP returns the address without its CIDR suffix.
func (e Entry) IP() string {
	ip, _, _ := strings.Cut(strings.TrimSpace(e.Address), "/")
	return ip
}

// HostAddress returns the single-host CIDR form of ip.
func HostAddress(ip string) string {
	return ip + "/32"
}

// EntryUpdate lists the columns to overwrite on one row. Nil fields are left alone.
type EntryUpdate struct {
	ID      uint    `json:"id"`
	Domain  *string `json:"domain,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Restore records a domain label recovered from the snapshot.
type Restore struct {
	EntryID  uint   `json:"entry_id"`
	IP       string `json:"ip"`
	Domain   string `json:"domain"`
	Previous string `json:"previous"`
}

// AddressChange records an entry whose domain now resolves to a different IP.
// OldIP is empty when the entry had no address yet.
type AddressChange struct {
	EntryID uint   `json:"entry_id"`
	Domain  string `json:"domain"`
	OldIP   string `json:"old_ip"`
	NewIP   string `json:"new_ip"`
}

// ResolveFailure records a domain that could not be resolved; its entry is left untouched.
type ResolveFailure struct {
	EntryID uint   `json:"entry_id"`
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
}

// ReconcilePlan contains the outcome of planning: the target state of every
// entry and of the snapshot, plus the individual changes that lead there.
type ReconcilePlan struct {
	// Entries is the state of every row after the plan is applied.
	Entries []Entry `json:"entries"`

	// Updates are the row mutations to commit, one per changed row.
	Updates []EntryUpdate `json:"updates"`

	// Restores are domains recovered from the snapshot.
	Restores []Restore `json:"restores"`

	// AddressChanges are entries whose resolved IP moved.
	AddressChanges []AddressChange `json:"address_changes"`

	// Failures are domains that did not resolve during this pass.
	Failures []ResolveFailure `json:"failures"`

	// Purged are snapshot IPs no longer present in the table.
	Purged []string `json:"purged"`

	// Snapshot is the snapshot to persist.
	Snapshot snapshot.Snapshot `json:"snapshot"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// ReloadRequired reports whether any address changed, which means the proxy
// must reload its configuration.
func (p *ReconcilePlan) ReloadRequired() bool {
	return len(p.AddressChanges) > 0
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalEntries is the number of rows read.
	TotalEntries int `json:"total_entries"`

	// Restored counts domains recovered from the snapshot.
	Restored int `json:"restored"`

	// AddressChanges counts entries whose address was updated.
	AddressChanges int `json:"address_changes"`

	// ResolveFailures counts domains that failed to resolve.
	ResolveFailures int `json:"resolve_failures"`

	// Purged counts stale snapshot pairs dropped.
	Purged int `json:"purged"`

	// Changes is Restored + AddressChanges.
	Changes int `json:"changes"`
}

// ReconcileOptions controls how a plan is applied.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}

// ApplyResult reports what ApplyPlan did.
type ApplyResult struct {
	// DryRun is set when nothing was applied on purpose.
	DryRun bool `json:"dry_run"`

	// UpdatedEntries is the number of rows committed.
	UpdatedEntries int `json:"updated_entries"`

	// SnapshotSaved is set once the snapshot was persisted.
	SnapshotSaved bool `json:"snapshot_saved"`

	// Patched counts address changes written into proxy configuration.
	Patched int `json:"patched"`

	// PatchErrors holds best-effort patch failures.
	PatchErrors []string `json:"patch_errors,omitempty"`

	// Reloaded is set when the proxy reload succeeded.
	Reloaded bool `json:"reloaded"`

	// ReloadError holds a best-effort reload failure.
	ReloadError string `json:"reload_error,omitempty"`
}
