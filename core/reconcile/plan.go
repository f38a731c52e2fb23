package reconcile

import (
	"context"
	"errors"
	"fmt"

	"allowlist-sync/core/snapshot"

	"go.uber.org/zap"
)

// ReconcileWithPlan loads the current rows and snapshot and plans a pass.
// It does NOT execute anything; use ApplyPlan for that.
// A corrupt snapshot is logged and replaced by an empty one.
func ReconcileWithPlan(ctx context.Context, spec *Spec) (*ReconcilePlan, error) {
	l := spec.logger()

	entries, err := spec.Entries.LoadEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	snap, err := spec.Snapshots.Load(ctx)
	if err != nil {
		if !errors.Is(err, snapshot.ErrCorrupt) {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		l.Warn("Snapshot is unreadable, starting from an empty one", zap.Error(err))
		snap = snapshot.Snapshot{}
	}

	return BuildPlan(ctx, entries, snap, spec.Resolver, l)
}

// ApplyPlan commits a plan: rows first (one transaction), then the snapshot,
// then the best-effort proxy side effects. Row and snapshot failures are
// returned; patch and reload failures are only logged and reported in the result.
func ApplyPlan(ctx context.Context, spec *Spec, plan *ReconcilePlan, opts ReconcileOptions) (*ApplyResult, error) {
	if opts.DryRun {
		return &ApplyResult{DryRun: true}, nil
	}

	l := spec.logger()
	result := &ApplyResult{}

	if len(plan.Updates) > 0 {
		if err := spec.Entries.ApplyUpdates(ctx, plan.Updates); err != nil {
			return result, fmt.Errorf("failed to commit entry updates: %w", err)
		}
		result.UpdatedEntries = len(plan.Updates)
	}

	if err := spec.Snapshots.Save(ctx, plan.Snapshot); err != nil {
		return result, fmt.Errorf("failed to save snapshot: %w", err)
	}
	result.SnapshotSaved = true

	if spec.Patcher != nil {
		for _, change := range plan.AddressChanges {
			// Nothing in the proxy configuration refers to an entry without an address
			if change.OldIP == "" {
				continue
			}
			if err := spec.Patcher.ApplyAddressChange(ctx, change.OldIP, change.NewIP); err != nil {
				l.Error("Failed to patch proxy configuration",
					zap.String("old_ip", change.OldIP),
					zap.String("new_ip", change.NewIP),
					zap.Error(err),
				)
				result.PatchErrors = append(result.PatchErrors, err.Error())
				continue
			}
			l.Info("Proxy configuration patched",
				zap.String("old_ip", change.OldIP),
				zap.String("new_ip", change.NewIP),
			)
			result.Patched++
		}
	}

	if plan.ReloadRequired() && spec.Reloader != nil {
		if err := spec.Reloader.Reload(ctx); err != nil {
			l.Error("Failed to reload proxy", zap.Error(err))
			result.ReloadError = err.Error()
		} else {
			l.Info("Proxy successfully reloaded")
			result.Reloaded = true
		}
	}

	return result, nil
}

// ReconcileAndApply is a convenience wrapper that plans and applies a pass.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts ReconcileOptions) (*ReconcilePlan, *ApplyResult, error) {
	plan, err := ReconcileWithPlan(ctx, spec)
	if err != nil {
		return nil, nil, err
	}

	result, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, result, err
}
