// Package reconcile keeps three data surfaces consistent: the allowlist rows in
// the proxy manager database, the local snapshot of IP to domain mappings, and
// the proxy configuration generated from those rows.
//
// # Architecture
//
// A pass is split into planning and applying, so that a dry run can show
// exactly what a real run would do:
//
//  1. ReconcileWithPlan loads the rows (EntryStore) and the snapshot
//     (snapshot.Store) and calls BuildPlan, which restores cleared domains from
//     the snapshot, resolves every domain and computes the target rows and snapshot.
//
//  2. ApplyPlan commits row updates in one transaction, saves the snapshot,
//     then patches the proxy configuration (Patcher) and reloads the proxy
//     (Reloader) if any address moved.
//
// # Failure Model
//
//   - Loading rows or committing updates fails the pass before anything else is written.
//   - A domain that does not resolve only skips its own entry.
//   - Patch and reload failures are logged and reported in ApplyResult; the
//     rows and snapshot stay committed.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Entries:   repo,
//	    Snapshots: snapshot.NewFileStore(afero.NewOsFs(), path),
//	    Resolver:  dnsResolver,
//	    Patcher:   patcher,
//	    Reloader:  reloader,
//	    Logger:    logger,
//	}
//
//	plan, result, err := reconcile.ReconcileAndApply(ctx, spec, reconcile.ReconcileOptions{})
package reconcile
