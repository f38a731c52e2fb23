// Package accesslist binds the reconciliation pass to the proxy manager's
// access_list_client table.
//
// # Components
//
//   - Repository: loads rows and commits a pass's updates in one transaction.
//   - ColumnManager: adds or drops the domain column the sync relies on.
//   - Service: runs passes (collapsed with singleflight and serialized), keeps
//     the last report and drives the periodic loop of the server.
//   - Handler: the /accesslist HTTP routes.
//
// # Routes
//
//	GET  /accesslist/entries
//	GET  /accesslist/snapshot
//	POST /accesslist/sync?dry_run=true
//	GET  /accesslist/last
package accesslist
