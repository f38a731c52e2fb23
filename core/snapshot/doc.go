// Package snapshot persists the IP to domain mapping that the reconciliation
// pass uses as its memory between runs.
//
// The proxy manager UI drops the domain column value whenever an access list is
// edited; the snapshot is what lets the next run put it back. Two backends exist:
//
//   - FileStore: an indented JSON file on disk (default).
//   - ObjectStore: the same JSON stored in an S3 compatible bucket.
//
// Both tolerate a missing snapshot. A snapshot that fails to decode is reported
// with ErrCorrupt together with an empty snapshot, so callers may choose to carry on.
package snapshot
