// Package poller implements the bazaar poll loop.
//
// The poller:
//   - Fetches the bazaar snapshot on a fixed interval (default 5s)
//   - Skips persistence when the upstream lastUpdated token is unchanged
//   - Projects and persists changed snapshots, then bumps the freshness counter
//   - Isolates failures per cycle and backs off exponentially until the next success
package poller
