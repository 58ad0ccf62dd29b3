// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Poll cycle outcomes and durations
//   - Records written and store errors
//   - Freshness counter bumps and misses
//   - Last persisted upstream version
package metrics
