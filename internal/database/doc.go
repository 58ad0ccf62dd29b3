// Package database provides MongoDB client management for the gatherer.
//
// A single client is shared by the poll loop across all iterations:
//   - <name>.bazaar: one document per projected product per cycle
//   - <name>.config: the freshness counter document
package database
