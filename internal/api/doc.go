// Package api provides the bazaar REST client.
//
// Endpoint:
//   - Production: https://api.hypixel.net/skyblock/bazaar
//
// The endpoint returns one JSON document with every product's order summaries
// and quick status. "lastUpdated" is the upstream revision used for change detection.
package api
