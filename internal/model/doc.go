// Package model defines the bazaar data types shared across the gatherer.
//
// Conventions:
//   - Histories are ordered most-recent-first, as delivered upstream
//   - Prices: float64 coins per unit
//   - Timestamps: time.Time in UTC
//   - IDs: upstream product ids (e.g., "ENCHANTED_DIAMOND")
package model
