package poller

// HasChanged reports whether token differs from the last seen token.
// A nil lastSeen means nothing was observed yet. Any difference counts,
// including a token lower than the last one.
func HasChanged(token int64, lastSeen *int64) bool {
	return lastSeen == nil || *lastSeen != token
}
