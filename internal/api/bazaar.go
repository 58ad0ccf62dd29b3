package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rickgao/bazaar-data/internal/model"
)

// FetchSnapshot retrieves and decodes the current bazaar snapshot.
// Errors are *TransportError or *DecodeError, possibly wrapped.
func (c *Client) FetchSnapshot(ctx context.Context) (*model.MarketSnapshot, error) {
	start := time.Now()

	var resp BazaarResponse
	if err := c.get(ctx, &resp); err != nil {
		return nil, fmt.Errorf("fetch bazaar snapshot: %w", err)
	}

	if c.requireSuccess && !*resp.Success {
		return nil, fmt.Errorf("fetch bazaar snapshot: %w", &DecodeError{Err: ErrUnsuccessful})
	}

	snapshot := resp.ToMarketSnapshot()

	c.logger.Debug("fetched bazaar snapshot",
		"last_updated", snapshot.VersionToken,
		"success", snapshot.IsValid,
		"products", len(snapshot.Items),
		"duration", time.Since(start),
	)

	return snapshot, nil
}
