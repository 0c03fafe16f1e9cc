package higgsfield

import (
	"context"
	"time"

	"higgsfield-mcp/internal/domain"
)

// DefaultPollInterval matches the cadence recommended to MCP callers.
const DefaultPollInterval = 10 * time.Second

// WaitForJobSet polls GetJobSet until every job is terminal or ctx ends. A
// set without jobs is returned as is, since nothing in it can progress. The
// MCP tools never call it; polling there stays with the caller. onPoll, when
// non-nil, observes every intermediate snapshot.
func (c *Client) WaitForJobSet(ctx context.Context, jobSetID string, interval time.Duration, onPoll func(*domain.JobSet)) (*domain.JobSet, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	set, err := c.GetJobSet(ctx, jobSetID)
	if err != nil {
		return nil, err
	}
	if onPoll != nil {
		onPoll(set)
	}
	if len(set.Jobs) == 0 || set.Terminal() {
		return set, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return set, ctx.Err()
		case <-ticker.C:
			set, err = c.GetJobSet(ctx, jobSetID)
			if err != nil {
				return nil, err
			}
			if onPoll != nil {
				onPoll(set)
			}
			if len(set.Jobs) == 0 || set.Terminal() {
				return set, nil
			}
		}
	}
}
