// Package domain defines the feed service's types and ports
package domain

import (
	"context"
	"time"
)

// RemoteConfig is the managed config service seen by the feed: fetch then
// activate; only when activate reports a change is the value re-read and
// decoded
type RemoteConfig interface {
	// Fetch pulls the latest document; calls inside minInterval succeed
	// without touching the network
	Fetch(ctx context.Context, minInterval time.Duration) error

	// Activate promotes the fetched document, reporting whether the
	// activated value changed
	Activate(ctx context.Context) (bool, error)

	// Value reads an activated parameter
	Value(key string) (string, error)
}
