package homework

import "context"

// Client fetches homework statuses changed at or after the cursor (Unix seconds).
// The payload is returned undecoded into Go types so that its shape can be validated separately.
type Client interface {
	Fetch(ctx context.Context, cursor int64) (any, error)
}
