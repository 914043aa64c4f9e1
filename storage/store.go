package storage

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the persistence backend is unreachable. Backend
// implementations wrap their transport errors with it so callers can treat
// every outage class uniformly.
var ErrUnavailable = errors.New("storage backend unavailable")

// Store is the persistence contract consumed by the session engine.
//
// Get reports (value, true, nil) when the key exists and ("", false, nil)
// when it does not; only transport failures produce an error. Set overwrites
// unconditionally and Remove is idempotent, so a retried write after a
// transient failure is always safe.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
