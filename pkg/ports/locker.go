package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes read-modify-write cycles on a stored trace
// across server replicas.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	// The returned UnlockFunc MUST be called to release it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
