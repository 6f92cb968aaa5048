package shared

import (
	"context"
	"time"
)

// Leaser is anything that can hold a time-bounded exclusive lease:
// a blob, a container, or any other remote resource the storage
// service hands leases out for.
type Leaser interface {
	// AcquireLease requests a new lease. A nil duration asks for the
	// service default; a nil proposedID lets the service pick the token.
	AcquireLease(ctx context.Context, duration *time.Duration, proposedID *string) (string, error)
	RenewLease(ctx context.Context, leaseID string) error
	ReleaseLease(ctx context.Context, leaseID string) error
}
