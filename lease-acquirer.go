package go_azure_storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/uxland/go-azure-storage/shared"
)

const (
	MinLeaseDuration = 15 * time.Second
	MaxLeaseDuration = 60 * time.Second

	MinLeaseAttempts     = 1
	MaxLeaseAttempts     = 10
	DefaultLeaseAttempts = 1
)

// LeaseRequest describes a single attempt at taking an exclusive lease
// on a remote resource. A nil Duration asks the service for its default
// (15 seconds).
type LeaseRequest struct {
	Resource    shared.Leaser
	Duration    *time.Duration
	MaxAttempts int
}

func NewLeaseRequest(resource shared.Leaser) LeaseRequest {
	return LeaseRequest{Resource: resource, MaxAttempts: DefaultLeaseAttempts}
}

// LeaseResult is either an acquired lease token or the explicit
// not-acquired marker (Acquired == false). The service may hand back an
// empty token; that still counts as acquired and is passed through
// as-is.
type LeaseResult struct {
	Acquired bool
	LeaseID  string
}

type LeaseAcquirer interface {
	TryAcquireLease(ctx context.Context, request LeaseRequest) (LeaseResult, error)
}

type acquirer struct {
	logger     zerolog.Logger
	newBackOff func() backoff.BackOff
}

type AcquirerOption func(*acquirer)

func WithLogger(logger zerolog.Logger) AcquirerOption {
	return func(a *acquirer) { a.logger = logger }
}

// WithBackOff replaces the wait strategy applied between conflicting
// attempts. The factory is invoked once per TryAcquireLease call so
// concurrent calls never share back-off state.
func WithBackOff(factory func() backoff.BackOff) AcquirerOption {
	return func(a *acquirer) { a.newBackOff = factory }
}

func NewLeaseAcquirer(options ...AcquirerOption) LeaseAcquirer {
	a := &acquirer{
		logger:     zerolog.Nop(),
		newBackOff: defaultBackOff,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func defaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.RandomizationFactor = 0.5
	bo.Multiplier = 2
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 0
	return bo
}

// TryAcquireLease issues up to MaxAttempts acquire calls against the
// resource. Conflicts (the resource is already leased) are retried with
// jittered back-off; once attempts are exhausted the not-acquired
// marker is returned without error. Any other failure aborts the loop
// and is returned unchanged.
func (a *acquirer) TryAcquireLease(ctx context.Context, request LeaseRequest) (LeaseResult, error) {
	if request.Resource == nil {
		return LeaseResult{}, shared.ErrNilResource
	}
	if request.Duration != nil && (*request.Duration < MinLeaseDuration || *request.Duration > MaxLeaseDuration) {
		return LeaseResult{}, fmt.Errorf("%w: got %s", shared.ErrDurationOutOfRange, *request.Duration)
	}
	if request.MaxAttempts < MinLeaseAttempts || request.MaxAttempts > MaxLeaseAttempts {
		return LeaseResult{}, fmt.Errorf("%w: got %d", shared.ErrAttemptsOutOfRange, request.MaxAttempts)
	}

	bo := a.newBackOff()
	for attempt := 1; attempt <= request.MaxAttempts; attempt++ {
		leaseID, err := request.Resource.AcquireLease(ctx, request.Duration, nil)
		if err == nil {
			return LeaseResult{Acquired: true, LeaseID: leaseID}, nil
		}
		if !shared.IsLeaseConflict(err) {
			return LeaseResult{}, err
		}
		a.logger.Debug().
			Int("attempt", attempt).
			Int("maxAttempts", request.MaxAttempts).
			Msg("lease already present")
		if attempt < request.MaxAttempts {
			a.wait(ctx, bo.NextBackOff())
		}
	}
	return LeaseResult{}, nil
}

// wait pauses between attempts. Cancellation only cuts the pause short;
// it is the next remote call that observes ctx and surfaces its error.
func (a *acquirer) wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
