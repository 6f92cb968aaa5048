package azure

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/lease"
	"github.com/google/uuid"
)

// DefaultLeaseDuration is what the service is asked for when the caller
// leaves the duration unset.
const DefaultLeaseDuration = 15 * time.Second

func (b *Blob) AcquireLease(ctx context.Context, duration *time.Duration, proposedID *string) (string, error) {
	seconds := int32(DefaultLeaseDuration / time.Second)
	if duration != nil {
		seconds = int32(*duration / time.Second)
	}
	client, err := lease.NewBlobClient(b.blob, &lease.BlobClientOptions{LeaseID: proposedID})
	if err != nil {
		return "", err
	}
	resp, err := client.AcquireLease(ctx, seconds, nil)
	if err != nil {
		return "", normalizeError(err)
	}
	if resp.LeaseID == nil {
		return "", nil
	}
	return *resp.LeaseID, nil
}

func (b *Blob) RenewLease(ctx context.Context, leaseID string) error {
	client, err := lease.NewBlobClient(b.blob, &lease.BlobClientOptions{LeaseID: &leaseID})
	if err != nil {
		return err
	}
	_, err = client.RenewLease(ctx, nil)
	return normalizeError(err)
}

func (b *Blob) ReleaseLease(ctx context.Context, leaseID string) error {
	client, err := lease.NewBlobClient(b.blob, &lease.BlobClientOptions{LeaseID: &leaseID})
	if err != nil {
		return err
	}
	_, err = client.ReleaseLease(ctx, nil)
	return normalizeError(err)
}

func (b *Blob) BreakLease(ctx context.Context) error {
	client, err := lease.NewBlobClient(b.blob, nil)
	if err != nil {
		return err
	}
	_, err = client.BreakLease(ctx, nil)
	return normalizeError(err)
}

// ChangeLease swaps the active lease token for a new one. An empty
// proposedID picks a random token.
func (b *Blob) ChangeLease(ctx context.Context, leaseID string, proposedID string) (string, error) {
	if proposedID == "" {
		proposedID = uuid.NewString()
	}
	client, err := lease.NewBlobClient(b.blob, &lease.BlobClientOptions{LeaseID: &leaseID})
	if err != nil {
		return "", err
	}
	resp, err := client.ChangeLease(ctx, proposedID, nil)
	if err != nil {
		return "", normalizeError(err)
	}
	if resp.LeaseID == nil {
		return "", nil
	}
	return *resp.LeaseID, nil
}
