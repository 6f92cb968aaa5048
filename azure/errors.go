package azure

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/uxland/go-azure-storage/shared"
)

// normalizeError tags service conflicts (HTTP 409 with the
// LeaseAlreadyPresent error code) so callers can branch on the shared
// sentinel. Everything else, including a 409 without a structured error
// body, passes through untouched.
func normalizeError(err error) error {
	if err == nil {
		return nil
	}
	if bloberror.HasCode(err, bloberror.LeaseAlreadyPresent) {
		return fmt.Errorf("%w: %v", shared.ErrLeaseAlreadyPresent, err)
	}
	return err
}
