package azure

import (
	"errors"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
)

var ErrNoCredential = errors.New("a shared key credential is required to sign a SAS")

// clockSkew is subtracted from the start time so a signature minted on
// a machine slightly ahead of the service clock is still valid.
const clockSkew = 5 * time.Minute

// SharedAccessURI returns the blob URL with an attached shared access
// signature granting permissions for validFor from now.
func (b *Blob) SharedAccessURI(permissions sas.BlobPermissions, validFor time.Duration) (string, error) {
	if b.credential == nil {
		return "", ErrNoCredential
	}
	parts, err := blob.ParseURL(b.blob.URL())
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	values := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		StartTime:     now.Add(-clockSkew),
		ExpiryTime:    now.Add(validFor),
		Permissions:   permissions.String(),
		ContainerName: parts.ContainerName,
		BlobName:      parts.BlobName,
	}
	query, err := values.SignWithSharedKey(b.credential)
	if err != nil {
		return "", err
	}
	return b.blob.URL() + "?" + query.Encode(), nil
}
