package azure

import (
	"context"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/appendblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/uxland/go-azure-storage/shared"
)

// Blob binds the shared capability interfaces to a single Azure blob.
// Block-level and append-level operations go through the matching
// sub-client; the service rejects the ones that don't apply to the
// blob's actual kind.
type Blob struct {
	blob       *blob.Client
	block      *blockblob.Client
	appendBlob *appendblob.Client
	credential *azblob.SharedKeyCredential
}

// NewBlob wraps the named blob of the container. The credential is only
// needed for SharedAccessURI and may be nil otherwise.
func NewBlob(cnt *container.Client, name string, credential *azblob.SharedKeyCredential) *Blob {
	return &Blob{
		blob:       cnt.NewBlobClient(name),
		block:      cnt.NewBlockBlobClient(name),
		appendBlob: cnt.NewAppendBlobClient(name),
		credential: credential,
	}
}

func (b *Blob) URL() string {
	return b.blob.URL()
}

func (b *Blob) Exists(ctx context.Context) (bool, error) {
	_, err := b.blob.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (b *Blob) SetMetadata(ctx context.Context, metadata shared.Metadata, leaseID string) error {
	md := make(map[string]*string, len(metadata))
	for key, value := range metadata {
		md[key] = to.Ptr(value)
	}
	options := &blob.SetMetadataOptions{AccessConditions: leaseConditions(leaseID)}
	_, err := b.blob.SetMetadata(ctx, md, options)
	return err
}

func (b *Blob) Metadata(ctx context.Context) (shared.Metadata, error) {
	resp, err := b.blob.GetProperties(ctx, nil)
	if err != nil {
		return nil, err
	}
	metadata := make(shared.Metadata, len(resp.Metadata))
	for key, value := range resp.Metadata {
		if value != nil {
			metadata[key] = *value
		}
	}
	return metadata, nil
}

func (b *Blob) Upload(ctx context.Context, content io.Reader, leaseID string) error {
	options := &blockblob.UploadStreamOptions{AccessConditions: leaseConditions(leaseID)}
	_, err := b.block.UploadStream(ctx, content, options)
	return err
}

// Append writes content to the end of the blob, creating it first when
// it does not exist yet.
func (b *Blob) Append(ctx context.Context, content io.ReadSeeker, leaseID string) error {
	exists, err := b.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		_, err = b.appendBlob.Create(ctx, nil)
		if err != nil && !bloberror.HasCode(err, bloberror.BlobAlreadyExists) {
			return err
		}
	}
	options := &appendblob.AppendBlockOptions{AccessConditions: leaseConditions(leaseID)}
	_, err = b.appendBlob.AppendBlock(ctx, streaming.NopCloser(content), options)
	return err
}

func (b *Blob) Download(ctx context.Context, leaseID string) (io.ReadCloser, error) {
	options := &blob.DownloadStreamOptions{AccessConditions: leaseConditions(leaseID)}
	resp, err := b.blob.DownloadStream(ctx, options)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (b *Blob) Delete(ctx context.Context, leaseID string) error {
	options := &blob.DeleteOptions{AccessConditions: leaseConditions(leaseID)}
	_, err := b.blob.Delete(ctx, options)
	return err
}

// CopyFrom starts a server-side copy from sourceURL into this blob. The
// copy completes asynchronously on the service side.
func (b *Blob) CopyFrom(ctx context.Context, sourceURL string, leaseID string) error {
	options := &blob.StartCopyFromURLOptions{AccessConditions: leaseConditions(leaseID)}
	_, err := b.blob.StartCopyFromURL(ctx, sourceURL, options)
	return err
}

func leaseConditions(leaseID string) *blob.AccessConditions {
	if leaseID == "" {
		return nil
	}
	return &blob.AccessConditions{
		LeaseAccessConditions: &blob.LeaseAccessConditions{LeaseID: &leaseID},
	}
}

var _ shared.Blob = (*Blob)(nil)
