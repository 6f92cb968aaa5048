package go_azure_storage

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/uxland/go-azure-storage/shared"
)

func UploadText(ctx context.Context, blob shared.Blob, text string, leaseID string) error {
	if blob == nil {
		return shared.ErrNilResource
	}
	return blob.Upload(ctx, strings.NewReader(text), leaseID)
}

func UploadBytes(ctx context.Context, blob shared.Blob, content []byte, leaseID string) error {
	if blob == nil {
		return shared.ErrNilResource
	}
	return blob.Upload(ctx, bytes.NewReader(content), leaseID)
}

func AppendText(ctx context.Context, blob shared.Blob, text string, leaseID string) error {
	if blob == nil {
		return shared.ErrNilResource
	}
	return blob.Append(ctx, strings.NewReader(text), leaseID)
}

func AppendBytes(ctx context.Context, blob shared.Blob, content []byte, leaseID string) error {
	if blob == nil {
		return shared.ErrNilResource
	}
	return blob.Append(ctx, bytes.NewReader(content), leaseID)
}

func DownloadBytes(ctx context.Context, blob shared.Blob, leaseID string) ([]byte, error) {
	if blob == nil {
		return nil, shared.ErrNilResource
	}
	reader, err := blob.Download(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func DownloadText(ctx context.Context, blob shared.Blob, leaseID string) (string, error) {
	content, err := DownloadBytes(ctx, blob, leaseID)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
