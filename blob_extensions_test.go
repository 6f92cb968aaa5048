package go_azure_storage

import (
	"bytes"
	"context"
	"io"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/uxland/go-azure-storage/shared"
)

// memoryBlob keeps blob content in a buffer and records the lease id it
// was last called with.
type memoryBlob struct {
	content     bytes.Buffer
	lastLeaseID string
}

func (b *memoryBlob) AcquireLease(context.Context, *time.Duration, *string) (string, error) {
	return "memory-lease", nil
}
func (b *memoryBlob) RenewLease(context.Context, string) error   { return nil }
func (b *memoryBlob) ReleaseLease(context.Context, string) error { return nil }
func (b *memoryBlob) Exists(context.Context) (bool, error)       { return b.content.Len() > 0, nil }

func (b *memoryBlob) SetMetadata(_ context.Context, _ shared.Metadata, leaseID string) error {
	b.lastLeaseID = leaseID
	return nil
}

func (b *memoryBlob) Upload(_ context.Context, content io.Reader, leaseID string) error {
	b.lastLeaseID = leaseID
	b.content.Reset()
	_, err := io.Copy(&b.content, content)
	return err
}

func (b *memoryBlob) Append(_ context.Context, content io.ReadSeeker, leaseID string) error {
	b.lastLeaseID = leaseID
	_, err := io.Copy(&b.content, content)
	return err
}

func (b *memoryBlob) Download(_ context.Context, leaseID string) (io.ReadCloser, error) {
	b.lastLeaseID = leaseID
	return io.NopCloser(bytes.NewReader(b.content.Bytes())), nil
}

func (b *memoryBlob) Delete(_ context.Context, leaseID string) error {
	b.lastLeaseID = leaseID
	b.content.Reset()
	return nil
}

var _ = Describe("Blob extensions", func() {
	var blob *memoryBlob
	ctx := context.Background()

	BeforeEach(func() {
		blob = &memoryBlob{}
	})

	Describe("When uploading text", func() {
		It("should round-trip through download", func() {
			Expect(UploadText(ctx, blob, "hello world", "")).To(Succeed())
			text, err := DownloadText(ctx, blob, "")
			Expect(err).To(BeNil())
			Expect(text).To(Equal("hello world"))
		})
		It("should replace previous content", func() {
			Expect(UploadText(ctx, blob, "first", "")).To(Succeed())
			Expect(UploadText(ctx, blob, "second", "")).To(Succeed())
			text, _ := DownloadText(ctx, blob, "")
			Expect(text).To(Equal("second"))
		})
		It("should forward the lease id", func() {
			Expect(UploadText(ctx, blob, "held", "lease-42")).To(Succeed())
			Expect(blob.lastLeaseID).To(Equal("lease-42"))
		})
	})

	Describe("When appending", func() {
		It("should concatenate text chunks", func() {
			Expect(AppendText(ctx, blob, "abc", "")).To(Succeed())
			Expect(AppendText(ctx, blob, "def", "")).To(Succeed())
			text, err := DownloadText(ctx, blob, "")
			Expect(err).To(BeNil())
			Expect(text).To(Equal("abcdef"))
		})
		It("should concatenate byte chunks", func() {
			Expect(AppendBytes(ctx, blob, []byte{1, 2}, "")).To(Succeed())
			Expect(AppendBytes(ctx, blob, []byte{3}, "")).To(Succeed())
			content, err := DownloadBytes(ctx, blob, "")
			Expect(err).To(BeNil())
			Expect(content).To(Equal([]byte{1, 2, 3}))
		})
	})

	Describe("When uploading bytes", func() {
		It("should round-trip through download", func() {
			Expect(UploadBytes(ctx, blob, []byte("payload"), "")).To(Succeed())
			content, err := DownloadBytes(ctx, blob, "")
			Expect(err).To(BeNil())
			Expect(content).To(Equal([]byte("payload")))
		})
	})

	Describe("Given a nil blob", func() {
		It("should reject every helper", func() {
			Expect(UploadText(ctx, nil, "x", "")).To(MatchError(shared.ErrNilResource))
			Expect(UploadBytes(ctx, nil, nil, "")).To(MatchError(shared.ErrNilResource))
			Expect(AppendText(ctx, nil, "x", "")).To(MatchError(shared.ErrNilResource))
			Expect(AppendBytes(ctx, nil, nil, "")).To(MatchError(shared.ErrNilResource))
			_, err := DownloadBytes(ctx, nil, "")
			Expect(err).To(MatchError(shared.ErrNilResource))
			_, err = DownloadText(ctx, nil, "")
			Expect(err).To(MatchError(shared.ErrNilResource))
		})
	})
})
