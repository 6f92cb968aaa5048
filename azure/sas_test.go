package azure

import (
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// The storage emulator account and its publicly documented key; signing
// needs no network access.
const (
	emulatorAccount  = "devstoreaccount1"
	emulatorKey      = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
	emulatorEndpoint = "http://127.0.0.1:10000/devstoreaccount1"
)

var _ = Describe("Shared access signatures", func() {
	var sut *Blob
	var credential *azblob.SharedKeyCredential

	newBlob := func(cred *azblob.SharedKeyCredential) *Blob {
		cnt, err := container.NewClientWithNoCredential(emulatorEndpoint+"/documents", nil)
		Expect(err).To(BeNil())
		return NewBlob(cnt, "reports/2024.txt", cred)
	}

	JustBeforeEach(func() {
		var err error
		credential, err = azblob.NewSharedKeyCredential(emulatorAccount, emulatorKey)
		Expect(err).To(BeNil())
		sut = newBlob(credential)
	})

	Describe("When signing a read-only URI", func() {
		It("should return the blob URL with signature parameters attached", func() {
			uri, err := sut.SharedAccessURI(sas.BlobPermissions{Read: true}, time.Hour)
			Expect(err).To(BeNil())
			Expect(strings.HasPrefix(uri, emulatorEndpoint+"/documents/reports/2024.txt?")).To(BeTrue())

			parsed, err := url.Parse(uri)
			Expect(err).To(BeNil())
			query := parsed.Query()
			Expect(query.Get("sig")).NotTo(BeEmpty())
			Expect(query.Get("sp")).To(Equal("r"))
			Expect(query.Get("se")).NotTo(BeEmpty())
			Expect(query.Get("st")).NotTo(BeEmpty())
		})
	})

	Describe("When signing with write permissions", func() {
		It("should encode every granted permission", func() {
			uri, err := sut.SharedAccessURI(sas.BlobPermissions{Read: true, Write: true}, time.Hour)
			Expect(err).To(BeNil())
			parsed, _ := url.Parse(uri)
			Expect(parsed.Query().Get("sp")).To(Equal("rw"))
		})
	})

	Describe("Given no credential", func() {
		It("should refuse to sign", func() {
			sut = newBlob(nil)
			_, err := sut.SharedAccessURI(sas.BlobPermissions{Read: true}, time.Hour)
			Expect(err).To(MatchError(ErrNoCredential))
		})
	})
})
