package compute

import (
	"encoding/base64"
	"strings"

	"github.com/multiformats/go-multiaddr"

	httpadapter "github.com/abhissng/precompute/adapters/http"
	"github.com/abhissng/precompute/adapters/log"
	"github.com/abhissng/precompute/blame"
	"github.com/abhissng/precompute/result"
	"github.com/abhissng/precompute/utils/cryptography"
)

// IPFSGateways is the fixed priority order of public gateways used to
// resolve content-addressed dataset locators.
var IPFSGateways = []string{
	"https://ipfs-gateway.v8-bellecour.iex.ec",
	"https://gateway.ipfs.io",
	"https://gateway.pinata.cloud",
}

// Dataset holds everything needed to download, verify and decrypt a single
// dataset. Immutable once constructed.
type Dataset struct {
	URL      string
	Checksum string
	Filename string
	Key      string
}

// Decrypt decrypts IV-prefixed encrypted content with the dataset's
// base64-encoded AES-256 key using CBC mode and PKCS#7 padding removal.
// Every failure on this path collapses to the same cause so the error does
// not reveal whether the key or the ciphertext was at fault.
func (d *Dataset) Decrypt(encryptedContent []byte) result.Result[[]byte] {
	key, err := base64.StdEncoding.DecodeString(d.Key)
	if err != nil {
		return result.NewFailure[[]byte](blame.DatasetDecryptionFailed(d.Filename).WithCause(err))
	}

	if len(encryptedContent) < cryptography.AESIVLength || len(key) != cryptography.AESKeyLength {
		return result.NewFailure[[]byte](blame.DatasetDecryptionFailed(d.Filename))
	}

	iv := encryptedContent[:cryptography.AESIVLength]
	ciphertext := encryptedContent[cryptography.AESIVLength:]

	plaintext, err := cryptography.DecryptAES256CBC(key, iv, ciphertext)
	if err != nil {
		return result.NewFailure[[]byte](blame.DatasetDecryptionFailed(d.Filename).WithCause(err))
	}
	return result.NewSuccess(&plaintext)
}

// Downloader fetches encrypted dataset bytes over HTTP, resolving
// content-addressed locators through the configured gateway list.
type Downloader struct {
	client   *httpadapter.ClientManager
	gateways []string
	logger   *log.Log
}

// DownloaderOption defines a functional option for configuring a Downloader.
type DownloaderOption func(*Downloader)

// WithClient sets the HTTP client manager.
func WithClient(client *httpadapter.ClientManager) DownloaderOption {
	return func(dl *Downloader) {
		dl.client = client
	}
}

// WithGateways overrides the content-address gateway priority list.
func WithGateways(gateways []string) DownloaderOption {
	return func(dl *Downloader) {
		dl.gateways = gateways
	}
}

// NewDownloader creates a Downloader with the default client and gateways.
func NewDownloader(logger *log.Log, opts ...DownloaderOption) *Downloader {
	dl := &Downloader{
		client:   httpadapter.NewClientManager(),
		gateways: IPFSGateways,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(dl)
	}
	return dl
}

// DownloadEncrypted downloads the dataset's encrypted bytes and verifies
// their checksum. A content-addressed locator is tried against each gateway
// in priority order and the first successful response wins; a plain URL gets
// exactly one attempt. The checksum gates decryption: a mismatch is its own
// failure and no decryption is ever attempted on mismatched bytes.
func (dl *Downloader) DownloadEncrypted(dataset *Dataset, chainTaskID string) result.Result[[]byte] {
	dl.logger.Info("Downloading encrypted dataset file",
		log.String("chainTaskId", chainTaskID), log.String("url", dataset.URL))

	var encryptedContent []byte
	if isMultiAddress(dataset.URL) {
		for _, gateway := range dl.gateways {
			fullURL := gateway + dataset.URL
			dl.logger.Info("Attempting gateway download", log.String("url", fullURL))
			content, err := dl.client.Get(fullURL)
			if err != nil {
				dl.logger.Error("Gateway download failed", log.String("url", fullURL), log.Err(err))
				continue
			}
			encryptedContent = content
			break
		}
	} else {
		content, err := dl.client.Get(dataset.URL)
		if err != nil {
			dl.logger.Error("Dataset download failed", log.String("url", dataset.URL), log.Err(err))
		} else {
			encryptedContent = content
		}
	}
	if encryptedContent == nil {
		return result.NewFailure[[]byte](blame.DatasetDownloadFailed(dataset.Filename))
	}

	dl.logger.Info("Checking encrypted dataset checksum", log.String("chainTaskId", chainTaskID))
	actualChecksum := cryptography.Sha256Hex(encryptedContent)
	if actualChecksum != dataset.Checksum {
		dl.logger.Error("Invalid dataset checksum",
			log.String("chainTaskId", chainTaskID),
			log.String("expected", dataset.Checksum),
			log.String("actual", actualChecksum))
		return result.NewFailure[[]byte](blame.InvalidDatasetChecksum(dataset.Filename))
	}

	dl.logger.Info("Dataset downloaded and verified", log.String("chainTaskId", chainTaskID))
	return result.NewSuccess(&encryptedContent)
}

// isMultiAddress reports whether the locator is a content-address rather
// than a conventional URL.
func isMultiAddress(uri string) bool {
	if strings.TrimSpace(uri) == "" {
		return false
	}
	_, err := multiaddr.NewMultiaddr(uri)
	return err == nil
}
