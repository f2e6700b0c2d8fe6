package artifacttool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DownloadChunkSize is the read granularity for progress reporting
	DownloadChunkSize = 512 * 1024
	// DefaultTimeout is the transport-level HTTP timeout
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "vsts-cli"
)

// Downloader performs streaming archive downloads. Each fetch is a single
// attempt; a failed download fails the whole operation with no retry.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a new downloader.
func NewDownloader() *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: DefaultUserAgent,
	}
}

// FetchArchive downloads uri fully into memory, invoking progress with
// the percentage of declared bytes read after each chunk. The response
// must carry a valid Content-Length header; without one there is no way
// to report progress honestly, so the download fails fast.
//
// The whole payload is buffered before extraction begins. For the tool
// sizes this updater handles that cost is accepted; it is not suitable
// for arbitrarily large archives.
func (d *Downloader) FetchArchive(ctx context.Context, uri string, progress func(percent float64)) ([]byte, error) {
	if progress == nil {
		progress = func(float64) {}
	}

	resp, err := d.get(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	total, err := contentLength(resp)
	if err != nil {
		return nil, err
	}

	var content bytes.Buffer
	content.Grow(int(total))

	chunk := make([]byte, DownloadChunkSize)
	var bytesSoFar int64

	for {
		n, readErr := resp.Body.Read(chunk)
		if n > 0 {
			content.Write(chunk[:n])
			bytesSoFar += int64(n)
			progress(100 * float64(bytesSoFar) / float64(total))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read response body: %w", readErr)
		}
	}

	if bytesSoFar != total {
		return nil, fmt.Errorf("truncated download: read %d of %d bytes", bytesSoFar, total)
	}

	return content.Bytes(), nil
}

// FetchFile downloads a small auxiliary file (e.g. a detached signature)
// fully into memory, without progress reporting.
func (d *Downloader) FetchFile(ctx context.Context, uri string) ([]byte, error) {
	resp, err := d.get(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return data, nil
}

// get issues a GET request and checks the status code.
func (d *Downloader) get(ctx context.Context, uri string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp, nil
}

// contentLength extracts the declared payload size from a response.
// Absent, empty, or non-numeric headers are a failure condition.
func contentLength(resp *http.Response) (int64, error) {
	header := strings.TrimSpace(resp.Header.Get("Content-Length"))
	if header == "" {
		return 0, fmt.Errorf("missing Content-Length header")
	}

	total, err := strconv.ParseInt(header, 10, 64)
	if err != nil || total < 0 {
		return 0, fmt.Errorf("invalid Content-Length header %q", header)
	}

	return total, nil
}
