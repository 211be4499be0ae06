package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/discord-updater/internal/progress"
)

const (
	// chunkSize is the copy buffer size; one progress event is emitted per chunk.
	chunkSize = 128 * 1024

	// destFileMode is the permission for downloaded archives inside the temp scope.
	destFileMode = 0o644
)

// errBadHTTPStatus is returned for any non-200 response from the archive endpoint.
var errBadHTTPStatus = errors.New("unexpected http status")

// Service streams remote archives to local files with byte-level progress.
type Service struct {
	// client issues the archive download with the configured timeout.
	client *http.Client
}

// New creates a downloader whose requests are bounded by the given timeout.
func New(timeout time.Duration) *Service {
	return &Service{
		client: &http.Client{Timeout: timeout},
	}
}

// Download streams a GET of url into destPath, publishing one progress
// event per copied chunk. The Content-Length header (when present) becomes
// the progress total; 0 means indeterminate. destPath must live inside a
// scoped temporary directory owned by the caller, so partial files never
// reach the final install location.
func (s *Service) Download(ctx context.Context, url, destPath string, sink progress.Sink) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	response, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request archive: %w", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%s, %s: %w", url, response.Status, errBadHTTPStatus)
	}

	total := response.ContentLength
	if total < 0 {
		total = 0
	}

	destFile, err := os.OpenFile(filepath.Clean(destPath), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, destFileMode)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}

	if err = copyWithProgress(destFile, response.Body, total, sink); err != nil {
		_ = destFile.Close()

		return err
	}

	if err = destFile.Close(); err != nil {
		return fmt.Errorf("close destination file: %w", err)
	}

	sink.Finish()

	return nil
}

// copyWithProgress copies src to dst in chunks, emitting an event per chunk.
func copyWithProgress(dst io.Writer, src io.Reader, total int64, sink progress.Sink) error {
	buf := make([]byte, chunkSize)

	var done int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("write archive chunk: %w", writeErr)
			}

			done += int64(n)

			sink.Publish(progress.Event{
				Phase:      progress.PhaseDownload,
				BytesDone:  done,
				BytesTotal: total,
			})
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}

			return fmt.Errorf("read archive stream: %w", readErr)
		}
	}
}
