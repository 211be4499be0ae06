package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/oshokin/discord-updater/internal/config"
	"github.com/oshokin/discord-updater/internal/domain/release"
	"github.com/oshokin/discord-updater/internal/repository/buildinfo"
)

// errBadHTTPStatus is returned for any non-200 response from the version endpoint.
var errBadHTTPStatus = errors.New("unexpected http status")

// Service resolves "latest" and "current" version state.
type Service struct {
	// client issues the version probe with the configured timeout.
	client *http.Client
	// versionURL is the latest-version endpoint.
	versionURL string
	// repo reads installed-version metadata from a resource tree.
	repo buildinfo.Repository
}

// New creates a resolver from configuration and a metadata repository.
func New(cfg *config.Config, repo buildinfo.Repository) *Service {
	return &Service{
		client:     &http.Client{Timeout: cfg.RequestTimeout},
		versionURL: cfg.VersionURL,
		repo:       repo,
	}
}

// FetchLatest issues a GET to the version endpoint and parses the response
// body as a version payload. Without the latest version no update decision
// is possible, so every failure here is fatal to the run.
func (s *Service) FetchLatest(ctx context.Context) (release.Version, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.versionURL, http.NoBody)
	if err != nil {
		return release.Version{}, fmt.Errorf("build version request: %w", err)
	}

	response, err := s.client.Do(req)
	if err != nil {
		return release.Version{}, fmt.Errorf("query version endpoint: %w", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return release.Version{}, fmt.Errorf("%s, %s: %w", s.versionURL, response.Status, errBadHTTPStatus)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return release.Version{}, fmt.Errorf("read version response: %w", err)
	}

	return release.ParsePayload(data)
}

// ReadInstalled returns the version of the copy installed at the given path.
func (s *Service) ReadInstalled(ctx context.Context, installPath string) (release.Version, error) {
	return s.repo.InstalledVersion(ctx, installPath)
}
