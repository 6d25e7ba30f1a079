// Package registry provides the sources rules are fetched from: a GitHub
// repository, an arbitrary git URL, a local directory, or an HTTP endpoint.
// Each source reduces to "given a location, return the list of rules".
package registry

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ruleshub/sr/internal/config"
	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/rule"
)

// Source fetches rule documents from a registry location.
type Source interface {
	// Fetch returns all rules the registry provides. Individual files
	// with malformed frontmatter are logged and skipped, not fatal.
	Fetch(ctx context.Context) ([]rule.Rule, error)

	// Describe returns a short human-readable description of the source
	// for logs and error messages.
	Describe() string
}

// ManifestProvider is implemented by sources that can expose the optional
// registry.toml manifest (local and git sources).
type ManifestProvider interface {
	Manifest() (*Manifest, error)
}

// New builds a Source from the registry section of a project config.
// Returns srerrors.ErrUnknownRegistry for unrecognized types.
func New(reg config.Registry, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch reg.Type {
	case config.RegistryLocal:
		return NewLocal(reg.URL, logger), nil
	case config.RegistryGitHub:
		return NewGitHub(reg.URL, reg.Branch, logger)
	case config.RegistryGit:
		return NewGit(reg.URL, reg.Branch, logger), nil
	case config.RegistryHTTP:
		return NewHTTP(reg.URL, logger), nil
	default:
		return nil, errors.Wrapf(srerrors.ErrUnknownRegistry, "%q", reg.Type)
	}
}

// defaultTimeout bounds a single registry HTTP request.
const defaultTimeout = 30 * time.Second

// maxResponseSize caps any single registry response. Tree listings for
// large registries run bigger than rule files, so this is looser than
// fsutil.MaxRuleFileSize.
const maxResponseSize = 10 * 1024 * 1024

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// fetchURL performs a GET and returns the body, mapping transport failures
// and non-2xx statuses to srerrors.ErrRegistryUnreachable.
func fetchURL(ctx context.Context, client *http.Client, url, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(srerrors.ErrRegistryUnreachable, "%s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Wrapf(srerrors.ErrRegistryUnreachable, "%s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, errors.Wrapf(srerrors.ErrRegistryUnreachable, "%s: reading body: %v", url, err)
	}
	if len(body) > maxResponseSize {
		return nil, errors.Newf("%s: response exceeds %d bytes", url, maxResponseSize)
	}

	return body, nil
}

// githubToken returns the optional API token from the environment.
func githubToken() string {
	return os.Getenv("SR_GITHUB_TOKEN")
}
