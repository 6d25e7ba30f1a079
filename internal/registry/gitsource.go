package registry

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/git"
	"github.com/ruleshub/sr/internal/paths"
	"github.com/ruleshub/sr/internal/rule"
)

// Git fetches rules from any git URL by maintaining a shallow clone in the
// XDG cache and scanning it like a local directory. Unlike the GitHub
// source it works with private hosts and SSH remotes, at the cost of
// requiring the git binary.
type Git struct {
	url      string
	branch   string
	cacheDir string
	logger   *slog.Logger
}

// NewGit creates a Git source for the given URL and branch.
func NewGit(url, branch string, logger *slog.Logger) *Git {
	return &Git{
		url:      url,
		branch:   branch,
		cacheDir: paths.RegistryCacheDir(),
		logger:   logger,
	}
}

// Describe implements Source.
func (g *Git) Describe() string {
	return "git repository " + g.url
}

// Fetch implements Source. The first call clones the repository; later
// calls pull. A failed pull falls back to the stale cache with a warning
// so a network outage doesn't break sync.
func (g *Git) Fetch(ctx context.Context) ([]rule.Rule, error) {
	dir, err := g.ensureClone()
	if err != nil {
		return nil, err
	}
	return NewLocal(dir, g.logger).Fetch(ctx)
}

// Manifest implements ManifestProvider using the cached clone.
func (g *Git) Manifest() (*Manifest, error) {
	dir := g.clonePath()
	if _, err := os.Stat(dir); err != nil {
		return nil, nil
	}
	return LoadManifest(dir)
}

// clonePath returns the cache directory for this registry's clone.
func (g *Git) clonePath() string {
	return filepath.Join(g.cacheDir, cacheName(g.url))
}

func (g *Git) ensureClone() (string, error) {
	if !git.Available() {
		return "", errors.Wrap(srerrors.ErrRegistryUnreachable, "git binary not found on PATH")
	}

	dest := g.clonePath()

	if err := git.IsRepo(dest); err == nil {
		if err := git.Pull(dest); err != nil {
			g.logger.Warn("git pull failed; using cached registry",
				"url", g.url,
				"error", err)
		}
		return dest, nil
	}

	if err := paths.EnsureDir(g.cacheDir); err != nil {
		return "", errors.Wrap(err, "creating registry cache directory")
	}

	if err := git.Clone(g.url, dest, 1, g.branch); err != nil {
		// Remove any partially-created directory so the next attempt
		// starts clean.
		if cleanupErr := os.RemoveAll(dest); cleanupErr != nil {
			return "", errors.Wrapf(err, "cloning registry (cleanup also failed: %v)", cleanupErr)
		}
		return "", errors.Wrapf(srerrors.ErrRegistryUnreachable, "cloning %s: %v", g.url, err)
	}

	return dest, nil
}

// cacheName derives a filesystem-safe cache directory name from a git URL.
func cacheName(url string) string {
	name := url
	if strings.HasPrefix(name, "git@") {
		if i := strings.LastIndex(name, ":"); i != -1 {
			name = name[i+1:]
		}
	}
	if i := strings.Index(name, "://"); i != -1 {
		name = name[i+3:]
	}
	name = strings.TrimSuffix(name, ".git")
	name = strings.ToLower(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
