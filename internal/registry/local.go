package registry

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/fsutil"
	"github.com/ruleshub/sr/internal/rule"
)

// Local reads rules from a directory on disk.
//
// The expected layout is <root>/rules/<category>/*.md. When the directory
// has no rules/ subdirectory it is treated as the rules root itself, so
// both a full registry checkout and a bare rules directory work.
type Local struct {
	root   string
	logger *slog.Logger
}

// NewLocal creates a Local source for the given directory.
func NewLocal(root string, logger *slog.Logger) *Local {
	return &Local{root: root, logger: logger}
}

// Describe implements Source.
func (l *Local) Describe() string {
	return "local directory " + l.root
}

// Fetch implements Source. Files with malformed frontmatter are logged
// and skipped; a missing root directory is an error.
func (l *Local) Fetch(_ context.Context) ([]rule.Rule, error) {
	root, err := l.rulesRoot()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(srerrors.ErrRegistryUnreachable, "reading %s: %v", root, err)
	}

	var rules []rule.Rule
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		category := entry.Name()
		if strings.HasPrefix(category, ".") {
			continue
		}

		categoryRules, err := l.scanCategory(filepath.Join(root, category), category)
		if err != nil {
			l.logger.Warn("failed to scan category directory",
				"category", category,
				"error", err)
			continue
		}
		rules = append(rules, categoryRules...)
	}

	rule.Sort(rules)
	return rules, nil
}

// Manifest implements ManifestProvider. Returns nil without error when
// the registry has no registry.toml.
func (l *Local) Manifest() (*Manifest, error) {
	return LoadManifest(l.root)
}

// rulesRoot resolves the directory that holds the category directories.
func (l *Local) rulesRoot() (string, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(srerrors.ErrRegistryUnreachable, "directory %s does not exist", l.root)
		}
		return "", errors.Wrap(err, "checking registry directory")
	}
	if !info.IsDir() {
		return "", errors.Newf("registry path %s is not a directory", l.root)
	}

	nested := filepath.Join(l.root, "rules")
	if info, err := os.Stat(nested); err == nil && info.IsDir() {
		return nested, nil
	}
	return l.root, nil
}

// scanCategory reads all *.md files directly inside a category directory.
func (l *Local) scanCategory(dir, category string) ([]rule.Rule, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading category directory %s", dir)
	}

	rules := make([]rule.Rule, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}

		path := filepath.Join(dir, name)
		content, err := fsutil.ReadFileWithLimit(path)
		if err != nil {
			l.logger.Warn("failed to read rule file",
				"path", path,
				"error", err)
			continue
		}

		r, err := rule.Parse(strings.TrimSuffix(name, ".md"), category, content)
		if err != nil {
			l.logger.Warn("skipping rule with malformed frontmatter",
				"path", path,
				"error", err)
			continue
		}
		rules = append(rules, r)
	}

	return rules, nil
}
