package registry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/ruleshub/sr/internal/rule"
)

// Default GitHub endpoints. Overridable for tests via the WithBaseURLs option.
const (
	githubAPIBase = "https://api.github.com"
	githubRawBase = "https://raw.githubusercontent.com"
)

// GitHub fetches rules from a GitHub repository without cloning it:
// the git/trees API lists the repository, raw.githubusercontent.com
// serves the file contents.
type GitHub struct {
	owner   string
	repo    string
	branch  string
	apiBase string
	rawBase string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// GitHubOption configures a GitHub source.
type GitHubOption func(*GitHub)

// WithBaseURLs overrides the API and raw content endpoints. Used by tests
// to point the source at an httptest server.
func WithBaseURLs(apiBase, rawBase string) GitHubOption {
	return func(g *GitHub) {
		g.apiBase = apiBase
		g.rawBase = rawBase
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) GitHubOption {
	return func(g *GitHub) {
		g.client = client
	}
}

// NewGitHub creates a GitHub source from an "owner/repo" slug and branch.
// An API token is read from SR_GITHUB_TOKEN when set.
func NewGitHub(slug, branch string, logger *slog.Logger, opts ...GitHubOption) (*GitHub, error) {
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, errors.Newf("github registry url must be owner/repo, got %q", slug)
	}
	if branch == "" {
		branch = "main"
	}

	g := &GitHub{
		owner:   parts[0],
		repo:    parts[1],
		branch:  branch,
		apiBase: githubAPIBase,
		rawBase: githubRawBase,
		token:   githubToken(),
		client:  newHTTPClient(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Describe implements Source.
func (g *GitHub) Describe() string {
	return fmt.Sprintf("github repository %s/%s@%s", g.owner, g.repo, g.branch)
}

// Fetch implements Source. It lists the repository tree once, then fetches
// each rules/**/*.md blob individually.
func (g *GitHub) Fetch(ctx context.Context) ([]rule.Rule, error) {
	treeURL := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1",
		g.apiBase, g.owner, g.repo, g.branch)

	body, err := fetchURL(ctx, g.client, treeURL, g.token)
	if err != nil {
		return nil, errors.Wrap(err, "listing repository tree")
	}

	result := gjson.ParseBytes(body)
	if result.Get("truncated").Bool() {
		g.logger.Warn("repository tree is truncated; some rules may be missing",
			"repo", g.owner+"/"+g.repo)
	}

	var rules []rule.Rule
	for _, entry := range result.Get("tree").Array() {
		if entry.Get("type").String() != "blob" {
			continue
		}
		filePath := entry.Get("path").String()
		category, name, ok := splitRulePath(filePath)
		if !ok {
			continue
		}

		rawURL := fmt.Sprintf("%s/%s/%s/%s/%s",
			g.rawBase, g.owner, g.repo, g.branch, filePath)
		content, err := fetchURL(ctx, g.client, rawURL, g.token)
		if err != nil {
			return nil, errors.Wrapf(err, "fetching rule %s", filePath)
		}

		r, err := rule.Parse(name, category, content)
		if err != nil {
			g.logger.Warn("skipping rule with malformed frontmatter",
				"path", filePath,
				"error", err)
			continue
		}
		rules = append(rules, r)
	}

	rule.Sort(rules)
	return rules, nil
}

// splitRulePath extracts category and rule name from a repository path of
// the form rules/<category>/<name>.md. Paths nested deeper keep the first
// directory as the category.
func splitRulePath(filePath string) (category, name string, ok bool) {
	if !strings.HasPrefix(filePath, "rules/") || !strings.HasSuffix(filePath, ".md") {
		return "", "", false
	}
	rest := strings.TrimPrefix(filePath, "rules/")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		// A top-level rules/*.md file has no category; skip it.
		return "", "", false
	}
	category = parts[0]
	name = strings.TrimSuffix(path.Base(rest), ".md")
	return category, name, true
}
