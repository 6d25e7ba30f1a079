package registry

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/ruleshub/sr/internal/rule"
)

// HTTP fetches rules from an arbitrary HTTP endpoint. The endpoint serves
// an index.json at its root listing rule paths, plus the rule files
// themselves at those paths:
//
//	GET <base>/index.json        → ["rules/go/errors.md", ...]
//	GET <base>/rules/go/errors.md
//
// Index entries may also be objects with a "path" field.
type HTTP struct {
	base   string
	client *http.Client
	logger *slog.Logger
}

// NewHTTP creates an HTTP source for the given base URL.
func NewHTTP(base string, logger *slog.Logger) *HTTP {
	return &HTTP{
		base:   strings.TrimSuffix(base, "/"),
		client: newHTTPClient(),
		logger: logger,
	}
}

// Describe implements Source.
func (h *HTTP) Describe() string {
	return "http endpoint " + h.base
}

// Fetch implements Source.
func (h *HTTP) Fetch(ctx context.Context) ([]rule.Rule, error) {
	body, err := fetchURL(ctx, h.client, h.base+"/index.json", "")
	if err != nil {
		return nil, errors.Wrap(err, "fetching index")
	}

	index := gjson.ParseBytes(body)
	if !index.IsArray() {
		return nil, errors.Newf("index.json must be a JSON array, got %s", index.Type)
	}

	var rules []rule.Rule
	for _, entry := range index.Array() {
		filePath := entry.String()
		if entry.IsObject() {
			filePath = entry.Get("path").String()
		}

		category, name, ok := splitRulePath(filePath)
		if !ok {
			h.logger.Warn("skipping index entry with unexpected path",
				"path", filePath)
			continue
		}

		content, err := fetchURL(ctx, h.client, h.base+"/"+filePath, "")
		if err != nil {
			return nil, errors.Wrapf(err, "fetching rule %s", filePath)
		}

		r, err := rule.Parse(name, category, content)
		if err != nil {
			h.logger.Warn("skipping rule with malformed frontmatter",
				"path", filePath,
				"error", err)
			continue
		}
		rules = append(rules, r)
	}

	rule.Sort(rules)
	return rules, nil
}
