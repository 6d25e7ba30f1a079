package rule

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	srerrors "github.com/ruleshub/sr/internal/errors"
)

// frontmatter is the YAML header of a rule file.
type frontmatter struct {
	ID          string   `yaml:"id"`
	Version     string   `yaml:"version"`
	Description string   `yaml:"description"`
	Triggers    []string `yaml:"triggers"`
}

var delimiter = []byte("---")

// Parse builds a Rule from raw file content.
//
// name is the file name without extension; it becomes the rule ID when the
// frontmatter has no id field. Files without a frontmatter block are valid
// rules with defaults. Malformed YAML inside the block returns an error
// wrapping srerrors.ErrMalformedRule so callers can warn and skip.
func Parse(name, category string, content []byte) (Rule, error) {
	r := Rule{
		ID:       name,
		Category: category,
		Body:     content,
	}

	fm, body, ok := splitFrontmatter(content)
	if !ok {
		return r, nil
	}

	var meta frontmatter
	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return Rule{}, errors.Wrapf(srerrors.ErrMalformedRule, "rule %s/%s: %v", category, name, err)
	}

	if meta.ID != "" {
		r.ID = meta.ID
	}
	r.Version = meta.Version
	r.Description = meta.Description
	r.Triggers = meta.Triggers
	r.Body = body

	return r, nil
}

// splitFrontmatter separates a leading "---" fenced YAML block from the body.
// Returns ok=false when the content has no complete frontmatter block;
// the full content is then the body.
func splitFrontmatter(content []byte) (fm, body []byte, ok bool) {
	// Normalize a UTF-8 BOM away before checking the fence.
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	if !bytes.HasPrefix(content, delimiter) {
		return nil, content, false
	}
	rest := content[len(delimiter):]
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	if !bytes.HasPrefix(rest, []byte("\n")) {
		return nil, content, false
	}
	rest = rest[1:]

	// The closing fence is a line consisting solely of "---". A line
	// that merely starts with dashes ("----", "--- note") is YAML
	// content, not the fence.
	end := -1
	offset := 0
	for offset <= len(rest) {
		line := rest[offset:]
		lineLen := bytes.IndexByte(line, '\n')
		if lineLen >= 0 {
			line = line[:lineLen]
		}
		if bytes.Equal(bytes.TrimSuffix(line, []byte("\r")), delimiter) {
			end = offset
			break
		}
		if lineLen < 0 {
			break
		}
		offset += lineLen + 1
	}
	if end == -1 {
		return nil, content, false
	}

	fm = rest[:end]
	body = rest[end+len(delimiter):]

	// The fence line may end with \r\n or \n; drop it from the body.
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	return fm, body, true
}
