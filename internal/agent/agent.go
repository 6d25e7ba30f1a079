// Package agent defines the AI coding tools sr can materialize rules for,
// each with its own rules directory convention and on-disk rule format.
package agent

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/ruleshub/sr/internal/rule"
)

// Agent identifiers for supported AI coding tools.
const (
	NameCursor   = "cursor"
	NameClaude   = "claude"
	NameCopilot  = "copilot"
	NameOpenCode = "opencode"
	NameGemini   = "gemini"
)

// Agent describes a target AI coding tool. Implementations are stateless
// and safe for concurrent use.
type Agent interface {
	// Name returns the agent identifier (cursor, claude, copilot,
	// opencode, gemini).
	Name() string

	// RulesDir returns the agent's rules directory relative to the
	// project root, e.g. ".cursor/rules".
	RulesDir() string

	// FileName returns the file name a rule materializes as for this agent.
	FileName(r rule.Rule) string

	// Render produces the on-disk content for a rule in the agent's
	// native format.
	Render(r rule.Rule) ([]byte, error)
}

// markdownAgent writes rules as plain markdown with the original
// frontmatter re-emitted. Most agents share this format; only the rules
// directory differs.
type markdownAgent struct {
	name string
	dir  string
}

func (a markdownAgent) Name() string     { return a.name }
func (a markdownAgent) RulesDir() string { return a.dir }

func (a markdownAgent) FileName(r rule.Rule) string {
	return r.Category + "--" + r.ID + ".md"
}

func (a markdownAgent) Render(r rule.Rule) ([]byte, error) {
	meta := map[string]any{
		"id": r.ID,
	}
	if r.Version != "" {
		meta["version"] = r.Version
	}
	if r.Description != "" {
		meta["description"] = r.Description
	}
	if len(r.Triggers) > 0 {
		meta["triggers"] = r.Triggers
	}
	return renderWithFrontmatter(meta, r.Body)
}

// renderWithFrontmatter emits a "---" fenced YAML header followed by body.
func renderWithFrontmatter(meta any, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "closing frontmatter encoder")
	}

	buf.WriteString("---\n")
	buf.Write(body)
	if len(body) > 0 && body[len(body)-1] != '\n' {
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

// globTriggers splits triggers into file globs and plain keywords.
// A trigger counts as a glob when it contains a glob metacharacter,
// a path separator, or a file extension.
func globTriggers(triggers []string) (globs, keywords []string) {
	for _, t := range triggers {
		if strings.ContainsAny(t, "*?[") || strings.Contains(t, "/") || strings.HasPrefix(t, ".") {
			globs = append(globs, t)
		} else {
			keywords = append(keywords, t)
		}
	}
	return globs, keywords
}

// RulePath returns the absolute path a rule materializes at for an agent.
func RulePath(a Agent, projectRoot string, r rule.Rule) string {
	return filepath.Join(projectRoot, a.RulesDir(), a.FileName(r))
}
