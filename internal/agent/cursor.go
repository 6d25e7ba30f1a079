package agent

import (
	"strings"

	"github.com/ruleshub/sr/internal/rule"
)

// cursorAgent writes Cursor's .mdc rule format into .cursor/rules/.
// Cursor expects its own frontmatter shape: description, globs, and
// alwaysApply instead of the registry's id/version/triggers fields.
type cursorAgent struct{}

func (cursorAgent) Name() string     { return NameCursor }
func (cursorAgent) RulesDir() string { return ".cursor/rules" }

func (cursorAgent) FileName(r rule.Rule) string {
	return r.Category + "--" + r.ID + ".mdc"
}

func (cursorAgent) Render(r rule.Rule) ([]byte, error) {
	globs, keywords := globTriggers(r.Triggers)

	description := r.Description
	if description == "" && len(keywords) > 0 {
		// Cursor uses the description for agent-requested rules; fall
		// back to the keyword triggers so the rule stays discoverable.
		description = strings.Join(keywords, ", ")
	}

	meta := cursorFrontmatter{
		Description: description,
		Globs:       strings.Join(globs, ","),
		AlwaysApply: len(globs) == 0 && description == "",
	}

	return renderWithFrontmatter(meta, r.Body)
}

// cursorFrontmatter is the header of a .mdc file. All three keys are
// always emitted; Cursor treats a missing key differently from an empty one.
type cursorFrontmatter struct {
	Description string `yaml:"description"`
	Globs       string `yaml:"globs"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}
