package agent

import (
	"errors"
	"strings"
	"testing"

	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/rule"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		a, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q) error: %v", name, err)
			continue
		}
		if a.Name() != name {
			t.Errorf("Lookup(%q).Name() = %q", name, a.Name())
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("windsurf")
	if !errors.Is(err, srerrors.ErrUnknownAgent) {
		t.Errorf("expected ErrUnknownAgent, got %v", err)
	}
}

func TestRulesDirs(t *testing.T) {
	want := map[string]string{
		NameCursor:   ".cursor/rules",
		NameClaude:   ".claude/rules",
		NameCopilot:  ".github/rules",
		NameOpenCode: ".opencode/rules",
		NameGemini:   ".gemini/rules",
	}

	for name, dir := range want {
		a, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		if a.RulesDir() != dir {
			t.Errorf("%s RulesDir() = %q, want %q", name, a.RulesDir(), dir)
		}
	}
}

func TestAll_DeterministicOrder(t *testing.T) {
	first := Names()
	for range 5 {
		again := Names()
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("Names() order changed: %v vs %v", first, again)
			}
		}
	}
	if first[0] != NameCursor {
		t.Errorf("Names()[0] = %q, want cursor first", first[0])
	}
}

func TestMarkdownAgent_Render(t *testing.T) {
	a, _ := Lookup(NameClaude)
	r := rule.Rule{
		ID:          "error-handling",
		Version:     "1.0.0",
		Description: "wrap errors",
		Category:    "go",
		Triggers:    []string{"*.go"},
		Body:        []byte("Wrap errors with context.\n"),
	}

	out, err := a.Render(r)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	s := string(out)

	if !strings.HasPrefix(s, "---\n") {
		t.Errorf("output should start with frontmatter fence: %q", s)
	}
	for _, want := range []string{"id: error-handling", "version: 1.0.0", "Wrap errors with context."} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}

	if a.FileName(r) != "go--error-handling.md" {
		t.Errorf("FileName() = %q", a.FileName(r))
	}
}

func TestCursorAgent_Render(t *testing.T) {
	a, _ := Lookup(NameCursor)
	r := rule.Rule{
		ID:       "hooks",
		Category: "react",
		Triggers: []string{"*.tsx", "hooks"},
		Body:     []byte("Prefer function components.\n"),
	}

	out, err := a.Render(r)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, "globs: '*.tsx'") && !strings.Contains(s, "globs: \"*.tsx\"") && !strings.Contains(s, "globs: *.tsx") {
		t.Errorf("output missing globs:\n%s", s)
	}
	if !strings.Contains(s, "alwaysApply: false") {
		t.Errorf("rule with globs should not be alwaysApply:\n%s", s)
	}
	if a.FileName(r) != "react--hooks.mdc" {
		t.Errorf("FileName() = %q", a.FileName(r))
	}
}

func TestCursorAgent_AlwaysApplyWhenNoTriggers(t *testing.T) {
	a, _ := Lookup(NameCursor)
	r := rule.Rule{ID: "general", Category: "misc", Body: []byte("Always.\n")}

	out, err := a.Render(r)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(string(out), "alwaysApply: true") {
		t.Errorf("rule without triggers or description should be alwaysApply:\n%s", out)
	}
}

func TestGlobTriggers(t *testing.T) {
	globs, keywords := globTriggers([]string{"*.go", "src/**", ".envrc", "errors", "concurrency"})

	if len(globs) != 3 {
		t.Errorf("globs = %v, want 3 entries", globs)
	}
	if len(keywords) != 2 {
		t.Errorf("keywords = %v, want 2 entries", keywords)
	}
}

func TestRulePath(t *testing.T) {
	a, _ := Lookup(NameGemini)
	r := rule.Rule{ID: "style", Category: "java"}

	got := RulePath(a, "/proj", r)
	if !strings.HasSuffix(got, ".gemini/rules/java--style.md") {
		t.Errorf("RulePath() = %q", got)
	}
}
