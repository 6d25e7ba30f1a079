package sync

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ruleshub/sr/internal/agent"
	"github.com/ruleshub/sr/internal/logging"
	"github.com/ruleshub/sr/internal/rule"
)

func testRules() []rule.Rule {
	return []rule.Rule{
		{ID: "errors", Category: "go", Version: "1.0.0", Body: []byte("Wrap errors.\n")},
		{ID: "naming", Category: "go", Body: []byte("Short names.\n")},
	}
}

func TestPlanAndApply(t *testing.T) {
	root := t.TempDir()
	s := New(root, logging.ForTest(t))

	plan, err := s.Plan(testRules(), []string{agent.NameClaude, agent.NameCursor})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	if got := plan.Count(ActionCreate); got != 4 {
		t.Errorf("creates = %d, want 4 (2 rules x 2 agents)", got)
	}

	if err := s.Apply(plan, Options{}); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	for _, rel := range []string{
		".claude/rules/go--errors.md",
		".claude/rules/go--naming.md",
		".cursor/rules/go--errors.mdc",
		".cursor/rules/go--naming.mdc",
	} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}

	// Manifest is written alongside the rules.
	if _, err := os.Stat(filepath.Join(root, ".claude/rules", manifestFileName)); err != nil {
		t.Errorf("expected sync manifest: %v", err)
	}
}

func TestPlan_Idempotent(t *testing.T) {
	root := t.TempDir()
	s := New(root, logging.ForTest(t))

	plan, err := s.Plan(testRules(), []string{agent.NameClaude})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(plan, Options{}); err != nil {
		t.Fatal(err)
	}

	// Second pass with identical inputs: everything unchanged.
	again, err := s.Plan(testRules(), []string{agent.NameClaude})
	if err != nil {
		t.Fatal(err)
	}
	if got := again.Count(ActionUnchanged); got != 2 {
		t.Errorf("unchanged = %d, want 2", got)
	}
	if got := again.Count(ActionCreate) + again.Count(ActionUpdate); got != 0 {
		t.Errorf("creates+updates = %d, want 0 on idempotent re-run", got)
	}
}

func TestPlan_UpdateOnContentChange(t *testing.T) {
	root := t.TempDir()
	s := New(root, logging.ForTest(t))

	plan, _ := s.Plan(testRules(), []string{agent.NameClaude})
	if err := s.Apply(plan, Options{}); err != nil {
		t.Fatal(err)
	}

	changed := testRules()
	changed[0].Body = []byte("Wrap errors with %w.\n")

	again, err := s.Plan(changed, []string{agent.NameClaude})
	if err != nil {
		t.Fatal(err)
	}
	if got := again.Count(ActionUpdate); got != 1 {
		t.Errorf("updates = %d, want 1", got)
	}
	if got := again.Count(ActionUnchanged); got != 1 {
		t.Errorf("unchanged = %d, want 1", got)
	}
}

func TestApply_Prune(t *testing.T) {
	root := t.TempDir()
	s := New(root, logging.ForTest(t))

	plan, _ := s.Plan(testRules(), []string{agent.NameClaude})
	if err := s.Apply(plan, Options{}); err != nil {
		t.Fatal(err)
	}

	// Drop one rule; its file should be planned as a prune.
	fewer := testRules()[:1]
	again, err := s.Plan(fewer, []string{agent.NameClaude})
	if err != nil {
		t.Fatal(err)
	}
	if got := again.Count(ActionPrune); got != 1 {
		t.Fatalf("prunes = %d, want 1", got)
	}

	// Without Prune the file survives.
	if err := s.Apply(again, Options{}); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(root, ".claude/rules/go--naming.md")
	if _, err := os.Stat(stale); err != nil {
		t.Fatalf("file should survive without --prune: %v", err)
	}

	// With Prune it is removed.
	again2, _ := s.Plan(fewer, []string{agent.NameClaude})
	if err := s.Apply(again2, Options{Prune: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file should be pruned")
	}
}

func TestApply_SkippedPruneKeepsOwnership(t *testing.T) {
	root := t.TempDir()
	s := New(root, logging.ForTest(t))

	plan, _ := s.Plan(testRules(), []string{agent.NameClaude})
	if err := s.Apply(plan, Options{}); err != nil {
		t.Fatal(err)
	}

	// Deselect a rule, then apply without Prune. The stale file stays
	// on disk, and its ownership must stay in the manifest too.
	fewer := testRules()[:1]
	again, _ := s.Plan(fewer, []string{agent.NameClaude})
	if err := s.Apply(again, Options{}); err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(root, ".claude/rules")
	owned, err := readManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(owned, "go--naming.md") {
		t.Errorf("manifest %v lost ownership of the stale file", owned)
	}

	// A later pass must still see the prune candidate and remove it.
	later, err := s.Plan(fewer, []string{agent.NameClaude})
	if err != nil {
		t.Fatal(err)
	}
	if got := later.Count(ActionPrune); got != 1 {
		t.Fatalf("prunes = %d, want 1 after a skipped prune", got)
	}
	if err := s.Apply(later, Options{Prune: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "go--naming.md")); !os.IsNotExist(err) {
		t.Error("stale file should be pruned once --prune is given")
	}
}

func TestApply_PruneLeavesForeignFiles(t *testing.T) {
	root := t.TempDir()
	s := New(root, logging.ForTest(t))

	plan, _ := s.Plan(testRules(), []string{agent.NameClaude})
	if err := s.Apply(plan, Options{}); err != nil {
		t.Fatal(err)
	}

	// A hand-written rule the user added outside sr.
	foreign := filepath.Join(root, ".claude/rules/my-own-rule.md")
	if err := os.WriteFile(foreign, []byte("mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	again, _ := s.Plan(nil, []string{agent.NameClaude})
	if err := s.Apply(again, Options{Prune: true}); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(foreign); err != nil {
		t.Error("prune must never touch files sr didn't write")
	}
}

func TestApply_DryRun(t *testing.T) {
	root := t.TempDir()
	s := New(root, logging.ForTest(t))

	plan, err := s.Plan(testRules(), []string{agent.NameCursor})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(plan, Options{DryRun: true}); err != nil {
		t.Fatalf("Apply() dry-run error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, ".cursor")); !os.IsNotExist(err) {
		t.Error("dry-run must not create directories")
	}
}

func TestPlan_UnknownAgent(t *testing.T) {
	s := New(t.TempDir(), logging.ForTest(t))
	if _, err := s.Plan(testRules(), []string{"windsurf"}); err == nil {
		t.Error("expected error for unknown agent")
	}
}
