// Package sync materializes resolved rules into each agent's rules
// directory. A sync pass is planned first (create/update/unchanged/prune
// per file), then applied; re-running with unchanged inputs is a no-op.
package sync

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/ruleshub/sr/internal/agent"
	"github.com/ruleshub/sr/internal/fsutil"
	"github.com/ruleshub/sr/internal/paths"
	"github.com/ruleshub/sr/internal/rule"
)

// Action classifies what Apply will do with one file.
type Action string

const (
	// ActionCreate writes a file that does not exist yet.
	ActionCreate Action = "create"

	// ActionUpdate overwrites a file whose content differs.
	ActionUpdate Action = "update"

	// ActionUnchanged leaves a byte-identical file alone.
	ActionUnchanged Action = "unchanged"

	// ActionPrune removes a file sr wrote on a previous run whose rule
	// is no longer in the resolved set.
	ActionPrune Action = "prune"
)

// FileOp is one planned file operation.
type FileOp struct {
	// Agent is the agent this file belongs to.
	Agent string

	// Path is the absolute file path.
	Path string

	// Rel is the path relative to the project root, for display.
	Rel string

	// Action is what Apply will do.
	Action Action

	// Content is the rendered file content. Empty for prunes.
	Content []byte
}

// Plan is the full set of operations for one sync pass.
type Plan struct {
	Ops []FileOp

	// manifests records, per agent rules dir, the file names sr owns
	// after this pass. Written by Apply.
	manifests map[string][]string
}

// Count returns the number of operations with the given action.
func (p *Plan) Count(action Action) int {
	n := 0
	for _, op := range p.Ops {
		if op.Action == action {
			n++
		}
	}
	return n
}

// Options controls Apply behavior.
type Options struct {
	// DryRun reports what would happen without touching the filesystem.
	DryRun bool

	// Prune enables deletion of previously-synced files whose rules
	// left the resolved set.
	Prune bool
}

// Syncer plans and applies sync passes for one project.
type Syncer struct {
	projectRoot string
	logger      *slog.Logger
}

// New creates a Syncer rooted at the project directory.
func New(projectRoot string, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{projectRoot: projectRoot, logger: logger}
}

// Plan renders every rule for every named agent and diffs the result
// against the files on disk and the previous run's manifest.
func (s *Syncer) Plan(rules []rule.Rule, agentNames []string) (*Plan, error) {
	plan := &Plan{manifests: make(map[string][]string)}

	for _, name := range agentNames {
		a, err := agent.Lookup(name)
		if err != nil {
			return nil, err
		}

		dir := filepath.Join(s.projectRoot, a.RulesDir())
		owned := make(map[string]struct{}, len(rules))

		for _, r := range rules {
			content, err := a.Render(r)
			if err != nil {
				return nil, errors.Wrapf(err, "rendering rule %s for %s", r.Key(), name)
			}

			fileName := a.FileName(r)
			owned[fileName] = struct{}{}
			path := filepath.Join(dir, fileName)

			plan.Ops = append(plan.Ops, FileOp{
				Agent:   name,
				Path:    path,
				Rel:     filepath.Join(a.RulesDir(), fileName),
				Action:  diffAction(path, content),
				Content: content,
			})
		}

		plan.manifests[dir] = sortedKeys(owned)

		// Previously-synced files not in the new set become prunes.
		previous, err := readManifest(dir)
		if err != nil {
			s.logger.Warn("ignoring unreadable sync manifest",
				"dir", dir,
				"error", err)
			previous = nil
		}
		for _, fileName := range previous {
			if _, ok := owned[fileName]; ok {
				continue
			}
			plan.Ops = append(plan.Ops, FileOp{
				Agent:  name,
				Path:   filepath.Join(dir, fileName),
				Rel:    filepath.Join(a.RulesDir(), fileName),
				Action: ActionPrune,
			})
		}
	}

	return plan, nil
}

// Apply executes the plan: creates directories, writes changed files
// atomically, removes prunes when enabled, and records the manifest.
// Stale files that were skipped because pruning is disabled stay in the
// manifest so a later --prune run can still remove them.
func (s *Syncer) Apply(plan *Plan, opts Options) error {
	if opts.DryRun {
		return nil
	}

	// Skipped prunes per rules dir; ownership must survive until the
	// file is actually removed.
	retained := make(map[string][]string)

	for _, op := range plan.Ops {
		switch op.Action {
		case ActionCreate, ActionUpdate:
			if err := paths.EnsureDir(filepath.Dir(op.Path)); err != nil {
				return errors.Wrapf(err, "creating rules directory for %s", op.Agent)
			}
			if err := fsutil.AtomicWriteFile(op.Path, op.Content, 0o644); err != nil {
				return errors.Wrapf(err, "writing %s", op.Rel)
			}
			s.logger.Debug("wrote rule file", "agent", op.Agent, "path", op.Rel, "action", op.Action)

		case ActionPrune:
			if !opts.Prune {
				dir := filepath.Dir(op.Path)
				retained[dir] = append(retained[dir], filepath.Base(op.Path))
				s.logger.Debug("skipping prune (enable with --prune)", "path", op.Rel)
				continue
			}
			if err := os.Remove(op.Path); err != nil && !os.IsNotExist(err) {
				return errors.Wrapf(err, "pruning %s", op.Rel)
			}
			s.logger.Debug("pruned stale rule file", "agent", op.Agent, "path", op.Rel)

		case ActionUnchanged:
			// Nothing to do; idempotent by design.
		}
	}

	for dir, files := range plan.manifests {
		if kept := retained[dir]; len(kept) > 0 {
			files = append(append([]string(nil), files...), kept...)
			sort.Strings(files)
		}
		if len(files) == 0 {
			// Don't create an empty rules dir just to hold a manifest.
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				continue
			}
		}
		if err := paths.EnsureDir(dir); err != nil {
			return errors.Wrap(err, "creating rules directory")
		}
		if err := writeManifest(dir, files); err != nil {
			return err
		}
	}

	return nil
}

// diffAction compares rendered content to what's on disk.
func diffAction(path string, content []byte) Action {
	existing, err := os.ReadFile(path)
	if err != nil {
		return ActionCreate
	}
	if bytes.Equal(existing, content) {
		return ActionUnchanged
	}
	return ActionUpdate
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	// Stable manifest content keeps re-runs byte-identical.
	sort.Strings(out)
	return out
}
