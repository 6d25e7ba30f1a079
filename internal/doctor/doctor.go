// Package doctor runs health checks over a project's rule-sync setup:
// config file, registry reachability, required tooling, and write
// access to agent rule directories.
package doctor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ruleshub/sr/internal/agent"
	"github.com/ruleshub/sr/internal/config"
	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/git"
	"github.com/ruleshub/sr/internal/paths"
	"github.com/ruleshub/sr/internal/registry"
)

// registryCheckTimeout bounds the reachability probe so doctor stays
// responsive on a dead network.
const registryCheckTimeout = 15 * time.Second

// Doctor runs the checks for a project rooted at or above startDir.
type Doctor struct {
	startDir string
	logger   *slog.Logger
}

// New returns a Doctor that searches for the project starting at startDir.
func New(startDir string, logger *slog.Logger) *Doctor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Doctor{startDir: startDir, logger: logger}
}

// Run executes all checks and returns their results in a stable order.
// A missing or invalid config short-circuits the checks that need one.
func (d *Doctor) Run(ctx context.Context) []Result {
	var results []Result

	cfg, root, res := d.checkConfig()
	results = append(results, res)
	if cfg == nil {
		return results
	}

	results = append(results, d.checkGit(cfg))
	results = append(results, d.checkRegistry(ctx, cfg))
	results = append(results, d.checkAgentDirs(cfg, root)...)
	return results
}

func (d *Doctor) checkConfig() (*config.Config, string, Result) {
	cfg, root, err := config.LoadProject(d.startDir)
	if err != nil {
		res := Result{Name: "config", Status: StatusFail, Detail: err.Error()}
		if errors.Is(err, srerrors.ErrConfigNotFound) {
			res.Detail = "no .rules.json found in this directory or any parent"
			res.Suggestion = "Run: sr init"
		}
		return nil, "", res
	}
	return cfg, root, Result{
		Name:   "config",
		Status: StatusOK,
		Detail: fmt.Sprintf("valid config at %s", paths.ConfigPath(root)),
	}
}

func (d *Doctor) checkGit(cfg *config.Config) Result {
	if cfg.Registry.Type != config.RegistryGit {
		return Result{Name: "git", Status: StatusOK, Detail: "not required for this registry type"}
	}
	if !git.Available() {
		return Result{
			Name:       "git",
			Status:     StatusFail,
			Detail:     "git binary not found in PATH",
			Suggestion: "Install git or switch the registry to the http type",
		}
	}
	return Result{Name: "git", Status: StatusOK, Detail: "git binary found"}
}

func (d *Doctor) checkRegistry(ctx context.Context, cfg *config.Config) Result {
	src, err := registry.New(cfg.Registry, d.logger)
	if err != nil {
		return Result{Name: "registry", Status: StatusFail, Detail: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, registryCheckTimeout)
	defer cancel()

	rules, err := src.Fetch(ctx)
	if err != nil {
		return Result{
			Name:       "registry",
			Status:     StatusFail,
			Detail:     fmt.Sprintf("%s: %v", src.Describe(), err),
			Suggestion: "Check the registry url in .rules.json and your network connection",
		}
	}
	return Result{
		Name:   "registry",
		Status: StatusOK,
		Detail: fmt.Sprintf("%s (%d rules)", src.Describe(), len(rules)),
	}
}

func (d *Doctor) checkAgentDirs(cfg *config.Config, root string) []Result {
	var results []Result
	for _, name := range cfg.Agents {
		ag, err := agent.Lookup(name)
		if err != nil {
			results = append(results, Result{
				Name:       "agent:" + name,
				Status:     StatusFail,
				Detail:     "unknown agent",
				Suggestion: "Run: sr agents",
			})
			continue
		}
		dir := filepath.Join(root, ag.RulesDir())
		if err := checkWritable(dir); err != nil {
			results = append(results, Result{
				Name:   "agent:" + name,
				Status: StatusWarn,
				Detail: fmt.Sprintf("%s not writable: %v", ag.RulesDir(), err),
			})
			continue
		}
		results = append(results, Result{
			Name:   "agent:" + name,
			Status: StatusOK,
			Detail: ag.RulesDir() + " writable",
		})
	}
	return results
}

// checkWritable probes write access by creating and removing a temp file.
// A directory that does not exist yet passes as long as some existing
// ancestor is writable, since sync creates missing directories.
func checkWritable(dir string) error {
	probe := dir
	for {
		if _, err := os.Stat(probe); err == nil {
			break
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			break
		}
		probe = parent
	}
	f, err := os.CreateTemp(probe, ".sr-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
