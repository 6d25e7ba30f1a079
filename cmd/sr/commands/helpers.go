package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ruleshub/sr/internal/config"
	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/logging"
	"github.com/ruleshub/sr/internal/registry"
	"github.com/ruleshub/sr/internal/rule"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorCyan  = "\033[36m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// loadProjectConfig loads the project config, honoring the --config flag.
// Returns the config and the project root directory.
func loadProjectConfig() (*config.Config, string, error) {
	if configFlag != "" {
		cfg, err := config.Load(configFlag)
		if err != nil {
			return nil, "", wrapConfigErr(err)
		}
		root, err := filepath.Abs(filepath.Dir(configFlag))
		if err != nil {
			return nil, "", errors.Wrap(err, "resolving config directory")
		}
		return cfg, root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, "getting working directory")
	}
	cfg, root, err := config.LoadProject(cwd)
	if err != nil {
		return nil, "", wrapConfigErr(err)
	}
	return cfg, root, nil
}

// wrapConfigErr maps config load failures to user-facing exit errors.
func wrapConfigErr(err error) error {
	if errors.Is(err, srerrors.ErrConfigNotFound) {
		return srerrors.NewConfigError(err)
	}
	if errors.Is(err, srerrors.ErrInvalidConfig) {
		return srerrors.NewUserError(err, "Fix .rules.json or regenerate it with: sr init --force")
	}
	return err
}

// fetchResolved fetches the registry and applies the project's selection.
// The reg override, when non-nil, replaces the configured registry; the
// sync --local flag uses it to point at a directory on disk. The source is
// returned alongside the rules so callers can reach its optional manifest.
func fetchResolved(ctx context.Context, cfg *config.Config, reg *config.Registry, logger *slog.Logger) ([]rule.Rule, registry.Source, error) {
	r := cfg.Registry
	if reg != nil {
		r = *reg
	}

	src, err := registry.New(r, logger)
	if err != nil {
		return nil, nil, srerrors.NewUserError(err, "Valid registry types: github, git, local, http")
	}

	logger.Debug("fetching registry", "source", src.Describe())
	all, err := src.Fetch(ctx)
	if err != nil {
		if errors.Is(err, srerrors.ErrRegistryUnreachable) {
			return nil, nil, srerrors.NewSystemError(err, "Check the registry url in .rules.json and your network connection")
		}
		return nil, nil, err
	}

	resolved := rule.Resolve(all, cfg.Selection())
	logger.Debug("resolved rules", "fetched", len(all), "selected", len(resolved))
	return resolved, src, nil
}

// commandLogger returns the logger carried in the command's context.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	ctx := cmd.Context()
	if ctx == nil {
		return slog.Default()
	}
	return logging.FromContext(ctx)
}

// confirm prompts the user for a yes/no confirmation.
// Returns true only if the user enters "y" or "yes" (case-insensitive).
func confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N] ", prompt)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
