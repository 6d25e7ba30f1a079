package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ruleshub/sr/internal/agent"
	"github.com/ruleshub/sr/internal/config"
	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/paths"
)

var (
	initYes      bool
	initAgents   string
	initRegistry string
	initForce    bool
)

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Non-interactive mode, accept all defaults")
	initCmd.Flags().StringVar(&initAgents, "agents", "", "Comma-separated list of agents to configure (overrides auto-detection)")
	initCmd.Flags().StringVar(&initRegistry, "registry", "", "Registry to fetch rules from, as type:url (e.g. github:acme/rules)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .rules.json in the current directory",
	Long: `Bootstrap a project's rule configuration with automatic agent detection.

Creates .rules.json in the current directory. Agents are detected by
checking whether their tool directories (.cursor, .claude, ...) exist.`,
	Example: `  # Initialize with interactive confirmation
  sr init

  # Initialize non-interactively, accepting defaults
  sr init --yes

  # Initialize for specific agents
  sr init --agents cursor,claude

  # Point at a registry up front
  sr init --registry github:acme/rules

  See Also: sr sync, sr doctor`,
	RunE: runInit,
}

func runInit(command *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "getting working directory")
	}
	configPath := paths.ConfigPath(cwd)

	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(command.OutOrStdout(), "Configuration already exists at %s\n", configPath)
		fmt.Fprintln(command.OutOrStdout(), "Use --force to overwrite")
		return nil
	}

	agents := agent.DetectedNames(cwd)
	if initAgents != "" {
		agents, err = parseAgentList(initAgents)
		if err != nil {
			return err
		}
	}
	if len(agents) == 0 {
		agents = []string{agent.NameCursor, agent.NameClaude}
	}

	cfg := config.Default(agents)
	if initRegistry != "" {
		reg, err := parseRegistryFlag(initRegistry)
		if err != nil {
			return err
		}
		cfg.Registry = reg
	}

	if !initYes {
		fmt.Fprintf(command.OutOrStdout(), "Agents: %s\n", strings.Join(agents, ", "))
		fmt.Fprintln(command.OutOrStdout())
		fmt.Fprintln(command.OutOrStdout(), "This will create:")
		fmt.Fprintf(command.OutOrStdout(), "  %s\n", configPath)
		fmt.Fprintln(command.OutOrStdout())

		if !confirm("Proceed?") {
			fmt.Fprintln(command.OutOrStdout(), "Aborted")
			return nil
		}
	} else {
		fmt.Fprintf(command.OutOrStdout(), "Agents: %s\n", strings.Join(agents, ", "))
	}

	if err := config.Save(configPath, cfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Fprintf(command.OutOrStdout(), "Created %s\n", configPath)
	if cfg.Registry.URL == "" {
		fmt.Fprintln(command.OutOrStdout(), "Set registry.url in .rules.json before running: sr sync")
	}
	return nil
}

// parseAgentList parses a comma-separated list of agent names.
// Unknown names are rejected rather than silently dropped.
func parseAgentList(s string) ([]string, error) {
	var agents []string
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !agent.Valid(name) {
			err := errors.Wrapf(srerrors.ErrUnknownAgent, "%q (valid: %s)",
				name, strings.Join(agent.Names(), ", "))
			return nil, srerrors.NewUserError(err, "Run: sr agents")
		}
		agents = append(agents, name)
	}
	return agents, nil
}

// parseRegistryFlag parses a type:url registry spec. A bare owner/repo
// value is treated as a github registry.
func parseRegistryFlag(s string) (config.Registry, error) {
	reg := config.Registry{Type: config.RegistryGitHub, Branch: "main"}

	typ, url, ok := strings.Cut(s, ":")
	switch {
	case !ok:
		reg.URL = s
	case typ == config.RegistryGitHub || typ == config.RegistryLocal:
		reg.Type = typ
		reg.URL = url
	case typ == config.RegistryGit:
		// The url part may itself carry a scheme, e.g. git:https://host/x.git
		reg.Type = config.RegistryGit
		reg.URL = url
	case typ == "http" || typ == "https":
		// An http(s) URL is the whole value, scheme included.
		reg.Type = config.RegistryHTTP
		reg.URL = s
	default:
		return reg, srerrors.NewUserError(
			errors.Newf("unrecognized registry spec %q", s),
			"Use type:url, e.g. github:acme/rules or local:./rules",
		)
	}

	if reg.Type == config.RegistryLocal {
		abs, err := filepath.Abs(reg.URL)
		if err != nil {
			return reg, errors.Wrap(err, "resolving registry path")
		}
		reg.URL = abs
	}
	return reg, nil
}
