package commands

import (
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ruleshub/sr/internal/config"
	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/sync"
)

var (
	syncLocal  string
	syncDryRun bool
	syncPrune  bool
)

func init() {
	syncCmd.Flags().StringVar(&syncLocal, "local", "", "Sync from a local rules directory instead of the configured registry")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Show what would change without writing files")
	syncCmd.Flags().BoolVar(&syncPrune, "prune", false, "Remove previously synced files that are no longer selected")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch rules and write them into agent directories",
	Long: `Fetch the registry, resolve the project's rule selection, and write
each selected rule into every configured agent's rules directory.

Sync is idempotent: files whose content already matches are left
untouched. Files sr wrote earlier but that are no longer selected are
reported, and removed when --prune is given. Files sr never wrote are
never touched.`,
	Example: `  # Sync from the configured registry
  sr sync

  # Preview without writing
  sr sync --dry-run

  # Sync from a directory on disk
  sr sync --local ./rules

  # Remove deselected rule files
  sr sync --prune

  See Also: sr list, sr doctor`,
	RunE: runSync,
}

func runSync(command *cobra.Command, _ []string) error {
	logger := commandLogger(command)

	cfg, root, err := loadProjectConfig()
	if err != nil {
		return err
	}

	var override *config.Registry
	if syncLocal != "" {
		abs, err := filepath.Abs(syncLocal)
		if err != nil {
			return errors.Wrap(err, "resolving --local path")
		}
		override = &config.Registry{Type: config.RegistryLocal, URL: abs}
	}

	rules, _, err := fetchResolved(command.Context(), cfg, override, logger)
	if err != nil {
		return err
	}

	syncer := sync.New(root, logger)
	plan, err := syncer.Plan(rules, cfg.Agents)
	if err != nil {
		if errors.Is(err, srerrors.ErrUnknownAgent) {
			return srerrors.NewUserError(err, "Run: sr agents")
		}
		return err
	}

	opts := sync.Options{DryRun: syncDryRun, Prune: syncPrune}
	if err := syncer.Apply(plan, opts); err != nil {
		return errors.Wrap(err, "applying sync plan")
	}

	printPlan(command, plan, opts)
	return nil
}

func printPlan(command *cobra.Command, plan *sync.Plan, opts sync.Options) {
	out := command.OutOrStdout()

	if syncDryRun {
		fmt.Fprintln(out, "Dry run, no files written")
	}
	for _, op := range plan.Ops {
		switch op.Action {
		case sync.ActionCreate:
			fmt.Fprintf(out, "%s %s\n", color.GreenString("create"), op.Rel)
		case sync.ActionUpdate:
			fmt.Fprintf(out, "%s %s\n", color.YellowString("update"), op.Rel)
		case sync.ActionPrune:
			verb := color.New(color.FgHiBlack).Sprint("stale ")
			if opts.Prune {
				verb = color.RedString("prune ")
			}
			fmt.Fprintf(out, "%s %s\n", verb, op.Rel)
		}
	}

	creates := plan.Count(sync.ActionCreate)
	updates := plan.Count(sync.ActionUpdate)
	unchanged := plan.Count(sync.ActionUnchanged)
	prunes := plan.Count(sync.ActionPrune)

	summary := fmt.Sprintf("%d created, %d updated, %d unchanged", creates, updates, unchanged)
	if prunes > 0 {
		if opts.Prune {
			summary += fmt.Sprintf(", %d pruned", prunes)
		} else {
			summary += fmt.Sprintf(", %d stale (use --prune to remove)", prunes)
		}
	}
	fmt.Fprintln(out, summary)
}
