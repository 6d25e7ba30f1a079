package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ruleshub/sr/internal/doctor"
	srerrors "github.com/ruleshub/sr/internal/errors"
)

var doctorJSON bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose rule-sync setup issues",
	Long: `Run diagnostic checks on the project's rule-sync setup.

Checks that .rules.json exists and is valid, that the registry is
reachable, that git is available when the registry needs it, and that
each configured agent's rules directory is writable.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed`,
	Example: `  # Run all checks
  sr doctor

  # Machine-readable output
  sr doctor --json`,
	RunE: runDoctor,
}

func runDoctor(command *cobra.Command, _ []string) error {
	startDir := "."
	if configFlag != "" {
		// Honor --config by checking the project it points into.
		startDir = configFlag
		if info, err := os.Stat(configFlag); err == nil && !info.IsDir() {
			startDir = filepath.Dir(configFlag)
		}
	}

	d := doctor.New(startDir, commandLogger(command))
	results := d.Run(command.Context())

	format := doctor.FormatText
	if doctorJSON {
		format = doctor.FormatJSON
	}
	reporter := doctor.NewReporter(command.OutOrStdout(), format)
	if err := reporter.Report(results); err != nil {
		return err
	}

	if doctor.Failed(results) {
		return srerrors.NewExitError(nil, srerrors.ExitUser)
	}
	return nil
}
