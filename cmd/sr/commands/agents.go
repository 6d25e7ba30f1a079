package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ruleshub/sr/internal/agent"
)

var agentsJSON bool

func init() {
	agentsCmd.Flags().BoolVar(&agentsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(agentsCmd)
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List supported agents and their rule directories",
	Long: `List every agent sr can write rules for, the directory each one
reads from, and whether the agent's tool directory is present in the
current project.`,
	Example: `  # List agents
  sr agents

  # Output as JSON
  sr agents --json`,
	RunE: runAgents,
}

// agentInfoJSON represents an agent in JSON output format.
type agentInfoJSON struct {
	Name     string `json:"name"`
	RulesDir string `json:"rules_dir"`
	Detected bool   `json:"detected"`
}

func runAgents(command *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "getting working directory")
	}

	detected := make(map[string]bool)
	for _, d := range agent.Detect(cwd) {
		detected[d.Name] = d.Status == agent.StatusPresent
	}

	w := command.OutOrStdout()
	if agentsJSON {
		return outputAgentsJSON(w, detected)
	}
	return outputAgentsTabular(w, detected)
}

func outputAgentsJSON(w io.Writer, detected map[string]bool) error {
	infos := make([]agentInfoJSON, 0, len(agent.Names()))
	for _, a := range agent.All() {
		infos = append(infos, agentInfoJSON{
			Name:     a.Name(),
			RulesDir: a.RulesDir(),
			Detected: detected[a.Name()],
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(infos)
}

func outputAgentsTabular(w io.Writer, detected map[string]bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%sAGENT\tRULES DIR\tDETECTED%s\n", colorBold, colorReset)
	for _, a := range agent.All() {
		status := colorGray + "-" + colorReset
		if detected[a.Name()] {
			status = colorGreen + "yes" + colorReset
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Name(), a.RulesDir(), status)
	}
	return errors.Wrap(tw.Flush(), "flushing table")
}
