package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/ruleshub/sr/internal/registry"
	"github.com/ruleshub/sr/internal/rule"
)

var (
	listJSON        bool
	listInteractive bool
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false, "Pick a rule with a fuzzy finder and print it")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules the project would sync",
	Long: `Fetch the registry and show the rules selected by .rules.json,
grouped by category. This is the same set sr sync would write.`,
	Example: `  # List selected rules
  sr list

  # Output as JSON
  sr list --json

  # Browse rules interactively
  sr list --interactive`,
	RunE: runList,
}

// ruleInfoJSON represents a rule in JSON output format.
type ruleInfoJSON struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Version     string   `json:"version,omitempty"`
	Description string   `json:"description,omitempty"`
	Triggers    []string `json:"triggers,omitempty"`
}

func runList(command *cobra.Command, _ []string) error {
	logger := commandLogger(command)

	cfg, _, err := loadProjectConfig()
	if err != nil {
		return err
	}

	rules, src, err := fetchResolved(command.Context(), cfg, nil, logger)
	if err != nil {
		return err
	}

	w := command.OutOrStdout()
	switch {
	case listInteractive:
		return runInteractiveList(w, rules)
	case listJSON:
		return outputRulesJSON(w, rules)
	default:
		return outputRulesTabular(w, rules, registryManifest(src, logger))
	}
}

// registryManifest returns the registry's manifest when the source carries
// one. Manifest errors only cost the category descriptions, so they are
// logged and swallowed.
func registryManifest(src registry.Source, logger *slog.Logger) *registry.Manifest {
	provider, ok := src.(registry.ManifestProvider)
	if !ok {
		return nil
	}
	m, err := provider.Manifest()
	if err != nil {
		logger.Warn("reading registry manifest", "error", err)
		return nil
	}
	return m
}

func outputRulesJSON(w io.Writer, rules []rule.Rule) error {
	infos := make([]ruleInfoJSON, len(rules))
	for i, r := range rules {
		infos[i] = ruleInfoJSON{
			ID:          r.ID,
			Category:    r.Category,
			Version:     r.Version,
			Description: r.Description,
			Triggers:    r.Triggers,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(infos)
}

func outputRulesTabular(w io.Writer, rules []rule.Rule, manifest *registry.Manifest) error {
	if len(rules) == 0 {
		fmt.Fprintln(w, "No rules selected.")
		return nil
	}

	if manifest != nil && manifest.Name != "" {
		fmt.Fprintf(w, "Registry: %s\n\n", manifest.Name)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	var category string
	for _, r := range rules {
		if r.Category != category {
			if category != "" {
				fmt.Fprintln(tw)
			}
			category = r.Category
			header := category
			if manifest != nil {
				if info, ok := manifest.Categories[category]; ok && info.Description != "" {
					header = fmt.Sprintf("%s %s(%s)%s", category, colorGray, info.Description, colorReset)
				}
			}
			fmt.Fprintf(tw, "%s%s%s\n", colorBold, header, colorReset)
		}
		desc := truncate(r.Description, 60)
		fmt.Fprintf(tw, "  %s%s%s\t%s\t%s\n",
			colorCyan, r.ID, colorReset, versionOrDash(r.Version), desc)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "flushing table")
	}

	fmt.Fprintf(w, "\n%d rule(s) selected\n", len(rules))
	return nil
}

func versionOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func runInteractiveList(w io.Writer, rules []rule.Rule) error {
	if len(rules) == 0 {
		fmt.Fprintln(w, "No rules selected.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		rules,
		func(i int) string {
			return fmt.Sprintf("%s: %s", rules[i].Category, rules[i].ID)
		},
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i == -1 {
				return ""
			}
			r := rules[i]
			return fmt.Sprintf("Category: %s\nID: %s\nVersion: %s\nTriggers: %s\n\n%s",
				r.Category,
				r.ID,
				versionOrDash(r.Version),
				strings.Join(r.Triggers, ", "),
				r.Body,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	r := rules[idx]
	fmt.Fprintf(w, "%s%s / %s%s\n\n", colorBold, r.Category, r.ID, colorReset)
	fmt.Fprintln(w, string(r.Body))
	return nil
}
