package doctor

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for doctor reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes check results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the results to the output.
func (r *Reporter) Report(results []Result) error {
	switch r.format {
	case FormatJSON:
		return r.reportJSON(results)
	default:
		return r.reportText(results)
	}
}

func (r *Reporter) reportJSON(results []Result) error {
	type jsonResult struct {
		Name       string `json:"name"`
		Status     Status `json:"status"`
		Detail     string `json:"detail"`
		Suggestion string `json:"suggestion,omitempty"`
	}
	out := make([]jsonResult, 0, len(results))
	for _, res := range results {
		out = append(out, jsonResult(res))
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(out), "encoding JSON report")
}

func (r *Reporter) reportText(results []Result) error {
	var fails, warns int
	for _, res := range results {
		fmt.Fprintf(r.out, "%s %s: %s\n", symbol(res.Status), res.Name, res.Detail)
		if res.Suggestion != "" {
			fmt.Fprintf(r.out, "  %s\n", color.New(color.FgHiBlack).Sprint(res.Suggestion))
		}
		switch res.Status {
		case StatusFail:
			fails++
		case StatusWarn:
			warns++
		}
	}

	fmt.Fprintln(r.out)
	switch {
	case fails > 0:
		fmt.Fprintln(r.out, color.RedString("%d check(s) failed", fails))
	case warns > 0:
		fmt.Fprintln(r.out, color.YellowString("%d warning(s)", warns))
	default:
		fmt.Fprintln(r.out, color.GreenString("All checks passed"))
	}
	return nil
}

func symbol(s Status) string {
	switch s {
	case StatusOK:
		return color.GreenString("✓")
	case StatusWarn:
		return color.YellowString("!")
	default:
		return color.RedString("✗")
	}
}
