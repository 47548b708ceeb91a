package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation results.
type Reporter struct {
	out     io.Writer
	format  Format
	verbose bool
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// WithVerbose makes text output list clean assets and info reports.
func (r *Reporter) WithVerbose(v bool) *Reporter {
	r.verbose = v
	return r
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *ValidationResult) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

// jsonResult adds the derived fields to the serialized result.
type jsonResult struct {
	*ValidationResult
	Passed    bool   `json:"passed"`
	Counts    Counts `json:"counts"`
	Remaining Counts `json:"remaining"`
}

// reportJSON writes the result as JSON.
func (r *Reporter) reportJSON(result *ValidationResult) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	out := jsonResult{
		ValidationResult: result,
		Passed:           result.Passed(),
		Counts:           result.Counts(),
		Remaining:        result.Remaining(),
	}
	return errors.Wrap(encoder.Encode(out), "encoding JSON report")
}

// reportText writes the result as human-readable text, grouped by asset.
func (r *Reporter) reportText(result *ValidationResult) error {
	for _, asset := range result.Assets {
		r.printAsset(asset)
	}

	remaining := result.Remaining()
	summary := []string{fmt.Sprintf("%d asset(s)", len(result.Assets))}
	if remaining.Fatal > 0 {
		summary = append(summary, color.New(color.FgRed, color.Bold).Sprintf("%d fatal", remaining.Fatal))
	}
	if remaining.Errors > 0 {
		summary = append(summary, color.RedString("%d error(s)", remaining.Errors))
	}
	if remaining.Warnings > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", remaining.Warnings))
	}
	if fixed := result.Counts().Total() - remaining.Total(); fixed > 0 {
		summary = append(summary, color.GreenString("%d fixed", fixed))
	}
	if skipped := len(result.InState(StateSkipped)); skipped > 0 {
		summary = append(summary, fmt.Sprintf("%d skipped", skipped))
	}
	if errored := len(result.InState(StateErrored)); errored > 0 {
		summary = append(summary, color.RedString("%d errored", errored))
	}

	if result.Cancelled {
		fmt.Fprintln(r.out, color.YellowString("! Validation cancelled before completion"))
	}
	if result.Passed() {
		fmt.Fprintf(r.out, "%s %s\n", color.GreenString("✓ Validation passed:"), strings.Join(summary, ", "))
	} else {
		fmt.Fprintf(r.out, "%s %s\n", color.RedString("✗ Validation failed:"), strings.Join(summary, ", "))
	}
	return nil
}

func (r *Reporter) printAsset(a AssetResult) {
	var shown []Report
	for _, rep := range a.Reports {
		if r.verbose || rep.Severity >= SeverityWarning {
			shown = append(shown, rep)
		}
	}

	switch a.State {
	case StateSkipped:
		if r.verbose {
			fmt.Fprintf(r.out, "%s %s\n", color.HiBlackString("- skipped"), a.Path)
			fmt.Fprintf(r.out, "    %s\n", color.HiBlackString(a.Reason))
		}
		return
	case StateErrored:
		fmt.Fprintf(r.out, "%s %s\n", color.RedString("✗ errored"), a.Path)
		fmt.Fprintf(r.out, "    %s\n", a.Reason)
		return
	}

	if len(shown) == 0 {
		if r.verbose {
			fmt.Fprintf(r.out, "%s %s\n", color.GreenString("✓"), a.Path)
		}
		return
	}

	if a.FinalPath != "" {
		fmt.Fprintf(r.out, "%s %s\n", a.Path, color.GreenString("→ %s", a.FinalPath))
	} else {
		fmt.Fprintln(r.out, a.Path)
	}
	for _, rep := range shown {
		r.printReport(rep)
	}
	fmt.Fprintln(r.out)
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SeverityFatal:
		return color.New(color.FgRed, color.Bold)
	case SeverityError:
		return color.New(color.FgRed)
	case SeverityWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgHiBlack)
	}
}

func (r *Reporter) printReport(rep Report) {
	// Format:  • severity [object] message (rule) status
	var sb strings.Builder
	sb.WriteString("  • ")
	sb.WriteString(severityColor(rep.Severity).Sprintf("%-7s", rep.Severity))
	sb.WriteString(" ")
	if rep.Object != "" {
		sb.WriteString(color.CyanString("[%s] ", rep.Object))
	}
	sb.WriteString(rep.Message)
	sb.WriteString(color.New(color.FgHiBlack).Sprintf(" (%s)", rep.RuleID))

	switch {
	case rep.Resolved():
		sb.WriteString(color.GreenString(" fixed"))
	case rep.Unverified():
		sb.WriteString(color.YellowString(" fixed (unverified)"))
	case rep.FixError != "":
		sb.WriteString(color.RedString(" fix failed: %s", rep.FixError))
	case rep.Fixable:
		sb.WriteString(color.New(color.FgHiBlack).Sprint(" [fixable]"))
	}

	fmt.Fprintln(r.out, sb.String())
}
