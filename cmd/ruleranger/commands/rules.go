package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ruleranger/internal/engine"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/rule"
)

var rulesJSON bool

func init() {
	rulesCmd.Flags().BoolVar(&rulesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(rulesCmd)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules enabled by the configuration",
	Long: `List the rules that validation sessions run, in the order they run.

Severity and trigger overrides from the configuration are applied; disabled
rules are left out.`,
	Example: `  ruleranger rules
  ruleranger rules --json`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

// ruleInfo is the listing form of a registered rule.
type ruleInfo struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Kinds       []string `json:"kinds"`
	Triggers    []string `json:"triggers,omitempty"`
	Fixable     bool     `json:"fixable"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	c, err := loadedConfig()
	if err != nil {
		return err
	}
	reg, err := engine.BuildRegistry(c)
	if err != nil {
		return errors.NewConfigError(err)
	}

	infos := make([]ruleInfo, 0, reg.Len())
	for _, r := range reg.All() {
		infos = append(infos, describeRule(r))
	}

	if rulesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(infos), "encoding JSON")
	}
	writeRules(cmd.OutOrStdout(), infos)
	return nil
}

func describeRule(r rule.Rule) ruleInfo {
	meta := r.Meta()
	info := ruleInfo{
		ID:          meta.ID,
		Description: meta.Description,
		Severity:    meta.Severity.String(),
	}
	for _, k := range meta.Kinds {
		info.Kinds = append(info.Kinds, k.String())
	}
	for _, t := range meta.ApplyOn {
		info.Triggers = append(info.Triggers, t.String())
	}
	_, info.Fixable = rule.AsFixer(r)
	return info
}

func writeRules(w io.Writer, infos []ruleInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No rules enabled.")
		return
	}
	for _, info := range infos {
		fix := ""
		if info.Fixable {
			fix = " [fixable]"
		}
		fmt.Fprintf(w, "%s (%s)%s\n", info.ID, info.Severity, fix)
		fmt.Fprintf(w, "  %s\n", info.Description)
		fmt.Fprintf(w, "  kinds: %s\n", strings.Join(info.Kinds, ", "))
		if len(info.Triggers) > 0 {
			fmt.Fprintf(w, "  on:    %s\n", strings.Join(info.Triggers, ", "))
		}
	}
}
