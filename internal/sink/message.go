package sink

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/fatih/color"

	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Entry is one message log line.
type Entry struct {
	Severity validator.Severity `json:"severity"`
	Message  string             `json:"message"`
	// Source is the asset path the entry is about.
	Source string `json:"source"`
	// RuleID is the rule that produced the entry, if any.
	RuleID string `json:"rule_id,omitempty"`
}

// MessageLog receives message entries. Write is called once per published
// result with entries grouped by source.
type MessageLog interface {
	Write(entries []Entry) error
}

// Entries converts a result into message entries. Assets keep the result's
// order; within an asset, entries are ordered by descending severity and
// then by report order. Resolved reports are logged as Info.
func Entries(result *validator.ValidationResult) []Entry {
	var out []Entry
	for _, a := range result.Assets {
		var group []Entry
		switch a.State {
		case validator.StateSkipped:
			group = append(group, Entry{Severity: validator.SeverityInfo, Message: "skipped: " + a.Reason, Source: a.Path})
		case validator.StateErrored:
			group = append(group, Entry{Severity: validator.SeverityError, Message: "not validated: " + a.Reason, Source: a.Path})
		case validator.StatePending:
			group = append(group, Entry{Severity: validator.SeverityWarning, Message: "not validated: " + a.Reason, Source: a.Path})
		}
		for _, rep := range a.Reports {
			group = append(group, entryFor(a, rep))
		}
		if a.FinalPath != "" {
			group = append(group, Entry{Severity: validator.SeverityInfo, Message: "renamed to " + a.FinalPath, Source: a.Path})
		}
		slices.SortStableFunc(group, func(x, y Entry) int {
			return cmp.Compare(y.Severity, x.Severity)
		})
		out = append(out, group...)
	}
	return out
}

func entryFor(a validator.AssetResult, rep validator.Report) Entry {
	e := Entry{Severity: rep.Severity, Source: a.Path, RuleID: rep.RuleID}
	msg := rep.Message
	if rep.Object != "" {
		msg = fmt.Sprintf("[%s] %s", rep.Object, msg)
	}
	switch {
	case rep.Resolved():
		e.Severity = validator.SeverityInfo
		msg += " (fixed)"
	case rep.Unverified():
		msg += " (fix applied, violation persists)"
	case rep.FixError != "":
		msg += " (fix failed: " + rep.FixError + ")"
	}
	e.Message = msg
	return e
}

// ConsoleLog renders entries to a writer, one block per source with
// severity-coloured lines.
type ConsoleLog struct {
	mu   sync.Mutex
	out  io.Writer
	name string
}

// NewConsoleLog creates a log titled name.
func NewConsoleLog(out io.Writer, name string) *ConsoleLog {
	return &ConsoleLog{out: out, name: name}
}

func (l *ConsoleLog) Write(entries []Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(entries) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(l.out, color.New(color.Bold).Sprintf("%s:", l.name)); err != nil {
		return err
	}

	source := ""
	for _, e := range entries {
		if e.Source != source {
			source = e.Source
			fmt.Fprintf(l.out, "  %s\n", color.CyanString(source))
		}
		line := fmt.Sprintf("    %s %s", severityColor(e.Severity).Sprintf("%-7s", e.Severity), e.Message)
		if e.RuleID != "" {
			line += color.HiBlackString(" (%s)", e.RuleID)
		}
		if _, err := fmt.Fprintln(l.out, line); err != nil {
			return err
		}
	}
	return nil
}

func severityColor(s validator.Severity) *color.Color {
	switch s {
	case validator.SeverityFatal:
		return color.New(color.FgRed, color.Bold)
	case validator.SeverityError:
		return color.New(color.FgRed)
	case validator.SeverityWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgHiBlack)
	}
}

// MemoryLog keeps entries in memory.
type MemoryLog struct {
	mu      sync.Mutex
	entries []Entry
	writes  int
}

func (l *MemoryLog) Write(entries []Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entries...)
	l.writes++
	return nil
}

// Entries returns every entry written so far.
func (l *MemoryLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Writes returns how many batches were written.
func (l *MemoryLog) Writes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writes
}
