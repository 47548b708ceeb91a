package doctor

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Severity
		want     Summary
	}{
		{name: "empty runner"},
		{
			name:     "single pass",
			statuses: []Severity{SeverityPass},
			want:     Summary{Passed: 1},
		},
		{
			name:     "mixed severities",
			statuses: []Severity{SeverityPass, SeverityPass, SeverityInfo, SeverityWarning, SeverityWarning, SeverityError},
			want:     Summary{Passed: 2, Info: 1, Warnings: 2, Errors: 1},
		},
		{
			name:     "all errors",
			statuses: []Severity{SeverityError, SeverityError},
			want:     Summary{Errors: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner()
			for _, s := range tt.statuses {
				check := NewMockCheck(t)
				check.EXPECT().Run().Return(&CheckResult{Status: s})
				r.AddCheck(check)
			}

			before := time.Now().UTC()
			report := r.Run()
			after := time.Now().UTC()

			if report.Timestamp.Before(before) || report.Timestamp.After(after) {
				t.Errorf("Timestamp %v not in expected range [%v, %v]", report.Timestamp, before, after)
			}
			if len(report.Results) != len(tt.statuses) {
				t.Errorf("Results count = %d, want %d", len(report.Results), len(tt.statuses))
			}
			if report.Summary != tt.want {
				t.Errorf("Summary = %+v, want %+v", report.Summary, tt.want)
			}
		})
	}
}

func TestRunner_Run_ResultsOrder(t *testing.T) {
	r := NewRunner()
	names := []string{"config", "rule-registry", "descriptor-syntax"}

	for _, name := range names {
		check := NewMockCheck(t)
		check.EXPECT().Run().Return(&CheckResult{Name: name})
		r.AddCheck(check)
	}

	report := r.Run()
	for i, want := range names {
		if report.Results[i].Name != want {
			t.Errorf("Results[%d].Name = %q, want %q", i, report.Results[i].Name, want)
		}
	}
}

// fixableCheck is a Check that also implements Fixer.
type fixableCheck struct {
	*MockCheck
	canFix bool
	fixed  int
}

func (c *fixableCheck) CanFix() bool { return c.canFix }

func (c *fixableCheck) Fix() []FixResult {
	c.fixed++
	return []FixResult{{Path: "/content", Fixed: true, Description: "fixed"}}
}

func TestRunner_Fix(t *testing.T) {
	r := NewRunner()

	plain := NewMockCheck(t)
	plain.EXPECT().Run().Return(&CheckResult{Status: SeverityError})
	r.AddCheck(plain)

	clean := &fixableCheck{MockCheck: NewMockCheck(t)}
	clean.EXPECT().Run().Return(&CheckResult{Status: SeverityPass})
	r.AddCheck(clean)

	dirty := &fixableCheck{MockCheck: NewMockCheck(t), canFix: true}
	dirty.EXPECT().Run().Return(&CheckResult{Status: SeverityWarning, Fixable: true})
	r.AddCheck(dirty)

	r.Run()
	results := r.Fix()

	if len(results) != 1 || !results[0].Fixed {
		t.Fatalf("Fix() = %+v, want one applied fix", results)
	}
	if clean.fixed != 0 {
		t.Error("Fix() ran a fixer that reported nothing to fix")
	}
	if dirty.fixed != 1 {
		t.Errorf("dirty fixer ran %d times, want 1", dirty.fixed)
	}
}

func TestDoctorReport_HasErrorsAndWarnings(t *testing.T) {
	tests := []struct {
		name         string
		summary      Summary
		wantErrors   bool
		wantWarnings bool
	}{
		{name: "zero value"},
		{name: "warnings only", summary: Summary{Warnings: 10}, wantWarnings: true},
		{name: "errors only", summary: Summary{Errors: 2}, wantErrors: true},
		{name: "both", summary: Summary{Warnings: 1, Errors: 1}, wantErrors: true, wantWarnings: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &DoctorReport{Summary: tt.summary}
			if got := r.HasErrors(); got != tt.wantErrors {
				t.Errorf("HasErrors() = %v, want %v", got, tt.wantErrors)
			}
			if got := r.HasWarnings(); got != tt.wantWarnings {
				t.Errorf("HasWarnings() = %v, want %v", got, tt.wantWarnings)
			}
		})
	}
}

func TestSeverity_String(t *testing.T) {
	for s, want := range map[Severity]string{
		SeverityPass:    "pass",
		SeverityInfo:    "info",
		SeverityWarning: "warning",
		SeverityError:   "error",
		Severity(42):    "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(&CheckResult{Name: "config", Status: SeverityWarning})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"status":"warning"`) {
		t.Errorf("json = %s, want status by name", data)
	}

	var back CheckResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Status != SeverityWarning {
		t.Errorf("Status = %v, want warning", back.Status)
	}

	var s Severity
	if err := s.UnmarshalText([]byte("fatal")); err == nil {
		t.Error("UnmarshalText(fatal) expected error")
	}
}

func TestSeverity_IconAndProblem(t *testing.T) {
	tests := []struct {
		s       Severity
		icon    string
		problem bool
	}{
		{SeverityPass, "✓", false},
		{SeverityInfo, "ℹ", false},
		{SeverityWarning, "⚠", true},
		{SeverityError, "✗", true},
	}
	for _, tt := range tests {
		if got := tt.s.Icon(); got != tt.icon {
			t.Errorf("%v.Icon() = %q, want %q", tt.s, got, tt.icon)
		}
		if got := tt.s.Problem(); got != tt.problem {
			t.Errorf("%v.Problem() = %v, want %v", tt.s, got, tt.problem)
		}
	}
}

func TestRunner_PanickingCheck(t *testing.T) {
	r := NewRunner()

	boom := NewMockCheck(t)
	boom.EXPECT().Name().Return("boom")
	boom.EXPECT().Category().Return("content")
	boom.EXPECT().Run().RunAndReturn(func() *CheckResult { panic("walk failed") })
	r.AddCheck(boom)

	ok := NewMockCheck(t)
	ok.EXPECT().Run().Return(&CheckResult{Name: "ok", Status: SeverityPass})
	r.AddCheck(ok)

	report := r.Run()

	if len(report.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(report.Results))
	}
	got := report.Results[0]
	if got.Name != "boom" || got.Status != SeverityError || !strings.Contains(got.Message, "walk failed") {
		t.Errorf("panicking check result = %+v", got)
	}
	if report.Summary != (Summary{Passed: 1, Errors: 1}) {
		t.Errorf("Summary = %+v", report.Summary)
	}
}
