package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "resource not found",
		},
		{
			name: "with wrapped error",
			err:  NewConfigError(Wrap(ErrInvalidConfig, "loading .ruleranger.yaml")),
			want: "loading .ruleranger.yaml: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitSystem),
			want: "exit code 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_MatchesSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "direct sentinel",
			err:    NewUserError(ErrNotFound, ""),
			target: ErrNotFound,
			want:   true,
		},
		{
			name:   "through stdlib wrapping",
			err:    NewSystemError(fmt.Errorf("registering rule: %w", ErrDuplicateRule), ""),
			target: ErrDuplicateRule,
			want:   true,
		},
		{
			name:   "through mark",
			err:    NewSystemError(Mark(New("naming-convention: nil pointer"), ErrRuleExecution), ""),
			target: ErrRuleExecution,
			want:   true,
		},
		{
			name:   "unrelated sentinel",
			err:    NewUserError(ErrFixFailed, ""),
			target: ErrReadOnly,
			want:   false,
		},
		{
			name:   "nil underlying error",
			err:    NewExitError(nil, ExitUser),
			target: ErrNotFound,
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.target); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrUnsupportedAsset, "inspecting %s", "/Game/Sounds/MS_Wind")
	if !Is(err, ErrUnsupportedAsset) {
		t.Error("Is() should find ErrUnsupportedAsset through Wrapf")
	}
	if Is(err, ErrFixFailed) {
		t.Error("Is() should not match an unrelated sentinel")
	}
	want := "inspecting /Game/Sounds/MS_Wind: unsupported asset"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "plain error", err: New("boom"), want: ExitUser},
		{name: "system error", err: NewSystemError(New("disk full"), ""), want: ExitSystem},
		{name: "wrapped exit error", err: Wrap(NewExitError(New("errors found"), ExitSystem), "doctor"), want: ExitSystem},
		{name: "config error", err: NewConfigError(ErrInvalidConfig), want: ExitUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSuggestionOf(t *testing.T) {
	if got := SuggestionOf(nil); got != "" {
		t.Errorf("SuggestionOf(nil) = %q", got)
	}
	if got := SuggestionOf(NewExitError(New("x"), ExitUser)); got != "" {
		t.Errorf("SuggestionOf(no suggestion) = %q", got)
	}

	err := Wrap(NewConfigError(ErrInvalidConfig), "opening engine")
	if got := SuggestionOf(err); got != "Run: ruleranger doctor" {
		t.Errorf("SuggestionOf() = %q, want doctor hint", got)
	}

	err = NewExitErrorWithSuggestion(NewUserError(New("bad flag"), "inner"), ExitUser, "outer")
	if got := SuggestionOf(err); got != "outer" {
		t.Errorf("SuggestionOf() = %q, want outermost suggestion", got)
	}
}

func TestGetDetails(t *testing.T) {
	err := WithDetail(Wrap(ErrNotFound, "content root"), "check content.root in the configuration")
	details := GetDetails(NewSystemError(err, ""))
	if len(details) != 1 || details[0] != "check content.root in the configuration" {
		t.Errorf("GetDetails() = %q", details)
	}
}

func TestConstructors(t *testing.T) {
	cause := New("cause")
	tests := []struct {
		name       string
		err        *ExitError
		code       int
		suggestion string
	}{
		{"NewExitErrorWithSuggestion", NewExitErrorWithSuggestion(cause, 3, "try this"), 3, "try this"},
		{"NewUserError", NewUserError(cause, "check input"), ExitUser, "check input"},
		{"NewSystemError", NewSystemError(cause, "check logs"), ExitSystem, "check logs"},
		{"NewConfigError", NewConfigError(cause), ExitUser, "Run: ruleranger doctor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Err != cause {
				t.Errorf("Err = %v, want %v", tt.err.Err, cause)
			}
			if tt.err.Code != tt.code {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.code)
			}
			if tt.err.Suggestion != tt.suggestion {
				t.Errorf("Suggestion = %q, want %q", tt.err.Suggestion, tt.suggestion)
			}
		})
	}
}
