package doctor

import (
	"strings"
	"testing"

	"github.com/thoreinstein/ruleranger/internal/config"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/rules"
)

func TestConfigCheck_Run(t *testing.T) {
	valid := config.Default()
	valid.File = "/project/.ruleranger.yaml"

	invalid := config.Default()
	invalid.File = "/project/.ruleranger.yaml"
	invalid.Session.Threshold = "loud"
	invalid.Content.Mount = "Game"

	tests := []struct {
		name        string
		cfg         *config.Config
		loadErr     error
		wantStatus  Severity
		wantMessage string
		wantHint    bool
	}{
		{
			name:        "valid file",
			cfg:         valid,
			wantStatus:  SeverityPass,
			wantMessage: "is valid",
		},
		{
			name:        "defaults only",
			cfg:         config.Default(),
			wantStatus:  SeverityInfo,
			wantMessage: "using defaults",
			wantHint:    true,
		},
		{
			name:        "explicit file missing",
			loadErr:     errors.Wrap(errors.ErrNotFound, "config file /tmp/x.yaml"),
			wantStatus:  SeverityError,
			wantMessage: "not found",
			wantHint:    true,
		},
		{
			name:        "unreadable file",
			loadErr:     errors.New("yaml: line 3: mapping values are not allowed"),
			wantStatus:  SeverityError,
			wantMessage: "could not be loaded",
		},
		{
			name:        "invalid values",
			cfg:         invalid,
			loadErr:     errors.Mark(errors.New("2 errors"), errors.ErrInvalidConfig),
			wantStatus:  SeverityError,
			wantMessage: "2 invalid config value(s)",
			wantHint:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewConfigCheck(tt.cfg, tt.loadErr).Run()

			if result.Name != "config" || result.Category != "config" {
				t.Errorf("Name/Category = %q/%q", result.Name, result.Category)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v (message %q)", result.Status, tt.wantStatus, result.Message)
			}
			if !strings.Contains(result.Message, tt.wantMessage) {
				t.Errorf("Message = %q, want it to contain %q", result.Message, tt.wantMessage)
			}
			if (result.FixHint != "") != tt.wantHint {
				t.Errorf("FixHint = %q, want hint: %v", result.FixHint, tt.wantHint)
			}
		})
	}
}

func TestConfigCheck_ListsErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Session.Workers = -1

	result := NewConfigCheck(cfg, nil).Run()
	msgs, ok := result.Details["errors"].([]string)
	if !ok || len(msgs) != 1 {
		t.Fatalf("Details[errors] = %#v, want one message", result.Details["errors"])
	}
	if !strings.Contains(msgs[0], "workers") {
		t.Errorf("error %q does not name the field", msgs[0])
	}
}

func TestRulesCheck_Run(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		result := NewRulesCheck(config.Default()).Run()
		if result.Status != SeverityPass {
			t.Fatalf("Status = %v, want pass: %s", result.Status, result.Message)
		}
		ids, _ := result.Details["rules"].([]string)
		if len(ids) != len(rules.Catalog(rules.DefaultSettings())) {
			t.Errorf("registered %d rules, want the full catalog", len(ids))
		}
		if _, ok := result.Details["soundgraph"].(bool); !ok {
			t.Error("Details[soundgraph] missing")
		}
	})

	t.Run("everything disabled", func(t *testing.T) {
		cfg := config.Default()
		for _, r := range rules.Catalog(rules.DefaultSettings()) {
			cfg.Rules.Disabled = append(cfg.Rules.Disabled, r.Meta().ID)
		}
		result := NewRulesCheck(cfg).Run()
		if result.Status != SeverityWarning {
			t.Errorf("Status = %v, want warning", result.Status)
		}
	})

	t.Run("unknown rule override", func(t *testing.T) {
		cfg := config.Default()
		cfg.Rules.Severity = map[string]string{"no-such-rule": "error"}
		result := NewRulesCheck(cfg).Run()
		if result.Status != SeverityError {
			t.Errorf("Status = %v, want error", result.Status)
		}
		if !strings.Contains(result.Message, "no-such-rule") {
			t.Errorf("Message = %q, want the rule ID", result.Message)
		}
	})

	t.Run("no config", func(t *testing.T) {
		if got := NewRulesCheck(nil).Run().Status; got != SeverityError {
			t.Errorf("Status = %v, want error", got)
		}
	})
}
