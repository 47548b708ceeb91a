package doctor

import (
	"fmt"

	"github.com/thoreinstein/ruleranger/internal/config"
	"github.com/thoreinstein/ruleranger/internal/engine"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/inspect"
)

// ConfigCheck validates the loaded ruleranger configuration.
type ConfigCheck struct {
	cfg     *config.Config
	loadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check over the result of config.Load.
func NewConfigCheck(cfg *config.Config, loadErr error) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, loadErr: loadErr}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run executes the configuration check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Details:  make(map[string]any),
	}

	switch {
	case c.loadErr != nil && errors.Is(c.loadErr, errors.ErrNotFound):
		result.Status = SeverityError
		result.Message = "config file not found"
		result.FixHint = "run: ruleranger init"
		return result
	case c.loadErr != nil && (c.cfg == nil || !errors.Is(c.loadErr, errors.ErrInvalidConfig)):
		result.Status = SeverityError
		result.Message = fmt.Sprintf("config could not be loaded: %v", c.loadErr)
		return result
	case c.cfg == nil:
		result.Status = SeverityError
		result.Message = "no configuration loaded"
		return result
	}

	result.Details["file"] = c.cfg.File

	if errs := config.Validate(c.cfg); len(errs) > 0 {
		messages := make([]string, 0, len(errs))
		for _, err := range errs {
			messages = append(messages, err.Error())
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d invalid config value(s)", len(errs))
		result.Details["errors"] = messages
		result.FixHint = "correct the listed values in " + displayFile(c.cfg.File)
		return result
	}

	if c.cfg.File == "" {
		result.Status = SeverityInfo
		result.Message = "no config file found, using defaults"
		result.FixHint = "run: ruleranger init"
		return result
	}

	result.Message = fmt.Sprintf("config file %s is valid", c.cfg.File)
	return result
}

func displayFile(file string) string {
	if file == "" {
		return "the environment"
	}
	return file
}

// RulesCheck builds the rule registry from configuration.
type RulesCheck struct {
	cfg *config.Config
}

var _ Check = (*RulesCheck)(nil)

// NewRulesCheck creates a new rules check.
func NewRulesCheck(cfg *config.Config) *RulesCheck {
	return &RulesCheck{cfg: cfg}
}

// Name returns the unique identifier for this check.
func (c *RulesCheck) Name() string {
	return "rule-registry"
}

// Category returns the grouping for this check.
func (c *RulesCheck) Category() string {
	return "rules"
}

// Run registers the configured catalog and reports the enabled rules.
func (c *RulesCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details: map[string]any{
			"soundgraph": inspect.SoundGraphSupported(),
		},
	}

	if c.cfg == nil {
		result.Status = SeverityError
		result.Message = "no configuration loaded"
		return result
	}

	reg, err := engine.BuildRegistry(c.cfg)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("rules could not be registered: %v", err)
		result.FixHint = "check rules.disabled, rules.severity and rules.apply_on for unknown rule IDs"
		return result
	}

	ids := make([]string, 0, reg.Len())
	for _, r := range reg.All() {
		ids = append(ids, r.Meta().ID)
	}
	result.Details["rules"] = ids

	if reg.Len() == 0 {
		result.Status = SeverityWarning
		result.Message = "every rule is disabled"
		result.FixHint = "remove entries from rules.disabled"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d rules registered", reg.Len())
	return result
}
