package config

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidAssetPath indicates an asset path is not rooted.
	ErrInvalidAssetPath = errors.New("asset path must start with /")

	// ErrInvalidValue indicates a value outside its allowed set or range.
	ErrInvalidValue = errors.New("invalid value")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	field := func(name, value string, err error) {
		errs = append(errs, &FieldError{Field: name, Value: value, Err: err})
	}

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if err := validatePath(cfg.Content.Root); err != nil || cfg.Content.Root == "" {
		errs = append(errs, &PathError{Field: "content.root", Path: cfg.Content.Root, Err: ErrInvalidPath})
	}
	if !strings.HasPrefix(cfg.Content.Mount, "/") {
		field("content.mount", cfg.Content.Mount, ErrInvalidAssetPath)
	}
	for _, d := range cfg.Dirs {
		if !strings.HasPrefix(d, "/") {
			field("dirs", d, ErrInvalidAssetPath)
		}
	}

	if cfg.Session.Workers < 0 {
		field("session.workers", strconv.Itoa(cfg.Session.Workers), ErrInvalidValue)
	}
	if cfg.Session.Threshold != "" {
		if _, err := validator.ParseSeverity(cfg.Session.Threshold); err != nil {
			field("session.threshold", cfg.Session.Threshold, err)
		}
	}

	for _, ex := range cfg.Exclusions {
		for _, d := range ex.Dirs {
			if !strings.HasPrefix(d, "/") {
				field("exclusions.dirs", d, ErrInvalidAssetPath)
			}
		}
	}

	errs = append(errs, validateRules(&cfg.Rules)...)

	if cfg.Metrics.File != "" {
		if err := validatePath(cfg.Metrics.File); err != nil {
			errs = append(errs, &PathError{Field: "metrics.file", Path: cfg.Metrics.File, Err: err})
		}
	}

	return errs
}

func validateRules(r *RulesConfig) []error {
	var errs []error
	field := func(name, value string, err error) {
		errs = append(errs, &FieldError{Field: name, Value: value, Err: err})
	}

	for id, sev := range r.Severity {
		if _, err := validator.ParseSeverity(sev); err != nil {
			field("rules.severity."+id, sev, err)
		}
	}
	for id, triggers := range r.ApplyOn {
		if _, err := rule.ParseTriggers(triggers); err != nil {
			field("rules.apply_on."+id, strings.Join(triggers, ","), err)
		}
	}

	for id, m := range r.Match {
		errs = append(errs, validateMatch("rules.match."+id, m)...)
	}

	for _, conv := range r.Naming.Conventions {
		if _, err := asset.ParseKind(conv.Kind); err != nil {
			field("rules.naming.conventions.kind", conv.Kind, err)
		}
		if conv.Prefix == "" && conv.Suffix == "" {
			field("rules.naming.conventions", conv.Kind, errors.New("convention needs a prefix or suffix"))
		}
	}

	for _, rp := range r.RequiredProperties {
		if rp.Class == "" {
			field("rules.required_properties.class", "", ErrInvalidValue)
		}
	}

	if r.Blueprint.MaxFunctionNodes < 0 {
		field("rules.blueprint.max_function_nodes", strconv.Itoa(r.Blueprint.MaxFunctionNodes), ErrInvalidValue)
	}
	if r.Material.MaxTextureSamples < 0 {
		field("rules.material.max_texture_samples", strconv.Itoa(r.Material.MaxTextureSamples), ErrInvalidValue)
	}

	switch r.Texture.Constraint {
	case "", "power_of_two":
	case "divisible":
		if r.Texture.Divisor <= 0 {
			field("rules.texture.divisor", strconv.Itoa(r.Texture.Divisor), ErrInvalidValue)
		}
	default:
		field("rules.texture.constraint", r.Texture.Constraint, ErrInvalidValue)
	}
	if r.Texture.MaxSize < 0 {
		field("rules.texture.max_size", strconv.Itoa(r.Texture.MaxSize), ErrInvalidValue)
	}

	return errs
}

// validateMatch checks a matcher and its nested alternatives.
func validateMatch(name string, m MatchConfig) []error {
	if m.IsZero() {
		return []error{&FieldError{Field: name, Value: "empty matcher", Err: ErrInvalidValue}}
	}

	var errs []error
	for _, d := range m.Dirs {
		if !strings.HasPrefix(d, "/") {
			errs = append(errs, &FieldError{Field: name + ".dirs", Value: d, Err: ErrInvalidAssetPath})
		}
	}
	if m.Property != nil && m.Property.Name == "" {
		errs = append(errs, &FieldError{Field: name + ".property.name", Err: ErrInvalidValue})
	}
	for i, alt := range m.Any {
		errs = append(errs, validateMatch(name+".any["+strconv.Itoa(i)+"]", alt)...)
	}
	if m.Not != nil {
		errs = append(errs, validateMatch(name+".not", *m.Not)...)
	}
	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an invalid value for a config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
