// Package config provides configuration management for ruleranger using Viper.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/paths"
	"github.com/thoreinstein/ruleranger/pkg/fileutil"
)

// AppName is the application name used for env prefixes and config dirs.
const AppName = paths.AppName

// Config represents the top-level configuration structure.
type Config struct {
	Version    int               `mapstructure:"version" yaml:"version"`
	Content    ContentConfig     `mapstructure:"content" yaml:"content"`
	Dirs       []string          `mapstructure:"dirs" yaml:"dirs,omitempty"`
	Session    SessionConfig     `mapstructure:"session" yaml:"session"`
	Exclusions []ExclusionConfig `mapstructure:"exclusions" yaml:"exclusions,omitempty"`
	Rules      RulesConfig       `mapstructure:"rules" yaml:"rules"`
	Metrics    MetricsConfig     `mapstructure:"metrics" yaml:"metrics,omitempty"`

	// File is the config file the values were read from, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// ContentConfig locates the asset descriptors.
type ContentConfig struct {
	Root  string `mapstructure:"root" yaml:"root"`
	Mount string `mapstructure:"mount" yaml:"mount"`
}

// SessionConfig tunes validation sessions.
type SessionConfig struct {
	Workers       int    `mapstructure:"workers" yaml:"workers"`
	Threshold     string `mapstructure:"threshold" yaml:"threshold"`
	GenericAssets bool   `mapstructure:"generic_assets" yaml:"generic_assets"`
}

// ExclusionConfig suppresses rules below some directories.
type ExclusionConfig struct {
	Description string   `mapstructure:"description" yaml:"description,omitempty"`
	Rules       []string `mapstructure:"rules" yaml:"rules,omitempty"`
	Dirs        []string `mapstructure:"dirs" yaml:"dirs,omitempty"`
}

// RulesConfig selects and tunes the built-in rules.
type RulesConfig struct {
	Disabled []string `mapstructure:"disabled" yaml:"disabled,omitempty"`
	// Severity overrides the severity of rules by ID.
	Severity map[string]string `mapstructure:"severity" yaml:"severity,omitempty"`
	// ApplyOn restricts rules by ID to the named triggers.
	ApplyOn map[string][]string `mapstructure:"apply_on" yaml:"apply_on,omitempty"`
	// Match restricts rules by ID to the assets the matcher selects.
	Match map[string]MatchConfig `mapstructure:"match" yaml:"match,omitempty"`

	Naming             NamingConfig               `mapstructure:"naming" yaml:"naming"`
	Metadata           MetadataConfig             `mapstructure:"metadata" yaml:"metadata,omitempty"`
	RequiredProperties []RequiredPropertiesConfig `mapstructure:"required_properties" yaml:"required_properties,omitempty"`
	Blueprint          BlueprintConfig            `mapstructure:"blueprint" yaml:"blueprint"`
	Material           MaterialConfig             `mapstructure:"material" yaml:"material"`
	Texture            TextureConfig              `mapstructure:"texture" yaml:"texture"`
	Niagara            NiagaraConfig              `mapstructure:"niagara" yaml:"niagara"`
}

// MatchConfig selects assets. Every field that is set must match; Any
// matches when one of its alternatives does.
type MatchConfig struct {
	Dirs       []string             `mapstructure:"dirs" yaml:"dirs,omitempty"`
	NamePrefix string               `mapstructure:"name_prefix" yaml:"name_prefix,omitempty"`
	NameSuffix string               `mapstructure:"name_suffix" yaml:"name_suffix,omitempty"`
	Metadata   string               `mapstructure:"metadata" yaml:"metadata,omitempty"`
	Classes    []string             `mapstructure:"classes" yaml:"classes,omitempty"`
	Property   *PropertyMatchConfig `mapstructure:"property" yaml:"property,omitempty"`
	Any        []MatchConfig        `mapstructure:"any" yaml:"any,omitempty"`
	Not        *MatchConfig         `mapstructure:"not" yaml:"not,omitempty"`
}

// IsZero reports whether no field is set.
func (m MatchConfig) IsZero() bool {
	return len(m.Dirs) == 0 && m.NamePrefix == "" && m.NameSuffix == "" && m.Metadata == "" &&
		len(m.Classes) == 0 && m.Property == nil && len(m.Any) == 0 && m.Not == nil
}

// PropertyMatchConfig matches a property by name. A nil Value only
// requires the property to be set.
type PropertyMatchConfig struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Value any    `mapstructure:"value" yaml:"value,omitempty"`
}

// NamingConfig configures the naming-convention rule.
type NamingConfig struct {
	NotifyMissing bool `mapstructure:"notify_missing" yaml:"notify_missing"`
	// Conventions replace the built-in conventions when set.
	Conventions []ConventionConfig `mapstructure:"conventions" yaml:"conventions,omitempty"`
}

// ConventionConfig is one naming convention.
type ConventionConfig struct {
	Kind       string `mapstructure:"kind" yaml:"kind"`
	Class      string `mapstructure:"class" yaml:"class,omitempty"`
	Capability string `mapstructure:"capability" yaml:"capability,omitempty"`
	Variant    string `mapstructure:"variant" yaml:"variant,omitempty"`
	Prefix     string `mapstructure:"prefix" yaml:"prefix,omitempty"`
	Suffix     string `mapstructure:"suffix" yaml:"suffix,omitempty"`
}

// MetadataConfig configures the remove-metadata-tags rule.
type MetadataConfig struct {
	RemoveTags []string `mapstructure:"remove_tags" yaml:"remove_tags,omitempty"`
}

// RequiredPropertiesConfig lists the properties a class must set. It is a
// list rather than a map because Viper folds map keys to lower case.
type RequiredPropertiesConfig struct {
	Class      string   `mapstructure:"class" yaml:"class"`
	Properties []string `mapstructure:"properties" yaml:"properties"`
}

// BlueprintConfig configures the blueprint rules.
type BlueprintConfig struct {
	MaxFunctionNodes int      `mapstructure:"max_function_nodes" yaml:"max_function_nodes"`
	DataOnlyParents  []string `mapstructure:"data_only_parents" yaml:"data_only_parents,omitempty"`
}

// MaterialConfig configures the material rules.
type MaterialConfig struct {
	MaxTextureSamples int `mapstructure:"max_texture_samples" yaml:"max_texture_samples"`
}

// TextureConfig configures the texture-resolution rule.
type TextureConfig struct {
	Constraint string `mapstructure:"constraint" yaml:"constraint"`
	Divisor    int    `mapstructure:"divisor" yaml:"divisor"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
}

// NiagaraConfig configures the particle system rules.
type NiagaraConfig struct {
	ErrorOnWarnings bool `mapstructure:"error_on_warnings" yaml:"error_on_warnings"`
	ErrorOnUnknown  bool `mapstructure:"error_on_unknown" yaml:"error_on_unknown"`
}

// MetricsConfig configures metrics export.
type MetricsConfig struct {
	// File is the textfile collector path metrics are written to after
	// each run; empty disables export.
	File string `mapstructure:"file" yaml:"file,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Version: 1,
		Content: ContentConfig{Root: "Content", Mount: "/Game"},
		Session: SessionConfig{Workers: 4, Threshold: "error", GenericAssets: true},
		Rules: RulesConfig{
			Blueprint: BlueprintConfig{MaxFunctionNodes: 50},
			Material:  MaterialConfig{MaxTextureSamples: 16},
			Texture:   TextureConfig{Constraint: "power_of_two", Divisor: 4, MaxSize: 8192},
			Niagara:   NiagaraConfig{ErrorOnUnknown: true},
		},
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigType("yaml")

	// Environment variable support, e.g. RULERANGER_SESSION_WORKERS
	viper.SetEnvPrefix(strings.ToUpper(AppName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("content.root", d.Content.Root)
	viper.SetDefault("content.mount", d.Content.Mount)
	viper.SetDefault("session.workers", d.Session.Workers)
	viper.SetDefault("session.threshold", d.Session.Threshold)
	viper.SetDefault("session.generic_assets", d.Session.GenericAssets)
	viper.SetDefault("rules.naming.notify_missing", false)
	viper.SetDefault("rules.blueprint.max_function_nodes", d.Rules.Blueprint.MaxFunctionNodes)
	viper.SetDefault("rules.material.max_texture_samples", d.Rules.Material.MaxTextureSamples)
	viper.SetDefault("rules.texture.constraint", d.Rules.Texture.Constraint)
	viper.SetDefault("rules.texture.divisor", d.Rules.Texture.Divisor)
	viper.SetDefault("rules.texture.max_size", d.Rules.Texture.MaxSize)
	viper.SetDefault("rules.niagara.error_on_warnings", d.Rules.Niagara.ErrorOnWarnings)
	viper.SetDefault("rules.niagara.error_on_unknown", d.Rules.Niagara.ErrorOnUnknown)
	viper.SetDefault("metrics.file", "")
}

// Locate returns the config file to use when none is given explicitly: the
// nearest .ruleranger.yaml at or above the working directory, else the user
// config file if it exists, else "".
func Locate() string {
	if wd, err := os.Getwd(); err == nil {
		if found, err := paths.FindProjectConfig(wd); err == nil {
			return found
		}
	}
	if info, err := os.Stat(paths.UserConfigFile()); err == nil && !info.IsDir() {
		return paths.UserConfigFile()
	}
	return ""
}

// Load reads and validates the configuration.
// If path is provided, it reads from that specific file.
// If path is empty, it uses Locate, falling back to defaults when nothing
// is found.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Locate()
	}

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, errors.Wrapf(errors.ErrNotFound, "config file not found at %s", path)
			}
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	cfg.File = viper.ConfigFileUsed()

	if errs := Validate(&cfg); len(errs) > 0 {
		return &cfg, errors.Mark(errors.Wrap(errors.Join(errs...), "invalid configuration"), errors.ErrInvalidConfig)
	}
	return &cfg, nil
}

// Write saves cfg as YAML at path, atomically.
func Write(path string, cfg *Config) error {
	if err := fileutil.AtomicWriteAs(path, "yaml", cfg); err != nil {
		return errors.Wrapf(err, "writing config %s", path)
	}
	return nil
}
