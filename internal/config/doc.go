// Package config provides configuration management for the ruleranger CLI.
//
// # Configuration File
//
// The project configuration file is .ruleranger.yaml, found by walking up
// from the working directory. Without one, the per-user file
// ~/.config/ruleranger/config.yaml is used if present, otherwise defaults.
//
//	version: 1
//	content: {root: Content, mount: /Game}
//	dirs: [/Game]
//	session: {workers: 4, threshold: error, generic_assets: true}
//	exclusions:
//	  - {description: vendor content, rules: [naming-convention], dirs: [/Game/ThirdParty]}
//	rules:
//	  disabled: [texture-resolution]
//	  severity: {naming-convention: error}
//	  apply_on: {required-properties: [save, fix]}
//	  naming:
//	    conventions: [{kind: blueprint, capability: widget, prefix: WBP_}]
//	  metadata: {remove_tags: [Author.Legacy]}
//	  required_properties: [{class: Material, properties: [ShadingModel]}]
//	  blueprint: {max_function_nodes: 50, data_only_parents: [PrimaryDataAsset]}
//	  material: {max_texture_samples: 16}
//	  texture: {constraint: power_of_two, divisor: 4, max_size: 8192}
//	  niagara: {error_on_warnings: false, error_on_unknown: true}
//	metrics: {file: ""}
//
// Every key can be overridden from the environment with the RULERANGER_
// prefix, e.g. RULERANGER_SESSION_WORKERS=8.
//
// # Validation
//
// [Load] validates automatically and returns an error matching
// errors.ErrInvalidConfig. [Validate] returns every problem at once:
//
//	for _, e := range config.Validate(cfg) {
//	    fmt.Println(e)
//	}
package config
