// Package rules is the built-in rule catalog.
//
// [Catalog] builds every rule from [Settings] in a fixed order, which is the
// order their reports appear in per asset. [RegisterDefaults] registers the
// catalog into a registry, applying per-rule configuration overrides.
//
// Rules that need sound graph support are only part of the catalog when the
// binary is built with the "soundgraph" tag.
package rules
