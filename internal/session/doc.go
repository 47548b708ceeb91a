// Package session runs validation sessions: it checks a set of assets
// against the registered rules on a bounded worker pool, optionally applies
// fixes and rechecks them, and aggregates the outcome into a
// validator.ValidationResult.
package session
