// Package validator defines the violation report model shared by the rule
// engine, the validation session and the reporting sink.
//
// # Core Concepts
//
//   - [Severity]: Info, Warning, Error and Fatal, ordered by impact.
//   - [Report]: a single rule violation against one asset, with fix state.
//   - [AssetResult]: the ordered reports and lifecycle [AssetState] of one asset.
//   - [ValidationResult]: the aggregate over a batch, with pass/fail against a
//     severity threshold.
//
// # Basic Usage
//
//	result := validator.NewResult(validator.SeverityError)
//	result.Add(validator.AssetResult{Path: "/Game/BP_Door", State: validator.StateReported})
//	if !result.Passed() {
//		// remaining Error/Fatal violations
//	}
package validator
