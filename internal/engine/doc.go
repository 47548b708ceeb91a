// Package engine assembles a ruleranger process from configuration.
//
// An [Engine] owns the rule registry, the content host, the inspector, the
// remediation executor, the validation session and the reporting sink. It
// is created once at startup with [Open] and released with [Engine.Close].
// The registry is sealed before the engine is returned, so rules cannot be
// added while sessions run.
package engine
