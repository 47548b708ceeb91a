package rule

import "slices"

// Exclusion suppresses rules for assets under some directories.
type Exclusion struct {
	Description string
	// Rules are the excluded rule IDs; empty excludes every rule.
	Rules []string
	// Dirs are the asset path prefixes the exclusion covers; empty covers
	// every asset.
	Dirs []string
}

// Excludes reports whether the exclusion suppresses ruleID for assetPath.
func (e Exclusion) Excludes(ruleID, assetPath string) bool {
	if len(e.Rules) > 0 && !slices.Contains(e.Rules, ruleID) {
		return false
	}
	if len(e.Dirs) == 0 {
		return true
	}
	return slices.ContainsFunc(e.Dirs, func(d string) bool { return UnderDir(assetPath, d) })
}

// Excluded reports whether any exclusion suppresses ruleID for assetPath.
func Excluded(exclusions []Exclusion, ruleID, assetPath string) bool {
	return slices.ContainsFunc(exclusions, func(e Exclusion) bool { return e.Excludes(ruleID, assetPath) })
}
