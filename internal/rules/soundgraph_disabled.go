//go:build !soundgraph

package rules

import "github.com/thoreinstein/ruleranger/internal/rule"

func soundGraphRules() []rule.Rule {
	return nil
}
