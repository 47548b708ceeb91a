package session

import (
	"fmt"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// RuleExecutionError records a rule check that returned an error or
// panicked. Sessions turn it into a single Fatal report and continue with
// the next rule. It matches errors.ErrRuleExecution.
type RuleExecutionError struct {
	RuleID    string
	AssetPath string
	// Panic is the recovered value when the check panicked.
	Panic any
	Err   error
}

func (e *RuleExecutionError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("rule %s panicked on %s: %v", e.RuleID, e.AssetPath, e.Panic)
	}
	return fmt.Sprintf("rule %s failed on %s: %v", e.RuleID, e.AssetPath, e.Err)
}

func (e *RuleExecutionError) Unwrap() error { return e.Err }

// Is matches errors.ErrRuleExecution.
func (e *RuleExecutionError) Is(target error) bool {
	return target == errors.ErrRuleExecution
}
