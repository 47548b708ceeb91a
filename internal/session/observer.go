package session

import (
	"time"

	"github.com/thoreinstein/ruleranger/internal/remediate"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Observer receives session events. Implementations must be safe for
// concurrent use; events arrive from worker goroutines.
type Observer interface {
	AssetProcessed(res validator.AssetResult, elapsed time.Duration)
	RuleFailed(ruleID string)
	FixAttempted(ruleID string, status remediate.Status)
	SessionFinished(result *validator.ValidationResult)
}

type nopObserver struct{}

func (nopObserver) AssetProcessed(validator.AssetResult, time.Duration) {}
func (nopObserver) RuleFailed(string)                                  {}
func (nopObserver) FixAttempted(string, remediate.Status)              {}
func (nopObserver) SessionFinished(*validator.ValidationResult)        {}
