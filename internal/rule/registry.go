package rule

import (
	"fmt"
	"slices"
	"sync"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/inspect"
)

// DuplicateRuleError is returned when a rule ID is registered twice. It is
// fatal at startup.
type DuplicateRuleError struct {
	ID string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("duplicate rule %q", e.ID)
}

// Is matches errors.ErrDuplicateRule.
func (e *DuplicateRuleError) Is(target error) bool {
	return target == errors.ErrDuplicateRule
}

// Registry holds rules in registration order.
type Registry struct {
	mu     sync.RWMutex
	rules  []Rule
	byID   map[string]Rule
	sealed bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Rule)}
}

// Register adds a rule. It fails with DuplicateRuleError when the ID is
// taken and with ErrRegistrySealed after Seal.
func (r *Registry) Register(rule Rule) error {
	meta := rule.Meta()
	if meta.ID == "" {
		return errors.New("rule has no id")
	}
	if len(meta.Kinds) == 0 {
		return errors.Newf("rule %q applies to no asset kinds", meta.ID)
	}
	if meta.Severity == 0 {
		return errors.Newf("rule %q has no severity", meta.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return errors.Wrapf(errors.ErrRegistrySealed, "registering %q", meta.ID)
	}
	if _, exists := r.byID[meta.ID]; exists {
		return &DuplicateRuleError{ID: meta.ID}
	}
	r.rules = append(r.rules, rule)
	r.byID[meta.ID] = rule
	return nil
}

// MustRegister registers rules and panics on error.
func (r *Registry) MustRegister(rules ...Rule) {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// All returns every rule in registration order.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rules)
}

// Lookup returns the rule with the given ID.
func (r *Registry) Lookup(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// RulesFor returns the rules scoped to kind, in registration order.
func (r *Registry) RulesFor(kind asset.Kind) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Rule
	for _, rule := range r.rules {
		if rule.Meta().AppliesToKind(kind) {
			out = append(out, rule)
		}
	}
	return out
}

// RulesForContext returns the rules that apply to the inspected asset for
// the trigger, in registration order.
func (r *Registry) RulesForContext(c *inspect.Context, trigger Trigger) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Rule
	for _, rule := range r.rules {
		meta := rule.Meta()
		if meta.AppliesOn(trigger) && meta.AppliesTo(c) {
			out = append(out, rule)
		}
	}
	return out
}
