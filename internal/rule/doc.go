// Package rule defines the rule contract and the registry rules are looked
// up from.
//
// A rule is an immutable, stateless value: its [Meta] names it, scopes it to
// asset kinds, capabilities and triggers, and gives it a default severity.
// Check inspects a read-only [inspect.Context] and returns findings. Rules
// that can remediate their own findings also implement [Fixer].
//
// The [Registry] is populated at startup and sealed before the first
// validation session; after sealing it is read-only and safe for concurrent
// lookups.
package rule
