package matchgo

import "github.com/hupe1980/matchgo/rule"

// RuleSet is the compilation input: a schema, an ordered list of rule
// definitions and an optional default classification.
//
// Rule order is priority order. The rule at index 0 has the highest priority;
// when several rules match a record, the earliest one wins. The default, when
// set, acts as a guard at the lowest priority: it classifies every record no
// specific rule matched.
//
// RuleSet is the unit of persistence: snapshots store rule sets, not compiled
// indexes, and recompile on load.
type RuleSet[T any] struct {
	Schema  rule.Schema          `json:"schema"`
	Rules   []rule.Definition[T] `json:"rules"`
	Default *T                   `json:"default,omitempty"`
}
