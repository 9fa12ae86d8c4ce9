// Package index provides the frozen per-attribute posting indexes that
// back rule classification.
//
// An Equality index maps discrete values to the set of rules that accept
// them. A Range index maps an ordered threshold axis to cumulative rule
// sets so that a numeric comparison resolves with a single binary search
// and one set read. Both are built through a mutable builder and frozen
// into an immutable form before first lookup.
package index
