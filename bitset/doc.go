// Package bitset provides the rule-identity sets backing the classifier's
// posting lists and candidate intersection.
//
// Two interchangeable representations are provided:
//
//   - Roaring: compressed Roaring Bitmap, the default. Best when rule counts
//     are large or identities cluster.
//   - Dense: flat word array. Best when rule counts are in the low thousands
//     and intersection latency matters more than memory.
//
// Both satisfy the Set contract; a compiled classifier picks one Factory and
// uses it for every set it owns. Frozen sets are read-only after build, so a
// classifier can serve unlimited concurrent lookups without locking.
package bitset
