// Package matchgo is an embedded, bitmap-indexed rule classifier.
//
// A rule set is an ordered list of conjunctive rules ("productType equals
// electronics AND qty > 10 AND price < 200 -> class1") plus an optional
// default classification. Build compiles the set into per-attribute posting
// indexes over compressed bitmaps of rule identities, so classifying a record
// costs one lookup per distinct constraint value touched instead of one
// evaluation per rule.
//
// Range constraints get an extra one-time optimization at build time: every
// threshold's bitmap is widened to the union of all thresholds it dominates,
// so a range query is a binary search plus a single bitmap read with no
// query-time scanning.
//
// Example:
//
//	schema := rule.Schema{
//	    "productType": {Type: rule.FieldTypeString},
//	    "qty":         {Type: rule.FieldTypeInt},
//	    "price":       {Type: rule.FieldTypeFloat},
//	}
//
//	c, err := matchgo.Build(matchgo.RuleSet[string]{
//	    Schema: schema,
//	    Rules: []rule.Definition[string]{
//	        rule.New("class1").
//	            Eq("productType", rule.String("electronics")).
//	            Gt("qty", rule.Int(10)).
//	            Lt("price", rule.Float(200)),
//	        rule.New("class2").
//	            Eq("productType", rule.String("electronics")).
//	            Lt("price", rule.Float(300)),
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, ok, err := c.Classify(rule.Record{
//	    "productType": rule.String("electronics"),
//	    "qty":         rule.Int(2),
//	    "price":       rule.Float(199),
//	})
//
// Rule order is priority order: when several rules match, the earliest wins.
// The compiled classifier is immutable and safe for unlimited concurrent
// Classify calls.
//
// # Subpackages
//
//   - rule: typed values, operators, definitions and the attribute schema
//   - bitset: the rule-identity sets (Roaring Bitmap and dense word array)
//   - index: the frozen per-attribute constraint indexes
//   - codec: pluggable encoding for persisted rule sets
//   - snapshot: self-describing, checksummed rule-set persistence
//   - rulestore: storage backends for rule-set documents (memory, local
//     directory, S3, MinIO, S3+DynamoDB versioned commits)
package matchgo
