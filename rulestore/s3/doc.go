// Package s3 provides S3-backed rule-set storage.
//
// Store reads and writes rule-set documents as S3 objects. CommitStore adds a
// DynamoDB-backed CURRENT pointer with conditional writes, so concurrent
// publishers of new rule-set versions fail cleanly instead of overwriting
// each other.
package s3
