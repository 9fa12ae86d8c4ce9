// Package rulestore provides storage backends for rule-set documents.
//
// A Store reads and writes whole documents by name; rule sets are small, so
// there is no streaming interface. Implementations:
//
//   - MemoryStore: in-memory, for tests and embedded use
//   - LocalStore: local directory with atomic renames
//   - CachingStore: read-through cache with singleflight de-duplication
//
// # Subpackages
//
//   - s3: AWS S3, plus an S3+DynamoDB commit store for versioned publishes
//   - minio: MinIO and other S3-compatible object stores
package rulestore
