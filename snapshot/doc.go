// Package snapshot encodes rule set documents into a checksummed binary
// envelope for durable storage.
//
// The envelope records the codec that marshaled the payload, the
// compression applied (none, lz4 or zstd) and a CRC32 checksum so that
// corrupted documents are rejected on read. Snapshots round-trip through
// any rulestore.Store via Save and Load.
package snapshot
