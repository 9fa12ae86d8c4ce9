package snapshot

import "fmt"

// InvalidMagicError is returned when the envelope does not start with the
// snapshot magic number.
type InvalidMagicError struct {
	Magic uint32
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("snapshot: invalid magic number 0x%08x", e.Magic)
}

// UnsupportedVersionError is returned when the envelope was written by an
// unknown format version.
type UnsupportedVersionError struct {
	Version uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("snapshot: unsupported format version 0x%04x", e.Version)
}

// UnknownCodecError is returned when the envelope names a codec that is not
// registered.
type UnknownCodecError struct {
	Name string
}

func (e *UnknownCodecError) Error() string {
	return fmt.Sprintf("snapshot: unknown codec %q", e.Name)
}

// UnknownCompressionError is returned for an unrecognized compression type.
type UnknownCompressionError struct {
	Type uint8
}

func (e *UnknownCompressionError) Error() string {
	return fmt.Sprintf("snapshot: unknown compression type %d", e.Type)
}

// PayloadTooLargeError is returned when a header declares a payload larger
// than MaxPayloadLen. It bounds the allocation a corrupt or hostile envelope
// can trigger before the checksum is ever verified.
type PayloadTooLargeError struct {
	Len uint32
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("snapshot: declared payload length %d exceeds limit %d", e.Len, MaxPayloadLen)
}

// ChecksumMismatchError is returned when the stored payload fails checksum
// verification.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("snapshot: checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}
