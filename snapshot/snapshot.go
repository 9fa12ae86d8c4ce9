package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/matchgo/codec"
	"github.com/hupe1980/matchgo/rulestore"
)

const (
	// MagicNumber identifies rule snapshot files (ASCII: "RUL1").
	MagicNumber = 0x52554C31
	// Version is the current snapshot format version.
	Version = 0x0001

	// MaxPayloadLen caps the payload size a snapshot may declare. Rule set
	// documents are small; anything near this limit is a corrupt header.
	MaxPayloadLen = 256 << 20

	maxCodecNameLen = 255
)

// Options controls how a snapshot is encoded.
type Options struct {
	// Codec marshals the document payload. Defaults to codec.Default.
	Codec codec.Codec
	// Compression applied to the marshaled payload. Defaults to CompressionNone.
	Compression CompressionType
}

func (o *Options) codec() codec.Codec {
	if o == nil || o.Codec == nil {
		return codec.Default
	}
	return o.Codec
}

func (o *Options) compression() CompressionType {
	if o == nil {
		return CompressionNone
	}
	return o.Compression
}

// header is the fixed-size portion of the snapshot envelope.
// Layout (little-endian):
//
//	Magic            uint32
//	Version          uint16
//	Compression      uint8
//	CodecNameLen     uint8
//	UncompressedLen  uint32
//	PayloadLen       uint32
//	Checksum         uint32  CRC32 (IEEE) of the stored payload bytes
//	CodecName        [CodecNameLen]byte
//	Payload          [PayloadLen]byte
type header struct {
	Magic           uint32
	Version         uint16
	Compression     uint8
	CodecNameLen    uint8
	UncompressedLen uint32
	PayloadLen      uint32
	Checksum        uint32
}

// Write marshals v with the configured codec and writes a checksummed
// snapshot envelope to w.
func Write(w io.Writer, v any, opts *Options) error {
	c := opts.codec()
	if len(c.Name()) > maxCodecNameLen {
		return fmt.Errorf("snapshot: codec name too long: %q", c.Name())
	}

	raw, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("snapshot: marshal payload: %w", err)
	}

	payload, compression, err := compress(raw, opts.compression())
	if err != nil {
		return fmt.Errorf("snapshot: compress payload: %w", err)
	}

	hdr := header{
		Magic:           MagicNumber,
		Version:         Version,
		Compression:     uint8(compression),
		CodecNameLen:    uint8(len(c.Name())),
		UncompressedLen: uint32(len(raw)),
		PayloadLen:      uint32(len(payload)),
		Checksum:        crc32.ChecksumIEEE(payload),
	}

	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}
	if _, err := io.WriteString(w, c.Name()); err != nil {
		return fmt.Errorf("snapshot: write codec name: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("snapshot: write payload: %w", err)
	}
	return nil
}

// Read reads a snapshot envelope from r, verifies its checksum and
// unmarshals the payload into out.
func Read(r io.Reader, out any) error {
	var hdr header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("snapshot: read header: %w", err)
	}
	if hdr.Magic != MagicNumber {
		return &InvalidMagicError{Magic: hdr.Magic}
	}
	if hdr.Version != Version {
		return &UnsupportedVersionError{Version: hdr.Version}
	}
	if hdr.PayloadLen > MaxPayloadLen {
		return &PayloadTooLargeError{Len: hdr.PayloadLen}
	}
	if hdr.UncompressedLen > MaxPayloadLen {
		return &PayloadTooLargeError{Len: hdr.UncompressedLen}
	}

	nameBuf := make([]byte, hdr.CodecNameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return fmt.Errorf("snapshot: read codec name: %w", err)
	}
	c, ok := codec.ByName(string(nameBuf))
	if !ok {
		return &UnknownCodecError{Name: string(nameBuf)}
	}

	payload := make([]byte, hdr.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("snapshot: read payload: %w", err)
	}

	if actual := crc32.ChecksumIEEE(payload); actual != hdr.Checksum {
		return &ChecksumMismatchError{Expected: hdr.Checksum, Actual: actual}
	}

	raw, err := decompress(payload, CompressionType(hdr.Compression), hdr.UncompressedLen)
	if err != nil {
		return fmt.Errorf("snapshot: decompress payload: %w", err)
	}

	if err := c.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("snapshot: unmarshal payload: %w", err)
	}
	return nil
}

// Save encodes v as a snapshot and stores it under name.
func Save(ctx context.Context, store rulestore.Store, name string, v any, opts *Options) error {
	var buf bytes.Buffer
	if err := Write(&buf, v, opts); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

// Load fetches the snapshot stored under name and unmarshals it into out.
func Load(ctx context.Context, store rulestore.Store, name string, out any) error {
	data, err := store.Get(ctx, name)
	if err != nil {
		return err
	}
	return Read(bytes.NewReader(data), out)
}
