package snapshot

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the compression algorithm applied to the payload.
type CompressionType uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 block compression (fast, moderate ratio).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compress applies typ to data. It returns the compression actually used,
// which degrades to CompressionNone when the payload is incompressible.
func compress(data []byte, typ CompressionType) ([]byte, CompressionType, error) {
	switch typ {
	case CompressionNone:
		return data, CompressionNone, nil

	case CompressionLZ4:
		compressed := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, compressed, nil)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 || n >= len(data) {
			return data, CompressionNone, nil
		}
		return compressed[:n], CompressionLZ4, nil

	case CompressionZSTD:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		out := enc.EncodeAll(data, nil)
		if len(out) >= len(data) {
			return data, CompressionNone, nil
		}
		return out, CompressionZSTD, nil

	default:
		return nil, 0, &UnknownCompressionError{Type: uint8(typ)}
	}
}

func decompress(data []byte, typ CompressionType, uncompressedLen uint32) ([]byte, error) {
	switch typ {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		out := make([]byte, uncompressedLen)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedLen {
			return nil, fmt.Errorf("lz4: decompressed size mismatch: expected %d, got %d", uncompressedLen, n)
		}
		return out, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(data, make([]byte, 0, uncompressedLen))
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != uncompressedLen {
			return nil, fmt.Errorf("zstd: decompressed size mismatch: expected %d, got %d", uncompressedLen, len(out))
		}
		return out, nil

	default:
		return nil, &UnknownCompressionError{Type: uint8(typ)}
	}
}
