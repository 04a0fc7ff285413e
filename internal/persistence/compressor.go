package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/klauspost/compress/zstd"
	"hobbyboard/internal/persistence/interfaces"
)

// maxSnapshotMemory bounds how much a single snapshot may inflate to.
const maxSnapshotMemory = 256 << 20

// zstdMagic opens every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ErrNotCompressed is returned by Decompress for input that is not a zstd
// frame, e.g. a hand-written or exported JSON file.
var ErrNotCompressed = errors.New("not zstd compressed")

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	if !bytes.HasPrefix(val, zstdMagic) {
		return nil, ErrNotCompressed
	}
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

// NewZstdCompressor favours ratio over speed: snapshots are small and
// written at most once per save interval. The returned cleanup releases
// the encoder and decoder.
func NewZstdCompressor() (interfaces.CompressorInterface, func(), error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxSnapshotMemory),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	z := &ZstdCompression{encoder: encoder, decoder: decoder}
	return z, z.Close, nil
}
