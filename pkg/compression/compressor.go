package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
)

// ErrTooLarge is returned when a stream inflates past the compressor's limit.
var ErrTooLarge = errors.New("decompressed data exceeds limit")

// gzipMagic is the two-byte header every gzip stream starts with.
var gzipMagic = []byte{0x1f, 0x8b}

// Compressor defines the contract for data compression
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// GzipCompressor implements standard gzip compression.
// A positive limit caps how many bytes Decompress will inflate.
type GzipCompressor struct {
	limit int64
}

// NewGzipCompressor returns a compressor without a decompression limit.
func NewGzipCompressor() *GzipCompressor {
	return &GzipCompressor{}
}

// NewLimitedGzipCompressor returns a compressor whose Decompress stops with
// ErrTooLarge once the output would exceed limit bytes.
func NewLimitedGzipCompressor(limit int64) *GzipCompressor {
	return &GzipCompressor{limit: limit}
}

// Compress gzips data at the best compression level.
func (g *GzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	// Share-set documents are tiny text; favour ratio over speed.
	writer, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(data); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress inflates a gzip stream, reading at most one byte past the limit.
func (g *GzipCompressor) Decompress(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if g.limit <= 0 {
		return io.ReadAll(reader)
	}

	out, err := io.ReadAll(io.LimitReader(reader, g.limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > g.limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, g.limit)
	}
	return out, nil
}

// IsCompressed reports whether data starts with the gzip magic bytes.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}
