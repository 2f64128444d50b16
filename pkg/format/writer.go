package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Beastly713/hashira/pkg/compression"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Writer handles the writing of a single share-set document.
type Writer struct {
	w io.Writer
}

// NewWriter creates a new Writer around an io.Writer (usually an os.File).
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write serializes doc in the explicit list layout using codec.
// If compressed is true, the encoded document is gzipped.
func (dw *Writer) Write(doc *Document, codec Codec, compressed bool) error {
	// 1. Validate the document before writing anything
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	// 2. Encode
	var (
		data []byte
		err  error
	)
	switch codec {
	case JSON:
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	case YAML:
		data, err = yaml.Marshal(doc)
	case CBOR:
		data, err = cbor.Marshal(doc)
	default:
		err = fmt.Errorf("unsupported codec %s", codec)
	}
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	// 3. Compress
	if compressed {
		data, err = compression.NewGzipCompressor().Compress(data)
		if err != nil {
			return fmt.Errorf("failed to compress document: %w", err)
		}
	}

	if _, err := dw.w.Write(data); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}
