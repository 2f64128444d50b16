package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/Beastly713/hashira/pkg/compression"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// MaxDocumentSize bounds how much a single document may occupy, before and
// after decompression.
const MaxDocumentSize = 16 << 20

// Reader holds a parsed share-set document.
type Reader struct {
	Document *Document

	// Compressed is set when the input was a gzip stream
	Compressed bool
}

// NewReader parses a share-set document from r using the given codec.
// Gzip input is detected from its magic bytes and decompressed first.
// JSON input may use either the explicit "shares" list or the legacy layout
// where every top-level decimal key is a share identifier and other keys
// besides "keys" are ignored.
func NewReader(r io.Reader, codec Codec) (*Reader, error) {
	data, err := readLimited(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	compressed := compression.IsCompressed(data)
	if compressed {
		data, err = compression.NewLimitedGzipCompressor(MaxDocumentSize).Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress document: %w", err)
		}
	}

	var doc *Document
	switch codec {
	case JSON:
		doc, err = parseJSON(data)
	case YAML:
		doc, err = parseYAML(data)
	case CBOR:
		doc, err = parseCBOR(data)
	default:
		err = fmt.Errorf("unsupported codec %s", codec)
	}
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("document validation failed: %w", err)
	}

	return &Reader{
		Document:   doc,
		Compressed: compressed,
	}, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", MaxDocumentSize)
	}
	return data, nil
}

// legacyEntry is a share in the keyed layout, where the identifier is the object key.
type legacyEntry struct {
	Base  string `json:"base"`
	Value string `json:"value"`
}

func parseJSON(data []byte) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse json document: %w", err)
	}

	keys, ok := raw["keys"]
	if !ok {
		return nil, ErrMissingKeys
	}

	if _, ok := raw["shares"]; ok {
		doc := &Document{}
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to parse json document: %w", err)
		}
		return doc, nil
	}

	doc := &Document{}
	if err := json.Unmarshal(keys, &doc.Keys); err != nil {
		return nil, fmt.Errorf("failed to parse 'keys' object: %w", err)
	}

	ids := make([]string, 0, len(raw)-1)
	for id := range raw {
		if isDecimal(id) {
			ids = append(ids, id)
		}
	}
	// Order by length, then lexically, so decimal identifiers come out in
	// numeric order. Selection re-sorts by value; this only fixes the listing.
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		var e legacyEntry
		if err := json.Unmarshal(raw[id], &e); err != nil {
			return nil, fmt.Errorf("failed to parse share %q: %w", id, err)
		}
		doc.Shares = append(doc.Shares, Entry{X: id, Base: e.Base, Value: e.Value})
	}
	return doc, nil
}

func parseYAML(data []byte) (*Document, error) {
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse yaml document: %w", err)
	}
	if _, ok := probe["keys"]; !ok {
		return nil, ErrMissingKeys
	}

	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml document: %w", err)
	}
	return doc, nil
}

func parseCBOR(data []byte) (*Document, error) {
	var probe map[string]cbor.RawMessage
	if err := cbor.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse cbor document: %w", err)
	}
	if _, ok := probe["keys"]; !ok {
		return nil, ErrMissingKeys
	}

	doc := &Document{}
	if err := cbor.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse cbor document: %w", err)
	}
	return doc, nil
}

// isDecimal reports whether s is a non-empty run of ASCII digits.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
