package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrMissingKeys indicates a document without its "keys" section.
var ErrMissingKeys = errors.New(`document is missing the "keys" section`)

// Codec selects the serialization used for a share-set document.
type Codec int

const (
	JSON Codec = iota
	YAML
	CBOR
)

func (c Codec) String() string {
	switch c {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case CBOR:
		return "cbor"
	default:
		return fmt.Sprintf("codec(%d)", int(c))
	}
}

// CodecFor picks a codec from a file name, ignoring a trailing ".gz".
// Unknown extensions fall back to JSON.
func CodecFor(path string) Codec {
	name := strings.TrimSuffix(strings.ToLower(filepath.Base(path)), ".gz")
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return YAML
	case ".cbor":
		return CBOR
	default:
		return JSON
	}
}

// IsDocument reports whether path has an extension a share-set document can carry.
func IsDocument(path string) bool {
	name := strings.TrimSuffix(strings.ToLower(filepath.Base(path)), ".gz")
	switch filepath.Ext(name) {
	case ".json", ".yaml", ".yml", ".cbor":
		return true
	}
	return false
}

// Keys carries the share counts of a document.
type Keys struct {
	// N is the total number of shares that were issued
	N int `json:"n" yaml:"n" cbor:"n"`

	// K is the number of shares required to recover the secret
	K int `json:"k" yaml:"k" cbor:"k"`
}

// Entry is one encoded share as it appears in a document.
type Entry struct {
	// X is the base-10 share identifier, used as the x-coordinate
	X string `json:"x" yaml:"x" cbor:"x"`

	// Base is the radix of Value
	Base string `json:"base" yaml:"base" cbor:"base"`

	// Value is the share's y-coordinate written in Base
	Value string `json:"value" yaml:"value" cbor:"value"`
}

// Document is a share set as read from or written to disk.
type Document struct {
	Keys   Keys    `json:"keys" yaml:"keys" cbor:"keys"`
	Shares []Entry `json:"shares" yaml:"shares" cbor:"shares"`
}

// Validate checks if the document contains sane values.
// Decoding the entries themselves is left to the share package.
func (d *Document) Validate() error {
	if d.Keys.K < 2 || d.Keys.K > d.Keys.N {
		return fmt.Errorf("invalid threshold %d for total %d", d.Keys.K, d.Keys.N)
	}
	if len(d.Shares) == 0 {
		return errors.New("document contains no shares")
	}
	for i, e := range d.Shares {
		if e.X == "" || e.Base == "" || e.Value == "" {
			return fmt.Errorf("share %d is incomplete: %+v", i, e)
		}
	}
	return nil
}
