// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNotObject is returned when a document's top level is not a mapping.
var ErrNotObject = errors.New("document is not an object")

// Document is an immutable configuration tree held as canonical JSON. Two
// documents built from equal trees have identical bytes, which makes the raw
// form usable as an identity key.
type Document struct {
	raw []byte
}

// New builds a Document from a plain tree.
func New(tree map[string]any) (Document, error) {
	if tree == nil {
		tree = map[string]any{}
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode document: %w", err)
	}
	return Document{raw: raw}, nil
}

// Parse decodes a JSON object and re-encodes it canonically. Numbers are kept
// verbatim rather than round-tripped through float64.
func Parse(data []byte) (Document, error) {
	tree, err := Decode(data)
	if err != nil {
		return Document{}, err
	}
	return New(tree)
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(data string) Document {
	d, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether no document was attached.
func (d Document) IsZero() bool {
	return len(d.raw) == 0
}

// Bytes returns the canonical JSON. Callers must not modify it.
func (d Document) Bytes() []byte {
	return d.raw
}

// String returns the canonical JSON text.
func (d Document) String() string {
	return string(d.raw)
}

// Tree decodes the document back into a plain map. Numbers decode as
// float64.
func (d Document) Tree() map[string]any {
	if d.IsZero() {
		return nil
	}
	var tree map[string]any
	if err := json.Unmarshal(d.raw, &tree); err != nil {
		return nil
	}
	return tree
}

// Get returns the value at a dot path such as "features.rgblight". A numeric
// segment indexes into an array.
func (d Document) Get(path string) gjson.Result {
	if d.IsZero() || path == "" {
		return gjson.Result{}
	}
	return gjson.GetBytes(d.raw, escapePath(path))
}

// Has reports whether path is present. An explicit null counts as present.
func (d Document) Has(path string) bool {
	return d.Get(path).Exists()
}

// MarshalJSON emits the document tree inline.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return d.raw, nil
}

// MarshalYAML emits the document tree for yaml encoders.
func (d Document) MarshalYAML() (interface{}, error) {
	return d.Tree(), nil
}

// Merge deep-merges src into dst. Nested maps merge key by key; any other
// value in src replaces the one in dst.
func Merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for k, sv := range src {
		if sm, ok := sv.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				dst[k] = Merge(dm, sm)
				continue
			}
			dst[k] = Merge(nil, sm)
			continue
		}
		dst[k] = sv
	}
	return dst
}

// Decode reads a JSON object into a plain tree, keeping numbers as
// json.Number so that they re-encode exactly as written.
func Decode(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	tree, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return tree, nil
}

// escapePath escapes gjson metacharacters so that a dot path is always read
// as plain keys and array indexes.
func escapePath(path string) string {
	if !strings.ContainsAny(path, `*?|#@!=<>%\`) {
		return path
	}
	var b strings.Builder
	for _, r := range path {
		if strings.ContainsRune(`*?|#@!=<>%\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
