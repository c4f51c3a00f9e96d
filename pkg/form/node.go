// Package form models decoded HTML form bodies as a tree of typed nodes and
// implements the bracket-syntax field naming convention ("a[b][c][]") used to
// build nested structures out of flat field names.
package form

import (
	"bytes"
	"encoding/json"
)

// Node is a single value in a decoded form tree. There are exactly four
// kinds: Scalar, List, *Map and *File.
type Node interface {
	node()
}

// Scalar is a plain text field value.
type Scalar string

func (Scalar) node() {}

// List is an ordered sequence of values, grown by repeated "[]" field names.
// Element order follows the order the values were appended.
type List []Node

func (List) node() {}

// Map is a string-keyed mapping of nodes that remembers insertion order.
type Map struct {
	keys   []string
	values map[string]Node
}

func (*Map) node() {}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]Node)}
}

// Set stores value under key, overwriting any previous value. A key keeps
// its original position when overwritten.
func (m *Map) Set(key string, value Node) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Node, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries in the map.
func (m *Map) Len() int {
	return len(m.keys)
}

// MarshalJSON renders the map as a JSON object with keys in insertion order.
// Keys and values are client input echoed back for diagnostics, so HTML
// escaping is disabled to keep characters like "&" readable.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := marshalNoEscape(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := marshalNoEscape(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode terminates the value with a newline.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UploadOK is the error code of a successfully materialized upload.
const UploadOK = 0

// File references an uploaded file materialized under a unique temp path.
// The surrounding request scope owns the file on disk once the tree is handed
// over; this package never deletes it.
type File struct {
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	Err         int    `json:"error"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

func (*File) node() {}
