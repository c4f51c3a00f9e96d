package form

import "strings"

// Assign inserts value under a raw form field name, interpreting bracket
// syntax as nested structure: "a[b][c]" descends through maps, a trailing
// "[]" appends to a list. Field names are client input, so a malformed name
// (an unclosed bracket, or an empty segment anywhere but the end) is not an
// error: the whole raw name becomes a literal top-level key instead.
func (m *Map) Assign(name string, value Node) {
	if !strings.Contains(name, "[") {
		m.Set(name, value)
		return
	}
	segments, ok := splitFieldName(name)
	if !ok {
		m.Set(name, value)
		return
	}
	m.insert(segments, value)
}

// splitFieldName turns "a[b][c][]" into ["a" "b" "c" ""]. The first segment
// is everything before the first bracket and may be empty. Every later
// segment must carry its closing bracket; only the last may be empty.
func splitFieldName(name string) ([]string, bool) {
	parts := strings.Split(name, "[")
	segments := make([]string, 0, len(parts))
	segments = append(segments, parts[0])
	for i, part := range parts[1:] {
		if !strings.HasSuffix(part, "]") {
			return nil, false
		}
		segment := strings.TrimSuffix(part, "]")
		if segment == "" && i != len(parts)-2 {
			return nil, false
		}
		segments = append(segments, segment)
	}
	return segments, true
}

func (m *Map) insert(segments []string, value Node) {
	last := len(segments) - 1
	if segments[last] == "" {
		// Trailing "[]": the list lives under the segment before the
		// append marker.
		current := m
		for _, segment := range segments[:last-1] {
			current = current.childMap(segment)
		}
		key := segments[last-1]
		existing, _ := current.Get(key)
		list, ok := existing.(List)
		if !ok {
			list = nil
		}
		current.Set(key, append(list, value))
		return
	}
	current := m
	for _, segment := range segments[:last] {
		current = current.childMap(segment)
	}
	current.Set(segments[last], value)
}

// childMap descends into the Map stored under key, creating one when the key
// is absent and replacing whatever non-Map value is already there.
func (m *Map) childMap(key string) *Map {
	if existing, ok := m.values[key]; ok {
		if child, ok := existing.(*Map); ok {
			return child
		}
	}
	child := NewMap()
	m.Set(key, child)
	return child
}
