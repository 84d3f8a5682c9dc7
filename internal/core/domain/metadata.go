package domain

// MetadataField is a single ordered key/value entry from a document's
// metadata block.
type MetadataField struct {
	// Key is the field name as written in the document.
	Key string

	// Value is the parsed value: string, bool, int64, float64,
	// []any, or map[string]any for nested blocks.
	Value any
}

// Metadata is the ordered key/value header of a document.
//
// The raw block text is retained so that an untouched header can be
// written back byte-for-byte. Mutating the header through Set marks it
// dirty, telling the codec to re-serialise from the ordered fields.
type Metadata struct {
	// Fields preserves the authoring order of the header.
	Fields []MetadataField

	// Raw is the verbatim block text between the delimiters,
	// excluding the delimiter lines themselves.
	Raw string

	dirty bool
}

// Get returns the value for key and whether it exists.
func (m *Metadata) Get(key string) (any, bool) {
	for _, f := range m.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// GetString returns the value for key as a string, or "" if the key is
// missing or not a string.
func (m *Metadata) GetString(key string) string {
	val, ok := m.Get(key)
	if !ok {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		return ""
	}
	return s
}

// Set updates an existing field in place or appends a new one,
// preserving field order. The header is marked dirty so the codec
// re-serialises it instead of reusing the raw block.
func (m *Metadata) Set(key string, value any) {
	m.dirty = true
	for i := range m.Fields {
		if m.Fields[i].Key == key {
			m.Fields[i].Value = value
			return
		}
	}
	m.Fields = append(m.Fields, MetadataField{Key: key, Value: value})
}

// Dirty reports whether the header has been mutated since parsing.
func (m *Metadata) Dirty() bool {
	return m.dirty
}

// Len returns the number of fields.
func (m *Metadata) Len() int {
	return len(m.Fields)
}
