package config

import (
	"fmt"
)

// Schema is an ordered, immutable set of fields.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema from fields in order. Names are canonicalized,
// must be unique, and every default must pass its own native validation.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field name cannot be empty")
		}
		if f.Type == nil {
			return nil, fmt.Errorf("field %s has no type", f.Name)
		}
		f.Name = CanonicalName(f.Name)
		if _, exists := s.index[f.Name]; exists {
			return nil, fmt.Errorf("duplicate field %s", f.Name)
		}
		if err := f.Type.ValidateNative(f.Default); err != nil {
			return nil, fmt.Errorf("default for field %s: %w", f.Name, withField(f.Name, err))
		}
		// Store the default as its round-tripped form so comparisons with
		// values read back from the store are exact.
		f.Default = f.Type.ToNative(f.Type.ToSerialized(f.Default))

		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(fmt.Sprintf("schema build failed: %v", err))
	}
	return s
}

// Names returns the canonical field names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Fields returns a copy of the fields in schema order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Lookup returns the field for name, matched case-insensitively.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.index[CanonicalName(name)]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}
