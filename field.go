package config

import (
	"fmt"
	"strings"
)

// Kind identifies the type tag of a field.
type Kind int

const (
	KindBoolean Kind = iota
	KindIntegerRange
	KindDiscrete
	KindRegex
	KindColour
	KindHDDPath
	KindOptionalHDDPath
	KindDVDPath
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindIntegerRange:
		return "integer"
	case KindDiscrete:
		return "discrete"
	case KindRegex:
		return "regex"
	case KindColour:
		return "colour"
	case KindHDDPath:
		return "hdd-path"
	case KindOptionalHDDPath:
		return "optional-hdd-path"
	case KindDVDPath:
		return "dvd-path"
	default:
		return "unknown"
	}
}

// FieldType validates and converts the values of one field in both of its
// representations. Native values live in memory; serialized values are the
// strings stored in the config file.
//
// The set of implementations is closed: BooleanType, IntegerRangeType,
// DiscreteType, RegexType, ColourType, HDDPathType, OptionalHDDPathType and
// DVDPathType.
type FieldType interface {
	Kind() Kind

	// ValidateNative returns an *InvalidValueError if v is not a legal
	// native value.
	ValidateNative(v any) error
	// ValidateSerialized returns an *InvalidValueError if s is not a legal
	// serialized value.
	ValidateSerialized(s string) error

	// ToSerialized converts a valid native value to its serialized form.
	ToSerialized(v any) string
	// ToNative converts a valid serialized value to its native form.
	ToNative(s string) any

	// Describe returns a short human readable description of the constraint.
	Describe() string

	fieldType()
}

// Field describes one entry of a schema.
type Field struct {
	Name    string
	Default any
	Type    FieldType
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return fmt.Sprintf("%s (%s, default %s)", f.Name, f.Type.Describe(), FormatNative(f.Default))
}

// CanonicalName returns the form under which field names are stored and
// compared.
func CanonicalName(name string) string {
	return strings.ToUpper(name)
}

// FormatNative renders a native value the way the CLI and debug output show it.
func FormatNative(v any) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%v", v)
}
