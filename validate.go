package config

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// BooleanType is a field holding true or false, serialized as "1" or "0".
type BooleanType struct{}

// Boolean returns the boolean field type.
func Boolean() BooleanType { return BooleanType{} }

func (BooleanType) Kind() Kind       { return KindBoolean }
func (BooleanType) Describe() string { return "true or false" }
func (BooleanType) fieldType()       {}

func (BooleanType) ValidateNative(v any) error {
	if _, ok := v.(bool); !ok {
		return invalid(v, "value must be a bool not %T", v)
	}
	return nil
}

func (BooleanType) ValidateSerialized(s string) error {
	if s != "0" && s != "1" {
		return invalid(s, "value must be 0 or 1")
	}
	return nil
}

// IntegerRangeType is a field holding an integer within [Min, Max].
type IntegerRangeType struct {
	Min int
	Max int
}

// IntegerRange returns an integer field type bounded by min and max inclusive.
func IntegerRange(min, max int) IntegerRangeType {
	return IntegerRangeType{Min: min, Max: max}
}

func (IntegerRangeType) Kind() Kind { return KindIntegerRange }
func (IntegerRangeType) fieldType() {}

func (t IntegerRangeType) Describe() string {
	return fmt.Sprintf("integer between %d and %d", t.Min, t.Max)
}

func (t IntegerRangeType) ValidateNative(v any) error {
	n, ok := toInt(v)
	if !ok {
		return invalid(v, "value must be an integer not %T", v)
	}
	return t.checkBounds(n)
}

func (t IntegerRangeType) ValidateSerialized(s string) error {
	if !serializedIntPattern.MatchString(s) {
		return invalid(s, "value must be a whole number written with digits and an optional leading -")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return invalid(s, "value is out of range: %v", err)
	}
	return t.checkBounds(n)
}

func (t IntegerRangeType) checkBounds(n int) error {
	if n < t.Min || n > t.Max {
		return invalid(n, "value must be >= %d and <= %d", t.Min, t.Max)
	}
	return nil
}

// Leading zeros are allowed: "010" reads as 10.
var serializedIntPattern = regexp.MustCompile(`^-?[0-9]+$`)

// toInt accepts any Go integer kind.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if int64(int(n)) != n {
			return 0, false
		}
		return int(n), true
	case uint:
		if n > uint(^uint(0)>>1) {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		if uint64(n) > uint64(^uint(0)>>1) {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > uint64(^uint(0)>>1) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// DiscreteType is a field holding one of a fixed list of strings. Without an
// explicit serialized list the serialized form is the index into Values.
type DiscreteType struct {
	Values     []string
	Serialized []string
}

// Discrete returns a discrete field type serialized by index.
func Discrete(values ...string) DiscreteType {
	return DiscreteType{Values: values}
}

// DiscreteMapped returns a discrete field type whose serialized forms are
// given explicitly, position by position.
func DiscreteMapped(values, serialized []string) DiscreteType {
	if len(values) != len(serialized) {
		panic(fmt.Sprintf("discrete field has %d values but %d serialized forms", len(values), len(serialized)))
	}
	return DiscreteType{Values: values, Serialized: serialized}
}

func (DiscreteType) Kind() Kind { return KindDiscrete }
func (DiscreteType) fieldType() {}

func (t DiscreteType) Describe() string {
	return "one of " + strings.Join(t.Values, ", ")
}

func (t DiscreteType) ValidateNative(v any) error {
	s, ok := v.(string)
	if !ok {
		return invalid(v, "value must be a string not %T", v)
	}
	if !slices.Contains(t.Values, s) {
		return invalid(s, "value must be one of %s", strings.Join(t.Values, ", "))
	}
	return nil
}

func (t DiscreteType) ValidateSerialized(s string) error {
	if !slices.Contains(t.serializedValues(), s) {
		return invalid(s, "value must be one of %s", strings.Join(t.serializedValues(), ", "))
	}
	return nil
}

func (t DiscreteType) serializedValues() []string {
	if t.Serialized != nil {
		return t.Serialized
	}
	indexes := make([]string, len(t.Values))
	for i := range t.Values {
		indexes[i] = strconv.Itoa(i)
	}
	return indexes
}

// RegexType is a string field constrained by a pattern that must match the
// whole value. SerializedPattern defaults to NativePattern.
type RegexType struct {
	NativePattern     string
	SerializedPattern string
	Message           string

	native     *regexp.Regexp
	serialized *regexp.Regexp
}

// Regex returns a string field type whose native and serialized forms both
// match pattern.
func Regex(pattern string) *RegexType {
	return RegexPair(pattern, pattern, "")
}

// RegexPair returns a string field type with distinct native and serialized
// patterns. A non-empty message replaces the pattern text in errors.
func RegexPair(native, serialized, message string) *RegexType {
	return &RegexType{
		NativePattern:     native,
		SerializedPattern: serialized,
		Message:           message,
		native:            regexp.MustCompile(anchor(native)),
		serialized:        regexp.MustCompile(anchor(serialized)),
	}
}

func anchor(pattern string) string {
	return `^(?:` + pattern + `)$`
}

func (*RegexType) Kind() Kind { return KindRegex }
func (*RegexType) fieldType() {}

func (t *RegexType) Describe() string {
	if t.Message != "" {
		return t.Message
	}
	return "must match pattern: " + t.NativePattern
}

func (t *RegexType) ValidateNative(v any) error {
	s, ok := v.(string)
	if !ok {
		return invalid(v, "value must be a string not %T", v)
	}
	return t.match(t.native, t.NativePattern, s)
}

func (t *RegexType) ValidateSerialized(s string) error {
	return t.match(t.serialized, t.SerializedPattern, s)
}

func (t *RegexType) match(re *regexp.Regexp, pattern, s string) error {
	if re.MatchString(s) {
		return nil
	}
	if t.Message != "" {
		return invalid(s, "%s", t.Message)
	}
	return invalid(s, "must match pattern: %s", pattern)
}

// ColourType is a hex colour string, identical in both forms.
type ColourType struct {
	Alpha bool
}

// Colour returns a colour field type, with or without an alpha channel.
func Colour(alpha bool) ColourType { return ColourType{Alpha: alpha} }

var (
	colourPattern      = regexp.MustCompile(`^0x[0-9a-fA-F]{6}$`)
	alphaColourPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{8}$`)
)

func (ColourType) Kind() Kind { return KindColour }
func (ColourType) fieldType() {}

func (t ColourType) Describe() string {
	if t.Alpha {
		return "colour 0xAARRGGBB"
	}
	return "colour 0xRRGGBB"
}

func (t ColourType) ValidateNative(v any) error {
	s, ok := v.(string)
	if !ok {
		return invalid(v, "value must be a string not %T", v)
	}
	return t.ValidateSerialized(s)
}

func (t ColourType) ValidateSerialized(s string) error {
	if t.Alpha {
		if !alphaColourPattern.MatchString(s) {
			return invalid(s, "must be 0x followed by 8 hex digits")
		}
		return nil
	}
	if !colourPattern.MatchString(s) {
		return invalid(s, "must be 0x followed by 6 hex digits")
	}
	return nil
}

// pathPatterns holds the compiled native and serialized patterns of a file
// path field.
type pathPatterns struct {
	Ext        string
	native     *regexp.Regexp
	serialized *regexp.Regexp
}

func newPathPatterns(drives, device, ext string) pathPatterns {
	suffix := `\\.+\.` + regexp.QuoteMeta(ext) + `$`
	return pathPatterns{
		Ext:        ext,
		native:     regexp.MustCompile(`^` + drives + `:` + suffix),
		serialized: regexp.MustCompile(`^\\Device\\` + device + suffix),
	}
}

func (p pathPatterns) validateNative(v any) error {
	s, ok := v.(string)
	if !ok {
		return invalid(v, "value must be a string not %T", v)
	}
	if !p.native.MatchString(s) {
		return invalid(s, "must match pattern: %s", p.native.String())
	}
	return nil
}

func (p pathPatterns) validateSerialized(s string) error {
	if !p.serialized.MatchString(s) {
		return invalid(s, "must match pattern: %s", p.serialized.String())
	}
	return nil
}

// HDDPathType is a file on one of the hard disk partitions C, E, F or G.
type HDDPathType struct {
	pathPatterns
}

// HDDPath returns a hard disk file path field type for files ending in ext.
func HDDPath(ext string) HDDPathType {
	return HDDPathType{newPathPatterns(`[CEFG]`, `Harddisk0\\Partition[1267]`, ext)}
}

func (HDDPathType) Kind() Kind { return KindHDDPath }
func (HDDPathType) fieldType() {}

func (t HDDPathType) Describe() string {
	return fmt.Sprintf("*.%s file on C:, E:, F: or G:", t.Ext)
}

func (t HDDPathType) ValidateNative(v any) error        { return t.validateNative(v) }
func (t HDDPathType) ValidateSerialized(s string) error { return t.validateSerialized(s) }

// OptionalHDDPathType is an HDDPathType that may also be unset: native nil,
// serialized "0".
type OptionalHDDPathType struct {
	HDDPathType
}

// OptionalHDDPath returns an optional hard disk file path field type.
func OptionalHDDPath(ext string) OptionalHDDPathType {
	return OptionalHDDPathType{HDDPath(ext)}
}

// unsetPath is the serialized form of an unset optional path.
const unsetPath = "0"

func (OptionalHDDPathType) Kind() Kind { return KindOptionalHDDPath }

func (t OptionalHDDPathType) Describe() string {
	return t.HDDPathType.Describe() + " or none"
}

func (t OptionalHDDPathType) ValidateNative(v any) error {
	if v == nil {
		return nil
	}
	return t.HDDPathType.ValidateNative(v)
}

func (t OptionalHDDPathType) ValidateSerialized(s string) error {
	if s == unsetPath {
		return nil
	}
	return t.HDDPathType.ValidateSerialized(s)
}

// DVDPathType is a file on the DVD drive D.
type DVDPathType struct {
	pathPatterns
}

// DVDPath returns a DVD file path field type for files ending in ext.
func DVDPath(ext string) DVDPathType {
	return DVDPathType{newPathPatterns(`D`, `CdRom0`, ext)}
}

func (DVDPathType) Kind() Kind { return KindDVDPath }
func (DVDPathType) fieldType() {}

func (t DVDPathType) Describe() string {
	return fmt.Sprintf("*.%s file on D:", t.Ext)
}

func (t DVDPathType) ValidateNative(v any) error        { return t.validateNative(v) }
func (t DVDPathType) ValidateSerialized(s string) error { return t.validateSerialized(s) }
