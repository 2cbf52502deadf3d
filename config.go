package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Options configures a Config instance.
type Options struct {
	// MaxLineLength limits len(name)+len(value)+3 (plus 2 when quoted).
	// Zero disables the check.
	MaxLineLength int

	// QuoteChar wraps values containing whitespace on write and is stripped
	// on read. Empty disables quoting.
	QuoteChar string

	// LineEnding terminates every written line. Empty means "\n".
	LineEnding string

	// Derived lists fields recomputed from other fields on every write.
	Derived []DerivedField

	// Logger receives engine diagnostics.
	Logger zerolog.Logger
}

// DefaultOptions returns options with no line limit, no quoting and LF line
// endings.
func DefaultOptions() Options {
	return Options{
		LineEnding: "\n",
		Logger:     zerolog.Nop(),
	}
}

// lineOverhead counts the '=' and the CRLF the firmware expects per line.
const lineOverhead = 3

// Config holds the current value of every field of a schema. Values are kept
// in serialized form and converted to native form on demand.
//
// A Config is not safe for concurrent use.
type Config struct {
	schema *Schema
	opts   Options
	values map[string]string
}

// New creates a Config for schema with DefaultOptions. Every field starts at
// its default.
func New(schema *Schema) *Config {
	return NewWithOptions(schema, DefaultOptions())
}

// NewWithOptions creates a Config for schema with custom options. Every field
// starts at its default.
func NewWithOptions(schema *Schema, opts Options) *Config {
	if opts.LineEnding == "" {
		opts.LineEnding = "\n"
	}
	c := &Config{
		schema: schema,
		opts:   opts,
		values: make(map[string]string, schema.Len()),
	}
	for _, f := range schema.fields {
		c.values[f.Name] = f.Type.ToSerialized(f.Default)
	}
	return c
}

// Schema returns the schema the instance was built with.
func (c *Config) Schema() *Schema {
	return c.schema
}

// Settings returns the options the instance was built with.
func (c *Config) Settings() Options {
	return c.opts
}

// Options returns every field name in schema order.
func (c *Config) Options() []string {
	return c.schema.Names()
}

// Defaults returns the native default of every field.
func (c *Config) Defaults() map[string]any {
	defaults := make(map[string]any, c.schema.Len())
	for _, f := range c.schema.fields {
		defaults[f.Name] = f.Default
	}
	return defaults
}

// Field returns the schema entry for name.
func (c *Config) Field(name string) (Field, error) {
	f, ok := c.schema.Lookup(name)
	if !ok {
		return Field{}, &UnknownFieldError{Field: CanonicalName(name)}
	}
	return f, nil
}

// Get returns the native value of a field.
func (c *Config) Get(name string) (any, error) {
	f, err := c.Field(name)
	if err != nil {
		return nil, err
	}
	return f.Type.ToNative(c.values[f.Name]), nil
}

// Serialized returns the value of a field as it is written to the file,
// without quoting.
func (c *Config) Serialized(name string) (string, error) {
	f, err := c.Field(name)
	if err != nil {
		return "", err
	}
	return c.values[f.Name], nil
}

// Set validates a native value and stores it. On error the field keeps its
// previous value.
func (c *Config) Set(name string, value any) error {
	return c.set(name, value, true)
}

// SetToDefault restores a field to its default.
func (c *Config) SetToDefault(name string) error {
	f, err := c.Field(name)
	if err != nil {
		return err
	}
	return c.set(f.Name, f.Default, true)
}

func (c *Config) set(name string, value any, validate bool) error {
	f, err := c.Field(name)
	if err != nil {
		return err
	}

	if validate {
		if err := f.Type.ValidateNative(value); err != nil {
			return withField(f.Name, err)
		}
	}

	serialized := f.Type.ToSerialized(value)
	if validate {
		if err := c.checkLineLength(f.Name, serialized); err != nil {
			return err
		}
	}

	c.values[f.Name] = serialized
	return nil
}

// setSerialized validates a serialized value and stores it in the form the
// field type writes, so "010" is kept as "10".
func (c *Config) setSerialized(f Field, serialized string) error {
	if err := f.Type.ValidateSerialized(serialized); err != nil {
		return withField(f.Name, err)
	}
	serialized = f.Type.ToSerialized(f.Type.ToNative(serialized))
	if err := c.checkLineLength(f.Name, serialized); err != nil {
		return err
	}
	c.values[f.Name] = serialized
	return nil
}

// LineLength returns the length the line for a field would have in the file.
func (c *Config) LineLength(name, serialized string) int {
	n := len(name) + len(serialized) + lineOverhead
	if c.needsQuotes(serialized) {
		n += 2 * len(c.opts.QuoteChar)
	}
	return n
}

func (c *Config) checkLineLength(name, serialized string) error {
	if c.opts.MaxLineLength <= 0 {
		return nil
	}
	if n := c.LineLength(name, serialized); n > c.opts.MaxLineLength {
		return &InvalidValueError{
			Field:      name,
			Value:      serialized,
			Constraint: fmt.Sprintf("line would be %d characters, the maximum is %d", n, c.opts.MaxLineLength),
		}
	}
	return nil
}

// asciiSpace is the whitespace the firmware splits values on.
const asciiSpace = " \t\n\r\f\v"

func (c *Config) needsQuotes(serialized string) bool {
	return c.opts.QuoteChar != "" && strings.ContainsAny(serialized, asciiSpace)
}

// isDefault reports whether a field currently holds its default.
func (c *Config) isDefault(f Field) bool {
	return c.values[f.Name] == f.Type.ToSerialized(f.Default)
}
