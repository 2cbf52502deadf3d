package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := &Config{
		schema: c.schema,
		opts:   c.opts,
		values: make(map[string]string, len(c.values)),
	}
	for name, value := range c.values {
		clone.values[name] = value
	}
	return clone
}

// ResetToDefaults restores the named fields to their defaults, or every field
// when no names are given. Names are checked before anything changes.
func (c *Config) ResetToDefaults(names ...string) error {
	if len(names) == 0 {
		names = c.Options()
	}
	canonical, err := c.checkNames(names)
	if err != nil {
		return err
	}

	var errs []error
	for _, name := range canonical {
		errs = append(errs, c.SetToDefault(name))
	}
	return errors.Join(errs...)
}

// Change describes a field whose value differs from its default.
type Change struct {
	Field   string
	Value   any
	Default any
}

// NonDefault lists, in schema order, the fields not at their default.
func (c *Config) NonDefault() []Change {
	var changes []Change
	for _, f := range c.schema.fields {
		if c.isDefault(f) {
			continue
		}
		changes = append(changes, Change{
			Field:   f.Name,
			Value:   f.Type.ToNative(c.values[f.Name]),
			Default: f.Default,
		})
	}
	return changes
}

// Diff returns, in schema order, the fields whose values differ between c and
// other. Both must share a schema.
func (c *Config) Diff(other *Config) []string {
	var changed []string
	for _, f := range c.schema.fields {
		if c.values[f.Name] != other.values[f.Name] {
			changed = append(changed, f.Name)
		}
	}
	return changed
}

// Debug returns a formatted string showing every field with its native,
// serialized and default values.
func (c *Config) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	fmt.Fprintf(&b, "Max line length: %d, quote: %q\n", c.opts.MaxLineLength, c.opts.QuoteChar)
	b.WriteString("Current values:\n")

	for _, f := range c.schema.fields {
		serialized := c.values[f.Name]
		fmt.Fprintf(&b, "  %s:\n", f.Name)
		fmt.Fprintf(&b, "    Current: %s\n", FormatNative(f.Type.ToNative(serialized)))
		fmt.Fprintf(&b, "    Serialized: %s\n", serialized)
		fmt.Fprintf(&b, "    Default: %s\n", FormatNative(f.Default))
	}

	return b.String()
}

// Dump writes every field, defaults included, to w in the config file format.
// A nil w writes to stdout.
func (c *Config) Dump(w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	return c.Write(w, false)
}
