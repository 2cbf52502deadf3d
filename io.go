package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// InvalidPolicy selects what Read does with a field whose value is invalid.
type InvalidPolicy int

const (
	// RaiseError stops the read at the first invalid field. Fields committed
	// before it keep their new values.
	RaiseError InvalidPolicy = iota
	// ResetToDefault restores each invalid field to its default and continues.
	ResetToDefault
)

func (p InvalidPolicy) String() string {
	switch p {
	case RaiseError:
		return "raise"
	case ResetToDefault:
		return "reset"
	default:
		return "unknown"
	}
}

// maxLineBytes bounds a single line of input.
const maxLineBytes = 1 << 20

const utf8BOM = "\uFEFF"

// entry is one NAME=value line of a config file.
type entry struct {
	line  int
	name  string
	value string
}

// Read loads NAME=value lines from r. Names are matched case-insensitively,
// surrounding quote characters are stripped, and every present field is
// validated in serialized form. Fields absent from r keep their value.
//
// Malformed lines abort the read with a *ParseError before any field changes.
// Invalid values and unknown names are handled according to policy.
func (c *Config) Read(r io.Reader, policy InvalidPolicy) error {
	entries, err := c.parse(r)
	if err != nil {
		return err
	}

	// Last occurrence of a name wins.
	byName := make(map[string]entry, len(entries))
	for _, e := range entries {
		if _, ok := c.schema.Lookup(e.name); !ok {
			if policy == RaiseError {
				return fmt.Errorf("line %d: %w", e.line, &UnknownFieldError{Field: e.name})
			}
			c.opts.Logger.Debug().Str("field", e.name).Int("line", e.line).Msg("Skipping unknown field")
			continue
		}
		byName[e.name] = e
	}

	for _, f := range c.schema.fields {
		e, present := byName[f.Name]
		if !present {
			continue
		}
		if err := c.setSerialized(f, e.value); err != nil {
			if policy == RaiseError {
				return fmt.Errorf("line %d: %w", e.line, err)
			}
			c.opts.Logger.Warn().Err(err).Str("field", f.Name).Int("line", e.line).Msg("Resetting invalid field to default")
			if err := c.SetToDefault(f.Name); err != nil {
				return err
			}
		}
	}

	return nil
}

// parse splits r into entries without touching the store.
func (c *Config) parse(r io.Reader) ([]entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var entries []entry
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, utf8BOM)
		}

		line := strings.TrimSpace(raw)
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' {
			return nil, &ParseError{Line: lineNo, Text: raw, Message: "section headers are not supported"}
		}

		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			return nil, &ParseError{Line: lineNo, Text: raw, Message: "missing '=' separator"}
		}
		name := strings.TrimSpace(line[:sep])
		if name == "" {
			return nil, &ParseError{Line: lineNo, Text: raw, Message: "missing field name"}
		}

		entries = append(entries, entry{
			line:  lineNo,
			name:  CanonicalName(name),
			value: c.unquote(strings.TrimSpace(line[sep+1:])),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return entries, nil
}

func (c *Config) unquote(value string) string {
	q := c.opts.QuoteChar
	if q == "" || len(value) < 2*len(q) {
		return value
	}
	if strings.HasPrefix(value, q) && strings.HasSuffix(value, q) {
		return value[len(q) : len(value)-len(q)]
	}
	return value
}

func (c *Config) quote(serialized string) string {
	if c.needsQuotes(serialized) {
		return c.opts.QuoteChar + serialized + c.opts.QuoteChar
	}
	return serialized
}

// Write recomputes derived fields and writes one NAME=value line per field in
// schema order. With omitDefaults, fields at their default are left out.
// Values containing whitespace are quoted in the output only.
func (c *Config) Write(w io.Writer, omitDefaults bool) error {
	c.resolveDerived()

	bw := bufio.NewWriter(w)
	written := 0
	for _, f := range c.schema.fields {
		if omitDefaults && c.isDefault(f) {
			continue
		}
		if _, err := bw.WriteString(f.Name + "=" + c.quote(c.values[f.Name]) + c.opts.LineEnding); err != nil {
			return fmt.Errorf("failed to write field %s: %w", f.Name, err)
		}
		written++
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush config: %w", err)
	}

	c.opts.Logger.Debug().Int("fields", written).Bool("omit_defaults", omitDefaults).Msg("Config written")
	return nil
}
