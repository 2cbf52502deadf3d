package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a structured format used by Export and Import.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "toml", "tml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot detect format of %s: no extension", path)
	}
	return ParseFormat(ext)
}

// ReadFile reads the config file at path. A missing file is reported as an
// error wrapping os.ErrNotExist.
func (c *Config) ReadFile(path string, policy InvalidPolicy) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer file.Close()

	if err := c.Read(file, policy); err != nil {
		return fmt.Errorf("config file '%s': %w", path, err)
	}
	c.opts.Logger.Debug().Str("path", path).Str("policy", policy.String()).Msg("Config file read")
	return nil
}

// WriteFile writes the config to path atomically.
func (c *Config) WriteFile(path string, omitDefaults bool) error {
	return writeFileWith(path, func(w io.Writer) error {
		return c.Write(w, omitDefaults)
	})
}

// exportMap returns the native values keyed by field name. Unset optional
// paths export as "".
func (c *Config) exportMap() map[string]any {
	out := make(map[string]any, c.schema.Len())
	for _, f := range c.schema.fields {
		v := f.Type.ToNative(c.values[f.Name])
		if v == nil {
			v = ""
		}
		out[f.Name] = v
	}
	return out
}

// Export writes every native value to w in format.
func (c *Config) Export(w io.Writer, format Format) error {
	data := c.exportMap()

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(data); err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// Import reads native values from r in format and sets each named field.
// Fields not present keep their value. Unknown names and invalid values are
// handled according to policy, as in Read.
func (c *Config) Import(r io.Reader, format Format, policy InvalidPolicy) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read import data: %w", err)
	}

	data := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("failed to parse TOML import: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("failed to parse YAML import: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&data); err != nil {
			return fmt.Errorf("failed to parse JSON import: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}

	for _, f := range c.schema.fields {
		for key, value := range data {
			if CanonicalName(key) != f.Name {
				continue
			}
			native, err := coerceNative(f, value)
			if err == nil {
				err = c.Set(f.Name, native)
			}
			if err != nil {
				if policy == RaiseError {
					return err
				}
				c.opts.Logger.Warn().Err(err).Str("field", f.Name).Msg("Resetting invalid imported field to default")
				if err := c.SetToDefault(f.Name); err != nil {
					return err
				}
			}
		}
	}
	for key := range data {
		if _, ok := c.schema.Lookup(key); ok {
			continue
		}
		if policy == RaiseError {
			return &UnknownFieldError{Field: CanonicalName(key)}
		}
		c.opts.Logger.Debug().Str("field", key).Msg("Skipping unknown imported field")
	}

	return nil
}

// ExportFile writes every native value to path, choosing the format from its
// extension.
func (c *Config) ExportFile(path string) error {
	format, err := detectFileFormat(path)
	if err != nil {
		return err
	}
	return writeFileWith(path, func(w io.Writer) error {
		return c.Export(w, format)
	})
}

// ImportFile reads native values from path, choosing the format from its
// extension.
func (c *Config) ImportFile(path string, policy InvalidPolicy) error {
	format, err := detectFileFormat(path)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file '%s': %w", path, err)
	}
	defer file.Close()
	return c.Import(file, format, policy)
}

// writeFileWith renders into a buffer and writes it atomically.
func writeFileWith(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes())
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
