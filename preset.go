package config

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// fresh returns a default-valued instance sharing the schema and options.
func (c *Config) fresh() *Config {
	return NewWithOptions(c.schema, c.opts)
}

// checkNames canonicalizes names and fails on the first unknown one.
func (c *Config) checkNames(names []string) ([]string, error) {
	canonical := make([]string, len(names))
	for i, name := range names {
		f, err := c.Field(name)
		if err != nil {
			return nil, err
		}
		canonical[i] = f.Name
	}
	return canonical, nil
}

// SavePreset writes a preset holding only fields. The preset is staged on a
// fresh default-valued instance, so no other field leaks into the output.
func (c *Config) SavePreset(w io.Writer, fields []string) error {
	names, err := c.checkNames(fields)
	if err != nil {
		return err
	}

	preset := c.fresh()
	for _, name := range names {
		// Copy the serialized form; the value is already valid here.
		preset.values[name] = c.values[name]
	}

	if err := preset.Write(w, true); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}
	c.opts.Logger.Debug().Strs("fields", names).Msg("Preset saved")
	return nil
}

// LoadPreset reads a preset from r into a fresh instance and copies only
// fields into c. Fields of c outside fields are never touched.
func (c *Config) LoadPreset(r io.Reader, fields []string, policy InvalidPolicy) error {
	names, err := c.checkNames(fields)
	if err != nil {
		return err
	}

	preset := c.fresh()
	if err := preset.Read(r, policy); err != nil {
		return fmt.Errorf("failed to read preset: %w", err)
	}

	for _, name := range names {
		value, err := preset.Get(name)
		if err != nil {
			return err
		}
		if err := c.Set(name, value); err != nil {
			return err
		}
	}
	c.opts.Logger.Debug().Strs("fields", names).Msg("Preset applied")
	return nil
}

// SavePresetFile writes a preset for fields to path atomically.
func (c *Config) SavePresetFile(path string, fields []string) error {
	return writeFileWith(path, func(w io.Writer) error {
		return c.SavePreset(w, fields)
	})
}

// LoadPresetFile applies fields from the preset at path. It fails with a
// *PresetNotFoundError when path cannot be opened.
func (c *Config) LoadPresetFile(path string, fields []string, policy InvalidPolicy) error {
	file, err := os.Open(path)
	if err != nil {
		return &PresetNotFoundError{Path: path, Err: err}
	}
	defer file.Close()

	if err := c.LoadPreset(file, fields, policy); err != nil {
		return fmt.Errorf("preset %s: %w", path, err)
	}
	return nil
}

// IsPresetMissing reports whether err means a preset file could not be opened
// because it does not exist.
func IsPresetMissing(err error) bool {
	return errors.Is(err, ErrPresetNotFound) && errors.Is(err, os.ErrNotExist)
}
