package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// ValidatorFunc defines the signature for a function that can validate a Config instance.
// It receives the fully loaded *Config object and should return an error if validation fails.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for building configurations
type Builder struct {
	schema     *Schema
	opts       Options
	file       string
	policy     InvalidPolicy
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder for schema
func NewBuilder(schema *Schema) *Builder {
	b := &Builder{
		schema:     schema,
		opts:       DefaultOptions(),
		policy:     ResetToDefault,
		validators: make([]ValidatorFunc, 0),
	}
	if schema == nil {
		b.err = fmt.Errorf("builder requires a schema")
	}
	return b
}

// NewIndBiosBuilder creates a builder preset with the iND-BiOS schema and options
func NewIndBiosBuilder() *Builder {
	return NewBuilder(IndBiosSchema()).WithOptions(IndBiosOptions())
}

// WithOptions replaces all options at once
func (b *Builder) WithOptions(opts Options) *Builder {
	b.opts = opts
	return b
}

// WithMaxLineLength sets the maximum line length, 0 for none
func (b *Builder) WithMaxLineLength(n int) *Builder {
	if n < 0 {
		b.err = fmt.Errorf("max line length cannot be negative: %d", n)
	}
	b.opts.MaxLineLength = n
	return b
}

// WithQuoteChar sets the quote wrapped around values with whitespace
func (b *Builder) WithQuoteChar(q string) *Builder {
	b.opts.QuoteChar = q
	return b
}

// WithLineEnding sets the line terminator used on write
func (b *Builder) WithLineEnding(ending string) *Builder {
	b.opts.LineEnding = ending
	return b
}

// WithDerived adds derived fields
func (b *Builder) WithDerived(derived ...DerivedField) *Builder {
	b.opts.Derived = append(b.opts.Derived, derived...)
	return b
}

// WithLogger sets the logger for engine diagnostics
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.opts.Logger = logger
	return b
}

// WithFile sets the config file read during Build
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithPolicy sets how invalid fields in the file are handled during Build
func (b *Builder) WithPolicy(policy InvalidPolicy) *Builder {
	b.policy = policy
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Config instance with all specified options
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := checkDerived(b.schema, b.opts.Derived); err != nil {
		return nil, err
	}

	cfg := NewWithOptions(b.schema, b.opts)

	var loadErr error
	if b.file != "" {
		if _, err := os.Stat(b.file); errors.Is(err, os.ErrNotExist) {
			// Not fatal, the config keeps its defaults.
			loadErr = ErrConfigNotFound
			b.opts.Logger.Debug().Str("path", b.file).Msg("Config file not found, using defaults")
		} else if err := cfg.ReadFile(b.file, b.policy); err != nil {
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return cfg, loadErr
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		// ErrConfigNotFound is not fatal, the config holds defaults.
		if !errors.Is(err, ErrConfigNotFound) {
			panic(fmt.Sprintf("config build failed: %v", err))
		}
	}
	return cfg
}

// checkDerived ensures every derived field and reference exists and that
// derived fields are booleans.
func checkDerived(schema *Schema, derived []DerivedField) error {
	for _, d := range derived {
		f, ok := schema.Lookup(d.Field)
		if !ok {
			return fmt.Errorf("derived field: %w", &UnknownFieldError{Field: CanonicalName(d.Field)})
		}
		if f.Type.Kind() != KindBoolean {
			return fmt.Errorf("derived field %s must be boolean, is %s", f.Name, f.Type.Kind())
		}
		for _, ref := range d.Refs {
			if _, ok := schema.Lookup(ref.Field); !ok {
				return fmt.Errorf("derived field %s: %w", f.Name, &UnknownFieldError{Field: CanonicalName(ref.Field)})
			}
		}
	}
	return nil
}
