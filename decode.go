package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the native values into target, a pointer to a struct or map.
// Struct fields are matched by their `config` tag or, failing that, by name
// case-insensitively. Unset optional paths decode as "".
func (c *Config) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(c.exportMap()); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

// coerceNative converts a value decoded from TOML, YAML or JSON into the
// native Go type of f. The result still needs validation.
func coerceNative(f Field, value any) (any, error) {
	switch f.Type.Kind() {
	case KindBoolean:
		var b bool
		if err := mapstructure.WeakDecode(value, &b); err != nil {
			return nil, &InvalidValueError{Field: f.Name, Value: value, Constraint: "value must be a boolean"}
		}
		return b, nil
	case KindIntegerRange:
		if fv, ok := value.(float64); ok && fv != float64(int64(fv)) {
			return nil, &InvalidValueError{Field: f.Name, Value: value, Constraint: "value must be a whole number"}
		}
		var n int
		if err := mapstructure.WeakDecode(value, &n); err != nil {
			return nil, &InvalidValueError{Field: f.Name, Value: value, Constraint: "value must be an integer"}
		}
		return n, nil
	case KindOptionalHDDPath:
		if value == nil || value == "" {
			return nil, nil
		}
	}
	return value, nil
}

// ParseNative converts command line text into the native type of a field.
// Booleans accept the forms of strconv.ParseBool; optional paths treat "" and
// "none" as unset.
func (c *Config) ParseNative(name, text string) (any, error) {
	f, err := c.Field(name)
	if err != nil {
		return nil, err
	}

	switch f.Type.Kind() {
	case KindBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, &InvalidValueError{Field: f.Name, Value: text, Constraint: "value must be true or false"}
		}
		return b, nil
	case KindIntegerRange:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return nil, &InvalidValueError{Field: f.Name, Value: text, Constraint: "value must be an integer"}
		}
		return n, nil
	case KindOptionalHDDPath:
		if text == "" || strings.EqualFold(text, "none") {
			return nil, nil
		}
	}
	return text, nil
}
