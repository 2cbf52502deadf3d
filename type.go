package config

import (
	"fmt"
)

// Bool retrieves a boolean field.
func (c *Config) Bool(name string) (bool, error) {
	val, err := c.Get(name)
	if err != nil {
		return false, err
	}
	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("field %s is %T, not bool", CanonicalName(name), val)
	}
	return b, nil
}

// Int retrieves an integer field.
func (c *Config) Int(name string) (int, error) {
	val, err := c.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := val.(int)
	if !ok {
		return 0, fmt.Errorf("field %s is %T, not int", CanonicalName(name), val)
	}
	return n, nil
}

// String retrieves a string field. Unset optional paths return "".
func (c *Config) String(name string) (string, error) {
	val, err := c.Get(name)
	if err != nil {
		return "", err
	}
	switch v := val.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("field %s is %T, not string", CanonicalName(name), val)
	}
}

// OptionalPath retrieves an optional path field. ok is false when unset.
func (c *Config) OptionalPath(name string) (path string, ok bool, err error) {
	f, err := c.Field(name)
	if err != nil {
		return "", false, err
	}
	if f.Type.Kind() != KindOptionalHDDPath {
		return "", false, fmt.Errorf("field %s is a %s field, not an optional path", f.Name, f.Type.Kind())
	}
	val := f.Type.ToNative(c.values[f.Name])
	if val == nil {
		return "", false, nil
	}
	return val.(string), true, nil
}
