package config

// DerivedMode selects how a derived boolean is computed from its references.
type DerivedMode int

const (
	// TrueUnlessAllEqual is true unless every reference holds its Value.
	TrueUnlessAllEqual DerivedMode = iota
	// TrueIfAnySet is true if any reference is true, non-zero or non-empty.
	TrueIfAnySet
)

// Ref names a field consulted by a derived field. Value is the sentinel used
// by TrueUnlessAllEqual and is ignored by TrueIfAnySet.
type Ref struct {
	Field string
	Value any
}

// DerivedField is a boolean field recomputed from other fields before every
// write.
type DerivedField struct {
	Field string
	Mode  DerivedMode
	Refs  []Ref
}

// Compute evaluates the derived value against c.
func (d DerivedField) Compute(c *Config) (bool, error) {
	for _, ref := range d.Refs {
		v, err := c.Get(ref.Field)
		if err != nil {
			return false, err
		}
		switch d.Mode {
		case TrueUnlessAllEqual:
			if v != ref.Value {
				return true, nil
			}
		case TrueIfAnySet:
			if isSet(v) {
				return true, nil
			}
		}
	}
	return false, nil
}

func isSet(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// resolveDerived stores the computed value of every derived field. The
// values are booleans by construction and skip validation.
func (c *Config) resolveDerived() {
	for _, d := range c.opts.Derived {
		value, err := d.Compute(c)
		if err != nil {
			c.opts.Logger.Error().Err(err).Str("field", d.Field).Msg("Cannot compute derived field")
			continue
		}
		if err := c.set(d.Field, value, false); err != nil {
			c.opts.Logger.Error().Err(err).Str("field", d.Field).Msg("Cannot store derived field")
		}
	}
}
