package config

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestConversionProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	skew := IntegerRange(-100, 100)
	properties.Property("integers survive serialization", prop.ForAll(
		func(n int) bool {
			s := skew.ToSerialized(n)
			return skew.ValidateSerialized(s) == nil && skew.ToNative(s) == n
		},
		gen.IntRange(-100, 100),
	))

	properties.Property("serialized integers survive conversion", prop.ForAll(
		func(n int) bool {
			s := strconv.Itoa(n)
			return skew.ToSerialized(skew.ToNative(s)) == s
		},
		gen.IntRange(-100, 100),
	))

	properties.Property("zero padded integers read as their value", prop.ForAll(
		func(n, width int) bool {
			s := fmt.Sprintf("%0*d", width, n)
			return skew.ValidateSerialized(s) == nil &&
				skew.ToNative(s) == n &&
				skew.ToSerialized(skew.ToNative(s)) == strconv.Itoa(n)
		},
		gen.IntRange(-100, 100),
		gen.IntRange(1, 6),
	))

	argb := Colour(true)
	properties.Property("colours are identical in both forms", prop.ForAll(
		func(v uint32) bool {
			s := fmt.Sprintf("0x%08X", v)
			return argb.ValidateNative(s) == nil &&
				argb.ValidateSerialized(argb.ToSerialized(s)) == nil &&
				argb.ToNative(argb.ToSerialized(s)) == s
		},
		gen.UInt32(),
	))

	dash := HDDPath("xbe")
	properties.Property("hdd paths survive serialization", prop.ForAll(
		func(drive, dir, name string) bool {
			path := drive + `:\` + dir + `\` + name + ".xbe"
			s := dash.ToSerialized(path)
			return dash.ValidateNative(path) == nil &&
				dash.ValidateSerialized(s) == nil &&
				dash.ToNative(s) == path
		},
		gen.OneConstOf("C", "E", "F", "G"),
		gen.Identifier(),
		gen.Identifier(),
	))

	dvd := DVDPath("xbe")
	properties.Property("dvd paths survive serialization", prop.ForAll(
		func(name string) bool {
			path := `D:\` + name + ".xbe"
			s := dvd.ToSerialized(path)
			return dvd.ValidateSerialized(s) == nil && dvd.ToNative(s) == path
		},
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

func TestStoreProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("accepted values read back unchanged", prop.ForAll(
		func(fan, skew int, led string) bool {
			c := NewIndBios()
			if c.Set("FANSPEED", fan) != nil || c.Set("XSKEWTEXT", skew) != nil || c.Set("LEDPATTERN", led) != nil {
				return false
			}
			gotFan, _ := c.Get("FANSPEED")
			gotSkew, _ := c.Get("XSKEWTEXT")
			gotLed, _ := c.Get("LEDPATTERN")
			return gotFan == fan && gotSkew == skew && gotLed == led
		},
		gen.IntRange(10, 50),
		gen.IntRange(-100, 100),
		gen.RegexMatch(`[GROBN]{4}`),
	))

	properties.Property("rejected values leave the store unchanged", prop.ForAll(
		func(fan int) bool {
			c := NewIndBios()
			before, _ := c.Serialized("FANSPEED")
			if c.Set("FANSPEED", fan) == nil {
				return false
			}
			after, _ := c.Serialized("FANSPEED")
			return before == after
		},
		gen.OneGenOf(gen.IntRange(-1000, 9), gen.IntRange(51, 1000)),
	))

	properties.Property("written files read back to the same values", prop.ForAll(
		func(fan int, colour uint32, dir, name string) bool {
			c := NewIndBios()
			if c.Set("FANSPEED", fan) != nil ||
				c.Set("FOG2COLOR", fmt.Sprintf("0x%08X", colour)) != nil ||
				c.Set("CUSTOMX", `E:\`+dir+" "+name+".x") != nil {
				return false
			}

			var first bytes.Buffer
			if c.Write(&first, true) != nil {
				return false
			}
			read := NewIndBios()
			if read.Read(bytes.NewReader(first.Bytes()), RaiseError) != nil {
				return false
			}
			var second bytes.Buffer
			if read.Write(&second, true) != nil {
				return false
			}
			return len(c.Diff(read)) == 0 && first.String() == second.String()
		},
		gen.IntRange(10, 50),
		gen.UInt32(),
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
