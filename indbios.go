package config

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// iND-BiOS writes at most this many characters per line, CRLF included.
const IndBiosMaxLineLength = 300

const (
	macAddrPattern    = `^([0-9a-fA-F]{2}:){5}[0-9a-fA-F]{2}$`
	ledPatternPattern = `^[GROBN]{4}$`
	defaultFogColour  = "0xFF35FF1A"
	defaultSceneColor = "0xFF35FF1A"
)

func cameraViews() []string {
	views := make([]string, 0, 17)
	for v := -1; v <= 15; v++ {
		views = append(views, strconv.Itoa(v))
	}
	return views
}

// IndBiosFields returns the iND-BiOS field catalogue in file order.
func IndBiosFields() []Field {
	return []Field{
		{"AUTOLOADDVD", true, Boolean()},
		{"AVCHECK", true, Boolean()},
		{"IGRLOADSDASH", false, Boolean()},
		{"IGRMODE", "Quick", Discrete("Off", "Compatible", "Quick")},
		{"RESETONEJECT", false, Boolean()},
		{"FANSPEED", 10, IntegerRange(10, 50)},
		{"LEDPATTERN", "GGGG", RegexPair(ledPatternPattern, ledPatternPattern, "must be 4 of G, R, O, B or N")},
		{"USEALLMEMORY", false, Boolean()},
		{"MACADDR", "00:00:00:00:00:00", Regex(macAddrPattern)},
		{"DISABLEDM", true, Boolean()},
		{"IFILTER", true, Boolean()},
		{"480P", false, Boolean()},
		{"CAMERAVIEW", "-1", Discrete(cameraViews()...)},
		{"FASTANI", false, Boolean()},
		{"SCENECOLOR1", defaultSceneColor, Colour(true)},
		{"SCENECOLOR2", defaultSceneColor, Colour(true)},
		{"SCENECOLOR3", defaultSceneColor, Colour(true)},
		{"SHOWFLUB", true, Boolean()},
		{"NOSOUND", false, Boolean()},
		{"BLOBCOLOR", "0x40FF27", Colour(false)},
		{"BLOBRADI", 23, IntegerRange(0, 100)},
		{"BLOBSDEAD", false, Boolean()},
		{"BLOBTHROB", true, Boolean()},
		{"BLOBBGC", "0x000000", Colour(false)},
		{"SLOWMOBLOB", false, Boolean()},
		{"SPIKEYBLOB", false, Boolean()},
		{"CUSTOMBLOB", `C:\flubber.x`, OptionalHDDPath("x")},
		{"WIREFRAMEBLOB", false, Boolean()},
		{"FOGON", true, Boolean()},
		{"FOG1ABS", false, Boolean()},
		{"FOG1COLOR", defaultFogColour, Colour(true)},
		{"FOG1CUSTOM", false, Boolean()},
		{"FOG2COLOR", defaultFogColour, Colour(true)},
		{"FOG2CUSTOM", false, Boolean()},
		{"GLOWCOLOR", "0xA0FF60", Colour(false)},
		{"IOGLOWCOLOR", "0xA0FF60", Colour(false)},
		{"NOFLUBBG", false, Boolean()},
		{"SHOWXEN", true, Boolean()},
		{"BGCOLOR", "0xFFFFFF", Colour(false)},
		{"SKEWEN", true, Boolean()},
		{"TMS", true, Boolean()},
		{"IND3D", true, Boolean()},
		{"LIPCOLOR", "0x000100", Colour(false)},
		{"LIPGLOW", "0x4b9b4b", Colour(false)},
		{"XBOXCOLOR", "0x62ca13", Colour(false)},
		{"XGLOWCOLOR", "0xCADE00", Colour(false)},
		{"XINNERCOLOR", "0x206a16", Colour(false)},
		{"XLIGHTCOLOR", "0xff000000", Colour(true)},
		{"YSKEWLOGO", -20, IntegerRange(-100, 100)},
		{"XSKEWLOGO", 0, IntegerRange(-100, 100)},
		{"XSKEWXLOGO", 0, IntegerRange(-100, 100)},
		{"YSKEWXLOGO", 0, IntegerRange(-100, 100)},
		{"XLOGOSCALE", 100, IntegerRange(0, 100)},
		{"CUSTOMX", `C:\xlogo.x`, OptionalHDDPath("x")},
		{"SHOWMSEN", true, Boolean()},
		{"MSLOGOTRANSEN", false, Boolean()},
		{"MSLOGOTRANSCOLOR", "0xff00ff", Colour(false)},
		{"NOLIGHTEN", false, Boolean()},
		{"CUSTOMLOGO", `C:\mslogo.bmp`, OptionalHDDPath("bmp")},
		{"XSKEWTEXT", 0, IntegerRange(-100, 100)},
		{"YSKEWTEXT", 0, IntegerRange(-100, 100)},
		{"TEXTSCALE", 100, IntegerRange(0, 100)},
		{"CUSTOMTEXT", `C:\text.x`, OptionalHDDPath("x")},
		{"INTRO", true, Boolean()},
		{"DASH1", `C:\evoxdash.xbe`, HDDPath("xbe")},
		{"DASH2", `C:\nexgen.xbe`, HDDPath("xbe")},
		{"DASH3", `C:\avalaunch.xbe`, HDDPath("xbe")},
		{"DEFAULTXBE", `D:\default.xbe`, DVDPath("xbe")},
		{"USEXBX", false, Boolean()},
	}
}

// Built on first use: validating the defaults needs the package's compiled
// patterns, which are not ready during variable initialization.
var indBiosSchema = sync.OnceValue(func() *Schema {
	return MustSchema(IndBiosFields()...)
})

// IndBiosSchema returns the shared iND-BiOS schema.
func IndBiosSchema() *Schema {
	return indBiosSchema()
}

// IndBiosDerived returns the iND-BiOS derived fields: the custom fog flags
// follow their colours and SKEWEN follows the MS logo skew.
func IndBiosDerived() []DerivedField {
	return []DerivedField{
		{Field: "FOG1CUSTOM", Mode: TrueUnlessAllEqual, Refs: []Ref{{Field: "FOG1COLOR", Value: defaultFogColour}}},
		{Field: "FOG2CUSTOM", Mode: TrueUnlessAllEqual, Refs: []Ref{{Field: "FOG2COLOR", Value: defaultFogColour}}},
		{Field: "SKEWEN", Mode: TrueIfAnySet, Refs: []Ref{{Field: "XSKEWLOGO"}, {Field: "YSKEWLOGO"}}},
	}
}

// IndBiosOptions returns the options the firmware expects: 300 character
// lines, double quotes around values with whitespace and CRLF line endings.
func IndBiosOptions() Options {
	opts := DefaultOptions()
	opts.MaxLineLength = IndBiosMaxLineLength
	opts.QuoteChar = `"`
	opts.LineEnding = "\r\n"
	opts.Derived = IndBiosDerived()
	return opts
}

// NewIndBios returns an iND-BiOS config with every field at its default.
func NewIndBios() *Config {
	return NewWithOptions(IndBiosSchema(), IndBiosOptions())
}

// Field groups, one per page of the editor.
var indBiosGroups = map[string][]string{
	"basic":    {"IGRMODE", "IGRLOADSDASH", "AUTOLOADDVD", "AVCHECK", "RESETONEJECT", "FANSPEED", "LEDPATTERN"},
	"advanced": {"USEALLMEMORY", "DISABLEDM", "MACADDR"},
	"boot":     {"DASH1", "DASH2", "DASH3", "DEFAULTXBE", "INTRO", "USEXBX"},

	"flubber-general": {"SHOWFLUB", "NOSOUND", "480P", "FASTANI", "CAMERAVIEW", "IFILTER"},
	"blob":            {"BLOBSDEAD", "WIREFRAMEBLOB", "BLOBTHROB", "SLOWMOBLOB", "SPIKEYBLOB", "BLOBCOLOR", "BLOBRADI", "CUSTOMBLOB"},
	"fog":             {"FOGON", "FOG1COLOR", "FOG2COLOR", "FOG1ABS", "FOG1CUSTOM", "FOG2CUSTOM"},
	"glow":            {"GLOWCOLOR", "IOGLOWCOLOR"},
	"background":      {"NOFLUBBG", "SCENECOLOR1", "SCENECOLOR2", "SCENECOLOR3", "BLOBBGC"},

	"xscreen-general": {"BGCOLOR", "NOLIGHTEN", "TMS"},
	"mslogo":          {"SHOWMSEN", "MSLOGOTRANSEN", "MSLOGOTRANSCOLOR", "XSKEWLOGO", "YSKEWLOGO", "SKEWEN", "CUSTOMLOGO"},
	"text":            {"IND3D", "XBOXCOLOR", "TEXTSCALE", "CUSTOMTEXT", "XSKEWTEXT", "YSKEWTEXT"},
	"xlogo":           {"SHOWXEN", "XGLOWCOLOR", "XINNERCOLOR", "LIPCOLOR", "LIPGLOW", "XLIGHTCOLOR", "XSKEWXLOGO", "YSKEWXLOGO", "XLOGOSCALE", "CUSTOMX"},
}

// Groups made of other groups.
var indBiosGroupSets = map[string][]string{
	"flubber": {"flubber-general", "background", "blob", "fog", "glow"},
	"xscreen": {"xscreen-general", "mslogo", "text", "xlogo"},
}

// Groups returns the names of all field groups, sorted.
func Groups() []string {
	names := make([]string, 0, len(indBiosGroups)+len(indBiosGroupSets))
	for name := range indBiosGroups {
		names = append(names, name)
	}
	for name := range indBiosGroupSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupFields returns the fields of a group, expanding groups of groups.
func GroupFields(group string) ([]string, error) {
	if fields, ok := indBiosGroups[group]; ok {
		return append([]string(nil), fields...), nil
	}
	members, ok := indBiosGroupSets[group]
	if !ok {
		return nil, fmt.Errorf("unknown group %q", group)
	}
	var fields []string
	for _, member := range members {
		fields = append(fields, indBiosGroups[member]...)
	}
	return fields, nil
}
