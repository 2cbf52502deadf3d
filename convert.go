package config

import (
	"slices"
	"strconv"
	"strings"
)

// Conversions assume valid input; callers validate first.

func (BooleanType) ToSerialized(v any) string {
	if v.(bool) {
		return "1"
	}
	return "0"
}

func (BooleanType) ToNative(s string) any {
	return s == "1"
}

func (IntegerRangeType) ToSerialized(v any) string {
	n, _ := toInt(v)
	return strconv.Itoa(n)
}

func (IntegerRangeType) ToNative(s string) any {
	n, _ := strconv.Atoi(s)
	return n
}

func (t DiscreteType) ToSerialized(v any) string {
	i := slices.Index(t.Values, v.(string))
	if t.Serialized != nil {
		return t.Serialized[i]
	}
	return strconv.Itoa(i)
}

func (t DiscreteType) ToNative(s string) any {
	i := slices.Index(t.Serialized, s)
	if t.Serialized == nil {
		i, _ = strconv.Atoi(s)
	}
	return t.Values[i]
}

func (*RegexType) ToSerialized(v any) string { return v.(string) }
func (*RegexType) ToNative(s string) any     { return s }

func (ColourType) ToSerialized(v any) string { return v.(string) }
func (ColourType) ToNative(s string) any     { return s }

const (
	hddDevice = `\Device\Harddisk0\Partition`
	dvdDevice = `\Device\CdRom0`
	dvdDrive  = "D:"
)

// Drive letter to hard disk partition number.
var drivePartitions = map[byte]byte{
	'C': '2',
	'E': '1',
	'F': '6',
	'G': '7',
}

func (HDDPathType) ToSerialized(v any) string {
	path := v.(string)
	return hddDevice + string(drivePartitions[path[0]]) + path[2:]
}

func (HDDPathType) ToNative(s string) any {
	rest := strings.TrimPrefix(s, hddDevice)
	for drive, partition := range drivePartitions {
		if rest[0] == partition {
			return string(drive) + ":" + rest[1:]
		}
	}
	return s
}

func (t OptionalHDDPathType) ToSerialized(v any) string {
	if v == nil {
		return unsetPath
	}
	return t.HDDPathType.ToSerialized(v)
}

func (t OptionalHDDPathType) ToNative(s string) any {
	if s == unsetPath {
		return nil
	}
	return t.HDDPathType.ToNative(s)
}

func (DVDPathType) ToSerialized(v any) string {
	return dvdDevice + strings.TrimPrefix(v.(string), dvdDrive)
}

func (DVDPathType) ToNative(s string) any {
	return dvdDrive + strings.TrimPrefix(s, dvdDevice)
}
