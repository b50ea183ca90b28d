// Package format enumerates the wire formats and built-in element type tags
// used by the arbor containers.
package format

type Format uint8

const (
	// JSON is the verbose object-keyed UTF-8 text form. Largest payload,
	// fully self-describing.
	JSON Format = 0x1
	// JSONC is the compact array-positional UTF-8 text form.
	JSONC Format = 0x2
	// Msg is the compact binary form, structurally identical to JSONC.
	Msg Format = 0x3
)

// Built-in element type tags. Branches carrying one of these tags can be
// reconstructed when a Tree is decoded; any other tag is write-only from the
// Tree's perspective.
const (
	TagF64   = "f64"
	TagU64   = "u64"
	TagStr   = "str"
	TagBin   = "bin"
	TagPoint = "point"
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case JSONC:
		return "jsonc"
	case Msg:
		return "msg"
	default:
		return "unknown"
	}
}

// Extension returns the conventional file extension for the format,
// including the leading dot.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case JSONC:
		return ".jsonc"
	case Msg:
		return ".msg"
	default:
		return ""
	}
}

// Valid reports whether f is one of the defined formats.
func (f Format) Valid() bool {
	return f == JSON || f == JSONC || f == Msg
}

// FromExtension maps a file extension (with or without the leading dot) to
// its format. It returns false for unknown extensions.
func FromExtension(ext string) (Format, bool) {
	switch ext {
	case ".json", "json":
		return JSON, true
	case ".jsonc", "jsonc":
		return JSONC, true
	case ".msg", "msg":
		return Msg, true
	default:
		return 0, false
	}
}

// BuiltinTag reports whether tag belongs to the built-in reconstructable set.
func BuiltinTag(tag string) bool {
	switch tag {
	case TagF64, TagU64, TagStr, TagBin, TagPoint:
		return true
	default:
		return false
	}
}
