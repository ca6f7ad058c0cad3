package interchange

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies an interchange text format.
type Format string

const (
	// FormatNative is pretty-printed JSON, the storage form.
	FormatNative Format = "json"
	// FormatTabular is the flattened CSV form.
	FormatTabular Format = "csv"
	// FormatMarkup is the nested XML form.
	FormatMarkup Format = "xml"
	// FormatPlaintext is a human-readable dump. Encode-only.
	FormatPlaintext Format = "txt"
)

// ErrUnsupportedFormat marks a format/direction the codec does not
// support. This is a caller contract violation, not a data problem,
// and is never swallowed.
var ErrUnsupportedFormat = errors.New("unsupported interchange format")

// Formats lists every format in presentation order.
func Formats() []Format {
	return []Format{FormatNative, FormatTabular, FormatMarkup, FormatPlaintext}
}

// ParseFormat resolves a user-supplied format name. Both the short
// extension-style names and the descriptive names are accepted.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "native":
		return FormatNative, nil
	case "csv", "tabular":
		return FormatTabular, nil
	case "xml", "markup":
		return FormatMarkup, nil
	case "txt", "text", "plaintext":
		return FormatPlaintext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatForExtension resolves a file extension (with or without the
// leading dot) to its format.
func FormatForExtension(ext string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(ext, "."))
}

// Extension returns the file extension for the format, without dot.
func (f Format) Extension() string {
	return string(f)
}

// MIME returns the MIME type for downloads of this format.
func (f Format) MIME() string {
	switch f {
	case FormatNative:
		return "application/json"
	case FormatTabular:
		return "text/csv;charset=utf-8"
	case FormatMarkup:
		return "application/xml"
	case FormatPlaintext:
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// DecodeSupported reports whether the format can be decoded.
func (f Format) DecodeSupported() bool {
	switch f {
	case FormatNative, FormatTabular, FormatMarkup:
		return true
	default:
		return false
	}
}
