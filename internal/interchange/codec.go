package interchange

import (
	"fmt"

	"datadeck/internal/dataset"
)

// Encode serializes the dataset to the requested format. The output
// matches the current wire layout for that format; legacy layouts are
// decode-only.
func Encode(d dataset.Dataset, format Format) ([]byte, error) {
	switch format {
	case FormatNative:
		return dataset.EncodeNative(d), nil
	case FormatTabular:
		return EncodeTabular(d), nil
	case FormatMarkup:
		return EncodeMarkup(d), nil
	case FormatPlaintext:
		return EncodePlaintext(d), nil
	default:
		return nil, fmt.Errorf("%w: encode %q", ErrUnsupportedFormat, format)
	}
}

// Decode parses interchange text into a dataset. Malformed input
// degrades per the package error policy; an undecodable document
// yields an empty dataset with no error. Decoding plaintext or an
// unknown format returns ErrUnsupportedFormat.
func Decode(data []byte, format Format) (dataset.Dataset, error) {
	switch format {
	case FormatNative:
		return dataset.DecodeNative(data), nil
	case FormatTabular:
		return DecodeTabular(data), nil
	case FormatMarkup:
		return DecodeMarkup(data), nil
	default:
		return dataset.Dataset{}, fmt.Errorf("%w: decode %q", ErrUnsupportedFormat, format)
	}
}
