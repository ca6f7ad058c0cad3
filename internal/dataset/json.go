package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"datadeck/internal/value"
)

// ValueJSON renders a value tree as compact JSON text. This is the
// native-form representation used verbatim by the tabular codec's raw
// column.
func ValueJSON(v *value.Value) []byte {
	return AppendValueJSON(nil, v)
}

// AppendValueJSON appends the compact JSON text of v to dst.
func AppendValueJSON(dst []byte, v *value.Value) []byte {
	switch v.Kind() {
	case value.KindNull:
		return append(dst, "null"...)
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case value.KindNumber:
		n, _ := v.AsNumber()
		return append(dst, value.FormatNumber(n)...)
	case value.KindString:
		s, _ := v.AsString()
		return appendJSONString(dst, s)
	case value.KindList:
		elems, _ := v.AsList()
		dst = append(dst, '[')
		for i, e := range elems {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendValueJSON(dst, e)
		}
		return append(dst, ']')
	case value.KindMap:
		entries, _ := v.AsMap()
		dst = append(dst, '{')
		for i, e := range entries {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendJSONString(dst, e.Key)
			dst = append(dst, ':')
			dst = AppendValueJSON(dst, e.Value)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

// ValueJSONIndent renders a value tree as indented JSON text.
func ValueJSONIndent(v *value.Value, prefix, indent string) []byte {
	compact := ValueJSON(v)
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, prefix, indent); err != nil {
		return compact
	}
	return buf.Bytes()
}

func appendJSONString(dst []byte, s string) []byte {
	// encoding/json escaping keeps the output byte-compatible with
	// files written by the previous implementation.
	encoded, err := json.Marshal(s)
	if err != nil {
		return append(dst, `""`...)
	}
	return append(dst, encoded...)
}

// ParseValue parses JSON text into a value tree, preserving object key
// order. Unlike the dataset-level decoders this returns an error: the
// tabular codec uses the failure to fall back to a plain string cell.
func ParseValue(data []byte) (*value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (*value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var entries []value.Entry
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				elem, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				entries = append(entries, value.Field(key, elem))
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return value.Map(entries...), nil
		case '[':
			var elems []*value.Value
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				elems = append(elems, elem)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return value.List(elems...), nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return value.String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return value.Number(f), nil
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

// MarshalJSON emits the record as {"agent_type":...,"output":...}.
func (r Record) MarshalJSON() ([]byte, error) {
	out := append([]byte(nil), `{"agent_type":`...)
	out = appendJSONString(out, r.AgentType)
	out = append(out, `,"output":`...)
	out = AppendValueJSON(out, r.Output)
	return append(out, '}'), nil
}

// UnmarshalJSON decodes a record, treating a missing output as null.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		AgentType string          `json:"agent_type"`
		Output    json.RawMessage `json:"output"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.AgentType = raw.AgentType
	if len(raw.Output) == 0 {
		r.Output = value.Null()
		return nil
	}
	out, err := ParseValue(raw.Output)
	if err != nil {
		return err
	}
	r.Output = out
	return nil
}

// MarshalJSON emits {"results":[...]}, with an empty array rather than
// null when the dataset has no records.
func (d Dataset) MarshalJSON() ([]byte, error) {
	out := append([]byte(nil), `{"results":[`...)
	for i, r := range d.Results {
		if i > 0 {
			out = append(out, ',')
		}
		rec, err := r.MarshalJSON()
		if err != nil {
			return nil, err
		}
		out = append(out, rec...)
	}
	return append(out, "]}"...), nil
}

// EncodeNative renders the dataset as pretty-printed native-form JSON.
func EncodeNative(d Dataset) []byte {
	compact, err := d.MarshalJSON()
	if err != nil {
		return []byte(`{"results":[]}`)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return compact
	}
	return buf.Bytes()
}

// DecodeNative parses native-form JSON into a dataset. A document that
// fails to parse, or whose top level is not {"results":[...]}, yields
// an empty dataset: the import path must degrade instead of abort.
// Individual malformed records are skipped.
func DecodeNative(data []byte) Dataset {
	root, err := ParseValue(data)
	if err != nil {
		return Empty()
	}
	results, ok := root.Get("results").AsList()
	if !ok {
		return Empty()
	}
	out := Empty()
	for _, elem := range results {
		if elem.Kind() != value.KindMap {
			continue
		}
		agentType, _ := elem.Get("agent_type").AsString()
		output := elem.Get("output")
		if output == nil {
			output = value.Null()
		}
		out.Results = append(out.Results, Record{AgentType: agentType, Output: output})
	}
	return out
}
