package interchange_test

import (
	"strings"
	"testing"

	"datadeck/internal/dataset"
	"datadeck/internal/interchange"
	"datadeck/internal/value"
)

func TestEncodeMarkupEmptyDataset(t *testing.T) {
	got := string(interchange.EncodeMarkup(dataset.Empty()))
	want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<dataset></dataset>"
	if got != want {
		t.Fatalf("empty markup = %q, want %q", got, want)
	}
	decoded := interchange.DecodeMarkup([]byte(got))
	if decoded.Len() != 0 {
		t.Fatalf("decoded %d records from empty document", decoded.Len())
	}
}

func TestEncodeMarkupListItems(t *testing.T) {
	d := dataset.Dataset{Results: []dataset.Record{
		{AgentType: "text", Output: value.List(value.Number(1), value.String("two"), value.Null())},
	}}
	got := string(interchange.EncodeMarkup(d))
	for _, fragment := range []string{
		`<item index="0">1</item>`,
		`<item index="1">two</item>`,
		`<item index="2" nil="true"/>`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("markup missing %q:\n%s", fragment, got)
		}
	}

	decoded := interchange.DecodeMarkup([]byte(got))
	if decoded.Len() != 1 {
		t.Fatalf("decoded %d records, want 1", decoded.Len())
	}
	elems, ok := decoded.Results[0].Output.AsList()
	if !ok || len(elems) != 3 {
		t.Fatalf("decoded output = %#v, want 3-element list", decoded.Results[0].Output)
	}
	// Leaf text decodes as string without type inference.
	if s, _ := elems[0].AsString(); s != "1" {
		t.Fatalf("item 0 = %#v, want string \"1\"", elems[0])
	}
	if s, _ := elems[1].AsString(); s != "two" {
		t.Fatalf("item 1 = %#v", elems[1])
	}
	if !elems[2].IsNull() {
		t.Fatalf("item 2 = %#v, want null", elems[2])
	}
}

func TestMarkupRoundTripStringTrees(t *testing.T) {
	d := dataset.Dataset{Results: []dataset.Record{
		{
			AgentType: "audio",
			Output: value.Map(
				value.Field("transcription", value.Map(
					value.Field("text", value.String("hello world")),
					value.Field("language", value.String("en")),
				)),
				value.Field("source", value.String("upload.wav")),
			),
		},
		{
			AgentType: "text",
			Output:    value.List(value.String("alpha"), value.String("beta")),
		},
		{AgentType: "empty", Output: value.Null()},
	}}
	decoded := interchange.DecodeMarkup(interchange.EncodeMarkup(d))
	if !d.Equal(decoded) {
		t.Fatalf("round trip mismatch:\n%s\ngot %#v", interchange.EncodeMarkup(d), decoded.Results)
	}
}

func TestMarkupEscaping(t *testing.T) {
	d := dataset.Dataset{Results: []dataset.Record{
		{AgentType: "text<&>", Output: value.String(`a < b & c > "d" 'e'`)},
	}}
	encoded := string(interchange.EncodeMarkup(d))
	if strings.Contains(encoded, "a < b") {
		t.Fatalf("text content not escaped: %s", encoded)
	}
	if !strings.Contains(encoded, "&lt;") || !strings.Contains(encoded, "&amp;") {
		t.Fatalf("expected escaped entities: %s", encoded)
	}

	decoded := interchange.DecodeMarkup([]byte(encoded))
	if decoded.Len() != 1 {
		t.Fatalf("decoded %d records", decoded.Len())
	}
	if decoded.Results[0].AgentType != "text<&>" {
		t.Fatalf("agent type = %q", decoded.Results[0].AgentType)
	}
	if s, _ := decoded.Results[0].Output.AsString(); s != `a < b & c > "d" 'e'` {
		t.Fatalf("content = %q", s)
	}
}

func TestMarkupKeySanitization(t *testing.T) {
	d := dataset.Dataset{Results: []dataset.Record{
		{AgentType: "text", Output: value.Map(
			value.Field("user name!", value.String("jo")),
			value.Field("7days", value.String("week")),
			value.Field("", value.String("blank")),
		)},
	}}
	encoded := string(interchange.EncodeMarkup(d))
	for _, tag := range []string{"<user_name_>", "<_7days>", "<_>"} {
		if !strings.Contains(encoded, tag) {
			t.Fatalf("markup missing sanitized tag %s:\n%s", tag, encoded)
		}
	}

	// Sanitization is lossy: decode returns the sanitized key.
	decoded := interchange.DecodeMarkup([]byte(encoded))
	out := decoded.Results[0].Output
	if s, _ := out.Get("user_name_").AsString(); s != "jo" {
		t.Fatalf("sanitized key lookup = %q", s)
	}
	if out.Get("user name!") != nil {
		t.Fatal("original key unexpectedly survived sanitization")
	}
}

func TestDecodeMarkupLegacyTags(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<dataset><r><agent_type>audio</agent_type><o><duration>12</duration></o></r></dataset>`
	d := interchange.DecodeMarkup([]byte(input))
	if d.Len() != 1 {
		t.Fatalf("decoded %d records, want 1", d.Len())
	}
	if d.Results[0].AgentType != "audio" {
		t.Fatalf("agent type = %q", d.Results[0].AgentType)
	}
	if s, _ := d.Results[0].Output.Get("duration").AsString(); s != "12" {
		t.Fatalf("duration = %q", s)
	}
}

func TestDecodeMarkupSparseAndUnorderedItems(t *testing.T) {
	input := `<dataset><result><agent_type>text</agent_type><output>` +
		`<item index="2">last</item><item index="0">first</item>` +
		`</output></result></dataset>`
	d := interchange.DecodeMarkup([]byte(input))
	elems, ok := d.Results[0].Output.AsList()
	if !ok || len(elems) != 3 {
		t.Fatalf("output = %#v, want 3-element list", d.Results[0].Output)
	}
	if s, _ := elems[0].AsString(); s != "first" {
		t.Fatalf("index 0 = %#v", elems[0])
	}
	if !elems[1].IsNull() {
		t.Fatalf("hole at index 1 = %#v, want null", elems[1])
	}
	if s, _ := elems[2].AsString(); s != "last" {
		t.Fatalf("index 2 = %#v", elems[2])
	}
}

func TestDecodeMarkupOversizedIndexIsMap(t *testing.T) {
	// A declared index sizes the list allocation, so indexes past the
	// bound fall back to map decoding instead of a huge slice.
	input := `<dataset><result><agent_type>text</agent_type><output>` +
		`<item index="2000000000">x</item>` +
		`</output></result></dataset>`
	d := interchange.DecodeMarkup([]byte(input))
	out := d.Results[0].Output
	if out.Kind() != value.KindMap {
		t.Fatalf("output kind = %v, want map", out.Kind())
	}
	if s, _ := out.Get("item").AsString(); s != "x" {
		t.Fatalf("item = %q", s)
	}
}

func TestDecodeMarkupMixedChildrenIsMap(t *testing.T) {
	// One non-item child defeats the list heuristic.
	input := `<dataset><result><agent_type>text</agent_type><output>` +
		`<item index="0">a</item><extra>b</extra>` +
		`</output></result></dataset>`
	d := interchange.DecodeMarkup([]byte(input))
	out := d.Results[0].Output
	if out.Kind() != value.KindMap {
		t.Fatalf("output kind = %v, want map", out.Kind())
	}
	if s, _ := out.Get("extra").AsString(); s != "b" {
		t.Fatalf("extra = %q", s)
	}
}

func TestDecodeMarkupInvalidDocumentFailsSoft(t *testing.T) {
	for _, input := range []string{
		"this is not markup",
		"<dataset><unclosed>",
		"",
		"<dataset><result></dataset></result>",
	} {
		d := interchange.DecodeMarkup([]byte(input))
		if d.Len() != 0 {
			t.Errorf("DecodeMarkup(%q) = %d records, want 0", input, d.Len())
		}
		if d.Results == nil {
			t.Errorf("DecodeMarkup(%q) returned nil results slice", input)
		}
	}
}

func TestDecodeMarkupMissingOutputIsNull(t *testing.T) {
	input := `<dataset><result><agent_type>text</agent_type></result></dataset>`
	d := interchange.DecodeMarkup([]byte(input))
	if d.Len() != 1 {
		t.Fatalf("decoded %d records, want 1", d.Len())
	}
	if !d.Results[0].Output.IsNull() {
		t.Fatalf("output = %#v, want null", d.Results[0].Output)
	}
}
