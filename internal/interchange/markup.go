package interchange

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"datadeck/internal/dataset"
	"datadeck/internal/value"
)

// Markup layout: an XML declaration, a <dataset> root, and one
// <result> element per record holding an <agent_type> leaf and an
// <output> value tree. Lists become <item index="N"> children because
// the markup form has no native array type; the explicit index is what
// lets decode tell a list apart from a map. Null values self-close
// with a nil="true" attribute. Legacy exports used <r> and <o> in
// place of <result> and <output>; those names are decode-only.

const markupDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// markupEscaper escapes text content in a single pass, ampersand
// first, so already-escaped output is never double-escaped.
var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EncodeMarkup renders the dataset as markup text in the current tag
// convention.
func EncodeMarkup(d dataset.Dataset) []byte {
	var b strings.Builder
	b.WriteString(markupDeclaration)
	b.WriteString("<dataset>")
	for _, r := range d.Results {
		b.WriteString("<result><agent_type>")
		b.WriteString(markupEscaper.Replace(r.AgentType))
		b.WriteString("</agent_type>")
		writeValueElement(&b, "output", -1, r.Output)
		b.WriteString("</result>")
	}
	b.WriteString("</dataset>")
	return []byte(b.String())
}

// writeValueElement serializes a value inside an element of the given
// name. index >= 0 adds the list-item index attribute.
func writeValueElement(b *strings.Builder, name string, index int, v *value.Value) {
	b.WriteByte('<')
	b.WriteString(name)
	if index >= 0 {
		b.WriteString(` index="`)
		b.WriteString(strconv.Itoa(index))
		b.WriteByte('"')
	}
	if v.IsNull() {
		b.WriteString(` nil="true"/>`)
		return
	}
	b.WriteByte('>')

	switch v.Kind() {
	case value.KindBool:
		bv, _ := v.AsBool()
		b.WriteString(strconv.FormatBool(bv))
	case value.KindNumber:
		n, _ := v.AsNumber()
		b.WriteString(value.FormatNumber(n))
	case value.KindString:
		s, _ := v.AsString()
		b.WriteString(markupEscaper.Replace(s))
	case value.KindList:
		elems, _ := v.AsList()
		for i, e := range elems {
			writeValueElement(b, "item", i, e)
		}
	case value.KindMap:
		entries, _ := v.AsMap()
		for _, e := range entries {
			writeValueElement(b, sanitizeTag(e.Key), -1, e.Value)
		}
	}

	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

// sanitizeTag turns an arbitrary map key into a valid element name:
// every character outside [A-Za-z0-9_] becomes an underscore, and a
// leading underscore is added when the result is empty or starts with
// a digit. The mapping is lossy on purpose; decode recovers the
// sanitized name, not the original key.
func sanitizeTag(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "_" + name
	}
	return name
}

// DecodeMarkup parses markup text into a dataset. Both the current
// <result>/<output> and legacy <r>/<o> conventions are recognized. A
// document that does not parse as markup decodes to an empty dataset:
// this sits behind user-facing imports and must not crash the caller.
func DecodeMarkup(data []byte) dataset.Dataset {
	out := dataset.Empty()
	root, err := parseMarkup(data)
	if err != nil || root == nil {
		return out
	}

	containers := root.childrenNamed("result")
	if len(containers) == 0 {
		containers = root.childrenNamed("r")
	}
	for _, c := range containers {
		agentType := ""
		if leaf := c.firstChild("agent_type"); leaf != nil {
			agentType = leaf.text
		}
		outNode := c.firstChild("output")
		if outNode == nil {
			outNode = c.firstChild("o")
		}
		output := value.Null()
		if outNode != nil {
			output = decodeValueNode(outNode)
		}
		out.Results = append(out.Results, dataset.Record{AgentType: agentType, Output: output})
	}
	return out
}

// decodeValueNode reconstructs a value from an element subtree.
//
// A nil-flagged node is null. A node without element children yields
// its text as a string; no scalar type inference happens on decode, so
// number-versus-string identity is never guessed. A node whose every
// child is an indexed item yields a list placed by declared index
// (sparse and out-of-order children are allowed, holes stay null).
// Anything else yields a map keyed by the children's sanitized names.
func decodeValueNode(n *markupNode) *value.Value {
	if attr, ok := n.attrs["nil"]; ok && attr != "false" {
		return value.Null()
	}
	if len(n.children) == 0 {
		return value.String(n.text)
	}

	if indexes, ok := indexedItems(n.children); ok {
		maxIdx := 0
		for _, idx := range indexes {
			if idx > maxIdx {
				maxIdx = idx
			}
		}
		elems := make([]*value.Value, maxIdx+1)
		for i := range elems {
			elems[i] = value.Null()
		}
		for i, child := range n.children {
			elems[indexes[i]] = decodeValueNode(child)
		}
		return value.List(elems...)
	}

	var entries []value.Entry
	for _, child := range n.children {
		decoded := decodeValueNode(child)
		replaced := false
		for i := range entries {
			if entries[i].Key == child.name {
				entries[i].Value = decoded
				replaced = true
				break
			}
		}
		if !replaced {
			entries = append(entries, value.Field(child.name, decoded))
		}
	}
	return value.Map(entries...)
}

// maxListIndex bounds the list length reconstructible from declared
// item indexes. The list is allocated up front from the largest index,
// so an unbounded value in untrusted input would translate directly
// into an allocation of that size.
const maxListIndex = 1 << 16

// indexedItems reports whether every child follows the synthetic
// list-item convention (an "item" element with a non-negative integer
// index attribute within maxListIndex) and returns the declared
// indexes. This is a heuristic, not a wire-format discriminator: a map
// whose keys were all literally "item" is indistinguishable from a
// list here, an accepted ambiguity of the format.
func indexedItems(children []*markupNode) ([]int, bool) {
	indexes := make([]int, len(children))
	for i, child := range children {
		if child.name != "item" {
			return nil, false
		}
		raw, ok := child.attrs["index"]
		if !ok {
			return nil, false
		}
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || idx < 0 || idx > maxListIndex {
			return nil, false
		}
		indexes[i] = idx
	}
	return indexes, true
}

// markupNode is the generic parsed form of one element.
type markupNode struct {
	name     string
	attrs    map[string]string
	text     string
	children []*markupNode
}

func (n *markupNode) firstChild(name string) *markupNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *markupNode) childrenNamed(name string) []*markupNode {
	var out []*markupNode
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// parseMarkup builds the node tree for the document's root element.
// Character data accumulates on the innermost open element; once an
// element has children, surrounding whitespace text is ignored at
// decode time because only leaf text carries values.
func parseMarkup(data []byte) (*markupNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *markupNode
	var stack []*markupNode

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &markupNode{
				name:  t.Name.Local,
				attrs: make(map[string]string, len(t.Attr)),
			}
			for _, a := range t.Attr {
				node.attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if len(top.children) == 0 {
					top.text += string(t)
				}
			}
		}
	}
	return root, nil
}
