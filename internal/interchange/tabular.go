package interchange

import (
	"strings"

	"datadeck/internal/dataset"
	"datadeck/internal/summary"
	"datadeck/internal/value"
)

// tabularHeader is the current three-column header. The two-column
// legacy header "agent_type,output" is recognized on decode only.
const tabularHeader = "agent_type,raw_json,primary_content"

// EncodeTabular renders the dataset as tabular text: one header row,
// then one row per record in sequence order. The agent type column is
// emitted bare; the raw and primary-content columns are always quoted
// with embedded quotes doubled.
func EncodeTabular(d dataset.Dataset) []byte {
	var b strings.Builder
	b.WriteString(tabularHeader)
	for _, r := range d.Results {
		b.WriteByte('\n')
		b.WriteString(r.AgentType)
		b.WriteByte(',')
		writeQuotedField(&b, string(dataset.ValueJSON(r.Output)))
		b.WriteByte(',')
		writeQuotedField(&b, summary.Primary(r.Output, r.AgentType))
	}
	return []byte(b.String())
}

func writeQuotedField(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(s, `"`, `""`))
	b.WriteByte('"')
}

// DecodeTabular parses tabular text into a dataset. The header row
// selects the current or legacy column layout. Malformed rows are
// skipped and malformed raw cells degrade to plain string values; the
// decode itself never fails.
func DecodeTabular(data []byte) dataset.Dataset {
	out := dataset.Empty()

	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return out
	}

	current := sniffTabularHeader(rows[0])
	for _, row := range rows[1:] {
		fields := splitTabularRow(row)
		if len(fields) < 2 {
			continue
		}
		var output *value.Value
		if current {
			output = decodeRawCell(fields)
		} else {
			output = decodeLegacyCell(fields[1])
		}
		out.Results = append(out.Results, dataset.Record{
			AgentType: fields[0],
			Output:    output,
		})
	}
	return out
}

// sniffTabularHeader reports whether the header row names the current
// three-column layout.
func sniffTabularHeader(row string) bool {
	var hasRaw, hasPrimary bool
	for _, field := range splitTabularRow(row) {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "raw_json":
			hasRaw = true
		case "primary_content":
			hasPrimary = true
		}
	}
	return hasRaw && hasPrimary
}

// decodeRawCell recovers the output value of a current-layout row. The
// raw column holds native-form text; when that fails to parse, the
// human column (or the raw text itself) survives as a string value.
func decodeRawCell(fields []string) *value.Value {
	if v, err := dataset.ParseValue([]byte(fields[1])); err == nil {
		return v
	}
	if len(fields) >= 3 && fields[2] != "" {
		return value.String(fields[2])
	}
	return value.String(fields[1])
}

// decodeLegacyCell recovers the output value of a legacy two-column
// row. Legacy exports stored either native-form text or bare prose, so
// parsing is attempted only for bracket-delimited cells.
func decodeLegacyCell(cell string) *value.Value {
	trimmed := strings.TrimSpace(cell)
	bracketed := (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"))
	if bracketed {
		if v, err := dataset.ParseValue([]byte(trimmed)); err == nil {
			return v
		}
	}
	return value.String(cell)
}

// splitTabularRow tokenizes one row into fields. Quoting follows
// RFC 4180: a field may be wrapped in double quotes, a doubled quote
// inside a quoted field is a literal quote, and commas inside quotes
// do not separate fields.
func splitTabularRow(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					cur.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cur.WriteByte(c)
			}
		case c == '"':
			inQuotes = true
		case c == ',':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
