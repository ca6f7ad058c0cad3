package interchange

import (
	"strconv"
	"strings"

	"datadeck/internal/dataset"
)

const (
	plaintextHeader    = "DATASET CONTENTS\n==============\n\n"
	plaintextSeparator = "----------------------------"
)

// EncodePlaintext renders the dataset as a human-readable dump. This
// format exists for downloads only and has no decoder.
func EncodePlaintext(d dataset.Dataset) []byte {
	var b strings.Builder
	b.WriteString(plaintextHeader)
	for i, r := range d.Results {
		b.WriteString("ENTRY ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\nType: ")
		b.WriteString(r.AgentType)
		b.WriteString("\nOutput:\n")
		b.Write(dataset.ValueJSONIndent(r.Output, "", "  "))
		b.WriteString("\n\n")
		b.WriteString(plaintextSeparator)
		b.WriteString("\n\n")
	}
	return []byte(b.String())
}
