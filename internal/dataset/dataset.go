package dataset

import (
	"datadeck/internal/value"
)

// Record is one agent's output plus its type label.
type Record struct {
	AgentType string
	Output    *value.Value
}

// Dataset is an ordered collection of records. Sequence order is
// meaningful and must survive every encode/decode round trip.
type Dataset struct {
	Results []Record
}

// Empty returns a dataset with no records.
func Empty() Dataset {
	return Dataset{Results: []Record{}}
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.Results)
}

// Clone returns a deep copy of the dataset.
func (d Dataset) Clone() Dataset {
	out := Dataset{Results: make([]Record, len(d.Results))}
	for i, r := range d.Results {
		out.Results[i] = Record{AgentType: r.AgentType, Output: r.Output.Clone()}
	}
	return out
}

// ByType returns the records whose agent type matches exactly,
// preserving order.
func (d Dataset) ByType(agentType string) []Record {
	var out []Record
	for _, r := range d.Results {
		if r.AgentType == agentType {
			out = append(out, r)
		}
	}
	return out
}

// Latest returns the most recently appended record, or false when the
// dataset is empty.
func (d Dataset) Latest() (Record, bool) {
	if len(d.Results) == 0 {
		return Record{}, false
	}
	return d.Results[len(d.Results)-1], true
}

// Equal reports structural equality of two datasets.
func (d Dataset) Equal(other Dataset) bool {
	if len(d.Results) != len(other.Results) {
		return false
	}
	for i, r := range d.Results {
		o := other.Results[i]
		if r.AgentType != o.AgentType || !r.Output.Equal(o.Output) {
			return false
		}
	}
	return true
}
