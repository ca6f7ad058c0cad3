// Package value defines the tagged-union representation of arbitrary
// decoded agent output.
//
// Every interchange codec converts between its text format and this
// common intermediate form. A Value is one of: null, bool, number,
// string, list, or map. Map entries preserve insertion order because
// the interchange formats are order-sensitive.
//
// Values are plain immutable-by-convention trees: no codec mutates an
// input Value, and no Value is shared between two parents.
package value
