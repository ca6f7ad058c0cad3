// Package dataset defines the record collection produced by the
// processing agents and its native JSON form.
//
// A Dataset is an ordered sequence of Records; each Record pairs a
// free-form agent type label with an arbitrary output value tree.
// The native form is standard JSON, {"results":[...]}, with map key
// order preserved on both encode and decode.
//
// Datasets are replaced wholesale: no codec or store API mutates a
// Dataset in place.
package dataset
