// Package records persists agent result records in SQLite.
//
// The store is the durable home of the dataset: imports replace its
// contents wholesale, exports and listings read from it. Record
// outputs are stored as canonical JSON text and rehydrated into the
// value model on load.
package records
