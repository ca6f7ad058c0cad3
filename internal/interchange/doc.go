// Package interchange converts datasets between the in-memory form and
// the supported interchange text formats.
//
// Four formats exist: native (JSON), tabular (CSV), markup (XML), and
// plaintext (a human-readable dump, encode-only). Encoding always emits
// the current wire layout; decoding additionally recognizes the legacy
// tabular header and legacy markup tag names that older exports used.
//
// Error policy follows the import boundary this package sits behind:
// data-quality problems (a malformed row, cell, or node) degrade to a
// best-effort record or are skipped, and a document that cannot be
// parsed at all decodes to an empty dataset. Only contract violations,
// such as decoding the encode-only plaintext format, return an error.
//
// All functions are pure and safe for concurrent use.
package interchange
