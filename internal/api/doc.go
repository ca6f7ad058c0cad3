// Package api implements the dataset workflows behind the CLI commands.
//
// Each workflow takes a request struct carrying the configuration and
// returns a result struct with everything the command surface needs to
// render. Workflows open the record store themselves and close it
// before returning.
//
// # Workflows
//
// ExportDataset: load the stored dataset, encode it in the requested
// interchange format, and write dataset.<ext> to the export directory.
//
// ImportDataset: decode an interchange document and replace the stored
// dataset wholesale, guarded by a file lock and an optional backup of
// the previous contents.
//
// AddRecord: append a single record from raw JSON output text.
//
// ListRecords/ShowRecord: read-side views with derived content
// summaries for table rendering.
package api
