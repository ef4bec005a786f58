package myload

import "context"

// Uploader bulk-loads payloads into MySQL tables.
//
// Each call stages its payload in a fresh temp file, opens one connection,
// runs one LOAD DATA LOCAL INFILE statement and removes the temp file before
// returning, whatever the outcome. Calls share no state and may run
// concurrently.
type Uploader interface {
	// UploadCSV loads a CSV buffer whose first line is a header row.
	UploadCSV(ctx context.Context, conn ConnectionConfig, req CSVUpload) (*LoadResult, error)

	// UploadColumn loads one value per row into req.Column.
	UploadColumn(ctx context.Context, conn ConnectionConfig, req ColumnUpload) (*LoadResult, error)
}
