package processor

// Job pairs one input file with its output path. Jobs are built per
// operation and never persisted.
type Job struct {
	Input  string
	Output string
}

// Result represents the outcome of processing a single file.
type Result struct {
	// Input file path
	Input string

	// Output file path
	Output string

	// Output file size in bytes
	OutputSize int64

	// Trailing signature block produced by the pipeline, if any
	Signature []byte

	// Skipped marks jobs abandoned after the operation was canceled
	Skipped bool

	// Any error that occurred during processing
	Error error
}

// Summary aggregates the outcomes of one directory operation.
type Summary struct {
	Processed int
	Failed    int
	Skipped   int
	Bytes     int64
}
