package main

import "fmt"

// OutputSuffix is appended to every source file name to build its output name.
// report.pdf becomes report.pdf.txt; the original extension is kept.
const OutputSuffix = ".txt"

// Policy controls how existing output files are treated.
type Policy struct {
	SkipExisting bool // Leave an existing output file untouched and count it as skipped.
}

// Outcome is the result of processing a single source file.
type Outcome string

const (
	OutcomeProcessed Outcome = "processed" // Text extracted and written.
	OutcomeEmpty     Outcome = "empty"     // No text survived filtering; an empty file was written.
	OutcomeSkipped   Outcome = "skipped"   // Output already existed and the policy skips it.
	OutcomeError     Outcome = "error"     // Reading, writing or directory creation failed.
)

// FileResult holds information about one visited source file.
type FileResult struct {
	SourcePath   string  `yaml:"source"`
	RelPath      string  `yaml:"path"`
	OutputPath   string  `yaml:"output"`
	Outcome      Outcome `yaml:"outcome"`
	OriginalSize int64   `yaml:"original_size"`
	OutputSize   int64   `yaml:"output_size"`
	TokenCount   int     `yaml:"tokens,omitempty"` // Populated if token counting is enabled
	Err          error   `yaml:"-"`
}

// RunCounters holds aggregated outcome counts for one run.
// Exactly one of Processed, Errored or Skipped is incremented per visited file.
type RunCounters struct {
	Processed   int   `yaml:"processed"`
	Errored     int   `yaml:"errored"`
	Skipped     int   `yaml:"skipped"`
	InputBytes  int64 `yaml:"input_bytes"`
	OutputBytes int64 `yaml:"output_bytes"`
}

// Total returns the number of files visited.
func (c RunCounters) Total() int {
	return c.Processed + c.Errored + c.Skipped
}

// record bumps the counter matching r.Outcome.
func (c *RunCounters) record(r FileResult) {
	switch r.Outcome {
	case OutcomeProcessed, OutcomeEmpty:
		c.Processed++
		c.InputBytes += r.OriginalSize
		c.OutputBytes += r.OutputSize
	case OutcomeSkipped:
		c.Skipped++
	default:
		c.Errored++
	}
}

// PreconditionError reports that the source root cannot be processed at all.
type PreconditionError struct {
	Root string
	Err  error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("source folder %s is not usable: %v", e.Root, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// FileReadError reports a source file that could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// FileWriteError reports an output file or directory that could not be created.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("error saving %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }
