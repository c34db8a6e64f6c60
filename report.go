package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Report is the YAML document written by --report.
type Report struct {
	Source       string       `yaml:"source"`
	Output       string       `yaml:"output"`
	SkipExisting bool         `yaml:"skip_existing"`
	GeneratedAt  time.Time    `yaml:"generated_at"`
	Counters     RunCounters  `yaml:"counters"`
	Files        []reportFile `yaml:"files"`
}

type reportFile struct {
	FileResult `yaml:",inline"`
	Error      string `yaml:"error,omitempty"`
}

// newReport assembles a report for one run.
func newReport(source, output string, policy Policy, counters RunCounters, results []FileResult) Report {
	files := make([]reportFile, 0, len(results))
	for _, r := range results {
		entry := reportFile{FileResult: r}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		files = append(files, entry)
	}
	return Report{
		Source:       source,
		Output:       output,
		SkipExisting: policy.SkipExisting,
		GeneratedAt:  time.Now().UTC(),
		Counters:     counters,
		Files:        files,
	}
}

// writeReport marshals r to path, creating parent directories as needed.
func writeReport(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("error encoding report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing report %s: %w", path, err)
	}
	return nil
}
