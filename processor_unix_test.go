//go:build unix

package main

import (
	"errors"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_NamedPipeIsCountedAsError(t *testing.T) {
	src, out := scenarioTree(t)
	if err := syscall.Mkfifo(filepath.Join(src, "pipe"), 0644); err != nil {
		t.Skipf("mkfifo unsupported: %v", err)
	}

	type runResult struct {
		counters RunCounters
		err      error
	}
	done := make(chan runResult, 1)
	var failed []FileResult
	go func() {
		counters, err := Process(src, out, Policy{SkipExisting: true}, quiet,
			WithProgress(func(r FileResult) {
				if r.Outcome == OutcomeError {
					failed = append(failed, r)
				}
			}))
		done <- runResult{counters, err}
	}()

	var res runResult
	select {
	case res = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Process blocked on a named pipe")
	}
	require.NoError(t, res.err)

	assert.Equal(t, 2, res.counters.Processed)
	assert.Equal(t, 1, res.counters.Errored)
	require.Len(t, failed, 1)
	var readErr *FileReadError
	assert.True(t, errors.As(failed[0].Err, &readErr))
	assert.NoFileExists(t, filepath.Join(out, "pipe.txt"))
}
