package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// listDirectories returns root and every non-hidden directory beneath it.
func listDirectories(root string) ([]string, error) {
	candidates := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Unreadable entries are simply not offered
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return fs.SkipDir
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for directories: %w", err)
	}
	return candidates, nil
}

// runInteractiveFinder lets the user pick a directory below root with a
// fuzzy finder. It returns "" with a nil error when the user aborts.
func runInteractiveFinder(root, prompt string) (string, error) {
	candidates, err := listDirectories(root)
	if err != nil {
		return "", err
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPromptString(prompt+"> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select a folder. Press Enter to confirm, Esc to cancel."
			}
			return previewDirectory(candidates[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}

// previewDirectory summarizes the direct contents of dir.
func previewDirectory(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Sprintf("Path: %s\nError reading folder: %v", dir, err)
	}
	var files, dirs int
	for _, e := range entries {
		if e.IsDir() {
			dirs++
		} else {
			files++
		}
	}
	return fmt.Sprintf("Path: %s\nFiles: %d\nSubfolders: %d", dir, files, dirs)
}

// isHidden reports whether a base name starts with '.'.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}
