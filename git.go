package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL checks if the input looks like a Git repository URL.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") || strings.HasPrefix(input, "git@")
}

// repoName returns the last path element of a Git URL without ".git".
// git@github.com:user/repo.git and https://host/user/repo.git both yield "repo".
func repoName(url string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if i := strings.LastIndex(trimmed, ":"); i >= 0 && !strings.Contains(trimmed[i:], "//") {
		trimmed = trimmed[i+1:]
	}
	name := path.Base(trimmed)
	if name == "." || name == "/" || name == "" {
		return "repo"
	}
	return name
}

// cloneGitRepo clones url into a fresh temporary directory and returns its
// path. Only the working tree is kept; the .git directory is removed so it
// is not extracted. The caller removes the directory when done.
func cloneGitRepo(url string, progress io.Writer) (string, error) {
	tempDir, err := os.MkdirTemp("", "asciix-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}
	if err := os.RemoveAll(filepath.Join(tempDir, git.GitDirName)); err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to drop git metadata from '%s': %w", tempDir, err)
	}
	return tempDir, nil
}
