package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/rs/zerolog"
)

// Option customizes a Process run.
type Option func(*processConfig)

type processConfig struct {
	progress  func(FileResult)
	ignore    gitignore.IgnoreMatcher
	tokenizer Tokenizer
	logger    zerolog.Logger
}

// WithProgress registers a callback invoked once per visited file.
func WithProgress(fn func(FileResult)) Option {
	return func(c *processConfig) { c.progress = fn }
}

// WithIgnore skips files and directories matched by m.
func WithIgnore(m gitignore.IgnoreMatcher) Option {
	return func(c *processConfig) { c.ignore = m }
}

// WithTokenizer counts the tokens of every non-empty extraction.
func WithTokenizer(tk Tokenizer) Option {
	return func(c *processConfig) { c.tokenizer = tk }
}

// WithLogger replaces the default "processor" component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *processConfig) { c.logger = l }
}

// Process mirrors sourceRoot under outputRoot, writing the extracted ASCII
// text of every file to <mirrored dir>/<name>.txt.
//
// Per-file failures are counted in Errored and never stop the walk. The only
// error returned is a *PreconditionError, raised before anything is written.
func Process(sourceRoot, outputRoot string, policy Policy, opts ...Option) (RunCounters, error) {
	cfg := processConfig{logger: GetLogger("processor")}
	for _, opt := range opts {
		opt(&cfg)
	}

	var counters RunCounters
	sourceRoot = filepath.Clean(sourceRoot)
	outputRoot = filepath.Clean(outputRoot)
	if err := checkRoots(sourceRoot, outputRoot); err != nil {
		return counters, err
	}

	cfg.logger.Info().
		Str("source", sourceRoot).
		Str("output", outputRoot).
		Bool("skipExisting", policy.SkipExisting).
		Msg("Processing started")

	// Mirrored directories that could not be created, keyed by source directory.
	failedDirs := make(map[string]error)

	err := filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == sourceRoot {
				return err
			}
			cfg.logger.Warn().Err(err).Str("path", path).Msg("Cannot read directory, skipping it")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		relPath, relErr := filepath.Rel(sourceRoot, path)
		if relErr != nil {
			return fmt.Errorf("error computing relative path for %s: %w", path, relErr)
		}

		if d.IsDir() {
			if path != sourceRoot && cfg.ignore != nil && cfg.ignore.Match(path, true) {
				return fs.SkipDir
			}
			outDir := filepath.Join(outputRoot, relPath)
			if mkErr := os.MkdirAll(outDir, 0755); mkErr != nil {
				cfg.logger.Warn().Err(mkErr).Str("path", outDir).Msg("Cannot create output directory")
				failedDirs[path] = mkErr
			}
			return nil
		}

		// os.walk semantics: a symlink to a directory is neither recursed into nor read.
		if d.Type()&fs.ModeSymlink != 0 {
			if target, statErr := os.Stat(path); statErr == nil && target.IsDir() {
				return nil
			}
		}
		if cfg.ignore != nil && cfg.ignore.Match(path, false) {
			return nil
		}

		outDir := filepath.Join(outputRoot, filepath.Dir(relPath))
		result := processFile(path, relPath, outDir, failedDirs[filepath.Dir(path)], policy, &cfg)
		counters.record(result)
		if cfg.progress != nil {
			cfg.progress(result)
		}
		return nil
	})
	if err != nil {
		return counters, &PreconditionError{Root: sourceRoot, Err: err}
	}

	cfg.logger.Info().
		Int("processed", counters.Processed).
		Int("errored", counters.Errored).
		Int("skipped", counters.Skipped).
		Msg("Processing complete")
	return counters, nil
}

// processFile handles one source file. The source handle is closed before
// the output file is opened.
func processFile(srcPath, relPath, outDir string, dirErr error, policy Policy, cfg *processConfig) FileResult {
	outPath := filepath.Join(outDir, filepath.Base(srcPath)+OutputSuffix)
	result := FileResult{
		SourcePath: srcPath,
		RelPath:    relPath,
		OutputPath: outPath,
	}

	if dirErr != nil {
		result.Outcome = OutcomeError
		result.Err = &FileWriteError{Path: outDir, Err: dirErr}
		return result
	}

	if policy.SkipExisting {
		if _, err := os.Stat(outPath); err == nil {
			result.Outcome = OutcomeSkipped
			return result
		}
	}

	// Only regular files, or symlinks to them, are read. ReadFile on a FIFO blocks.
	info, err := os.Stat(srcPath)
	if err == nil && !info.Mode().IsRegular() {
		err = fmt.Errorf("not a regular file (%s)", info.Mode().Type())
	}
	if err != nil {
		cfg.logger.Warn().Err(err).Str("path", srcPath).Msg("Cannot read source file")
		result.Outcome = OutcomeError
		result.Err = &FileReadError{Path: srcPath, Err: err}
		return result
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		cfg.logger.Warn().Err(err).Str("path", srcPath).Msg("Cannot read source file")
		result.Outcome = OutcomeError
		result.Err = &FileReadError{Path: srcPath, Err: err}
		return result
	}
	result.OriginalSize = int64(len(raw))

	text, enc := decodeWithEncoding(raw)
	if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
		cfg.logger.Warn().Err(err).Str("path", outPath).Msg("Cannot write output file")
		result.Outcome = OutcomeError
		result.Err = &FileWriteError{Path: outPath, Err: err}
		return result
	}
	result.OutputSize = int64(len(text))

	if text == "" {
		result.Outcome = OutcomeEmpty
		return result
	}
	result.Outcome = OutcomeProcessed
	if cfg.tokenizer != nil {
		result.TokenCount = cfg.tokenizer.CountTokens(text)
	}
	cfg.logger.Debug().
		Str("path", relPath).
		Str("encoding", enc).
		Int64("originalSize", result.OriginalSize).
		Int64("outputSize", result.OutputSize).
		Msg("File processed")
	return result
}

// checkRoots verifies sourceRoot is a readable directory and that outputRoot
// does not live inside it, which would write into the source tree.
func checkRoots(sourceRoot, outputRoot string) error {
	info, err := os.Stat(sourceRoot)
	if err != nil {
		return &PreconditionError{Root: sourceRoot, Err: err}
	}
	if !info.IsDir() {
		return &PreconditionError{Root: sourceRoot, Err: errors.New("not a directory")}
	}
	if _, err := os.ReadDir(sourceRoot); err != nil {
		return &PreconditionError{Root: sourceRoot, Err: err}
	}

	srcAbs, err := resolvePath(sourceRoot)
	if err != nil {
		return &PreconditionError{Root: sourceRoot, Err: err}
	}
	outAbs, err := resolvePath(outputRoot)
	if err != nil {
		return &PreconditionError{Root: sourceRoot, Err: err}
	}
	if isWithin(outAbs, srcAbs) {
		return &PreconditionError{
			Root: sourceRoot,
			Err:  fmt.Errorf("output folder %s must not be inside the source folder", outputRoot),
		}
	}
	return nil
}

// resolvePath returns an absolute path with symlinks resolved for the part
// of the path that already exists.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	existing, rest := abs, ""
	for {
		if resolved, err := filepath.EvalSymlinks(existing); err == nil {
			return filepath.Join(resolved, rest), nil
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(existing), rest)
		existing = parent
	}
}

// isWithin reports whether path equals root or lies beneath it.
func isWithin(path, root string) bool {
	sep := string(filepath.Separator)
	return path == root || strings.HasPrefix(path+sep, strings.TrimSuffix(root, sep)+sep)
}

// loadIgnore parses <root>/.gitignore. It returns nil when the file is absent.
func loadIgnore(root string) (gitignore.IgnoreMatcher, error) {
	gitIgnorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); err != nil {
		return nil, nil
	}
	matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
	if err != nil {
		return nil, fmt.Errorf("could not parse .gitignore file %s: %w", gitIgnorePath, err)
	}
	return matcher, nil
}
