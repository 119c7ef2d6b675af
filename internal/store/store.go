// Package store loads unreleased change fragments from disk. Each fragment
// lives in its own YAML file under <changes-dir>/unreleased, and files are
// read in name order so the fragment sequence is deterministic.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/raveheart1/changeset/internal/changelog"
)

// UnreleasedDirName is the subdirectory of the changes directory that holds
// fragments not yet batched into a release.
const UnreleasedDirName = "unreleased"

// maxConcurrentReads bounds the number of fragment files decoded in parallel.
const maxConcurrentReads = 8

// FragmentFileError wraps a read or decode failure with the file path.
type FragmentFileError struct {
	Path string
	Err  error
}

func (e *FragmentFileError) Error() string {
	return fmt.Sprintf("fragment file %s: %v", e.Path, e.Err)
}

func (e *FragmentFileError) Unwrap() error {
	return e.Err
}

// Store reads change fragments from a changes directory.
type Store struct {
	dir string
}

// New creates a Store over the given changes directory (e.g. ".changeset").
func New(changesDir string) *Store {
	return &Store{dir: changesDir}
}

// UnreleasedDir returns the directory holding unreleased fragment files.
func (s *Store) UnreleasedDir() string {
	return filepath.Join(s.dir, UnreleasedDirName)
}

// Unreleased loads all unreleased fragments in file name order. Files are
// decoded concurrently but results are placed by index, so the returned
// order is stable. A missing unreleased directory is not an error: it means
// there is nothing to release, which is a valid header-only document.
func (s *Store) Unreleased(ctx context.Context) ([]changelog.Fragment, error) {
	paths, err := s.fragmentPaths()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	frags := make([]changelog.Fragment, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frag, err := readFragment(path)
			if err != nil {
				return err
			}
			frags[i] = frag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return frags, nil
}

// fragmentPaths lists fragment files under the unreleased directory, sorted
// by name (os.ReadDir already sorts).
func (s *Store) fragmentPaths() ([]string, error) {
	dir := s.UnreleasedDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading unreleased directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isFragmentFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// isFragmentFile reports whether a file name looks like a fragment file.
func isFragmentFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

// readFragment decodes one fragment file.
func readFragment(path string) (changelog.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return changelog.Fragment{}, &FragmentFileError{Path: path, Err: err}
	}

	var frag changelog.Fragment
	if err := yaml.Unmarshal(data, &frag); err != nil {
		return changelog.Fragment{}, &FragmentFileError{Path: path, Err: err}
	}
	return frag, nil
}
