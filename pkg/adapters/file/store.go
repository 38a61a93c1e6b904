// Package file stores record documents as files under one directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// DefaultExt is appended to keys that have no extension.
const DefaultExt = ".arbor"

// Extensions lists the file extensions recognized as documents.
var Extensions = []string{DefaultExt, ".json", ".yaml", ".yml"}

// Store implements ports.DocumentStore on a directory. Keys are paths
// relative to the root, with forward slashes and without the extension.
type Store struct {
	root string
}

var _ ports.DocumentStore = (*Store)(nil)

// NewStore returns a store rooted at dir. The directory is created on first Put.
func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", dir, err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute directory of the store.
func (s *Store) Root() string { return s.root }

// Get reads the document for key, trying each known extension.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	base, err := s.path(key)
	if err != nil {
		return "", err
	}
	candidates := []string{base}
	if filepath.Ext(base) == "" {
		candidates = candidates[:0]
		for _, ext := range Extensions {
			candidates = append(candidates, base+ext)
		}
	}
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", p, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, key)
}

// Put writes the document for key, creating parent directories.
func (s *Store) Put(ctx context.Context, key, text string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if filepath.Ext(p) == "" {
		p += DefaultExt
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return os.Rename(tmp, p)
}

// Delete removes every file stored for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	base, err := s.path(key)
	if err != nil {
		return err
	}
	paths := []string{base}
	if filepath.Ext(base) == "" {
		paths = paths[:0]
		for _, ext := range Extensions {
			paths = append(paths, base+ext)
		}
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", p, err)
		}
	}
	return nil
}

// List returns the keys of every document below the root.
func (s *Store) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == s.root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(p)
		if !isDocument(ext) {
			return nil
		}
		rel, err := filepath.Rel(s.root, strings.TrimSuffix(p, ext))
		if err != nil {
			return err
		}
		seen[filepath.ToSlash(rel)] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.root, err)
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// path maps key into the root, refusing keys that escape it.
func (s *Store) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty key", domain.ErrDocumentNotFound)
	}
	p := filepath.Join(s.root, filepath.FromSlash(key))
	if p != s.root && !strings.HasPrefix(p, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("key %q escapes the store root", key)
	}
	return p, nil
}

func isDocument(ext string) bool {
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
