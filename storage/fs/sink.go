// Package fs stores artifacts as files in a single output directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/poiesic/vecpack/storage"
)

const tempPattern = ".vecpack-*.tmp"

// Sink writes artifacts into a directory.
type Sink struct {
	dir    string
	closed atomic.Bool
}

var _ storage.Sink = (*Sink)(nil)

// Open returns a Sink rooted at dir, creating the directory if needed.
func Open(dir string) (*Sink, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &Sink{dir: dir}, nil
}

// Dir returns the output directory.
func (s *Sink) Dir() string {
	return s.dir
}

// Put writes data to a temporary file in the output directory, reads it back
// for verification and renames it into place. When any step fails, both the
// staging file and an artifact left under name by an earlier write are removed.
func (s *Sink) Put(ctx context.Context, name string, data []byte, verify storage.VerifyFunc) (err error) {
	if err := s.check(ctx, name); err != nil {
		return err
	}

	defer func() {
		if err == nil {
			return
		}
		if rmErr := os.Remove(s.path(name)); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
	}()

	tmp, err := os.CreateTemp(s.dir, tempPattern)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	if verify != nil {
		stored, readErr := os.ReadFile(tmpPath)
		if readErr != nil {
			err = readErr
			return err
		}
		if verr := verify(stored); verr != nil {
			err = fmt.Errorf("%w: %s: %w", storage.ErrVerificationFailed, name, verr)
			return err
		}
	}

	if err = os.Chmod(tmpPath, 0644); err != nil {
		return err
	}
	err = os.Rename(tmpPath, s.path(name))
	return err
}

// Get reads the artifact file.
func (s *Sink) Get(ctx context.Context, name string) ([]byte, error) {
	if err := s.check(ctx, name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	return data, err
}

// Stat returns the artifact file size.
func (s *Sink) Stat(ctx context.Context, name string) (int64, error) {
	if err := s.check(ctx, name); err != nil {
		return 0, err
	}
	info, err := os.Stat(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Delete removes the artifact file.
func (s *Sink) Delete(ctx context.Context, name string) error {
	if err := s.check(ctx, name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	return err
}

// List returns regular files in the directory whose names start with prefix.
// Staging files are skipped.
func (s *Sink) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || !strings.HasPrefix(name, prefix) || isTemp(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close marks the sink closed. Files already written are left in place.
func (s *Sink) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *Sink) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Sink) check(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}
	return storage.ValidateName(name)
}

func isTemp(name string) bool {
	return strings.HasPrefix(name, ".vecpack-") && strings.HasSuffix(name, ".tmp")
}
