package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/vecpack/storage"
)

// Sink stores artifacts as values in a BadgerDB database.
type Sink struct {
	backend *Backend
}

var _ storage.Sink = (*Sink)(nil)

// NewSink creates a Sink on top of backend. The sink owns the backend
// and closes it on Close.
func NewSink(backend *Backend) *Sink {
	return &Sink{backend: backend}
}

// OpenSink opens (or creates) a Badger database at path and wraps it in a Sink.
func OpenSink(path string, opts ...BackendOption) (*Sink, error) {
	backend, err := OpenBackend(path, false, opts...)
	if err != nil {
		return nil, err
	}
	return NewSink(backend), nil
}

// Put writes data and reads it back within one transaction.
// The transaction commits only when verify accepts the stored bytes. On any
// failure the value previously stored under name is deleted as well.
func (s *Sink) Put(ctx context.Context, name string, data []byte, verify storage.VerifyFunc) error {
	if err := s.check(ctx, name); err != nil {
		return err
	}

	key := makeArtifactKey(name)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if err := s.backend.checkValueSize(key, data); err != nil {
			return err
		}
		if err := tx.Set(key, data); err != nil {
			return err
		}
		if verify != nil {
			item, err := tx.Get(key)
			if err != nil {
				return err
			}
			stored, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := verify(stored); err != nil {
				return fmt.Errorf("%w: %s: %w", storage.ErrVerificationFailed, name, err)
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		if derr := s.remove(key); derr != nil {
			return errors.Join(err, derr)
		}
		s.backend.logger.Debug("removed artifact after failed write", "name", name, "err", err)
	}
	return err
}

// remove deletes key if present.
func (s *Sink) remove(key []byte) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Get returns a copy of the artifact stored under name.
func (s *Sink) Get(ctx context.Context, name string) ([]byte, error) {
	if err := s.check(ctx, name); err != nil {
		return nil, err
	}

	var data []byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeArtifactKey(name))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	}, false)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	return data, err
}

// Stat returns the stored size of the artifact under name.
func (s *Sink) Stat(ctx context.Context, name string) (int64, error) {
	if err := s.check(ctx, name); err != nil {
		return 0, err
	}

	var size int64
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeArtifactKey(name))
		if err != nil {
			return err
		}
		size = item.ValueSize()
		return nil
	}, false)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	return size, err
}

// Delete removes the artifact under name.
func (s *Sink) Delete(ctx context.Context, name string) error {
	if err := s.check(ctx, name); err != nil {
		return err
	}

	key := makeArtifactKey(name)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := tx.Get(key); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, name)
	}
	return err
}

// List returns the names of all artifacts starting with prefix.
func (s *Sink) List(ctx context.Context, prefix string) ([]string, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var names []string
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeArtifactKey(prefix)

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := artifactName(it.Item().KeyCopy(nil))
			if strings.HasPrefix(name, prefix) {
				names = append(names, name)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

// Close closes the underlying database.
func (s *Sink) Close() error {
	if s.backend.IsClosed() {
		return nil
	}
	return s.backend.Close()
}

func (s *Sink) check(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return storage.ValidateName(name)
}
