package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// ErrValueTooLarge indicates an artifact that cannot be stored as a single
// Badger value with the backend's table and value log sizes.
var ErrValueTooLarge = errors.New("artifact exceeds badger value size limit")

// entryOverhead covers the per-entry metadata and key version suffix Badger
// counts against a transaction.
const entryOverhead = 64

// Backend wraps a BadgerDB instance and tracks the size limits that apply to
// artifact values.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger

	inMemory         bool
	valueThreshold   int64
	valueLogFileSize int64
}

// BackendOption configures OpenBackend.
type BackendOption func(*backendOptions)

type backendOptions struct {
	logger           *slog.Logger
	valueLogFileSize int64
}

// WithBackendLogger routes Badger's internal log output to logger.
func WithBackendLogger(logger *slog.Logger) BackendOption {
	return func(o *backendOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// withValueLogFileSize sets the value log file size, the hard upper bound on
// any single artifact stored on disk. Badger accepts [1MB, 2GB).
func withValueLogFileSize(size int64) BackendOption {
	return func(o *backendOptions) {
		if size > 0 {
			o.valueLogFileSize = size
		}
	}
}

// slogAdapter forwards Badger log lines to slog. Badger's info output is
// demoted to debug; it reports compactions and flushes, not artifact writes.
type slogAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*slogAdapter)(nil)

func (a *slogAdapter) log(level slog.Level, msg string, items []any) {
	a.logger.Log(context.Background(), level, fmt.Sprintf(msg, items...), "component", "badger")
}

func (a *slogAdapter) Errorf(msg string, items ...any)   { a.log(slog.LevelError, msg, items) }
func (a *slogAdapter) Warningf(msg string, items ...any) { a.log(slog.LevelWarn, msg, items) }
func (a *slogAdapter) Infof(msg string, items ...any)    { a.log(slog.LevelDebug, msg, items) }
func (a *slogAdapter) Debugf(msg string, items ...any)   { a.log(slog.LevelDebug, msg, items) }

// OpenBackend opens a BadgerDB database at path, creating the directory if
// needed. With inMemory set, path must be empty and nothing touches disk.
func OpenBackend(path string, inMemory bool, opts ...BackendOption) (*Backend, error) {
	o := &backendOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	var bopts badger.Options
	if inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("create artifact database directory: %w", err)
		}
		bopts = badger.DefaultOptions(path)
	}
	if o.valueLogFileSize > 0 {
		bopts = bopts.WithValueLogFileSize(o.valueLogFileSize)
	}

	// Artifacts arrive already compressed.
	bopts.Compression = options.None
	bopts.Logger = &slogAdapter{logger: o.logger}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("opened artifact database", "path", path, "in_memory", inMemory,
		"value_log_file_size", bopts.ValueLogFileSize)

	return &Backend{
		db:               db,
		logger:           o.logger,
		inMemory:         inMemory,
		valueThreshold:   bopts.ValueThreshold,
		valueLogFileSize: bopts.ValueLogFileSize,
	}, nil
}

// MaxValueSize returns the largest value that can be stored under a key of
// keyLen bytes.
//
// On disk, values at or above the value threshold go to the value log and are
// capped by its file size. In-memory databases have no value log, so values
// must stay below the threshold and fit the transaction batch limit.
func (b *Backend) MaxValueSize(keyLen int) int64 {
	if !b.inMemory {
		return b.valueLogFileSize
	}
	return min(b.valueThreshold-1, b.db.MaxBatchSize()-int64(keyLen)-entryOverhead)
}

func (b *Backend) checkValueSize(key, value []byte) error {
	if limit := b.MaxValueSize(len(key)); int64(len(value)) > limit {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrValueTooLarge, len(value), limit)
	}
	return nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}
