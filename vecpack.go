// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package vecpack encodes word embedding dictionaries into compact,
// compressed binary artifacts and reads them back.
//
// A Store binds an artifact sink (a directory or a Badger database) to the
// encoder and inspector that work against it.
package vecpack

import (
	"fmt"
	"log/slog"

	"github.com/poiesic/vecpack/encode"
	"github.com/poiesic/vecpack/inspect"
	"github.com/poiesic/vecpack/storage"
	"github.com/poiesic/vecpack/storage/badger"
	"github.com/poiesic/vecpack/storage/fs"
)

// Sink kinds accepted by OpenStore.
const (
	KindFS     = "fs"
	KindBadger = "badger"
)

type Store struct {
	sink   storage.Sink
	kind   string
	path   string
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger handed to encoders and inspectors created by the Store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(o *storeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// OpenSink opens the artifact sink of the given kind at path.
func OpenSink(kind, path string) (storage.Sink, error) {
	return openSink(kind, path, slog.Default())
}

func openSink(kind, path string, logger *slog.Logger) (storage.Sink, error) {
	switch kind {
	case KindFS, "":
		return fs.Open(path)
	case KindBadger:
		return badger.OpenSink(path, badger.WithBackendLogger(logger))
	default:
		return nil, fmt.Errorf("unknown store kind %q (want %q or %q)", kind, KindFS, KindBadger)
	}
}

func OpenStore(kind, path string, opts ...StoreOption) (*Store, error) {
	// Apply options
	options := &storeOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	sink, err := openSink(kind, path, options.logger)
	if err != nil {
		return nil, err
	}

	if kind == "" {
		kind = KindFS
	}
	return &Store{
		sink:   sink,
		kind:   kind,
		path:   path,
		logger: options.logger,
	}, nil
}

func (s *Store) Close() error {
	if err := s.sink.Close(); err != nil {
		s.logger.Error("error closing artifact store", "kind", s.kind, "path", s.path, "err", err)
		return err
	}
	return nil
}

func (s *Store) Sink() storage.Sink {
	return s.sink
}

func (s *Store) Kind() string {
	return s.kind
}

func (s *Store) NewEncoder(config *encode.Config, opts ...encode.Option) (*encode.Encoder, error) {
	opts = append([]encode.Option{encode.WithLogger(s.logger)}, opts...)
	return encode.NewEncoder(s.sink, config, opts...)
}

func (s *Store) NewInspector(opts ...inspect.Option) (*inspect.Inspector, error) {
	opts = append([]inspect.Option{inspect.WithLogger(s.logger)}, opts...)
	return inspect.NewInspector(s.sink, opts...)
}
