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


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/vecpack/compress"
	"github.com/poiesic/vecpack/core"
	"github.com/poiesic/vecpack/encode"
	"github.com/urfave/cli/v2"
)

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "dir",
			Aliases:  []string{"d"},
			Usage:    "Artifact directory (or Badger database directory)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Artifact store kind (fs, badger)",
			Value: "fs",
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "vecpack",
		Usage: "Pack word embeddings into compressed binary artifacts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "encode",
				Usage:  "Encode a JSON embeddings file into chunk or per-word artifacts",
				Action: encodeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Path to the JSON embeddings file",
						Value:   "concept_embeds.json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (or Badger database directory)",
						Value:   "public/data/embeddings_chunks",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "YAML config file; flags override its values",
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Artifact layout (chunked, word)",
						Value: "chunked",
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Entries per chunk artifact",
						Value: encode.DefaultChunkSize,
					},
					&cli.IntFlag{
						Name:  "level",
						Usage: "Compression level",
						Value: compress.DefaultLevel,
					},
					&cli.IntFlag{
						Name:  "width",
						Usage: "Float width in bits (16, 32); defaults to 16 for chunked and 32 for word mode",
					},
					&cli.StringFlag{
						Name:  "codec",
						Usage: "Compression codec (" + strings.Join(compress.Names(), ", ") + "); defaults to gzip for chunked and deflate for word mode",
					},
					&cli.IntFlag{
						Name:  "dimension",
						Usage: "Expected vector length; 0 adopts the first valid entry's length",
						Value: core.DefaultDimension,
					},
					&cli.BoolFlag{
						Name:  "verify",
						Usage: "Read back and verify every artifact",
						Value: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of artifacts processed concurrently",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entries",
						Value: encode.DefaultReportInterval,
					},
					&cli.IntFlag{
						Name:  "max-errors",
						Usage: "Number of error messages shown in the summary",
						Value: encode.DefaultMaxErrors,
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Fail when a value is not an array of numbers instead of skipping it",
					},
					&cli.StringFlag{
						Name:  "store",
						Usage: "Artifact store kind (fs, badger)",
						Value: "fs",
					},
				},
			},
			{
				Name:      "inspect",
				Usage:     "Decode artifact files and print their contents",
				ArgsUsage: "FILE...",
				Action:    inspectCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "width",
						Usage: "Float width in bits (16, 32); inferred when omitted",
					},
					&cli.IntFlag{
						Name:  "head",
						Usage: "Number of vector components to print",
						Value: 8,
					},
				},
			},
			{
				Name:      "lookup",
				Usage:     "Find a word by scanning chunk artifacts in order",
				ArgsUsage: "WORD",
				Action:    lookupCommand,
				Flags: append(storeFlags(),
					&cli.IntFlag{
						Name:  "width",
						Usage: "Float width in bits (16, 32)",
					},
					&cli.IntFlag{
						Name:  "head",
						Usage: "Number of vector components to print",
						Value: 8,
					},
				),
			},
			{
				Name:      "similarity",
				Usage:     "Print the cosine similarity of two stored words",
				ArgsUsage: "WORD1 WORD2",
				Action:    similarityCommand,
				Flags: append(storeFlags(),
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Artifact layout to read (chunked, word)",
						Value: "word",
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Count stored artifacts and their total size",
				Action: statsCommand,
				Flags:  storeFlags(),
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
