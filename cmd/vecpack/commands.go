package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/poiesic/vecpack"
	"github.com/poiesic/vecpack/config"
	"github.com/poiesic/vecpack/core"
	"github.com/poiesic/vecpack/dataset"
	"github.com/poiesic/vecpack/encode"
	"github.com/poiesic/vecpack/inspect"
	"github.com/urfave/cli/v2"
)

// loadConfig reads the optional config file and applies flags that were set
// explicitly on the command line.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if c.IsSet("input") || c.String("config") == "" {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") || c.String("config") == "" {
		cfg.Output = c.String("output")
	}
	if c.IsSet("store") {
		cfg.Store = c.String("store")
	}
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}

	e := &cfg.Encode
	if c.IsSet("mode") {
		e.Mode = c.String("mode")
		// A new mode brings its own width and codec unless given too
		e.Width = int(encode.DefaultWidth(core.Mode(e.Mode)))
		e.Codec = encode.DefaultCodec(core.Mode(e.Mode))
	}
	if c.IsSet("chunk-size") {
		e.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("width") {
		e.Width = c.Int("width")
	}
	if c.IsSet("codec") {
		e.Codec = c.String("codec")
	}
	if c.IsSet("level") {
		level := c.Int("level")
		e.Level = &level
	}
	if c.IsSet("dimension") {
		dim := c.Int("dimension")
		e.Dimension = &dim
	}
	if c.IsSet("verify") {
		verify := c.Bool("verify")
		e.Verify = &verify
	}
	if c.IsSet("workers") {
		e.Workers = c.Int("workers")
	}
	if c.IsSet("report-interval") {
		e.ReportInterval = c.Int("report-interval")
	}
	if c.IsSet("max-errors") {
		maxErrors := c.Int("max-errors")
		e.MaxErrors = &maxErrors
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func encodeCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	encodeConfig := cfg.EncodeConfig()

	// Load the whole source before anything is written
	entries, err := dataset.Load(cfg.Input, dataset.Options{Strict: cfg.Strict})
	if err != nil {
		return err
	}

	store, err := vecpack.OpenStore(cfg.Store, cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	defer store.Close()

	enc, err := store.NewEncoder(encodeConfig, encode.WithProgress(os.Stderr))
	if err != nil {
		return err
	}

	resolved := enc.Config()
	slog.Debug("resolved encode config", "mode", resolved.Mode, "width", resolved.Width,
		"codec", resolved.Codec, "level", resolved.Level, "chunk_size", resolved.ChunkSize,
		"dimension", resolved.Dimension, "verify", resolved.Verify, "workers", resolved.Workers)

	fmt.Fprintf(os.Stderr, "Input: %s\n", cfg.Input)
	fmt.Fprintf(os.Stderr, "Output: %s (%s)\n", cfg.Output, store.Kind())
	fmt.Fprintln(os.Stderr)

	summary, err := enc.Run(ctx, entries)
	if err != nil {
		return fmt.Errorf("encoding failed: %w", err)
	}

	// Per-entry failures are reported, not turned into an exit status
	summary.Report(os.Stderr, resolved.MaxErrors)
	return nil
}

func parseWidth(c *cli.Context) (core.FloatWidth, error) {
	if !c.IsSet("width") {
		return 0, nil
	}
	return core.ParseFloatWidth(c.Int("width"))
}

func printVector(label string, vec []float32, head int) {
	shown := vec
	if head >= 0 && len(vec) > head {
		shown = vec[:head]
	}
	fmt.Printf("%s length=%d values=%v", label, len(vec), shown)
	if len(shown) < len(vec) {
		fmt.Printf(" ... (%d more)", len(vec)-len(shown))
	}
	fmt.Println()
}

func inspectCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one artifact file is required")
	}
	width, err := parseWidth(c)
	if err != nil {
		return err
	}
	head := c.Int("head")

	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		artifact, err := inspect.Decode(filepath.Base(path), data, width)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s, %s, float%d, %d bytes stored, %d bytes decompressed\n",
			path, artifact.Kind, artifact.Codec, artifact.Width, artifact.StoredSize, artifact.PayloadSize)
		if artifact.Kind == inspect.KindRecord {
			printVector("  vector", artifact.Vector, head)
			continue
		}
		fmt.Printf("  %d entries\n", len(artifact.Entries))
		for _, entry := range artifact.Entries {
			printVector(fmt.Sprintf("  %q", entry.Word), entry.Vector, head)
		}
	}
	return nil
}

func openInspector(c *cli.Context, opts ...inspect.Option) (*vecpack.Store, *inspect.Inspector, error) {
	store, err := vecpack.OpenStore(c.String("store"), c.String("dir"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open artifacts: %w", err)
	}
	insp, err := store.NewInspector(opts...)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, insp, nil
}

func lookupCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one word is required")
	}
	width, err := parseWidth(c)
	if err != nil {
		return err
	}

	store, insp, err := openInspector(c, inspect.WithWidth(width))
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := insp.Lookup(c.Context, c.Args().First())
	if err != nil {
		return err
	}

	fmt.Printf("%q found in chunk %d (%s) after scanning %d chunks\n",
		result.Word, result.Chunk, result.Name, result.Scanned)
	printVector("  vector", result.Vector, c.Int("head"))
	return nil
}

func similarityCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("exactly two words are required")
	}
	mode, err := core.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	store, insp, err := openInspector(c)
	if err != nil {
		return err
	}
	defer store.Close()

	a, b := c.Args().Get(0), c.Args().Get(1)
	sim, err := insp.Similarity(c.Context, a, b, mode)
	if err != nil {
		return err
	}

	fmt.Printf("similarity(%q, %q) = %.6f\n", a, b, sim)
	return nil
}

func statsCommand(c *cli.Context) error {
	store, insp, err := openInspector(c)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := insp.Stats(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Word artifacts:  %d (%d bytes)\n", stats.WordArtifacts, stats.WordBytes)
	fmt.Printf("Chunk artifacts: %d (%d bytes)\n", stats.ChunkArtifacts, stats.ChunkBytes)
	if stats.OtherArtifacts > 0 {
		fmt.Printf("Other files:     %d (%d bytes)\n", stats.OtherArtifacts, stats.OtherBytes)
	}
	fmt.Printf("Total:           %d (%d bytes)\n", stats.Total(), stats.TotalBytes())
	return nil
}
