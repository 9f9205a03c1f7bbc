// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command catalogctl prepares catalog artifacts.
//
//	catalogctl convert -in similarity.json -out similarity.bin
//	catalogctl seed-mongo [-config path]
//
// convert re-encodes a similarity matrix; the format follows each file's
// extension. seed-mongo loads the file artifacts named by the configuration
// and replaces the MongoDB collections with them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/bootstrap"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

const usage = `usage:
  catalogctl convert -in <matrix.json|matrix.bin> -out <matrix.json|matrix.bin>
  catalogctl seed-mongo [-config path]`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	switch args[0] {
	case "convert":
		return runConvert(args[1:], stderr)
	case "seed-mongo":
		return runSeedMongo(ctx, args[1:], stderr)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func runConvert(args []string, stderr io.Writer) error {
	flags := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags.SetOutput(stderr)
	in := flags.String("in", "", "source similarity matrix (.json or .bin)")
	out := flags.String("out", "", "destination similarity matrix (.json or .bin)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return errors.New("convert: -in and -out are required")
	}

	m, err := catalog.LoadSimilarityFile(*in)
	if err != nil {
		return err
	}
	if err := writeSimilarityFile(*out, m); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "wrote %dx%d matrix to %s\n", m.Size(), m.Size(), *out)
	return nil
}

func writeSimilarityFile(path string, m *catalog.SimilarityMatrix) (err error) {
	f, err := os.Create(path) //nolint:gosec // operator-supplied output path
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".bin":
		return catalog.WriteSimilarityBinary(f, m)
	case ".json":
		rows := make([][]float64, m.Size())
		for i := range rows {
			rows[i] = m.Row(i)
		}
		return json.NewEncoder(f).Encode(rows)
	default:
		return fmt.Errorf("unsupported similarity format %q (want .json or .bin)", ext)
	}
}

func runSeedMongo(ctx context.Context, args []string, stderr io.Writer) error {
	flags := flag.NewFlagSet("seed-mongo", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a YAML config file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *configPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, *configPath); err != nil {
			return err
		}
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Catalog.MongoURI == "" {
		return errors.New("seed-mongo: MONGO_URI is required")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: "console", Timestamp: true, Output: stderr})
	logger := logging.WithComponent("catalogctl")

	// Read from the file artifacts regardless of the configured source.
	fileCfg := cfg.Catalog
	fileCfg.Source = config.CatalogSourceFile
	cat, err := bootstrap.LoadCatalog(ctx, &fileCfg, logger)
	if err != nil {
		return err
	}

	if cfg.Catalog.MongoTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Catalog.MongoTimeout)
		defer cancel()
	}
	src, err := catalog.ConnectMongo(ctx, bootstrap.MongoConfig(&cfg.Catalog))
	if err != nil {
		return err
	}
	defer src.Close(context.WithoutCancel(ctx))

	start := time.Now()
	if err := src.Store(ctx, cat); err != nil {
		return err
	}
	logger.Info().
		Int("movies", cat.Len()).
		Str("database", cfg.Catalog.MongoDatabase).
		Dur("duration", time.Since(start)).
		Msg("Seeded MongoDB catalog")
	return nil
}
