// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command marquee prints recommendations for a movie title or keyword in the
// terminal, five cards per row.
//
//	marquee [-config path] [-json] [-width n] <query...>
//
// Exit status is 0 when recommendations were found, 1 when nothing matched
// and 2 on a usage or startup error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/bootstrap"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

const (
	exitOK      = 0
	exitNoMatch = 1
	exitStartup = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("marquee", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a YAML config file")
	asJSON := flags.Bool("json", false, "print the response as JSON")
	width := flags.Int("width", defaultCardWidth, "card width in columns")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: marquee [-config path] [-json] [-width n] <movie name or genre>")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return exitStartup
	}

	query := strings.Join(flags.Args(), " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(stderr, "Please enter a movie name or genre.")
		flags.Usage()
		return exitStartup
	}

	if *configPath != "" {
		if _, err := os.Stat(*configPath); errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stderr, "config file %s does not exist\n", *configPath)
			return exitStartup
		}
		if err := os.Setenv(config.ConfigPathEnvVar, *configPath); err != nil {
			fmt.Fprintf(stderr, "set %s: %v\n", config.ConfigPathEnvVar, err)
			return exitStartup
		}
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		fmt.Fprintf(stderr, "load configuration: %v\n", err)
		return exitStartup
	}

	// Progress and degradation warnings go to stderr; stdout carries only the cards.
	logging.Init(logging.Config{
		Level:     cliLogLevel(cfg.Logging.Level),
		Format:    "console",
		Timestamp: false,
		Output:    stderr,
	})

	comps, err := bootstrap.Build(ctx, cfg, logging.WithComponent("cli"))
	if err != nil {
		fmt.Fprintf(stderr, "initialize: %v\n", err)
		return exitStartup
	}
	defer func() {
		if err := comps.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing cache")
		}
	}()

	resp := comps.Service.Recommend(logging.ContextWithNewCorrelationID(ctx), query)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			fmt.Fprintf(stderr, "encode response: %v\n", err)
			return exitStartup
		}
	} else {
		fmt.Fprintln(stdout, newRenderer(*width).Render(resp))
	}

	if len(resp.Cards) == 0 {
		return exitNoMatch
	}
	return exitOK
}

// cliLogLevel keeps info-level startup chatter out of the terminal unless
// debug logging was asked for.
func cliLogLevel(level string) string {
	switch level {
	case "trace", "debug":
		return level
	default:
		return "warn"
	}
}
