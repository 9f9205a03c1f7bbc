// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// FetchConfig describes the one-time artifact download.
type FetchConfig struct {
	// Dir is where the artifacts live and where the archive is unpacked.
	Dir string

	// Files are the artifact file names expected in Dir.
	Files []string

	// ArchiveURL is a zip archive containing the artifacts. Empty disables downloading.
	ArchiveURL string

	// Timeout bounds the whole download.
	Timeout time.Duration

	// Client is the HTTP client to use. Defaults to http.DefaultClient.
	Client *http.Client
}

// maxArchiveEntry bounds the size of a single extracted file.
const maxArchiveEntry = 4 << 30

// EnsureArtifacts makes sure every file in cfg.Files exists in cfg.Dir,
// downloading and unpacking cfg.ArchiveURL when any is missing. It reports
// whether a download took place. Present files never trigger network I/O.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func EnsureArtifacts(ctx context.Context, cfg FetchConfig, logger zerolog.Logger) (bool, error) {
	missing := missingFiles(cfg.Dir, cfg.Files)
	if len(missing) == 0 {
		return false, nil
	}
	if cfg.ArchiveURL == "" {
		return false, fmt.Errorf("artifacts missing from %s and no archive URL configured: %v", cfg.Dir, missing)
	}

	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return false, fmt.Errorf("create artifact dir: %w", err)
	}

	logger.Info().
		Str("url", cfg.ArchiveURL).
		Strs("missing", missing).
		Msg("Downloading catalog artifacts")

	start := time.Now()
	archivePath, err := download(ctx, cfg)
	if err != nil {
		return false, err
	}
	defer os.Remove(archivePath)

	extracted, err := extractZip(archivePath, cfg.Dir)
	if err != nil {
		return false, err
	}

	if still := missingFiles(cfg.Dir, cfg.Files); len(still) > 0 {
		return true, fmt.Errorf("archive %s did not contain %v", cfg.ArchiveURL, still)
	}

	logger.Info().
		Int("files", extracted).
		Dur("duration", time.Since(start)).
		Msg("Catalog artifacts ready")
	return true, nil
}

func missingFiles(dir string, files []string) []string {
	var missing []string
	for _, name := range files {
		if _, err := os.Stat(filepath.Join(dir, name)); errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, name)
		}
	}
	return missing
}

// download streams the archive into a temporary file inside cfg.Dir.
func download(ctx context.Context, cfg FetchConfig) (string, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.ArchiveURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create archive request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download archive: unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(cfg.Dir, "artifacts-*.zip")
	if err != nil {
		return "", fmt.Errorf("create temp archive: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close archive: %w", err)
	}
	return tmp.Name(), nil
}

// extractZip unpacks the regular files of a zip archive into dir. Entry
// paths are flattened to their base names so an entry can never escape dir.
func extractZip(archivePath, dir string) (int, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	count := 0
	for _, f := range zr.File {
		if !f.Mode().IsRegular() {
			continue
		}
		name := filepath.Base(filepath.Clean(f.Name))
		if name == "." || name == ".." || name == string(filepath.Separator) {
			continue
		}
		if err := extractEntry(f, filepath.Join(dir, name)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func extractEntry(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640) //nolint:gosec // dest is dir + base name
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	n, err := io.Copy(out, io.LimitReader(rc, maxArchiveEntry+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	if n > maxArchiveEntry {
		os.Remove(dest)
		return fmt.Errorf("extract %s: entry exceeds %d bytes", f.Name, int64(maxArchiveEntry))
	}
	return nil
}
