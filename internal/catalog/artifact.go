// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

// Binary similarity artifact layout:
//
//	magic  [4]byte  "MSIM"
//	size   uint32   little-endian N
//	scores N*N      little-endian float64, row-major
var binaryMagic = [4]byte{'M', 'S', 'I', 'M'}

const (
	binaryHeaderSize = 8
	binaryScoreSize  = 8

	// maxBinarySize caps N. Scores are read one row at a time, so a
	// header larger than its body fails on the first short row.
	maxBinarySize = 1 << 16
)

// ReadMovies decodes a JSON movie table:
//
//	[{"movie_id": 19995, "title": "Avatar", "tags": "..."}]
func ReadMovies(r io.Reader) ([]Movie, error) {
	var movies []Movie
	if err := json.NewDecoder(r).Decode(&movies); err != nil {
		return nil, fmt.Errorf("decode movie table: %w", err)
	}
	if len(movies) == 0 {
		return nil, ErrEmpty
	}
	return movies, nil
}

// LoadMoviesFile reads a JSON movie table from path.
func LoadMoviesFile(path string) ([]Movie, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open movie table: %w", err)
	}
	defer f.Close()

	return ReadMovies(bufio.NewReader(f))
}

// ReadSimilarityJSON decodes a similarity matrix stored as a JSON array of rows.
func ReadSimilarityJSON(r io.Reader) (*SimilarityMatrix, error) {
	var rows [][]float64
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode similarity matrix: %w", err)
	}
	return SimilarityFromRows(rows)
}

// ReadSimilarityBinary decodes the compact binary similarity format.
func ReadSimilarityBinary(r io.Reader) (*SimilarityMatrix, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrMalformedMatrix, err)
	}
	if magic != binaryMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrMalformedMatrix, magic[:])
	}

	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("%w: read size: %w", ErrMalformedMatrix, err)
	}
	if size == 0 || size > maxBinarySize {
		return nil, fmt.Errorf("%w: size %d out of range", ErrMalformedMatrix, size)
	}

	n := int(size)
	row := make([]float64, n)
	var scores []float64
	for i := 0; i < n; i++ {
		if err := binary.Read(r, binary.LittleEndian, row); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: truncated at row %d", ErrMalformedMatrix, i)
			}
			return nil, fmt.Errorf("read scores: %w", err)
		}
		scores = append(scores, row...)
	}
	return NewSimilarityMatrix(n, scores)
}

// WriteSimilarityBinary encodes m in the compact binary format.
func WriteSimilarityBinary(w io.Writer, m *SimilarityMatrix) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(binaryMagic[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.n)); err != nil { //nolint:gosec // bounded by maxBinarySize on read
		return fmt.Errorf("write size: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, m.scores); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	return bw.Flush()
}

// LoadSimilarityFile reads a similarity matrix, choosing the decoder by
// file extension (.json or .bin).
func LoadSimilarityFile(path string) (*SimilarityMatrix, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open similarity matrix: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadSimilarityJSON(bufio.NewReader(f))
	case ".bin":
		if err := checkBinaryLength(f); err != nil {
			return nil, err
		}
		return ReadSimilarityBinary(bufio.NewReaderSize(f, 1<<20))
	default:
		return nil, fmt.Errorf("unsupported similarity format %q (want .json or .bin)", ext)
	}
}

// checkBinaryLength compares the size in the header of f with the file
// length and rewinds f to the start.
func checkBinaryLength(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat similarity matrix: %w", err)
	}
	var header [binaryHeaderSize]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return fmt.Errorf("%w: read header: %w", ErrMalformedMatrix, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind similarity matrix: %w", err)
	}

	n := int64(binary.LittleEndian.Uint32(header[4:]))
	if want := binaryHeaderSize + n*n*binaryScoreSize; info.Size() != want {
		return fmt.Errorf("%w: file is %d bytes, header declares %d", ErrMalformedMatrix, info.Size(), want)
	}
	return nil
}
