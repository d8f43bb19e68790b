// Package source reads the original data file: plain, gzip or zip input,
// line-by-line field splitting, and the precomputed row/column counts.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// Open returns a reader over the original data file.
//
// A ".zip" archive must contain a member named like the archive, without its
// directory and with a ".csv" extension. A ".gz" file is read as one gzip
// stream. Anything else is read as plain text.
func Open(path string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return openZip(path)
	case ".gz":
		return openGzip(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open original file: %w", err)
		}
		return f, nil
	}
}

// ZipMemberName returns the member expected inside a zip archive.
func ZipMemberName(archive string) string {
	base := filepath.Base(archive)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
}

type zipMember struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (z *zipMember) Close() error {
	err := z.ReadCloser.Close()
	if cerr := z.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

func openZip(path string) (io.ReadCloser, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive %s: %w", path, err)
	}

	member := ZipMemberName(path)
	for _, f := range archive.File {
		if f.Name != member {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			archive.Close()
			return nil, fmt.Errorf("failed to open member %s of zip archive %s: %w", member, path, err)
		}
		return &zipMember{ReadCloser: rc, archive: archive}, nil
	}

	archive.Close()
	return nil, fmt.Errorf("zip archive %s has no member named %s", path, member)
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if cerr := g.file.Close(); err == nil {
		err = cerr
	}
	return err
}

func openGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open original file: %w", err)
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read gzip header of %s: %w", path, err)
	}

	return &gzipFile{Reader: zr, file: f}, nil
}
