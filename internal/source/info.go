package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Info is the precomputed shape of an original data file. It is produced by
// one full scan (Index) and reused across runs.
type Info struct {
	Path    string    `yaml:"path"`
	Rows    int       `yaml:"rows"`    // data lines, header excluded
	Columns int       `yaml:"columns"` // fields in the header line
	Size    int64     `yaml:"size"`
	ModTime time.Time `yaml:"mod_time"`
}

// ErrFieldCount is returned by Index when a line disagrees with the header.
var ErrFieldCount = errors.New("field count does not match header")

// Index scans r and counts data rows and header columns. Every data line must
// have exactly as many fields as the header.
func Index(r io.Reader, delim byte) (Info, error) {
	reader := NewReader(r, delim)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Info{}, fmt.Errorf("original file is empty: no header line")
	}
	if err != nil {
		return Info{}, fmt.Errorf("failed to read header: %w", err)
	}

	info := Info{Columns: len(header)}
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Info{}, fmt.Errorf("failed to read row %d: %w", info.Rows+1, err)
		}
		info.Rows++
		if len(fields) != info.Columns {
			return Info{}, fmt.Errorf("row %d has %d fields, header has %d: %w",
				info.Rows, len(fields), info.Columns, ErrFieldCount)
		}
	}

	return info, nil
}

// IndexFile opens path with Open and indexes it, recording the file's size
// and modification time so later runs can detect a stale info file.
func IndexFile(path string, delim byte) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to stat original file: %w", err)
	}

	rc, err := Open(path)
	if err != nil {
		return Info{}, err
	}
	defer rc.Close()

	info, err := Index(rc, delim)
	if err != nil {
		return Info{}, fmt.Errorf("failed to index %s: %w", path, err)
	}

	info.Path = path
	info.Size = st.Size()
	info.ModTime = st.ModTime().UTC()
	return info, nil
}

// Stale reports whether the file at Path no longer matches the recorded size
// or modification time. Info without a recorded size is never stale.
func (i Info) Stale() (bool, error) {
	if i.Path == "" || i.Size == 0 {
		return false, nil
	}
	st, err := os.Stat(i.Path)
	if err != nil {
		return false, fmt.Errorf("failed to stat original file: %w", err)
	}
	return st.Size() != i.Size || !st.ModTime().UTC().Equal(i.ModTime), nil
}

// SaveInfo writes info as YAML.
func SaveInfo(path string, info Info) error {
	data, err := yaml.Marshal(&info)
	if err != nil {
		return fmt.Errorf("failed to encode file info: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file info: %w", err)
	}
	return nil
}

// LoadInfo reads info previously written by SaveInfo.
func LoadInfo(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read file info: %w", err)
	}

	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return Info{}, fmt.Errorf("failed to decode file info %s: %w", path, err)
	}
	if info.Rows < 1 || info.Columns < 1 {
		return Info{}, fmt.Errorf("file info %s is incomplete: rows=%d columns=%d", path, info.Rows, info.Columns)
	}
	return info, nil
}
