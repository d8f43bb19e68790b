// Package verifier checks a directory of generated sets against their
// ordinal sidecars.
package verifier

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/setmaker/internal/logger"
)

// VerificationMethod defines how thoroughly sets are checked.
type VerificationMethod string

const (
	// MethodCount checks line counts, field counts and ordinals (fast)
	MethodCount VerificationMethod = "count"
	// MethodSHA256 additionally records a digest of every data file
	MethodSHA256 VerificationMethod = "sha256"
)

const (
	rowOrdinalsSuffix    = "-row-ordinals"
	columnOrdinalsSuffix = "-column-ordinals"
	trainingPrefix       = "training-set-"
	validationPrefix     = "validation-set-"
)

// Options describes how the sets were generated. A zero Case or Outcome
// means the column was absent.
type Options struct {
	Case    int
	Outcome int
	Header  bool
}

// VerifyResult holds verification results for a single set.
type VerifyResult struct {
	Set          string
	Lines        int
	Ordinals     int
	Fields       int
	Columns      []int
	Hash         string
	Match        bool
	ErrorMessage string
}

// VerifyStats contains overall verification statistics.
type VerifyStats struct {
	SetsVerified int
	SetsPassed   int
	SetsFailed   int
	TotalLines   int64
	Method       VerificationMethod
}

// Report lists set results in discovery order.
type Report = orderedmap.OrderedMap[string, *VerifyResult]

// Verifier checks the sets found in one output directory.
type Verifier struct {
	dir    string
	method VerificationMethod
	opts   Options
	logger *logger.Logger
}

// NewVerifier creates a verifier for the sets in dir.
func NewVerifier(dir string, method VerificationMethod, opts Options, log *logger.Logger) (*Verifier, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is empty")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	if method == "" {
		method = MethodCount
	}
	if method != MethodCount && method != MethodSHA256 {
		return nil, fmt.Errorf("unsupported verification method: %s", method)
	}

	return &Verifier{
		dir:    dir,
		method: method,
		opts:   opts,
		logger: log,
	}, nil
}

// Discover returns the stems of every set that has a row ordinal sidecar,
// sorted by kind and then set number.
func (v *Verifier) Discover() ([]string, error) {
	entries, err := os.ReadDir(v.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var stems []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), rowOrdinalsSuffix) {
			continue
		}
		stems = append(stems, strings.TrimSuffix(e.Name(), rowOrdinalsSuffix))
	}

	sort.Slice(stems, func(i, j int) bool {
		pi, ni := splitStem(stems[i])
		pj, nj := splitStem(stems[j])
		if pi != pj {
			return pi < pj
		}
		return ni < nj
	})
	return stems, nil
}

// Verify checks every discovered set. Every set is checked even after a
// failure; the returned error summarises all mismatches.
func (v *Verifier) Verify(ctx context.Context) (*Report, *VerifyStats, error) {
	stems, err := v.Discover()
	if err != nil {
		return nil, nil, err
	}

	report := orderedmap.NewOrderedMap[string, *VerifyResult]()
	stats := &VerifyStats{Method: v.method}

	v.logger.Infof("Starting verification (method=%s) for %d sets", v.method, len(stems))

	rows := make(map[string][]int, len(stems))
	for _, stem := range stems {
		if err := ctx.Err(); err != nil {
			return report, stats, fmt.Errorf("verification interrupted: %w", err)
		}

		result, ordinals := v.verifySet(stem)
		rows[stem] = ordinals
		report.Set(stem, result)
	}

	// Pairs are checked once both halves are known.
	for el := report.Front(); el != nil; el = el.Next() {
		if !strings.HasPrefix(el.Key, validationPrefix) || !el.Value.Match {
			continue
		}
		training := trainingPrefix + strings.TrimPrefix(el.Key, validationPrefix)
		tr, ok := report.Get(training)
		if !ok || !tr.Match {
			continue
		}
		if row, overlap := intersect(rows[training], rows[el.Key]); overlap {
			fail(tr, "row %d also appears in %s", row, el.Key)
			fail(el.Value, "row %d also appears in %s", row, training)
		}
	}

	for el := report.Front(); el != nil; el = el.Next() {
		r := el.Value
		stats.SetsVerified++
		stats.TotalLines += int64(r.Lines)
		if r.Match {
			stats.SetsPassed++
			v.logger.Debugf("Verification PASSED for set %q (%d lines)", r.Set, r.Lines)
		} else {
			stats.SetsFailed++
			v.logger.Errorf("Verification FAILED for set %q: %s", r.Set, r.ErrorMessage)
		}
	}

	v.logger.Infof("Verification complete: %d sets verified, %d passed, %d failed, %d total lines",
		stats.SetsVerified, stats.SetsPassed, stats.SetsFailed, stats.TotalLines)

	if stats.SetsFailed > 0 {
		return report, stats, fmt.Errorf("verification failed: %d sets had mismatches", stats.SetsFailed)
	}
	return report, stats, nil
}

func (v *Verifier) verifySet(stem string) (*VerifyResult, []int) {
	result := &VerifyResult{Set: stem, Match: true}

	rows, err := readOrdinals(filepath.Join(v.dir, stem+rowOrdinalsSuffix))
	if err != nil {
		fail(result, "%v", err)
		return result, nil
	}
	result.Ordinals = len(rows)
	if i := firstUnsorted(rows); i >= 0 {
		fail(result, "row ordinal %d on line %d is not greater than the previous one", rows[i], i+1)
		return result, rows
	}

	columns, err := v.setColumns(stem)
	if err != nil {
		fail(result, "%v", err)
		return result, rows
	}
	result.Columns = columns
	for _, c := range columns {
		if c == v.opts.Case || c == v.opts.Outcome {
			fail(result, "column ordinal %d is the case or outcome column", c)
			return result, rows
		}
	}

	if err := v.checkData(stem, rows, result); err != nil {
		fail(result, "%v", err)
	}
	return result, rows
}

// setColumns returns the column ordinals of a set. Training sets share the
// column sidecar of their validation set.
func (v *Verifier) setColumns(stem string) ([]int, error) {
	source := stem
	if strings.HasPrefix(stem, trainingPrefix) {
		source = validationPrefix + strings.TrimPrefix(stem, trainingPrefix)
	}

	path := filepath.Join(v.dir, source+columnOrdinalsSuffix)
	columns, err := readOrdinals(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("column ordinal %d is listed twice in %s", c, filepath.Base(path))
		}
		seen[c] = struct{}{}
	}
	return columns, nil
}

func (v *Verifier) checkData(stem string, rows []int, result *VerifyResult) error {
	f, err := os.Open(filepath.Join(v.dir, stem+".csv"))
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	hash := sha256.New()
	if v.method == MethodSHA256 {
		r = io.TeeReader(f, hash)
	}

	// Without a case column the first field is the row ordinal.
	ordinalCase := v.opts.Case == 0 && !strings.HasPrefix(stem, trainingPrefix) &&
		!strings.HasPrefix(stem, validationPrefix)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 64<<20)
	line := 0
	for sc.Scan() {
		line++
		if line == 1 && v.opts.Header {
			continue
		}
		fields := strings.Split(sc.Text(), ",")

		if result.Fields == 0 {
			result.Fields = len(fields)
		} else if len(fields) != result.Fields {
			return fmt.Errorf("line %d has %d fields, expected %d", line, len(fields), result.Fields)
		}

		if ordinalCase && result.Lines < len(rows) && fields[0] != strconv.Itoa(rows[result.Lines]) {
			return fmt.Errorf("line %d starts with %q, expected row ordinal %d", line, fields[0], rows[result.Lines])
		}
		result.Lines++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}

	if result.Lines != len(rows) {
		return fmt.Errorf("data file has %d lines, row ordinal file lists %d", result.Lines, len(rows))
	}
	if result.Columns != nil && result.Lines > 0 {
		want := 1 + len(result.Columns)
		if v.opts.Outcome != 0 {
			want++
		}
		if result.Fields != want {
			return fmt.Errorf("data lines have %d fields, expected %d", result.Fields, want)
		}
	}

	if v.method == MethodSHA256 {
		result.Hash = hex.EncodeToString(hash.Sum(nil))
	}
	return nil
}

func fail(r *VerifyResult, format string, args ...interface{}) {
	r.Match = false
	if r.ErrorMessage == "" {
		r.ErrorMessage = fmt.Sprintf(format, args...)
	}
}

func readOrdinals(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []int
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("line %d of %s is not an ordinal: %q", line, filepath.Base(path), text)
		}
		out = append(out, n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// firstUnsorted returns the index of the first ordinal not strictly greater
// than its predecessor, or -1.
func firstUnsorted(ordinals []int) int {
	for i := 1; i < len(ordinals); i++ {
		if ordinals[i] <= ordinals[i-1] {
			return i
		}
	}
	return -1
}

// intersect reports the first value present in both ascending slices.
func intersect(a, b []int) (int, bool) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return a[i], true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return 0, false
}

// splitStem splits "validation-set-12" into ("validation-set-", 12).
func splitStem(stem string) (string, int) {
	i := strings.LastIndexByte(stem, '-')
	if i < 0 {
		return stem, 0
	}
	n, err := strconv.Atoi(stem[i+1:])
	if err != nil {
		return stem, 0
	}
	return stem[:i+1], n
}
