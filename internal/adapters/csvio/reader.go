// Package csvio reads the raw competition tables and writes the feature files.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// record is one data row with access by column name.
type record struct {
	path   string
	line   int
	cols   map[string]int
	fields []string
}

func (r record) str(col string) string {
	return strings.TrimSpace(r.fields[r.cols[col]])
}

func (r record) int(col string) (int, error) {
	raw := r.str(col)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s:%d: column %s: %q: %w", r.path, r.line, col, raw, ErrBadValue)
	}
	return n, nil
}

// optInt parses an integer cell, reporting false for an empty cell.
func (r record) optInt(col string) (int, bool, error) {
	if r.str(col) == "" {
		return 0, false, nil
	}
	n, err := r.int(col)
	return n, err == nil, err
}

// scan streams every data row of a CSV file to fn after checking that the
// header names every required column.
func scan(path string, required []string, fn func(record) error) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrMissingFile)
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rd := csv.NewReader(f)
	rd.ReuseRecord = true

	header, err := rd.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: empty file: %w", path, ErrMissingColumn)
		}
		return fmt.Errorf("read header %s: %w", path, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("%s: column %s: %w", path, name, ErrMissingColumn)
		}
	}

	line := 1
	for {
		fields, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("read %s:%d: %w", path, line, err)
		}
		if err := fn(record{path: path, line: line, cols: cols, fields: fields}); err != nil {
			return err
		}
	}
}
