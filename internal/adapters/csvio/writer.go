package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Table is one CSV file to write.
type Table struct {
	Path    string
	Header  []string
	Records [][]string
}

// WriteTable writes header and records to path. The file appears complete
// or not at all: rows go to a temp file in the same directory which is then
// renamed over path.
func WriteTable(path string, header []string, records [][]string) error {
	return WriteTables(Table{Path: path, Header: header, Records: records})
}

// WriteTables writes every table to a temp file first and renames them into
// place only once all were written, so a failure leaves no target replaced.
func WriteTables(tables ...Table) error {
	tmps := make([]string, 0, len(tables))
	cleanup := func() {
		for _, name := range tmps {
			_ = os.Remove(name)
		}
	}

	for _, t := range tables {
		name, err := writeTemp(t)
		if err != nil {
			cleanup()
			return err
		}
		tmps = append(tmps, name)
	}

	for i, t := range tables {
		if err := os.Rename(tmps[i], t.Path); err != nil {
			tmps = tmps[i:]
			cleanup()
			return fmt.Errorf("rename into %s: %w", t.Path, err)
		}
	}
	return nil
}

func writeTemp(t Table) (name string, err error) {
	dir := filepath.Dir(t.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(t.Path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for i, rec := range t.Records {
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write record %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", t.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	return tmp.Name(), nil
}
