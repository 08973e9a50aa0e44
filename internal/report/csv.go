package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCSV writes one CSV file per table into dir, header first. Tables
// without a CSV name are skipped.
func WriteCSV(dir string, tables []Table) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create csv dir: %w", err)
	}
	for _, t := range tables {
		if t.CSVName == "" {
			continue
		}
		if err := writeCSVFile(filepath.Join(dir, t.CSVName), t.Header, t.Rows); err != nil {
			return fmt.Errorf("write %s: %w", t.CSVName, err)
		}
	}
	return nil
}

func writeCSVFile(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	return w.WriteAll(rows)
}
