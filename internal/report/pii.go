package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParsePII reads a bulk_extractor feature file. Each data line holds the
// file or offset, the value found, and its context, separated by tabs.
// Banner and comment lines start with '#' and are skipped.
func ParsePII(r io.Reader) ([][]string, error) {
	rows := [][]string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rows = append(rows, strings.SplitN(text, "\t", len(SectionPII.Header)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pii feature file: %w", err)
	}
	return rows, nil
}

// ParsePIIFile parses the feature file at path. A missing file means the
// scan found nothing.
func ParsePIIFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return [][]string{}, nil
		}
		return nil, fmt.Errorf("open pii feature file: %w", err)
	}
	defer f.Close()
	return ParsePII(f)
}
