package pronom

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultBase is the registry URL identifiers are appended to.
const DefaultBase = "http://apps.nationalarchives.gov.uk/PRONOM"

const (
	cellOpen  = "<td>"
	cellClose = "</td>"
)

var puidPattern = regexp.MustCompile(`^(?:x-)?fmt/[0-9]+$`)

// Rewrite copies r to w, replacing every table cell line that holds only a
// PRONOM identifier with a link to base/<puid>. All other lines are copied
// unchanged, line endings included. It returns the number of lines
// rewritten.
func Rewrite(r io.Reader, w io.Writer, base string) (int, error) {
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = DefaultBase
	}
	href := html.EscapeString(base)

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	rewritten := 0
	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			out, ok := rewriteLine(line, href)
			if ok {
				rewritten++
			}
			if _, err := bw.WriteString(out); err != nil {
				return rewritten, fmt.Errorf("write line: %w", err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return rewritten, fmt.Errorf("read line: %w", readErr)
		}
	}
	if err := bw.Flush(); err != nil {
		return rewritten, fmt.Errorf("flush: %w", err)
	}
	return rewritten, nil
}

func rewriteLine(line, href string) (string, bool) {
	body, ending := splitEnding(line)
	content := strings.TrimLeft(body, " \t")
	if !strings.HasPrefix(content, cellOpen+"fmt/") && !strings.HasPrefix(content, cellOpen+"x-fmt/") {
		return line, false
	}
	if !strings.HasSuffix(content, cellClose) {
		return line, false
	}
	puid := content[len(cellOpen) : len(content)-len(cellClose)]
	if !puidPattern.MatchString(puid) {
		return line, false
	}
	indent := body[:len(body)-len(content)]
	return fmt.Sprintf(`%s<td><a href="%s/%s" target="_blank">%s</a></td>%s`, indent, href, puid, puid, ending), true
}

func splitEnding(line string) (string, string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}

// RewriteFile rewrites tmpPath into finalPath and removes tmpPath once the
// final document is in place. On failure tmpPath is left for inspection.
func RewriteFile(tmpPath, finalPath, base string) (n int, err error) {
	in, err := os.Open(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("open report: %w", err)
	}
	defer in.Close()

	out, err := os.CreateTemp(filepath.Dir(finalPath), ".report-*.html")
	if err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}
	staged := out.Name()
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(staged)
		}
	}()

	if n, err = Rewrite(in, out, base); err != nil {
		return n, err
	}
	if err = out.Chmod(0o644); err != nil {
		return n, fmt.Errorf("chmod report: %w", err)
	}
	if err = out.Close(); err != nil {
		return n, fmt.Errorf("close report: %w", err)
	}
	if err = os.Rename(staged, finalPath); err != nil {
		return n, fmt.Errorf("publish report: %w", err)
	}
	_ = in.Close()
	if err = os.Remove(tmpPath); err != nil {
		return n, fmt.Errorf("remove temporary report: %w", err)
	}
	return n, nil
}
