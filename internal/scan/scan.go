// Package scan provides the low-level line and token utilities shared by the
// catg and stm format engines: BOM-tolerant line reading, RORB comment
// detection, end-of-data sentinel splitting, and delimiter auto-detection.
package scan

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sentinel is the literal end-of-data marker terminating variable-length
// numeric lines in the storm format.
const Sentinel = "-99"

// sentinelRe locates a -99 token delimited by start-of-line, comma, or tab on
// the left and whitespace, comma, tab, or end-of-line on the right.
var sentinelRe = regexp.MustCompile(`(?:^|[,\t])[ \t]*-99(?:[ \t,]|$)`)

// ReadLines reads a text file, tolerating a UTF-8 byte-order mark, and returns
// its lines with only line-ending characters removed. Trailing spaces inside a
// line are significant and preserved.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(transform.NewReader(f, xunicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	s := string(raw)
	if strings.HasSuffix(s, "\n") {
		s = s[:len(s)-1]
	}
	if s == "" {
		return nil, nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines, nil
}

// ReadTrimmedLines reads a text file like ReadLines but strips all trailing
// whitespace from each line (spreadsheet tab artefacts) and drops blank
// trailing lines.
func ReadTrimmedLines(path string) ([]string, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// IsComment reports whether a line is a RORB comment. The convention is a
// column-1 'C', covering both "C text" and "Ctext" variants.
func IsComment(line string) bool {
	return len(line) > 0 && line[0] == 'C'
}

// NormalizeComment rewrites "Ctext" to "C text" while leaving "C text"
// untouched.
func NormalizeComment(line string) string {
	if len(line) > 0 && line[0] == 'C' && (len(line) == 1 || line[1] != ' ') {
		return "C " + line[1:]
	}
	return line
}

// SplitSentinel locates the -99 token in a line and splits it into the data
// part before the token and the trailing text after it. Trailing separators
// and whitespace around the split are stripped. If no sentinel is present the
// whole line is returned as data and found is false.
func SplitSentinel(line string) (data, trailing string, found bool) {
	loc := sentinelRe.FindStringIndex(line)
	if loc == nil {
		return line, "", false
	}
	pos := strings.Index(line[loc[0]:], Sentinel) + loc[0]
	data = strings.TrimRight(line[:loc[0]], ", \t")
	trailing = strings.TrimLeft(strings.TrimSpace(line[pos+len(Sentinel):]), ", \t")
	return data, trailing, true
}

// Delimiter returns a data line's delimiter: tab if the line contains a tab
// character, comma otherwise. Evaluated per line; blocks in the same file may
// use either independently.
func Delimiter(line string) string {
	if strings.Contains(line, "\t") {
		return "\t"
	}
	return ","
}

// SplitValues auto-detects the delimiter and splits a data line into value
// strings, dropping empty tokens and any stray sentinel token. It reports the
// detected delimiter and whether an inline sentinel terminated the line.
func SplitValues(line string) ([]string, string, bool) {
	delim := Delimiter(line)
	data, _, inline := SplitSentinel(line)
	var values []string
	for _, p := range strings.Split(data, delim) {
		p = strings.TrimSpace(p)
		if p != "" && p != Sentinel {
			values = append(values, p)
		}
	}
	return values, delim, inline
}

// SplitComma splits a comma-delimited line into trimmed values, removing the
// sentinel and anything after it.
func SplitComma(line string) []string {
	data, _, _ := SplitSentinel(line)
	var out []string
	for _, p := range strings.Split(data, ",") {
		p = strings.TrimSpace(p)
		if p != "" && p != Sentinel {
			out = append(out, p)
		}
	}
	return out
}
