package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestReadLinesStripsBOM(t *testing.T) {
	path := writeTemp(t, "\xef\xbb\xbffirst line\r\nsecond line\n")

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "first line" {
		t.Errorf("BOM not stripped: %q", lines[0])
	}
	if lines[1] != "second line" {
		t.Errorf("CR not stripped: %q", lines[1])
	}
}

func TestReadLinesPreservesTrailingSpaces(t *testing.T) {
	path := writeTemp(t, "C name        \ndata\n")

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if lines[0] != "C name        " {
		t.Errorf("trailing spaces lost: %q", lines[0])
	}
}

func TestReadTrimmedLinesDropsTrailingBlanks(t *testing.T) {
	path := writeTemp(t, "data\t\t\nmore\n\n   \n")

	lines, err := ReadTrimmedLines(path)
	if err != nil {
		t.Fatalf("ReadTrimmedLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "data" {
		t.Errorf("trailing tabs not trimmed: %q", lines[0])
	}
}

func TestSplitSentinel(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		data     string
		trailing string
		found    bool
	}{
		{"inline comma", "1.0,2.0,3.0,-99 some remarks", "1.0,2.0,3.0", "some remarks", true},
		{"inline tab", "1.0\t2.0\t-99", "1.0\t2.0", "", true},
		{"bare sentinel", "-99", "", "", true},
		{"no sentinel", "1.0,2.0,3.0", "1.0,2.0,3.0", "", false},
		{"negative value not sentinel", "1.0,-99.5,3.0", "1.0,-99.5,3.0", "", false},
		{"sentinel mid line", "1.0,-99,ignored", "1.0", "ignored", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, trailing, found := SplitSentinel(tt.line)
			if data != tt.data || trailing != tt.trailing || found != tt.found {
				t.Errorf("SplitSentinel(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.line, data, trailing, found, tt.data, tt.trailing, tt.found)
			}
		})
	}
}

func TestDelimiter(t *testing.T) {
	if d := Delimiter("1.0\t2.0,3.0"); d != "\t" {
		t.Errorf("tab line: got %q", d)
	}
	if d := Delimiter("1.0,2.0"); d != "," {
		t.Errorf("comma line: got %q", d)
	}
	if d := Delimiter("single"); d != "," {
		t.Errorf("no delimiter defaults to comma: got %q", d)
	}
}

func TestSplitValues(t *testing.T) {
	values, delim, inline := SplitValues("1.0\t2.0\t3.0\t-99")
	if delim != "\t" || !inline {
		t.Errorf("got delim %q inline %v", delim, inline)
	}
	if len(values) != 3 || values[0] != "1.0" || values[2] != "3.0" {
		t.Errorf("unexpected values: %q", values)
	}

	values, delim, inline = SplitValues("4, 5, 6")
	if delim != "," || inline {
		t.Errorf("got delim %q inline %v", delim, inline)
	}
	if len(values) != 3 || values[1] != "5" {
		t.Errorf("unexpected values: %q", values)
	}
}

func TestNormalizeComment(t *testing.T) {
	if got := NormalizeComment("Cpluvio data"); got != "C pluvio data" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeComment("C already spaced"); got != "C already spaced" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeComment("not a comment"); got != "not a comment" {
		t.Errorf("got %q", got)
	}
}

func TestIsComment(t *testing.T) {
	if !IsComment("C text") || !IsComment("Ctext") {
		t.Error("expected comment lines to be detected")
	}
	if IsComment(" C indented") || IsComment("") {
		t.Error("expected non-comment lines to be rejected")
	}
}
