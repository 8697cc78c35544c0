package catg

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRenderRoundTrip(t *testing.T) {
	lines := testLines()
	doc := parseTest(t, lines)

	got := Render(doc)
	if !reflect.DeepEqual(got, lines) {
		t.Fatalf("render differs from source:\ngot  %q\nwant %q", got, lines)
	}
}

func TestSetNodePrintFlagPreservesWidth(t *testing.T) {
	doc := parseTest(t, testLines())
	n := doc.Nodes[1]
	original := n.RawLine()

	if err := n.SetPrintFlag(71); err != nil {
		t.Fatalf("SetPrintFlag: %v", err)
	}

	line, _ := renderNode(n)
	if len(line) != len(original) {
		t.Fatalf("line width changed: %d -> %d\n%q\n%q", len(original), len(line), original, line)
	}
	if !strings.Contains(line, " 71 ") && !strings.HasSuffix(line, "71") {
		t.Errorf("patched flag missing: %q", line)
	}
	// Columns after the print flag are untouched.
	if line[:len(line)-10] != original[:len(original)-10] {
		t.Errorf("leading columns shifted:\n%q\n%q", original, line)
	}
}

func TestSetNodePrintFlagRejectsInvalid(t *testing.T) {
	doc := parseTest(t, testLines())
	n := doc.Nodes[0]

	if err := n.SetPrintFlag(5); err == nil {
		t.Fatal("expected error for flag 5")
	}
	if n.PrintFlag() != 70 {
		t.Errorf("flag changed on rejected set: %d", n.PrintFlag())
	}
}

func TestSetReachPrintFlag(t *testing.T) {
	doc := parseTest(t, testLines())
	r := doc.Reaches[0]
	original := r.RawLines()[0]

	if err := r.SetPrintFlag(1); err != nil {
		t.Fatalf("SetPrintFlag: %v", err)
	}
	if err := r.SetPrintFlag(2); err == nil {
		t.Fatal("expected error for flag 2")
	}

	lines := renderReach(r)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if len(lines[0]) != len(original) {
		t.Errorf("header width changed: %q -> %q", original, lines[0])
	}
	if !strings.HasSuffix(lines[0], "1") {
		t.Errorf("flag not patched: %q", lines[0])
	}
	// Coordinate lines pass through untouched.
	if lines[1] != r.RawLines()[1] || lines[2] != r.RawLines()[2] {
		t.Error("coordinate lines modified")
	}
}

func TestFlagAwayBlanksLocationLine(t *testing.T) {
	doc := parseTest(t, testLines())
	n := doc.Nodes[0]
	origWidth := len(n.RawLine2())

	if err := n.SetPrintFlag(0); err != nil {
		t.Fatalf("SetPrintFlag: %v", err)
	}

	_, l2 := renderNode(n)
	if strings.TrimSpace(l2) != "C" {
		t.Errorf("location line not blanked: %q", l2)
	}
	if len(l2) != origWidth {
		t.Errorf("location line width changed: %d -> %d", origWidth, len(l2))
	}
}

func TestSetPrintLocation(t *testing.T) {
	doc := parseTest(t, testLines())
	n := doc.Nodes[0]
	origWidth := len(n.RawLine2())

	n.SetPrintLocation("Renamed gauge")

	l1, l2 := renderNode(n)
	if l1 != n.RawLine() {
		t.Error("data line modified by location edit")
	}
	if !strings.HasPrefix(l2, "C Renamed gauge") {
		t.Errorf("got %q", l2)
	}
	if len(l2) != origWidth {
		t.Errorf("location line width changed: %d -> %d", origWidth, len(l2))
	}
}

func TestLocationIgnoredWhilePrintDisabled(t *testing.T) {
	doc := parseTest(t, testLines())
	n := doc.Nodes[1]

	n.SetPrintLocation("should not appear")

	_, l2 := renderNode(n)
	if l2 != n.RawLine2() {
		t.Errorf("location rendered for non-print node: %q", l2)
	}
}

func TestWriteAndReparse(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "demo.catg")
	if err := os.WriteFile(src, []byte(strings.Join(testLines(), "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := doc.Nodes[1].SetPrintFlag(70); err != nil {
		t.Fatal(err)
	}
	doc.Nodes[1].SetPrintLocation("New station")

	dst := filepath.Join(dir, "demo_out.catg")
	if err := Write(doc, dst); err != nil {
		t.Fatalf("Write: %v", err)
	}

	doc2, err := Parse(dst)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	n := doc2.Nodes[1]
	if n.PrintFlag() != 70 {
		t.Errorf("flag lost on round trip: %d", n.PrintFlag())
	}
	if n.PrintLocation() != "New station" {
		t.Errorf("location lost on round trip: %q", n.PrintLocation())
	}
}

// A second save after further edits must start from the state the first save
// produced, not the state originally parsed.
func TestRepeatedSaveCycle(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "demo.catg")
	if err := os.WriteFile(src, []byte(strings.Join(testLines(), "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if err := doc.Reaches[0].SetPrintFlag(1); err != nil {
		t.Fatal(err)
	}
	if err := Write(doc, src); err != nil {
		t.Fatalf("first save: %v", err)
	}
	// No further edits: the second save must keep the patched flag.
	if err := Write(doc, src); err != nil {
		t.Fatalf("second save: %v", err)
	}

	doc2, err := Parse(src)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if doc2.Reaches[0].PrintFlag() != 1 {
		t.Errorf("flag reverted across save cycle: %d", doc2.Reaches[0].PrintFlag())
	}
}

func TestWriteIdentityBytes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "demo.catg")
	content := strings.Join(testLines(), "\n") + "\n"
	if err := os.WriteFile(src, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dst := filepath.Join(dir, "copy.catg")
	if err := Write(doc, dst); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Fatalf("untouched document not byte-identical:\ngot  %q\nwant %q", got, content)
	}
}
