package catg

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/rorbedit/internal/fileio"
)

var (
	// nodeFlagRe anchors on the three trailing integers of a node line:
	// print flag, flag2, flag3.
	nodeFlagRe = regexp.MustCompile(`(\s+)(\d+)(\s+\d+\s+\d+)\s*$`)

	// reachFlagRe anchors on the single trailing integer of a reach header
	// line: the print flag.
	reachFlagRe = regexp.MustCompile(`(\s+)(\d+)\s*$`)
)

// defaultLine2Width is used when a node has no original second line to take
// a width from.
const defaultLine2Width = 52

// Write renders the document and atomically replaces the file at path. Only
// print flags (and print locations) that differ from the values captured at
// the most recent parse or write are re-rendered; everything else is emitted
// byte for byte. After a successful write the captured values are refreshed
// so further edit/save cycles in the same session patch correctly.
func Write(doc *Document, path string) error {
	if err := fileio.WriteLines(path, Render(doc)); err != nil {
		return err
	}
	commit(doc)
	doc.Filepath = path
	return nil
}

// Render returns the document's lines exactly as Write would emit them,
// without touching the document or the filesystem.
func Render(doc *Document) []string {
	out := make([]string, 0, lineCount(doc))
	out = append(out, doc.IntroLines...)
	out = append(out, doc.NodeHeader...)
	for _, n := range doc.Nodes {
		l1, l2 := renderNode(n)
		out = append(out, l1, l2)
	}
	out = append(out, doc.NodeGap...)
	out = append(out, doc.ReachHeader...)
	for _, r := range doc.Reaches {
		out = append(out, renderReach(r)...)
	}
	out = append(out, doc.ReachGap...)
	out = append(out, doc.StorageLines...)
	out = append(out, doc.IOLines...)
	out = append(out, doc.EndLines...)
	return out
}

func lineCount(doc *Document) int {
	return len(doc.IntroLines) + len(doc.NodeHeader) + 2*len(doc.Nodes) +
		len(doc.NodeGap) + len(doc.ReachHeader) + 3*len(doc.Reaches) +
		len(doc.ReachGap) + len(doc.StorageLines) + len(doc.IOLines) +
		len(doc.EndLines)
}

func renderNode(n *Node) (string, string) {
	switch {
	case n.printFlag != n.origPrintFlag:
		return patchTrailingInt(n.rawLine, nodeFlagRe, n.printFlag), reconstructLine2(n)
	case printEnabled(n.printFlag) && n.printLocation != n.origLocation:
		return n.rawLine, reconstructLine2(n)
	default:
		return n.rawLine, n.rawLine2
	}
}

func renderReach(r *Reach) []string {
	if r.printFlag == r.origPrintFlag {
		return r.rawLines
	}
	out := make([]string, 0, len(r.rawLines))
	out = append(out, patchTrailingInt(r.rawLines[0], reachFlagRe, r.printFlag))
	out = append(out, r.rawLines[1:]...)
	return out
}

// patchTrailingInt replaces the integer captured by re's second group while
// holding the total width of (leading whitespace + value) constant, so later
// columns never shift.
func patchTrailingInt(raw string, re *regexp.Regexp, value int) string {
	m := re.FindStringSubmatchIndex(raw)
	if m == nil {
		return raw
	}
	prefix := raw[:m[0]]
	spacing := raw[m[2]:m[3]]
	oldValue := raw[m[4]:m[5]]
	suffix := ""
	if len(m) > 6 && m[6] >= 0 {
		suffix = raw[m[6]:m[7]]
	}

	newValue := strconv.Itoa(value)
	pad := len(spacing) + len(oldValue) - len(newValue)
	if pad < 1 {
		pad = 1
	}
	return prefix + strings.Repeat(" ", pad) + newValue + suffix
}

// reconstructLine2 rebuilds a node's print-location line, preserving the
// original line's width.
func reconstructLine2(n *Node) string {
	width := defaultLine2Width
	if n.rawLine2 != "" {
		width = len(n.rawLine2)
	}

	if printEnabled(n.printFlag) {
		if strings.TrimSpace(n.printLocation) != "" {
			line := "C " + n.printLocation
			if len(line) < width {
				line += strings.Repeat(" ", width-len(line))
			}
			return line
		}
		// Flag set but no location: keep the original line.
		return n.rawLine2
	}

	// Flag moved away from print: blank the location line.
	if printEnabled(n.origPrintFlag) {
		pad := width - 1
		if pad < 0 {
			pad = 0
		}
		return "C" + strings.Repeat(" ", pad)
	}
	return n.rawLine2
}

// commit refreshes every record's raw lines and captured originals to the
// state just written.
func commit(doc *Document) {
	for _, n := range doc.Nodes {
		n.rawLine, n.rawLine2 = renderNode(n)
		n.origPrintFlag = n.printFlag
		n.origLocation = n.printLocation
	}
	for _, r := range doc.Reaches {
		r.rawLines = renderReach(r)
		r.origPrintFlag = r.printFlag
	}
}
