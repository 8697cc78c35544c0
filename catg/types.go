package catg

import (
	"fmt"
	"strings"
)

// NodePrintFlags maps each valid node print flag to its meaning.
var NodePrintFlags = map[int]string{
	0:  "No print",
	70: "Print calc discharge",
	71: "Print calc & actual discharge",
	72: "Dummy gauging station",
}

// ReachPrintFlags maps each valid reach print flag to its meaning.
var ReachPrintFlags = map[int]string{
	0: "No print",
	1: "Print",
}

// UnparsedName is the sentinel name given to a node whose record line did not
// match the node grammar. Such nodes pass through the writer verbatim.
const UnparsedName = "?PARSE_ERR"

// Node is a parsed record from the C #NODES section. Each node occupies two
// lines: the data line and a print-location comment line.
type Node struct {
	Index       int
	X           float64
	Y           float64
	Scale       float64
	SubareaFlag int
	UnknownFlag int
	Downstream  int
	Name        string
	Area        float64
	DCI         float64
	ICI         float64
	Flag2       int
	Flag3       int

	printFlag     int
	printLocation string

	rawLine  string
	rawLine2 string

	origPrintFlag int
	origLocation  string
}

// PrintFlag returns the node's print flag.
func (n *Node) PrintFlag() int { return n.printFlag }

// SetPrintFlag sets the node's print flag. Valid values are 0, 70, 71, and
// 72; anything else is rejected and the node is left unchanged.
func (n *Node) SetPrintFlag(v int) error {
	if _, ok := NodePrintFlags[v]; !ok {
		return fmt.Errorf("invalid node print flag %d: valid values are 0, 70, 71, 72", v)
	}
	n.printFlag = v
	return nil
}

// PrintLocation returns the node's print-location text.
func (n *Node) PrintLocation() string { return n.printLocation }

// SetPrintLocation sets the node's print-location text. It only appears in
// the written file while the print flag is one of 70, 71, 72.
func (n *Node) SetPrintLocation(s string) { n.printLocation = s }

// PrintEnabled reports whether the node's print flag requests output.
func (n *Node) PrintEnabled() bool { return printEnabled(n.printFlag) }

// Parsed reports whether the node's record line matched the node grammar.
func (n *Node) Parsed() bool { return n.Name != UnparsedName }

// RawLine returns the node's data line as last read or written.
func (n *Node) RawLine() string { return n.rawLine }

// RawLine2 returns the node's print-location line as last read or written.
func (n *Node) RawLine2() string { return n.rawLine2 }

func printEnabled(flag int) bool {
	return flag == 70 || flag == 71 || flag == 72
}

// Reach is a parsed record from the C #REACHES section. Each reach occupies
// three lines: a header line followed by X and Y coordinate lines.
type Reach struct {
	Index     int
	Name      string
	FromNode  int
	ToNode    int
	Unknown1  int
	ReachType int
	Unknown2  int
	Length    float64
	Slope     float64
	NCoords   int

	printFlag int

	rawLines      []string
	origPrintFlag int
}

// PrintFlag returns the reach's print flag.
func (r *Reach) PrintFlag() int { return r.printFlag }

// SetPrintFlag sets the reach's print flag. Valid values are 0 and 1;
// anything else is rejected and the reach is left unchanged.
func (r *Reach) SetPrintFlag(v int) error {
	if _, ok := ReachPrintFlags[v]; !ok {
		return fmt.Errorf("invalid reach print flag %d: valid values are 0, 1", v)
	}
	r.printFlag = v
	return nil
}

// RawLines returns a copy of the reach's three source lines.
func (r *Reach) RawLines() []string {
	out := make([]string, len(r.rawLines))
	copy(out, r.rawLines)
	return out
}

// Storage is a summary record from the C #STORAGES section, parsed for
// display only. The backing raw lines are authoritative and never patched.
type Storage struct {
	Index    int
	Name     string
	FromNode int
	ToNode   int
}

// Document is a complete parsed catchment file. Concatenating its regions in
// order reproduces the original file when no field has been changed.
type Document struct {
	Filepath string

	// Everything before C #NODES.
	IntroLines []string

	NodeHeader []string // the C #NODES marker and count line
	Nodes      []*Node
	NodeGap    []string // lines between the last node and C #REACHES
	NodeCount  int

	ReachHeader []string // the C #REACHES marker and count line
	Reaches     []*Reach
	ReachGap    []string // lines between the last reach and the next section
	ReachCount  int

	StorageLines []string // raw C #STORAGES block, written verbatim
	Storages     []Storage
	StorageCount int

	IOLines []string // raw C #INFLOW/OUTFLOW block, written verbatim
	IOCount int

	// C END RORB_GE and everything after it, written verbatim.
	EndLines []string
}

// PrintNodeCount returns the number of nodes with a print-enabled flag.
func (d *Document) PrintNodeCount() int {
	n := 0
	for _, node := range d.Nodes {
		if node.PrintEnabled() {
			n++
		}
	}
	return n
}

// PrintReachCount returns the number of reaches with a non-zero print flag.
func (d *Document) PrintReachCount() int {
	n := 0
	for _, r := range d.Reaches {
		if r.printFlag != 0 {
			n++
		}
	}
	return n
}

// DataBlockStats counts instruction lines and code-7 print points in the
// routing data block after C END RORB_GE. The payload is never interpreted
// beyond this classification.
func (d *Document) DataBlockStats() (instructions, printPoints int) {
	for _, line := range d.EndLines {
		s := strings.TrimSpace(line)
		if s == "" || s[0] == 'C' {
			continue
		}
		if printInstructionRe.MatchString(s) {
			printPoints++
		}
		if (s[0] >= '0' && s[0] <= '9') || s[0] == '-' {
			instructions++
		}
	}
	return instructions, printPoints
}
