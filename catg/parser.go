package catg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/tsawler/rorbedit/internal/scan"
)

// Section markers, matched against whole stripped lines.
const (
	markerNodes    = "C #NODES"
	markerReaches  = "C #REACHES"
	markerStorages = "C #STORAGES"
	markerIO       = "C #INFLOW/OUTFLOW"
	markerEnd      = "C END RORB_GE"
)

var (
	// nodeRe matches the 14-field node data line: index, x, y, scale,
	// subarea flag, unknown flag, downstream, name, area, DCI, ICI,
	// print flag, flag2, flag3.
	nodeRe = regexp.MustCompile(
		`^C\s+(\d+)\s+([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+` +
			`(\d+)\s+(\d+)\s+(\d+)\s+(\S+)\s+` +
			`([\d.]+)\s+([\d.]+)\s+([\d.]+)\s+` +
			`(\d+)\s+(\d+)\s+(\d+)\s*$`)

	// reachRe matches the 11-field reach header line: index, name, from,
	// to, unknown1, type, unknown2, length, slope, coordinate count,
	// print flag.
	reachRe = regexp.MustCompile(
		`^C\s+(\d+)\s+(\S+)\s+(\d+)\s+(\d+)\s+` +
			`(\d+)\s+(\d+)\s+(\d+)\s+` +
			`([\d.]+)\s+([\d.]+)\s+(\d+)\s+(\d+)\s*$`)

	// storageRe is a loose prefix match used only to pull display fields
	// out of the storage block.
	storageRe = regexp.MustCompile(`^C\s+(\d+)\s+(\S+)\s+(\d+)\s+(\d+)`)

	countRe = regexp.MustCompile(`\d+`)

	printInstructionRe = regexp.MustCompile(`^7\s*[,\s]`)
)

// FormatError reports a catchment file missing one of its mandatory section
// markers. Suggestion, when set, is the stripped line in the file closest to
// the missing marker.
type FormatError struct {
	Marker     string
	Suggestion string
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("could not find %q marker: this may not be a valid RORB catchment file", e.Marker)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (closest line: %q)", e.Suggestion)
	}
	return msg
}

// Parse reads a catchment file into a Document. It fails with a *FormatError
// if the C #NODES or C #REACHES marker is absent; the remaining markers are
// optional and their regions shrink away when missing.
func Parse(path string) (*Document, error) {
	lines, err := scan.ReadLines(path)
	if err != nil {
		return nil, err
	}
	doc, err := parseLines(lines)
	if err != nil {
		return nil, err
	}
	doc.Filepath = path
	return doc, nil
}

func parseLines(lines []string) (*Document, error) {
	nodesIdx := findMarker(lines, markerNodes)
	reachesIdx := findMarker(lines, markerReaches)
	storagesIdx := findMarker(lines, markerStorages)
	ioIdx := findMarker(lines, markerIO)
	endIdx := findMarker(lines, markerEnd)

	if nodesIdx < 0 {
		return nil, &FormatError{Marker: markerNodes, Suggestion: closestLine(lines, markerNodes)}
	}
	if reachesIdx < 0 {
		return nil, &FormatError{Marker: markerReaches, Suggestion: closestLine(lines, markerReaches)}
	}
	if nodesIdx+1 >= len(lines) {
		return nil, fmt.Errorf("node count line missing after %q", markerNodes)
	}
	if reachesIdx+1 >= len(lines) {
		return nil, fmt.Errorf("reach count line missing after %q", markerReaches)
	}

	doc := &Document{}

	// Intro: everything before C #NODES.
	doc.IntroLines = lines[:nodesIdx]

	// Nodes.
	doc.NodeHeader = []string{lines[nodesIdx], lines[nodesIdx+1]}
	doc.NodeCount = parseCount(lines[nodesIdx+1])

	idx := nodesIdx + 2
	for i := 0; i < doc.NodeCount; i++ {
		if idx+1 >= len(lines) {
			break
		}
		rawLine := lines[idx]
		rawLine2 := lines[idx+1]
		idx += 2
		doc.Nodes = append(doc.Nodes, parseNode(rawLine, rawLine2))
	}
	doc.NodeGap = region(lines, idx, reachesIdx)

	// Reaches.
	doc.ReachHeader = []string{lines[reachesIdx], lines[reachesIdx+1]}
	doc.ReachCount = parseCount(lines[reachesIdx+1])

	idx = reachesIdx + 2
	for i := 0; i < doc.ReachCount; i++ {
		if idx >= len(lines) {
			break
		}
		header := lines[idx]
		m := reachRe.FindStringSubmatch(header)
		if m == nil {
			// Non-matching header lines are dropped, not retained.
			idx++
			continue
		}
		raw := []string{header}
		for j := 0; j < 2; j++ {
			idx++
			if idx < len(lines) {
				raw = append(raw, lines[idx])
			}
		}
		idx++

		pf := atoi(m[11])
		doc.Reaches = append(doc.Reaches, &Reach{
			Index:         atoi(m[1]),
			Name:          m[2],
			FromNode:      atoi(m[3]),
			ToNode:        atoi(m[4]),
			Unknown1:      atoi(m[5]),
			ReachType:     atoi(m[6]),
			Unknown2:      atoi(m[7]),
			Length:        atof(m[8]),
			Slope:         atof(m[9]),
			NCoords:       atoi(m[10]),
			printFlag:     pf,
			rawLines:      raw,
			origPrintFlag: pf,
		})
	}

	nextSection := len(lines)
	switch {
	case storagesIdx >= 0:
		nextSection = storagesIdx
	case ioIdx >= 0:
		nextSection = ioIdx
	case endIdx >= 0:
		nextSection = endIdx
	}
	doc.ReachGap = region(lines, idx, nextSection)

	// Storages: raw lines preserved, records parsed for display only.
	if storagesIdx >= 0 {
		storageEnd := len(lines)
		switch {
		case ioIdx >= 0:
			storageEnd = ioIdx
		case endIdx >= 0:
			storageEnd = endIdx
		}
		doc.StorageLines = region(lines, storagesIdx, storageEnd)
		if storagesIdx+1 < len(lines) {
			doc.StorageCount = parseCount(lines[storagesIdx+1])
		}
		if len(doc.StorageLines) > 2 {
			for _, line := range doc.StorageLines[2:] {
				if sm := storageRe.FindStringSubmatch(line); sm != nil {
					doc.Storages = append(doc.Storages, Storage{
						Index:    atoi(sm[1]),
						Name:     sm[2],
						FromNode: atoi(sm[3]),
						ToNode:   atoi(sm[4]),
					})
				}
			}
		}
	}

	// Inflow/outflow: raw lines preserved.
	if ioIdx >= 0 {
		ioEnd := len(lines)
		if endIdx >= 0 {
			ioEnd = endIdx
		}
		doc.IOLines = region(lines, ioIdx, ioEnd)
		if ioIdx+1 < len(lines) {
			doc.IOCount = parseCount(lines[ioIdx+1])
		}
	}

	// C END RORB_GE and the routing data block, to EOF.
	if endIdx >= 0 {
		doc.EndLines = lines[endIdx:]
	}

	return doc, nil
}

func parseNode(rawLine, rawLine2 string) *Node {
	m := nodeRe.FindStringSubmatch(rawLine)
	if m == nil {
		// Unparsable node: retained as an opaque record so write-back
		// still emits both lines verbatim.
		return &Node{Name: UnparsedName, rawLine: rawLine, rawLine2: rawLine2}
	}

	pf := atoi(m[12])
	location := ""
	if printEnabled(pf) && len(rawLine2) > 2 {
		location = strings.TrimSpace(rawLine2[2:])
	}

	return &Node{
		Index:         atoi(m[1]),
		X:             atof(m[2]),
		Y:             atof(m[3]),
		Scale:         atof(m[4]),
		SubareaFlag:   atoi(m[5]),
		UnknownFlag:   atoi(m[6]),
		Downstream:    atoi(m[7]),
		Name:          m[8],
		Area:          atof(m[9]),
		DCI:           atof(m[10]),
		ICI:           atof(m[11]),
		Flag2:         atoi(m[13]),
		Flag3:         atoi(m[14]),
		printFlag:     pf,
		printLocation: location,
		rawLine:       rawLine,
		rawLine2:      rawLine2,
		origPrintFlag: pf,
		origLocation:  location,
	}
}

// findMarker returns the index of the line whose stripped content equals
// marker, or -1.
func findMarker(lines []string, marker string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == marker {
			return i
		}
	}
	return -1
}

// closestLine returns the stripped line nearest the marker by edit distance,
// for use in FormatError suggestions. Lines further than half the marker's
// length are not worth suggesting.
func closestLine(lines []string, marker string) string {
	best := ""
	bestDist := len(marker)/2 + 1
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		if d := levenshtein.ComputeDistance(s, marker); d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best
}

// parseCount extracts the first run of digits from a count line like
// "C    581". Tolerates leading and trailing non-digit text.
func parseCount(line string) int {
	return atoi(countRe.FindString(line))
}

// region returns lines[from:to] with both bounds clamped; inverted or empty
// ranges yield nil.
func region(lines []string, from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return nil
	}
	return lines[from:to]
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
