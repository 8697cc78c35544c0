package stm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/rorbedit/internal/scan"
)

// Parse reads a storm file into a Document. The grammar is positional: the
// storm-parameters line is read first and its burst and pluviograph counts
// determine how many of each later block to expect. A structurally required
// line missing mid-sequence truncates that repeated block rather than
// failing; only unreadable files and malformed storm-parameter numerics are
// errors.
func Parse(path string) (*Document, error) {
	lines, err := scan.ReadTrimmedLines(path)
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
	doc := &Document{}
	idx := 0
	total := len(lines)

	// Event header: one free-text line.
	if idx < total {
		doc.Sections = append(doc.Sections, &Section{
			Category: EventHeader,
			RawText:  lines[idx],
			Label:    "Event Description",
		})
		idx++
	}

	// Model mode: one free-text line (FIT or DESIGN).
	if idx < total {
		doc.Sections = append(doc.Sections, &Section{
			Category: ModelMode,
			RawText:  lines[idx],
			Label:    "Model Mode",
		})
		idx++
	}

	// Storm parameters: leading comments, then one comma-delimited line
	// carrying time increment, duration, burst count, pluviograph count,
	// and areal rainfall flag.
	comments := collectComments(lines, &idx)
	if idx < total {
		line := lines[idx]
		data, trailing, _ := scan.SplitSentinel(line)
		sec := &Section{
			Category:      StormParams,
			Delimiter:     ",",
			Terminator:    TermInline,
			CommentLines:  comments,
			Data:          splitTrim(data, ","),
			InlineComment: trailing,
			Label:         "Storm Parameters",
		}
		sec.captureRaw(line)
		doc.Sections = append(doc.Sections, sec)
		if err := readStormParams(doc, sec.Data); err != nil {
			return nil, err
		}
		idx++
	}

	// Burst time ranges: one comma-delimited line of start/end pairs,
	// with or without an inline sentinel and trailing comment.
	comments = collectComments(lines, &idx)
	if idx < total {
		line := lines[idx]
		sec := &Section{
			Category:     BurstRanges,
			Delimiter:    ",",
			CommentLines: comments,
			Label:        "Burst Time Ranges",
		}
		if pos := strings.Index(line, scan.Sentinel); pos >= 0 {
			sec.Terminator = TermInline
			sec.InlineComment = strings.TrimSpace(line[pos+len(scan.Sentinel):])
			dataPart := strings.TrimRight(strings.TrimSpace(line[:pos]), ",")
			sec.Data = splitTrim(dataPart, ",")
		} else {
			sec.Terminator = TermNone
			sec.Data = scan.SplitComma(line)
		}
		sec.captureRaw(line)
		doc.Sections = append(doc.Sections, sec)
		idx++
	}

	// Pluviograph data: pluvio-count units of station ID line plus one
	// auto-delimited data line with an inline sentinel.
	for p := 0; p < doc.PluvioCount; p++ {
		if idx+1 >= total {
			break
		}
		station := strings.TrimSpace(lines[idx])
		idx++
		raw := lines[idx]
		values, delim, _ := scan.SplitValues(raw)
		idx++
		sec := &Section{
			Category:   PluvioData,
			Delimiter:  delim,
			Terminator: TermInline,
			PrefixLine: station,
			Data:       values,
			Label:      fmt.Sprintf("Pluviograph %d", p+1),
		}
		sec.captureRaw(raw)
		doc.Sections = append(doc.Sections, sec)
	}

	// Sub-area rainfalls: burst-count units, each auto-delimited and
	// auto-terminated.
	for b := 0; b < doc.BurstCount; b++ {
		sec, ok := parseDataBlock(lines, &idx, SubareaRain,
			fmt.Sprintf("Sub-area Rainfall - Burst %d", b+1))
		if !ok {
			break
		}
		doc.Sections = append(doc.Sections, sec)
	}

	// Pluviograph references: burst-count units paired by position with
	// the sub-area rainfall blocks.
	for b := 0; b < doc.BurstCount; b++ {
		sec, ok := parseDataBlock(lines, &idx, PluvioRef,
			fmt.Sprintf("Pluviograph Refs - Burst %d", b+1))
		if !ok {
			break
		}
		doc.Sections = append(doc.Sections, sec)
	}

	// Hydrograph time ranges: one comma-delimited line of start/end pairs
	// with an inline sentinel. The station count is inferred from it.
	comments = collectComments(lines, &idx)
	hydroCount := 0
	if idx < total {
		line := lines[idx]
		parts := scan.SplitComma(line)
		hydroCount = len(parts) / 2
		sec := &Section{
			Category:     HydroTimeRanges,
			Delimiter:    ",",
			Terminator:   TermInline,
			CommentLines: comments,
			Data:         parts,
			Label:        "Hydrograph Time Ranges",
		}
		sec.captureRaw(line)
		doc.Sections = append(doc.Sections, sec)
		idx++
	}

	// Hydrograph stations: name line, data line, terminator, and an
	// optional suffix parameter line (volumes of runoff).
	for h := 0; h < hydroCount; h++ {
		if idx >= total {
			break
		}
		station := strings.TrimSpace(lines[idx])
		idx++
		if idx >= total {
			break
		}
		raw := lines[idx]
		values, delim, inline := scan.SplitValues(raw)
		idx++
		term := TermNone
		if inline {
			term = TermInline
		} else if idx < total && strings.TrimSpace(lines[idx]) == scan.Sentinel {
			idx++
			term = TermOwnLine
		}
		var suffix []string
		if idx < total &&
			strings.Contains(lines[idx], ",") &&
			!strings.HasPrefix(lines[idx], "C") &&
			strings.TrimSpace(lines[idx]) != scan.Sentinel {
			suffix = append(suffix, lines[idx])
			idx++
		}
		sec := &Section{
			Category:    HydroStation,
			Delimiter:   delim,
			Terminator:  term,
			PrefixLine:  station,
			SuffixLines: suffix,
			Data:        values,
			Label:       "Hydro: " + shortStationName(station),
		}
		sec.captureRaw(raw)
		doc.Sections = append(doc.Sections, sec)
	}

	// Trailer: any remaining lines, verbatim.
	if idx < total {
		doc.Sections = append(doc.Sections, &Section{
			Category: Trailer,
			RawText:  strings.Join(lines[idx:], "\n"),
			Label:    "File Trailer",
		})
	}

	return doc, nil
}

// parseDataBlock consumes one comment-prefixed, auto-delimited,
// auto-terminated data unit. ok is false when the line list is exhausted.
func parseDataBlock(lines []string, idx *int, c Category, label string) (*Section, bool) {
	comments := collectComments(lines, idx)
	if *idx >= len(lines) {
		return nil, false
	}
	raw := lines[*idx]
	values, delim, inline := scan.SplitValues(raw)
	(*idx)++
	term := TermNone
	if inline {
		term = TermInline
	} else if *idx < len(lines) && strings.TrimSpace(lines[*idx]) == scan.Sentinel {
		(*idx)++
		term = TermOwnLine
	}
	sec := &Section{
		Category:     c,
		Delimiter:    delim,
		Terminator:   term,
		CommentLines: comments,
		Data:         values,
		Label:        label,
	}
	sec.captureRaw(raw)
	return sec, true
}

// collectComments consumes consecutive C lines starting at *idx, returning
// them normalized.
func collectComments(lines []string, idx *int) []string {
	var out []string
	for *idx < len(lines) && strings.HasPrefix(lines[*idx], "C") {
		out = append(out, scan.NormalizeComment(lines[*idx]))
		(*idx)++
	}
	return out
}

// readStormParams fills the document's structural values from the
// storm-parameters tokens. Missing tokens take the format's defaults;
// malformed numerics fail the parse.
func readStormParams(doc *Document, data []string) error {
	doc.TimeIncrement = 1
	if len(data) > 0 {
		v, err := strconv.ParseFloat(data[0], 64)
		if err != nil {
			return fmt.Errorf("parsing storm parameters: time increment %q: %w", data[0], err)
		}
		doc.TimeIncrement = v
	}
	fields := []struct {
		name string
		dst  *int
	}{
		{"duration", &doc.Duration},
		{"burst count", &doc.BurstCount},
		{"pluviograph count", &doc.PluvioCount},
	}
	for i, f := range fields {
		if len(data) > i+1 {
			v, err := strconv.ParseFloat(data[i+1], 64)
			if err != nil {
				return fmt.Errorf("parsing storm parameters: %s %q: %w", f.name, data[i+1], err)
			}
			*f.dst = int(v)
		}
	}
	return nil
}

// splitTrim splits on delim, trims each token, and drops empties.
func splitTrim(s, delim string) []string {
	var out []string
	for _, p := range strings.Split(s, delim) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// shortStationName shortens a station name for display: the part before a
// "|" separator, capped at 45 characters.
func shortStationName(name string) string {
	short := name
	if i := strings.Index(name, "|"); i >= 0 {
		short = strings.TrimSpace(name[:i])
	}
	if r := []rune(short); len(r) > 45 {
		short = string(r[:42]) + "..."
	}
	return short
}
