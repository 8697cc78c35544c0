package stm

import (
	"strings"

	"github.com/tsawler/rorbedit/internal/fileio"
	"github.com/tsawler/rorbedit/internal/scan"
)

// Write renders the document and atomically replaces the file at path.
// Sections whose values, delimiter, terminator, and inline comment are
// unchanged since the most recent parse or write emit their original data
// line byte for byte; everything else is re-rendered per the section's stored
// conventions. After a successful write the captured state is refreshed.
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
	var out []string
	for _, sec := range doc.Sections {
		switch sec.Category {
		case EventHeader, ModelMode:
			out = append(out, sec.RawText)

		case StormParams:
			out = append(out, sec.CommentLines...)
			out = append(out, paramLine(sec))

		case BurstRanges:
			out = append(out, sec.CommentLines...)
			out = append(out, burstLine(sec))

		case PluvioData:
			out = append(out, sec.PrefixLine)
			out = appendDataLines(out, sec)

		case SubareaRain, PluvioRef:
			out = append(out, sec.CommentLines...)
			out = appendDataLines(out, sec)

		case HydroTimeRanges:
			out = append(out, sec.CommentLines...)
			out = append(out, hydroRangeLine(sec))

		case HydroStation:
			out = append(out, sec.PrefixLine)
			out = appendDataLines(out, sec)
			for _, s := range sec.SuffixLines {
				if strings.TrimSpace(s) != "" {
					out = append(out, s)
				}
			}

		case Trailer:
			out = append(out, strings.Split(sec.RawText, "\n")...)
		}
	}
	return out
}

// paramLine renders the storm-parameters data line: delimiter-joined values,
// inline sentinel, optional trailing comment. Without an inline sentinel the
// line ends in a single trailing delimiter.
func paramLine(sec *Section) string {
	if sec.unchanged() {
		return sec.rawDataLine
	}
	delim := sec.Delimiter
	if delim == "" {
		delim = ","
	}
	if sec.Terminator != TermInline {
		return strings.Join(sec.Data, delim) + delim
	}
	line := strings.Join(sec.Data, delim) + delim + scan.Sentinel
	if sec.InlineComment != "" {
		line += " " + sec.InlineComment
	}
	return line
}

// burstLine renders the burst-ranges data line. Without an inline sentinel
// the line ends in a single trailing comma, matching the convention the
// parser accepts for this section.
func burstLine(sec *Section) string {
	if sec.unchanged() {
		return sec.rawDataLine
	}
	delim := sec.Delimiter
	if delim == "" {
		delim = ","
	}
	if sec.Terminator == TermInline {
		line := strings.Join(sec.Data, delim) + delim + scan.Sentinel
		if sec.InlineComment != "" {
			line += " " + sec.InlineComment
		}
		return line
	}
	return strings.Join(sec.Data, delim) + delim
}

// hydroRangeLine renders the hydrograph time ranges: always comma-joined
// with an inline sentinel, regardless of stored delimiter.
func hydroRangeLine(sec *Section) string {
	if sec.unchanged() {
		return sec.rawDataLine
	}
	return strings.Join(sec.Data, ",") + "," + scan.Sentinel
}

// dataLine renders a generic data line per the section's stored delimiter
// and terminator.
func dataLine(sec *Section) string {
	if sec.unchanged() {
		return sec.rawDataLine
	}
	delim := sec.Delimiter
	if delim == "" {
		delim = "\t"
	}
	switch sec.Terminator {
	case TermInline:
		return strings.Join(sec.Data, delim) + delim + scan.Sentinel
	case TermOwnLine:
		return strings.Join(sec.Data, delim)
	default:
		return strings.Join(sec.Data, delim) + delim
	}
}

// appendDataLines appends the section's data line, plus the sentinel line for
// own-line terminated sections.
func appendDataLines(out []string, sec *Section) []string {
	out = append(out, dataLine(sec))
	if sec.Terminator == TermOwnLine {
		out = append(out, scan.Sentinel)
	}
	return out
}

// commit refreshes every data section's captured raw line to the state just
// written.
func commit(doc *Document) {
	for _, sec := range doc.Sections {
		switch sec.Category {
		case StormParams:
			sec.captureRaw(paramLine(sec))
		case BurstRanges:
			sec.captureRaw(burstLine(sec))
		case HydroTimeRanges:
			sec.captureRaw(hydroRangeLine(sec))
		case PluvioData, SubareaRain, PluvioRef, HydroStation:
			sec.captureRaw(dataLine(sec))
		}
	}
}
