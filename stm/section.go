package stm

// Category identifies which block of the storm file a section belongs to.
// Categories appear in the file in the order they are declared here.
type Category int

const (
	EventHeader Category = iota
	ModelMode
	StormParams
	BurstRanges
	PluvioData
	SubareaRain
	PluvioRef
	HydroTimeRanges
	HydroStation
	Trailer
)

var categoryNames = map[Category]string{
	EventHeader:     "event header",
	ModelMode:       "model mode",
	StormParams:     "storm parameters",
	BurstRanges:     "burst time ranges",
	PluvioData:      "pluviograph data",
	SubareaRain:     "sub-area rainfall",
	PluvioRef:       "pluviograph references",
	HydroTimeRanges: "hydrograph time ranges",
	HydroStation:    "hydrograph station",
	Trailer:         "trailer",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

// Terminator is the convention by which a data line signals its end,
// independent of delimiter choice.
type Terminator int

const (
	// TermNone means no sentinel; such lines are written back with a
	// single trailing delimiter character.
	TermNone Terminator = iota
	// TermInline means the -99 sentinel is appended to the data line.
	TermInline
	// TermOwnLine means the -99 sentinel sits on the following line by
	// itself.
	TermOwnLine
)

func (t Terminator) String() string {
	switch t {
	case TermInline:
		return "inline"
	case TermOwnLine:
		return "own_line"
	default:
		return "none"
	}
}

// Section is one logical block of a storm file, carrying enough metadata for
// lossless save. Data values are kept as strings to preserve their original
// numeric formatting.
type Section struct {
	Category   Category
	Delimiter  string // "\t" or ","; empty for free-text sections
	Terminator Terminator

	CommentLines  []string // preceding C lines, normalized
	PrefixLine    string   // station ID or station name line
	SuffixLines   []string // auxiliary parameter lines after the data
	Data          []string // editable values
	InlineComment string   // trailing text after the inline sentinel
	RawText       string   // free-text sections and the trailer
	Label         string   // display name

	// Raw data line and the state it rendered, captured at the most
	// recent parse or write. While the live fields still match, the raw
	// line is emitted verbatim.
	rawDataLine string
	hasRawData  bool
	origData    []string
	origDelim   string
	origTerm    Terminator
	origInline  string
}

// captureRaw records line as the section's verbatim source together with the
// field values it renders.
func (s *Section) captureRaw(line string) {
	s.rawDataLine = line
	s.hasRawData = true
	s.origData = append([]string(nil), s.Data...)
	s.origDelim = s.Delimiter
	s.origTerm = s.Terminator
	s.origInline = s.InlineComment
}

// unchanged reports whether the section's data line may be emitted verbatim.
func (s *Section) unchanged() bool {
	if !s.hasRawData {
		return false
	}
	if s.Delimiter != s.origDelim || s.Terminator != s.origTerm || s.InlineComment != s.origInline {
		return false
	}
	if len(s.Data) != len(s.origData) {
		return false
	}
	for i := range s.Data {
		if s.Data[i] != s.origData[i] {
			return false
		}
	}
	return true
}

// Document is a parsed storm file: an ordered sequence of sections plus the
// structural values read from the storm-parameters line.
type Document struct {
	Filepath string
	Sections []*Section

	TimeIncrement float64
	Duration      int
	BurstCount    int
	PluvioCount   int
}

// First returns the first section of the given category, or nil.
func (d *Document) First(c Category) *Section {
	for _, s := range d.Sections {
		if s.Category == c {
			return s
		}
	}
	return nil
}

// Count returns the number of sections of the given category.
func (d *Document) Count(c Category) int {
	n := 0
	for _, s := range d.Sections {
		if s.Category == c {
			n++
		}
	}
	return n
}

// Partner returns the other half of a sub-area rainfall / pluviograph
// reference burst pair: the section of the opposite category at the same
// ordinal position. It returns nil for any other category or when no partner
// exists.
func (d *Document) Partner(sec *Section) *Section {
	return partner(d.Sections, sec)
}

func partner(sections []*Section, sec *Section) *Section {
	var want Category
	switch sec.Category {
	case SubareaRain:
		want = PluvioRef
	case PluvioRef:
		want = SubareaRain
	default:
		return nil
	}
	ord := ordinal(sections, sec)
	if ord < 0 {
		return nil
	}
	return nth(sections, want, ord)
}

// ordinal returns sec's 0-based position among sections of its own category,
// or -1 if sec is not in the list.
func ordinal(sections []*Section, sec *Section) int {
	n := 0
	for _, s := range sections {
		if s == sec {
			return n
		}
		if s.Category == sec.Category {
			n++
		}
	}
	return -1
}

// nth returns the n-th (0-based) section of the given category, or nil.
func nth(sections []*Section, c Category, n int) *Section {
	seen := 0
	for _, s := range sections {
		if s.Category == c {
			if seen == n {
				return s
			}
			seen++
		}
	}
	return nil
}

// lastIndex returns the index in d.Sections of the last section of the given
// category, or -1.
func (d *Document) lastIndex(c Category) int {
	idx := -1
	for i, s := range d.Sections {
		if s.Category == c {
			idx = i
		}
	}
	return idx
}

// insertPos returns the index at which a new section of the given category
// belongs: after the last of its own kind, else after the last section of any
// earlier category.
func (d *Document) insertPos(c Category) int {
	if last := d.lastIndex(c); last >= 0 {
		return last + 1
	}
	for earlier := c - 1; earlier >= EventHeader; earlier-- {
		if last := d.lastIndex(earlier); last >= 0 {
			return last + 1
		}
	}
	return len(d.Sections)
}

// insertAt splices sec into d.Sections at index i.
func (d *Document) insertAt(i int, sec *Section) {
	d.Sections = append(d.Sections, nil)
	copy(d.Sections[i+1:], d.Sections[i:])
	d.Sections[i] = sec
}

// removeAt deletes the section at index i.
func (d *Document) removeAt(i int) {
	d.Sections = append(d.Sections[:i], d.Sections[i+1:]...)
}

// indexOf returns the index of sec in d.Sections, or -1.
func (d *Document) indexOf(sec *Section) int {
	for i, s := range d.Sections {
		if s == sec {
			return i
		}
	}
	return -1
}
