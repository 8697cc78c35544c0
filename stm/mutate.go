package stm

import (
	"fmt"
	"strconv"
	"strings"
)

// StormParamLabels describes the storm-parameter tokens by index.
var StormParamLabels = []string{
	"Time Increment, h (Item 7.3)",
	"No. of Time Incs. for Calcs (Item 7.4)",
	"No. of Rainfall Bursts (Item 7.5)",
	"No. of Pluviographs (Item 7.6)",
	"Areal Rainfall Flag (Item 7.7: 0=uniform, 1=variable)",
}

// Storm-parameter token indexes that drive document structure.
const (
	paramBurstCount  = 2
	paramPluvioCount = 3
)

// Resize bounds for count-driven section synthesis.
const (
	maxBursts  = 200
	maxPluvios = 500
)

// StormParam returns the i-th storm-parameter token, or "" when absent.
func (d *Document) StormParam(i int) string {
	sp := d.First(StormParams)
	if sp == nil || i < 0 || i >= len(sp.Data) {
		return ""
	}
	return sp.Data[i]
}

// SetStormParam sets the i-th storm-parameter token. Setting the burst count
// or pluviograph count triggers a count-driven resize of the rest of the
// document; a non-integer value keeps the edit but performs no resize.
func (d *Document) SetStormParam(i int, value string) error {
	sp := d.First(StormParams)
	if sp == nil {
		return fmt.Errorf("document has no storm parameters section")
	}
	if i < 0 || i >= len(sp.Data) {
		return fmt.Errorf("storm parameter index %d out of range (0-%d)", i, len(sp.Data)-1)
	}
	sp.Data[i] = value
	if i == paramBurstCount || i == paramPluvioCount {
		d.SyncSectionsToParams()
	}
	return nil
}

// SyncStormParams recounts the pluviograph and burst sections and writes the
// counts back into the storm-parameters tokens, then renumbers the burst
// section labels. The document's BurstCount and PluvioCount follow.
func (d *Document) SyncStormParams() {
	sp := d.First(StormParams)
	if sp == nil {
		return
	}

	pluvios := d.Count(PluvioData)
	bursts := d.Count(SubareaRain)

	for len(sp.Data) < 5 {
		sp.Data = append(sp.Data, "1")
	}
	sp.Data[paramBurstCount] = strconv.Itoa(bursts)
	sp.Data[paramPluvioCount] = strconv.Itoa(pluvios)

	d.BurstCount = bursts
	d.PluvioCount = pluvios

	b := 0
	for _, sec := range d.Sections {
		if sec.Category == SubareaRain {
			b++
			sec.Label = fmt.Sprintf("Sub-area Rainfall - Burst %d", b)
		}
	}
	b = 0
	for _, sec := range d.Sections {
		if sec.Category == PluvioRef {
			b++
			sec.Label = fmt.Sprintf("Pluviograph Refs - Burst %d", b)
		}
	}
}

// SyncSectionsToParams resizes the document to match the burst and
// pluviograph counts stored in the storm-parameters tokens: pluviograph data
// sections are appended or removed at the end of their block, sub-area
// rainfall and pluviograph reference sections are appended or removed in
// pairs, and the burst-ranges value list grows or shrinks two values at a
// time. Non-integer count tokens abort the sync; out-of-range targets are
// clamped.
func (d *Document) SyncSectionsToParams() {
	sp := d.First(StormParams)
	if sp == nil || len(sp.Data) < 4 {
		return
	}

	targetBursts, err := strconv.Atoi(strings.TrimSpace(sp.Data[paramBurstCount]))
	if err != nil {
		return
	}
	targetPluvios, err := strconv.Atoi(strings.TrimSpace(sp.Data[paramPluvioCount]))
	if err != nil {
		return
	}
	targetBursts = clamp(targetBursts, 0, maxBursts)
	targetPluvios = clamp(targetPluvios, 0, maxPluvios)

	// Pluviograph data sections.
	cur := d.Count(PluvioData)
	for cur < targetPluvios {
		cur++
		sec := &Section{
			Category:   PluvioData,
			Delimiter:  ",",
			Terminator: TermInline,
			PrefixLine: fmt.Sprintf("Pluvio_%d", cur),
			Data:       d.defaultData(PluvioData),
			Label:      fmt.Sprintf("Pluviograph %d", cur),
		}
		d.insertAt(d.insertPos(PluvioData), sec)
	}
	for cur > targetPluvios && cur > 0 {
		if i := d.lastIndex(PluvioData); i >= 0 {
			d.removeAt(i)
		}
		cur--
	}

	// Sub-area rainfall and pluviograph reference sections, in pairs.
	cur = d.Count(SubareaRain)
	for cur < targetBursts {
		cur++
		d.insertAt(d.insertPos(SubareaRain), newSubareaSection(cur, d.defaultData(SubareaRain)))
		d.insertAt(d.insertPos(PluvioRef), newPluvioRefSection(cur, d.defaultData(PluvioRef)))
	}
	for cur > targetBursts && cur > 0 {
		if i := d.lastIndex(SubareaRain); i >= 0 {
			d.removeAt(i)
		}
		if i := d.lastIndex(PluvioRef); i >= 0 {
			d.removeAt(i)
		}
		cur--
	}

	// Burst time ranges: one start/end pair per burst.
	if br := d.First(BurstRanges); br != nil {
		needed := targetBursts * 2
		for len(br.Data) < needed {
			br.Data = append(br.Data, "0", "0")
		}
		for len(br.Data) > needed && len(br.Data) >= 2 {
			br.Data = br.Data[:len(br.Data)-2]
		}
	}

	d.SyncStormParams()
}

// AddPluviograph appends a new pluviograph data section with the given
// station ID (or a generated one when empty) and zeroed values shaped like
// the existing pluviographs, then re-syncs the storm-parameter counts.
func (d *Document) AddPluviograph(stationID string) *Section {
	count := d.Count(PluvioData)
	if strings.TrimSpace(stationID) == "" {
		stationID = fmt.Sprintf("Pluvio_%d", count+1)
	}
	sec := &Section{
		Category:   PluvioData,
		Delimiter:  ",",
		Terminator: TermInline,
		PrefixLine: stationID,
		Data:       d.defaultData(PluvioData),
		Label:      fmt.Sprintf("Pluviograph %d", count+1),
	}
	d.insertAt(d.insertPos(PluvioData), sec)
	d.SyncStormParams()
	return sec
}

// AddBurst appends a paired sub-area rainfall and pluviograph reference
// section, extends the burst-ranges list by one start/end pair, and re-syncs
// the storm-parameter counts. It returns the new pair.
func (d *Document) AddBurst() (subarea, ref *Section) {
	n := d.Count(SubareaRain) + 1

	subarea = newSubareaSection(n, d.defaultData(SubareaRain))
	d.insertAt(d.insertPos(SubareaRain), subarea)

	ref = newPluvioRefSection(n, d.defaultData(PluvioRef))
	d.insertAt(d.insertPos(PluvioRef), ref)

	if br := d.First(BurstRanges); br != nil {
		br.Data = append(br.Data, "0", "0")
	}

	d.SyncStormParams()
	return subarea, ref
}

// AddHydroStation appends a new hydrograph station section with the given
// name (or a generated one when empty), extending the hydrograph time ranges
// by one start/end pair and creating that section first if absent.
func (d *Document) AddHydroStation(name string) *Section {
	count := d.Count(HydroStation)
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Station_%d", count+1)
	}

	if htr := d.First(HydroTimeRanges); htr != nil {
		htr.Data = append(htr.Data, "0", "0")
	} else {
		htr = &Section{
			Category:     HydroTimeRanges,
			Delimiter:    ",",
			Terminator:   TermInline,
			CommentLines: []string{"C Hydrograph data"},
			Data:         []string{"0", "0"},
			Label:        "Hydrograph Time Ranges",
		}
		d.insertAt(d.insertPos(HydroTimeRanges), htr)
	}

	sec := &Section{
		Category:   HydroStation,
		Delimiter:  ",",
		Terminator: TermInline,
		PrefixLine: name,
		Data:       d.defaultData(HydroStation),
		Label:      "Hydro: " + shortStationName(name),
	}
	d.insertAt(d.insertPos(HydroStation), sec)
	return sec
}

// DeleteSection removes a section from the document, maintaining the
// cross-section invariants. Structural sections cannot be deleted, and a
// pluviograph reference cannot be deleted independently of its paired
// sub-area rainfall section. Deleting a sub-area rainfall section removes its
// paired reference section and the matching burst-range pair; deleting a
// hydrograph station removes the matching time-range pair.
func (d *Document) DeleteSection(sec *Section) error {
	idx := d.indexOf(sec)
	if idx < 0 {
		return fmt.Errorf("section not in document")
	}

	switch sec.Category {
	case EventHeader, ModelMode, StormParams, BurstRanges:
		return fmt.Errorf("the %s section is required and cannot be deleted", sec.Category)
	case PluvioRef:
		return fmt.Errorf("pluviograph references are paired with sub-area rainfalls: delete the corresponding sub-area rainfall section instead")
	}

	switch sec.Category {
	case SubareaRain:
		ord := ordinal(d.Sections, sec)
		if ref := nth(d.Sections, PluvioRef, ord); ref != nil {
			d.removeAt(d.indexOf(ref))
		}
		d.removeAt(d.indexOf(sec))
		removeRangePair(d.First(BurstRanges), ord)
		d.SyncStormParams()

	case HydroStation:
		ord := ordinal(d.Sections, sec)
		d.removeAt(d.indexOf(sec))
		removeRangePair(d.First(HydroTimeRanges), ord)

	default:
		d.removeAt(idx)
		if sec.Category == PluvioData {
			d.SyncStormParams()
		}
	}
	return nil
}

// AppendColumn adds a zero value to the end of a section's data, resizing the
// burst partner to match.
func (d *Document) AppendColumn(sec *Section) {
	sec.Data = append(sec.Data, "0")
	d.syncPairedColumns(sec)
}

// InsertColumn inserts a zero value before position at, resizing the burst
// partner to match.
func (d *Document) InsertColumn(sec *Section, at int) error {
	if at < 0 || at > len(sec.Data) {
		return fmt.Errorf("column index %d out of range (0-%d)", at, len(sec.Data))
	}
	sec.Data = append(sec.Data, "")
	copy(sec.Data[at+1:], sec.Data[at:])
	sec.Data[at] = "0"
	d.syncPairedColumns(sec)
	return nil
}

// DeleteLastColumn removes the final value of a section's data, resizing the
// burst partner to match.
func (d *Document) DeleteLastColumn(sec *Section) {
	if len(sec.Data) > 0 {
		sec.Data = sec.Data[:len(sec.Data)-1]
	}
	d.syncPairedColumns(sec)
}

// DeleteColumn removes the value at position at, resizing the burst partner
// to match.
func (d *Document) DeleteColumn(sec *Section, at int) error {
	if at < 0 || at >= len(sec.Data) {
		return fmt.Errorf("column index %d out of range (0-%d)", at, len(sec.Data)-1)
	}
	sec.Data = append(sec.Data[:at], sec.Data[at+1:]...)
	d.syncPairedColumns(sec)
	return nil
}

// AppendRangePair adds a (start, end) pair to a burst-ranges or hydrograph
// time-ranges section.
func (d *Document) AppendRangePair(sec *Section) error {
	if sec.Category != BurstRanges && sec.Category != HydroTimeRanges {
		return fmt.Errorf("cannot add a range pair to a %s section", sec.Category)
	}
	sec.Data = append(sec.Data, "0", "0")
	return nil
}

// DeleteLastRangePair removes the final (start, end) pair from a burst-ranges
// or hydrograph time-ranges section.
func (d *Document) DeleteLastRangePair(sec *Section) error {
	if sec.Category != BurstRanges && sec.Category != HydroTimeRanges {
		return fmt.Errorf("cannot remove a range pair from a %s section", sec.Category)
	}
	if len(sec.Data) >= 2 {
		sec.Data = sec.Data[:len(sec.Data)-2]
	}
	return nil
}

// syncPairedColumns resizes a burst section's partner to the same value
// count, filling with the partner's default value or truncating.
func (d *Document) syncPairedColumns(sec *Section) {
	p := partner(d.Sections, sec)
	if p == nil {
		return
	}
	target := len(sec.Data)
	fill := "0"
	if p.Category == PluvioRef {
		fill = "1"
	}
	for len(p.Data) < target {
		p.Data = append(p.Data, fill)
	}
	if len(p.Data) > target {
		p.Data = p.Data[:target]
	}
}

// defaultData returns the default value list for a newly synthesized section
// of the given category: the shape of the last existing section of that
// category filled with the category's default value, or a single default
// value when none exists.
func (d *Document) defaultData(c Category) []string {
	fill := "0"
	fallback := "0"
	switch c {
	case SubareaRain:
		fallback = "1.0"
	case PluvioRef:
		fill = "1"
		fallback = "1"
	}
	width := 0
	for _, sec := range d.Sections {
		if sec.Category == c && len(sec.Data) > 0 {
			width = len(sec.Data)
		}
	}
	if width == 0 {
		return []string{fallback}
	}
	out := make([]string, width)
	for i := range out {
		out[i] = fill
	}
	return out
}

func newSubareaSection(burst int, data []string) *Section {
	return &Section{
		Category:     SubareaRain,
		Delimiter:    ",",
		Terminator:   TermInline,
		CommentLines: []string{fmt.Sprintf("C Sub-area rainfall for Burst %d", burst)},
		Data:         data,
		Label:        fmt.Sprintf("Sub-area Rainfall - Burst %d", burst),
	}
}

func newPluvioRefSection(burst int, data []string) *Section {
	return &Section{
		Category:     PluvioRef,
		Delimiter:    ",",
		Terminator:   TermInline,
		CommentLines: []string{fmt.Sprintf("C Pluviograph references for Burst %d", burst)},
		Data:         data,
		Label:        fmt.Sprintf("Pluviograph Refs - Burst %d", burst),
	}
}

// removeRangePair removes the (start, end) value pair at the given ordinal's
// 2x offset, tolerating a trailing unpaired value.
func removeRangePair(sec *Section, ord int) {
	if sec == nil || ord < 0 {
		return
	}
	start := ord * 2
	switch {
	case start+1 < len(sec.Data):
		sec.Data = append(sec.Data[:start], sec.Data[start+2:]...)
	case start < len(sec.Data):
		sec.Data = append(sec.Data[:start], sec.Data[start+1:]...)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NewDocument returns a minimal default storm document: one burst, one
// pluviograph, one hydrograph station, all comma-delimited with inline
// sentinels.
func NewDocument() *Document {
	doc := &Document{
		TimeIncrement: 1,
		Duration:      1,
		BurstCount:    1,
		PluvioCount:   1,
	}
	doc.Sections = []*Section{
		{Category: EventHeader, RawText: "New Storm Event", Label: "Event Description"},
		{Category: ModelMode, RawText: "DESIGN", Label: "Model Mode"},
		{
			Category:     StormParams,
			Delimiter:    ",",
			Terminator:   TermInline,
			CommentLines: []string{"C time_inc, duration, burst_count, pluvio_count, flag"},
			Data:         []string{"1", "1", "1", "1", "1"},
			Label:        "Storm Parameters",
		},
		{
			Category:   BurstRanges,
			Delimiter:  ",",
			Terminator: TermInline,
			Data:       []string{"0", "1"},
			Label:      "Burst Time Ranges",
		},
		{
			Category:   PluvioData,
			Delimiter:  ",",
			Terminator: TermInline,
			PrefixLine: "Pluvio_1",
			Data:       []string{"0"},
			Label:      "Pluviograph 1",
		},
		newSubareaSection(1, []string{"1.0"}),
		newPluvioRefSection(1, []string{"1"}),
		{
			Category:     HydroTimeRanges,
			Delimiter:    ",",
			Terminator:   TermInline,
			CommentLines: []string{"C Hydrograph data"},
			Data:         []string{"0", "1"},
			Label:        "Hydrograph Time Ranges",
		},
		{
			Category:   HydroStation,
			Delimiter:  ",",
			Terminator: TermInline,
			PrefixLine: "Station_1",
			Data:       []string{"0"},
			Label:      "Hydro: Station_1",
		},
	}
	return doc
}
