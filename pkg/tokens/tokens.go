// Package tokens centralizes the textual pattern matchers used by the PLSS
// parsing engine: Township/Range, Section (including multi-section
// enumerations and ranges), and aliquot/lot fragments. Matchers are
// precompiled once at package init and never mutate their input; they only
// report byte ranges and a canonical tag, per the Token Library contract.
package tokens

import (
	"regexp"
	"strconv"
	"strings"
)

// Tag is the closed set of canonical token kinds the library recognizes.
type Tag int

const (
	TagUnknown Tag = iota
	TagTwpRge
	TagSection
	TagQuarter
	TagHalf
	TagAll
	TagLot
	TagParenOpen
	TagParenClose
	TagComma
	TagAmpersand
	TagOf
	TagLotDivision
)

func (t Tag) String() string {
	switch t {
	case TagTwpRge:
		return "twp_rge"
	case TagSection:
		return "section"
	case TagQuarter:
		return "quarter"
	case TagHalf:
		return "half"
	case TagAll:
		return "all"
	case TagLot:
		return "lot"
	case TagParenOpen:
		return "paren_open"
	case TagParenClose:
		return "paren_close"
	case TagComma:
		return "comma"
	case TagAmpersand:
		return "ampersand"
	case TagOf:
		return "of"
	case TagLotDivision:
		return "lot_division"
	default:
		return "unknown"
	}
}

// Match is a single matcher hit: a byte range into the original text plus
// whatever the matcher could extract from it. Start/End are byte offsets,
// not rune offsets — callers needing rune-accurate diagnostics must convert.
type Match struct {
	Tag   Tag
	Start int
	End   int
	Text  string
}

// TwpRgeMatch is a Twp/Rge hit with its decomposed number/direction groups.
// Direction fields are empty when the source text omitted them (the
// Preprocessor fills defaults in that case and flags the completion).
type TwpRgeMatch struct {
	Match
	TwpNumber string
	TwpDir    string // "n", "s", or ""
	RgeNumber string
	RgeDir    string // "e", "w", or ""
}

// SectionMatch is a Section/Sections hit. Numbers holds every section number
// named by the match (a single entry for a plain "Section 14", several for
// an enumeration or range). HasColon records whether the match ends in a
// ':' (optionally after whitespace following the numbers), which the Tract
// Extractor treats as a strong signal.
type SectionMatch struct {
	Match
	Numbers  []int
	IsRange  bool // true for "14 - 17" style, as opposed to "14, 15 and 16"
	HasColon bool
}

// AliquotMatch is a hit inside description-block prose: a quarter, half,
// "ALL", lot, or lot-division fragment, together with whatever qualifying
// numbers it carries (lot numbers, lot acreage).
type AliquotMatch struct {
	Match
	Direction  string  // "NE","NW","SE","SW" for quarters; "N","S","E","W" for halves; same vocabulary for TagLotDivision's qualifier
	LotNumbers []int   // populated for TagLot and TagLotDivision
	LotAcres   float64 // 0 when no parenthetical acreage was present
	HasAcres   bool
}

var (
	// twpRgePattern matches a Twp/Rge pair in compact ("T154N-R97W") or
	// verbose ("Township 154 North, Range 97 West") form, tolerating
	// hyphens/commas/spaces between the two halves and a missing direction
	// letter on either half. The "T"/"Township" and "R"/"Range" introducers
	// are required: a bare "154N 97W" is not matched.
	twpRgePattern = regexp.MustCompile(
		`(?i)\bT(?:ownship)?\.?[\s-]*(\d{1,3})[\s-]*(North|South|N|S)?\b` +
			`[\s,-]{0,4}` +
			`\bR(?:ange)?\.?[\s-]*(\d{1,3})[\s-]*(East|West|E|W)?\b`)

	// sectionIntroPattern matches the "Section"/"Sections"/"Sec."/"§"
	// introducer plus the raw enumeration text that follows it, stopping at
	// the first colon (captured separately) or an aliquot/lot introducer.
	sectionIntroPattern = regexp.MustCompile(
		`(?i)(?:\b(?:Sections?|Sec\.?)|§)\s*` +
			`(\d{1,3}(?:\s*(?:[-–]|to)\s*\d{1,3})?(?:\s*(?:,|and|&)\s*\d{1,3}(?:\s*[-–]\s*\d{1,3})?)*)` +
			`\s*(:)?`)

	sectionRangePattern = regexp.MustCompile(`[-–]|(?i)\bto\b`)
	sectionListSplit    = regexp.MustCompile(`(?i)\s*(?:,|&|and)\s*`)

	quarterMarkedPattern = regexp.MustCompile(`(?i)(NE|NW|SE|SW)\s*(?:/\s*4|¼|4)`)
	quarterBarePattern   = regexp.MustCompile(`(?i)\b(NE|NW|SE|SW)\b`)
	quarterVerbosePattern = regexp.MustCompile(
		`(?i)\b(Northeast|Northwest|Southeast|Southwest)\s+Quarter\b`)

	halfMarkedPattern   = regexp.MustCompile(`(?i)([NSEW])\s*(?:/\s*2|½|2)`)
	halfVerbosePattern  = regexp.MustCompile(`(?i)\b(North|South|East|West)\s+Half\b`)
	allPattern          = regexp.MustCompile(`(?i)\bALL\b`)
	ofPattern           = regexp.MustCompile(`(?i)\bof\b`)
	lotPattern          = regexp.MustCompile(
		`(?i)\bL(?:ot)?s?\.?\s*` +
			`(\d{1,3}(?:\s*[-–]\s*\d{1,3})?(?:\s*(?:,|and|&)\s*\d{1,3}(?:\s*[-–]\s*\d{1,3})?)*)` +
			`\s*(?:\(\s*([\d.]+)\s*\))?`)

	// lotDivisionPattern matches a half/quarter-of-a-lot phrase ("N/2 of Lot
	// 1", "NE/4 of Lot 3") — §4.F's "lot divisions" fragment. The fraction
	// marker is required so a bare direction word immediately before "of
	// Lot" (rare, but not a division) doesn't get swept in.
	lotDivisionPattern = regexp.MustCompile(
		`(?i)\b(NE|NW|SE|SW|N|S|E|W)\s*(?:/\s*4|/\s*2|¼|½)\s+of\s+` +
			`L(?:ot)?s?\.?\s*` +
			`(\d{1,3}(?:\s*[-–]\s*\d{1,3})?(?:\s*(?:,|and|&)\s*\d{1,3}(?:\s*[-–]\s*\d{1,3})?)*)`)
	commaPattern       = regexp.MustCompile(`,`)
	ampersandPattern   = regexp.MustCompile(`&`)
	parenOpenPattern   = regexp.MustCompile(`\(`)
	parenClosePattern  = regexp.MustCompile(`\)`)

	// twpOnlyPattern and rgeOnlyPattern recover a lone Twp or Rge half when
	// the combined twpRgePattern can't match because its other half is
	// missing entirely (as opposed to merely missing a direction letter,
	// which twpRgePattern already tolerates). Used only for best-effort
	// partial recovery on the fatal no_tr path.
	twpOnlyPattern = regexp.MustCompile(`(?i)\bT(?:ownship)?\.?[\s-]*(\d{1,3})[\s-]*(North|South|N|S)?\b`)
	rgeOnlyPattern = regexp.MustCompile(`(?i)\bR(?:ange)?\.?[\s-]*(\d{1,3})[\s-]*(East|West|E|W)?\b`)
)

func verboseQuarterDir(word string) string {
	switch strings.ToLower(word) {
	case "northeast":
		return "NE"
	case "northwest":
		return "NW"
	case "southeast":
		return "SE"
	case "southwest":
		return "SW"
	default:
		return strings.ToUpper(word)
	}
}

func verboseHalfDir(word string) string {
	switch strings.ToLower(word) {
	case "north":
		return "N"
	case "south":
		return "S"
	case "east":
		return "E"
	case "west":
		return "W"
	default:
		return strings.ToUpper(word)
	}
}

func normDir1(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(s[:1])
}

// FindTwpRge returns every Twp/Rge hit in text, in source order.
func FindTwpRge(text string) []TwpRgeMatch {
	idx := twpRgePattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]TwpRgeMatch, 0, len(idx))
	for _, g := range idx {
		out = append(out, TwpRgeMatch{
			Match: Match{
				Tag:   TagTwpRge,
				Start: g[0],
				End:   g[1],
				Text:  text[g[0]:g[1]],
			},
			TwpNumber: groupText(text, g, 1),
			TwpDir:    normDir1(groupText(text, g, 2)),
			RgeNumber: groupText(text, g, 3),
			RgeDir:    normDir1(groupText(text, g, 4)),
		})
	}
	return out
}

func groupText(text string, idx []int, groupN int) string {
	lo, hi := idx[groupN*2], idx[groupN*2+1]
	if lo < 0 || hi < 0 {
		return ""
	}
	return text[lo:hi]
}

// FindSections returns every Section/Sections hit, expanded into their full
// list of numbers. A hyphenated/"to" range expands to every intervening
// integer in the direction given (non-sequential ranges like "9-3" are
// honored literally, descending).
func FindSections(text string) []SectionMatch {
	idx := sectionIntroPattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]SectionMatch, 0, len(idx))
	for _, g := range idx {
		listText := groupText(text, g, 1)
		colon := groupText(text, g, 2) == ":"
		nums, isRange := parseSectionList(listText)
		if len(nums) == 0 {
			continue
		}
		out = append(out, SectionMatch{
			Match: Match{
				Tag:   TagSection,
				Start: g[0],
				End:   g[1],
				Text:  text[g[0]:g[1]],
			},
			Numbers:  nums,
			IsRange:  isRange,
			HasColon: colon,
		})
	}
	return out
}

// parseSectionList expands "14", "14, 15 and 16", or "14 - 17" (or "9 to 3")
// into a concrete, ordered list of section numbers.
func parseSectionList(s string) (nums []int, isRange bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if sectionRangePattern.MatchString(s) && !sectionListSplit.MatchString(beforeFirstRange(s)) {
		parts := sectionRangePattern.Split(s, 2)
		if len(parts) == 2 {
			lo, errLo := strconv.Atoi(strings.TrimSpace(parts[0]))
			hi, errHi := strconv.Atoi(strings.TrimSpace(parts[1]))
			if errLo == nil && errHi == nil {
				return expandRange(lo, hi), true
			}
		}
	}
	for _, piece := range sectionListSplit.Split(s, -1) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		if sectionRangePattern.MatchString(piece) {
			parts := sectionRangePattern.Split(piece, 2)
			if len(parts) == 2 {
				lo, errLo := strconv.Atoi(strings.TrimSpace(parts[0]))
				hi, errHi := strconv.Atoi(strings.TrimSpace(parts[1]))
				if errLo == nil && errHi == nil {
					nums = append(nums, expandRange(lo, hi)...)
					continue
				}
			}
		}
		if n, err := strconv.Atoi(piece); err == nil {
			nums = append(nums, n)
		}
	}
	return nums, false
}

func beforeFirstRange(s string) string {
	loc := sectionRangePattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]]
}

// expandRange enumerates lo..hi inclusive, honoring a non-sequential
// (descending) range exactly as written.
func expandRange(lo, hi int) []int {
	var out []int
	if lo <= hi {
		for n := lo; n <= hi; n++ {
			out = append(out, n)
		}
	} else {
		for n := lo; n >= hi; n-- {
			out = append(out, n)
		}
	}
	return out
}

// FindAliquotsAndLots scans a description-block for quarter, half, ALL, and
// lot fragments. When cleanQQ is false, bare two-letter quarter tokens
// ("NE" with no "/4" or "Quarter" qualifier) are suppressed, since they
// collide with ordinary compass prose ("100 feet NE of the corner").
func FindAliquotsAndLots(text string, cleanQQ bool) []AliquotMatch {
	var out []AliquotMatch

	claimed := make([]bool, len(text)+1)
	mark := func(lo, hi int) {
		for i := lo; i < hi && i < len(claimed); i++ {
			claimed[i] = true
		}
	}
	overlaps := func(lo, hi int) bool {
		for i := lo; i < hi && i < len(claimed); i++ {
			if claimed[i] {
				return true
			}
		}
		return false
	}
	// Marked quarters and halves may run together ("SE/4NE/4", "E/2NE/4"),
	// so they are bounded here instead of by \b: a match must not follow a
	// letter and must not be followed by a digit.
	standalone := func(lo, hi int) bool {
		if lo > 0 {
			if c := text[lo-1] | 0x20; c >= 'a' && c <= 'z' {
				return false
			}
		}
		return hi == len(text) || text[hi] < '0' || text[hi] > '9'
	}

	for _, g := range lotDivisionPattern.FindAllStringSubmatchIndex(text, -1) {
		lo, hi := g[0], g[1]
		nums, _ := parseSectionList(groupText(text, g, 2))
		if len(nums) == 0 {
			continue
		}
		out = append(out, AliquotMatch{
			Match:      Match{Tag: TagLotDivision, Start: lo, End: hi, Text: text[lo:hi]},
			Direction:  strings.ToUpper(groupText(text, g, 1)),
			LotNumbers: nums,
		})
		mark(lo, hi)
	}

	for _, g := range lotPattern.FindAllStringSubmatchIndex(text, -1) {
		lo, hi := g[0], g[1]
		if overlaps(lo, hi) {
			continue
		}
		nums, _ := parseSectionList(groupText(text, g, 1))
		var acres float64
		hasAcres := false
		if a := groupText(text, g, 2); a != "" {
			if v, err := strconv.ParseFloat(a, 64); err == nil {
				acres = v
				hasAcres = true
			}
		}
		out = append(out, AliquotMatch{
			Match:      Match{Tag: TagLot, Start: lo, End: hi, Text: text[lo:hi]},
			LotNumbers: nums,
			LotAcres:   acres,
			HasAcres:   hasAcres,
		})
		mark(lo, hi)
	}

	for _, g := range quarterMarkedPattern.FindAllStringSubmatchIndex(text, -1) {
		lo, hi := g[0], g[1]
		if overlaps(lo, hi) || !standalone(lo, hi) {
			continue
		}
		out = append(out, AliquotMatch{
			Match:     Match{Tag: TagQuarter, Start: lo, End: hi, Text: text[lo:hi]},
			Direction: strings.ToUpper(groupText(text, g, 1)),
		})
		mark(lo, hi)
	}
	for _, g := range quarterVerbosePattern.FindAllStringSubmatchIndex(text, -1) {
		lo, hi := g[0], g[1]
		if overlaps(lo, hi) {
			continue
		}
		out = append(out, AliquotMatch{
			Match:     Match{Tag: TagQuarter, Start: lo, End: hi, Text: text[lo:hi]},
			Direction: verboseQuarterDir(groupText(text, g, 1)),
		})
		mark(lo, hi)
	}
	if cleanQQ {
		for _, g := range quarterBarePattern.FindAllStringSubmatchIndex(text, -1) {
			lo, hi := g[0], g[1]
			if overlaps(lo, hi) {
				continue
			}
			if !atSentenceBoundary(text, lo, hi) {
				continue
			}
			out = append(out, AliquotMatch{
				Match:     Match{Tag: TagQuarter, Start: lo, End: hi, Text: text[lo:hi]},
				Direction: strings.ToUpper(groupText(text, g, 1)),
			})
			mark(lo, hi)
		}
	}

	for _, g := range halfMarkedPattern.FindAllStringSubmatchIndex(text, -1) {
		lo, hi := g[0], g[1]
		if overlaps(lo, hi) || !standalone(lo, hi) {
			continue
		}
		out = append(out, AliquotMatch{
			Match:     Match{Tag: TagHalf, Start: lo, End: hi, Text: text[lo:hi]},
			Direction: strings.ToUpper(groupText(text, g, 1)),
		})
		mark(lo, hi)
	}
	for _, g := range halfVerbosePattern.FindAllStringSubmatchIndex(text, -1) {
		lo, hi := g[0], g[1]
		if overlaps(lo, hi) {
			continue
		}
		out = append(out, AliquotMatch{
			Match:     Match{Tag: TagHalf, Start: lo, End: hi, Text: text[lo:hi]},
			Direction: verboseHalfDir(groupText(text, g, 1)),
		})
		mark(lo, hi)
	}

	for _, loc := range allPattern.FindAllStringIndex(text, -1) {
		lo, hi := loc[0], loc[1]
		if overlaps(lo, hi) {
			continue
		}
		out = append(out, AliquotMatch{Match: Match{Tag: TagAll, Start: lo, End: hi, Text: text[lo:hi]}})
		mark(lo, hi)
	}

	sortMatchesByStart(out)
	return out
}

func sortMatchesByStart(matches []AliquotMatch) {
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j-1].Start > matches[j].Start; j-- {
			matches[j-1], matches[j] = matches[j], matches[j-1]
		}
	}
}

// atSentenceBoundary approximates "bare token sits at a clause boundary"
// by requiring the preceding non-space rune (if any) to be punctuation or
// start-of-text, matching the clean_qq heuristic in §4.F.3.
func atSentenceBoundary(text string, start, end int) bool {
	i := start - 1
	for i >= 0 && text[i] == ' ' {
		i--
	}
	if i < 0 {
		return true
	}
	switch text[i] {
	case ',', ':', ';', '(', '\n':
		return true
	default:
		return false
	}
}

// PartialDirMatch is a lone Twp or Rge half recovered by FindTwpOnly /
// FindRgeOnly for best-effort fatal-path identification.
type PartialDirMatch struct {
	Number string
	Dir    string
	Start  int
	End    int
}

// FindTwpOnly returns every standalone township mention, regardless of
// whether a range half accompanies it.
func FindTwpOnly(text string) []PartialDirMatch {
	idx := twpOnlyPattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]PartialDirMatch, 0, len(idx))
	for _, g := range idx {
		out = append(out, PartialDirMatch{
			Number: groupText(text, g, 1),
			Dir:    normDir1(groupText(text, g, 2)),
			Start:  g[0],
			End:    g[1],
		})
	}
	return out
}

// FindRgeOnly returns every standalone range mention, regardless of whether
// a township half accompanies it.
func FindRgeOnly(text string) []PartialDirMatch {
	idx := rgeOnlyPattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]PartialDirMatch, 0, len(idx))
	for _, g := range idx {
		out = append(out, PartialDirMatch{
			Number: groupText(text, g, 1),
			Dir:    normDir1(groupText(text, g, 2)),
			Start:  g[0],
			End:    g[1],
		})
	}
	return out
}

// FindOf reports every standalone "of" in text. The aliquot tokenizer does
// not call it; it checks the text between two matches for "of" directly.
func FindOf(text string) []Match {
	idx := ofPattern.FindAllStringIndex(text, -1)
	out := make([]Match, 0, len(idx))
	for _, loc := range idx {
		out = append(out, Match{Tag: TagOf, Start: loc[0], End: loc[1], Text: text[loc[0]:loc[1]]})
	}
	return out
}

// FindPunctuation returns commas, ampersands, and parentheses. The aliquot
// tokenizer does not call it; it checks the text between two matches for
// separators directly, and does not treat parentheses as grouping.
func FindPunctuation(text string) []Match {
	var out []Match
	add := func(tag Tag, locs [][]int) {
		for _, loc := range locs {
			out = append(out, Match{Tag: tag, Start: loc[0], End: loc[1], Text: text[loc[0]:loc[1]]})
		}
	}
	add(TagComma, commaPattern.FindAllStringIndex(text, -1))
	add(TagAmpersand, ampersandPattern.FindAllStringIndex(text, -1))
	add(TagParenOpen, parenOpenPattern.FindAllStringIndex(text, -1))
	add(TagParenClose, parenClosePattern.FindAllStringIndex(text, -1))
	sortMatchesByStartPlain(out)
	return out
}

func sortMatchesByStartPlain(matches []Match) {
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j-1].Start > matches[j].Start; j-- {
			matches[j-1], matches[j] = matches[j], matches[j-1]
		}
	}
}
