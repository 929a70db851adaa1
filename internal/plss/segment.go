package plss

import (
	"fmt"

	"goplss/pkg/tokens"
)

// Segment is one layout-homogeneous substring produced by the Segmenter,
// together with the layout it was independently re-classified into.
type Segment struct {
	Text   string
	Layout Layout
	Offset int // byte offset of Text's start within the preprocessed description
}

// SegmentText splits preprocessed text between Twp/Rge regions, per §4.D:
// at the start of every second-and-later Twp/Rge match when Twp/Rge leads
// its tract, or at the end of every Twp/Rge match but the last when it
// trails (see the split-point comment below). Each resulting
// segment is independently re-classified by DetectLayout. When `forced` is
// not LayoutAuto, every segment is forced to that layout instead of being
// re-detected, matching the "force a specific layout" override in §6.
//
// Known limitation (documented, not recoverable, per §4.D): if the
// position of Twp/Rge relative to the description changes WITHIN a single
// Twp/Rge region, the later tract in that region cannot be recovered; this
// function only splits between Twp/Rge regions. Neither it nor the Tract
// Extractor detects that case: no layout_change_in_segment flag is raised,
// and the region is extracted under the one layout detected for its
// segment.
func SegmentText(text string, forced Layout, store *FlagStore) []Segment {
	trMatches := tokens.FindTwpRge(text)
	if len(trMatches) <= 1 {
		layout := DetectLayout(text, forced)
		return []Segment{{Text: text, Layout: layout, Offset: 0}}
	}

	// Whether Twp/Rge opens or closes a tract determines which side of
	// each Twp/Rge match the split falls on: a leading Twp/Rge belongs
	// with the text that FOLLOWS it (the boundary is the next match's
	// start), a trailing one belongs with the text that PRECEDES it (the
	// boundary is this match's own end). The same first-occurrence
	// ordering DetectLayout uses decides which convention applies.
	trAfterSec := false
	if secMatches := tokens.FindSections(text); len(secMatches) > 0 && secMatches[0].Start < trMatches[0].Start {
		trAfterSec = true
	}

	var boundaries []int
	if trAfterSec {
		for i := 0; i < len(trMatches)-1; i++ {
			boundaries = append(boundaries, trMatches[i].End)
		}
	} else {
		for i, m := range trMatches {
			if i == 0 {
				continue
			}
			boundaries = append(boundaries, m.Start)
		}
	}

	var segments []Segment
	start := 0
	for _, b := range boundaries {
		if b <= start {
			continue
		}
		piece := text[start:b]
		segments = append(segments, Segment{Text: piece, Offset: start})
		start = b
	}
	segments = append(segments, Segment{Text: text[start:], Offset: start})

	for i := range segments {
		segments[i].Layout = DetectLayout(segments[i].Text, forced)
	}

	if len(segments) > 1 {
		store.Warn(FlagSegmented, fmt.Sprintf("segmented into %d layout-homogeneous pieces", len(segments)))
	}
	return segments
}
