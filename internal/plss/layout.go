package plss

import (
	"strings"

	"github.com/xrash/smetrics"

	"goplss/pkg/tokens"
)

// layoutSignatures gives each layout a canonical word-order phrase, used by
// tieBreak to score a text window's lexical similarity against rival
// readings when anchor ordering alone doesn't decide (§4.C's "earliest and
// most total matches" tie-break rule).
var layoutSignatures = map[Layout]string{
	LayoutTRSDesc: "township range section description",
	LayoutTRDescS: "township range description section",
	LayoutSDescTR: "section description township range",
	LayoutDescSTR: "description section township range",
}

// minAmbiguousGap is the shortest trimmed gap between two anchors treated as
// substantial prose rather than bare separator punctuation.
const minAmbiguousGap = 6

// DetectLayout classifies preprocessed text into one of the five layouts
// by locating the first Twp/Rge match, the first Section match, and
// treating everything else as the description-block region, then ordering
// those three anchors. Detection performs no mutation and has no side
// effects: it takes no flag store and records nothing about the layout it
// chose.
func DetectLayout(text string, forced Layout) Layout {
	if forced != LayoutAuto {
		return forced
	}

	trMatches := tokens.FindTwpRge(text)
	secMatches := tokens.FindSections(text)

	if len(trMatches) == 0 || len(secMatches) == 0 {
		return LayoutCopyAll
	}

	tr := trMatches[0]
	sec := secMatches[0]

	// The description-block boundary is "whatever text isn't claimed by the
	// TR or Section match nearest it" — for ordering purposes we only need
	// its position relative to TR and Sec, which is: immediately after
	// whichever of TR/Sec comes last, UNLESS that leaves no room before the
	// other, in which case the description precedes both.
	switch {
	case tr.Start < sec.Start:
		return tieBreak(text, LayoutTRSDesc, candidatesAfterTR(text, tr, sec))
	case sec.Start < tr.Start:
		// Section precedes TR: either the description is between them
		// (S_desc_TR) or before the section entirely (desc_STR). A colon
		// immediately after the section is the strongest signal that the
		// description follows the section (S_desc_TR); its absence, with
		// substantial text before the section match, favors desc_STR.
		if sec.HasColon || sec.Start < 3 {
			return LayoutSDescTR
		}
		return LayoutDescSTR
	default:
		return tieBreak(text, LayoutTRDescS, nil)
	}
}

// candidatesAfterTR flags the one genuine ambiguity left once Twp/Rge
// precedes the Section match: that ordering alone is consistent with both
// TRS_desc (description follows the Section) and TR_desc_S (a description
// sits between Twp/Rge and the Section). When the gap between the two
// anchors is more than a bare separator, TR_desc_S becomes a real rival
// reading worth scoring against the default.
func candidatesAfterTR(text string, tr tokens.TwpRgeMatch, sec tokens.SectionMatch) []Layout {
	gap := strings.Trim(strings.TrimSpace(text[tr.End:sec.Start]), ",;:.-")
	if len(gap) < minAmbiguousGap {
		return nil
	}
	return []Layout{LayoutTRDescS}
}

// tieBreak scores `primary` against any supplied alternates using each
// layout's own lexical signature, picking whichever scores highest; ties
// (including the no-alternates case) favor primary, per §4.C's explicit
// TRS_desc-biased tie-break rule.
func tieBreak(text string, primary Layout, alternates []Layout) Layout {
	if len(alternates) == 0 {
		return primary
	}
	window := normalizeForScoring(text)
	best := primary
	bestScore := smetrics.JaroWinkler(window, layoutSignatures[primary], 0.7, 4)
	for _, alt := range alternates {
		score := smetrics.JaroWinkler(window, layoutSignatures[alt], 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = alt
		}
	}
	return best
}

func normalizeForScoring(text string) string {
	if len(text) > 64 {
		return text[:64]
	}
	return text
}
