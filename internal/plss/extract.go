package plss

import (
	"fmt"
	"strings"

	"goplss/pkg/tokens"
)

// extractorState names the conceptual state machine state each per-layout
// extractor walks through, per §4.E. The five layouts share the same six
// states but differ in which anchor (Twp/Rge or Section) closes a tract and
// which one opens it, so each layout gets its own walk rather than a single
// generic transition table.
type extractorState int

const (
	stateAwaitTR extractorState = iota
	stateHaveTR
	stateAwaitSec
	stateHaveSec
	stateCollectDesc
	stateEmit
)

// rawTract is an intermediate extraction result: a composed TRS plus its
// description-block text and position, before lot/QQ parsing (stages F/G)
// has run.
type rawTract struct {
	TRS  TRS
	Desc string
	Pos  int // byte offset used to order tracts left-to-right before emission
}

// maxExtractIterations is an iteration cap constant. No per-layout walk
// references it: each walk is a loop over the token matches found, so it
// is bounded by their number, and no cap is applied on top of that.
const maxExtractIterations = 100000

// ExtractTracts runs the Tract Extractor (§4.E) over preprocessed text
// already classified into one of the five layouts, returning zero or more
// rawTracts plus any diagnostics raised along the way. Fatal conditions
// (§7: no Twp/Rge anywhere, no Section anywhere, empty text) each produce a
// single error rawTract carrying the appropriate sentinel TRS.
func ExtractTracts(text string, layout Layout, cfg Config, store *FlagStore) []rawTract {
	if text == "" {
		store.Error(FlagNoText, "empty input")
		return []rawTract{{TRS: ErrorTRS(), Desc: ""}}
	}

	trMatches := tokens.FindTwpRge(text)
	secMatches := tokens.FindSections(text)

	if layout == LayoutCopyAll || len(trMatches) == 0 || len(secMatches) == 0 {
		return extractCopyAll(text, trMatches, secMatches, store)
	}

	var tracts []rawTract
	switch layout {
	case LayoutTRSDesc:
		tracts = extractLeadingTR(text, trMatches, secMatches, cfg, store, true)
	case LayoutTRDescS:
		tracts = extractLeadingTR(text, trMatches, secMatches, cfg, store, false)
	case LayoutSDescTR:
		tracts = extractTrailingTR(text, trMatches, secMatches, cfg, store, true)
	case LayoutDescSTR:
		tracts = extractTrailingTR(text, trMatches, secMatches, cfg, store, false)
	default:
		return extractCopyAll(text, trMatches, secMatches, store)
	}

	sortRawTractsByPos(tracts)
	return tracts
}

// extractCopyAll handles the copy_all layout and every fatal short-circuit:
// it makes a best-effort attempt to recover a lone Twp or Rge half (§7's
// "-R97W Sec 14" example, which still raises no_tr despite the partial rge
// recovery) and a lone Section, then emits exactly one tract whose
// description is the entire input.
func extractCopyAll(text string, trMatches []tokens.TwpRgeMatch, secMatches []tokens.SectionMatch, store *FlagStore) []rawTract {
	trs := TRS{Twp: undefinedTwpRge, Rge: undefinedTwpRge, Sec: undefinedSec}

	if len(trMatches) > 0 {
		m := trMatches[0]
		trs.Twp = composeTwp(m.TwpNumber, m.TwpDir)
		trs.Rge = composeRge(m.RgeNumber, m.RgeDir)
	} else {
		store.Error(FlagNoTR, "no Twp/Rge found anywhere in input")
		trs.Twp = errorTwpRge
		trs.Rge = errorTwpRge
		if twps := tokens.FindTwpOnly(text); len(twps) > 0 {
			trs.Twp = composeTwp(twps[0].Number, twps[0].Dir)
		}
		if rges := tokens.FindRgeOnly(text); len(rges) > 0 {
			trs.Rge = composeRge(rges[0].Number, rges[0].Dir)
		}
	}

	if len(secMatches) > 0 {
		trs.Sec = NewSec(secMatches[0].Numbers[0])
	} else {
		store.Error(FlagNoSection, "no Section found anywhere in input")
		trs.Sec = errorSec
	}

	return []rawTract{{TRS: trs, Desc: text, Pos: 0}}
}

// composeTwp turns a raw regex capture into a normalized Twp component for
// extractCopyAll. A missing number or a missing direction yields the
// undefined sentinel ("unknown"); only a direction letter NewTwp does not
// recognize yields the error sentinel.
func composeTwp(number, dir string) string {
	if number == "" {
		return undefinedTwpRge
	}
	if dir == "" {
		return undefinedTwpRge
	}
	return NewTwp(number, dir)
}

func composeRge(number, dir string) string {
	if number == "" {
		return undefinedTwpRge
	}
	if dir == "" {
		return undefinedTwpRge
	}
	return NewRge(number, dir)
}

// trBlock is one Twp/Rge-delimited region of text, independent of whether
// the Twp/Rge anchor leads or trails the region in the source layout.
type trBlock struct {
	tr         tokens.TwpRgeMatch
	bodyStart  int
	bodyEnd    int
}

// buildLeadingBlocks partitions text into one block per Twp/Rge match, each
// block's body running from the end of its own Twp/Rge match to the start
// of the next one (or end of text), for the two layouts where Twp/Rge opens
// a tract (TRS_desc, TR_desc_S).
func buildLeadingBlocks(text string, trMatches []tokens.TwpRgeMatch) []trBlock {
	blocks := make([]trBlock, 0, len(trMatches))
	for i, m := range trMatches {
		end := len(text)
		if i+1 < len(trMatches) {
			end = trMatches[i+1].Start
		}
		blocks = append(blocks, trBlock{tr: m, bodyStart: m.End, bodyEnd: end})
	}
	return blocks
}

// buildTrailingBlocks partitions text into one block per Twp/Rge match, each
// block's body running from the end of the PRECEDING Twp/Rge match (or
// start of text) to the start of its own match, for the two layouts where
// Twp/Rge closes a tract (S_desc_TR, desc_STR).
func buildTrailingBlocks(text string, trMatches []tokens.TwpRgeMatch) []trBlock {
	blocks := make([]trBlock, 0, len(trMatches))
	for i, m := range trMatches {
		start := 0
		if i > 0 {
			start = trMatches[i-1].End
		}
		blocks = append(blocks, trBlock{tr: m, bodyStart: start, bodyEnd: m.Start})
	}
	return blocks
}

func sectionsInBlock(secMatches []tokens.SectionMatch, lo, hi int) []tokens.SectionMatch {
	var out []tokens.SectionMatch
	for _, s := range secMatches {
		if s.Start >= lo && s.Start < hi {
			out = append(out, s)
		}
	}
	return out
}

// selectSections applies §4.E's two-pass colon policy. On a first pass, a
// colon-less section is not accepted as introducing a tract; if that strict
// pass leaves at least one candidate, those are the only ones used. Only
// when the strict pass finds nothing in this block does a relaxed second
// pass admit the colon-less sections, each raising
// pulled_sec_without_colon. When require_colon is off, every candidate is
// accepted outright and no flag is ever raised.
func selectSections(secs []tokens.SectionMatch, cfg Config, store *FlagStore) []tokens.SectionMatch {
	if !cfg.RequireColon || len(secs) == 0 {
		return secs
	}
	var strict []tokens.SectionMatch
	for _, s := range secs {
		if s.HasColon {
			strict = append(strict, s)
		}
	}
	if len(strict) > 0 {
		return strict
	}
	for _, s := range secs {
		store.Warn(FlagPulledSecWithoutColon, s.Text)
	}
	return secs
}

// extractLeadingTR handles TRS_desc (descAfterSection=true: Twp/Rge, then
// Section(s), then description) and TR_desc_S (descAfterSection=false:
// Twp/Rge, then description, then the closing Section(s)).
func extractLeadingTR(text string, trMatches []tokens.TwpRgeMatch, secMatches []tokens.SectionMatch, cfg Config, store *FlagStore, descAfterSection bool) []rawTract {
	if pre := text[:trMatches[0].Start]; len(strings.TrimSpace(pre)) > 0 {
		store.Warn(FlagUnusedDesc, pre)
	}

	var tracts []rawTract
	blocks := buildLeadingBlocks(text, trMatches)

	for _, blk := range blocks {
		trs := composeBlockTRS(blk.tr)
		secs := sectionsInBlock(secMatches, blk.bodyStart, blk.bodyEnd)
		if len(secs) == 0 {
			if cfg.SecWithin {
				tracts = append(tracts, sectionWithinTract(trs, text, blk, store)...)
				continue
			}
			store.Warn(FlagTRNotPulled, fmt.Sprintf("%q: no section found in block", blk.tr.Text))
			continue
		}
		secs = selectSections(secs, cfg, store)

		if descAfterSection {
			for i, sec := range secs {
				descStart := sec.End
				descEnd := blk.bodyEnd
				if i+1 < len(secs) {
					descEnd = secs[i+1].Start
				}
				desc := text[descStart:descEnd]
				tracts = append(tracts, expandMultiSection(trs, sec, desc, sec.Start, store)...)
			}
		} else {
			// TR_desc_S: only the first Section in the block closes a
			// tract; the description is everything between the TR match
			// and that Section. Any further Section matches in the same
			// block belong to a later tract this layout can't express and
			// are surfaced as unpulled.
			sec := secs[0]
			desc := text[blk.bodyStart:sec.Start]
			tracts = append(tracts, expandMultiSection(trs, sec, desc, blk.bodyStart, store)...)
			for _, extra := range secs[1:] {
				store.Warn(FlagSecNotPulled, extra.Text)
			}
		}
	}

	return tracts
}

// extractTrailingTR handles S_desc_TR (descAfterSection=true: Section(s),
// then description, then the closing Twp/Rge) and desc_STR
// (descAfterSection=false: description, then the closing Section(s), then
// Twp/Rge).
func extractTrailingTR(text string, trMatches []tokens.TwpRgeMatch, secMatches []tokens.SectionMatch, cfg Config, store *FlagStore, descAfterSection bool) []rawTract {
	if post := text[trMatches[len(trMatches)-1].End:]; len(strings.TrimSpace(post)) > 0 {
		store.Warn(FlagUnusedDesc, post)
	}

	var tracts []rawTract
	blocks := buildTrailingBlocks(text, trMatches)

	for _, blk := range blocks {
		trs := composeBlockTRS(blk.tr)
		secs := sectionsInBlock(secMatches, blk.bodyStart, blk.bodyEnd)
		if len(secs) == 0 {
			if cfg.SecWithin {
				tracts = append(tracts, sectionWithinTract(trs, text, blk, store)...)
				continue
			}
			store.Warn(FlagTRNotPulled, fmt.Sprintf("%q: no section found in block", blk.tr.Text))
			continue
		}
		secs = selectSections(secs, cfg, store)

		if descAfterSection {
			sec := secs[0]
			desc := text[sec.End:blk.bodyEnd]
			tracts = append(tracts, expandMultiSection(trs, sec, desc, sec.Start, store)...)
			for _, extra := range secs[1:] {
				store.Warn(FlagSecNotPulled, extra.Text)
			}
		} else {
			// desc_STR: the LAST Section in the block is the one that
			// directly precedes the closing Twp/Rge; the description is
			// everything before it. Earlier Section matches in the same
			// block are prose the extractor can't attach to a tract here.
			sec := secs[len(secs)-1]
			desc := text[blk.bodyStart:sec.Start]
			tracts = append(tracts, expandMultiSection(trs, sec, desc, blk.bodyStart, store)...)
			for _, extra := range secs[:len(secs)-1] {
				store.Warn(FlagSecNotPulled, extra.Text)
			}
		}
	}

	return tracts
}

// sectionWithinTract implements the sec_within option (§6): when a Twp/Rge
// block carries no Section match at all, rather than surfacing the whole
// block as TR_not_pulled, treat its body as a single tract whose section is
// left undefined — the "section within description" reading, one tract per
// Twp/Rge region instead of zero.
func sectionWithinTract(trs TRS, text string, blk trBlock, store *FlagStore) []rawTract {
	desc := trimDescBoundary(text[blk.bodyStart:blk.bodyEnd])
	if desc == "" {
		store.Warn(FlagTRNotPulled, fmt.Sprintf("%q: no section found in block", blk.tr.Text))
		return nil
	}
	store.Warn(FlagSecWithin, blk.tr.Text)
	trs.Sec = undefinedSec
	return []rawTract{{TRS: trs, Desc: desc, Pos: blk.bodyStart}}
}

func composeBlockTRS(m tokens.TwpRgeMatch) TRS {
	return TRS{
		Twp: NewTwp(m.TwpNumber, m.TwpDir),
		Rge: NewRge(m.RgeNumber, m.RgeDir),
	}
}

// expandMultiSection turns one Section match (which may enumerate several
// numbers, per §4.E multi-section expansion) into one rawTract per number,
// each sharing the same description block and carrying the same position
// for final ordering purposes. A non-sequential numeric run (descending, or
// an enumerated list not in ascending order) is flagged but still honored
// literally.
func expandMultiSection(trs TRS, sec tokens.SectionMatch, desc string, pos int, store *FlagStore) []rawTract {
	desc = trimDescBoundary(desc)
	nums := sec.Numbers
	if len(nums) > 1 {
		store.Warn(FlagMultiSecFound, sec.Text)
		if !isAscending(nums) {
			store.Warn(FlagNonSequentialSection, sec.Text)
		}
	}

	out := make([]rawTract, 0, len(nums))
	for _, n := range nums {
		t := trs
		t.Sec = NewSec(n)
		out = append(out, rawTract{TRS: t, Desc: desc, Pos: pos})
	}
	return out
}

// trimDescBoundary trims the whitespace and separator punctuation
// (commas, semicolons) left dangling at a description block's edges once
// its bounding Section/Twp-Rge anchors are excised, so a tract's Desc
// reads as the bare aliquot/lot phrase rather than including the comma
// that used to separate it from its neighbor.
func trimDescBoundary(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, ",;")
	return strings.TrimSpace(s)
}

func isAscending(nums []int) bool {
	for i := 1; i < len(nums); i++ {
		if nums[i] <= nums[i-1] {
			return false
		}
	}
	return true
}

func sortRawTractsByPos(tracts []rawTract) {
	for i := 1; i < len(tracts); i++ {
		for j := i; j > 0 && tracts[j-1].Pos > tracts[j].Pos; j-- {
			tracts[j-1], tracts[j] = tracts[j], tracts[j-1]
		}
	}
}
