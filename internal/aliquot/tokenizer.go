// Package aliquot implements the aliquot/lot tokenizer and quarter-quarter
// tree expander (spec §4.F/§4.G). It has no dependency on the internal/plss
// package so the two can be tested independently; internal/plss translates
// this package's Warning values into its own flag store at the call site.
package aliquot

import (
	"sort"
	"strconv"
	"strings"

	"goplss/pkg/tokens"
)

// Warning kinds, deliberately spelled to match the internal/plss FlagKind
// string values of the same name so the caller can cast directly rather
// than maintaining a translation table.
const (
	KindDupLot             = "dup_lot"
	KindNonSequentialLots  = "nonSequen_lots"
	KindLimitingLanguage   = "limiting_language"
	KindQQDepthCollapsed   = "qq_depth_collapsed"
)

// Warning is a single diagnostic raised while tokenizing or expanding.
type Warning struct {
	Kind    string
	Context string
}

// Options configures tokenization and tree expansion, mirroring the
// relevant subset of plss.Config.
type Options struct {
	IncludeLotDivisions bool
	CleanQQ             bool
	BreakHalves         bool
	QQDepthMin          int
	QQDepthMax          int
}

// Result is the tokenizer's output: lots, their acreages, the expanded
// quarter-quarter leaves, and any warnings raised along the way.
type Result struct {
	Lots     []string
	LotAcres map[string]float64
	QQs      []string
	Warnings []Warning
}

var limitingPhrases = []string{"except", "excepting", "insofar as", "including", "less and except"}

// Parse tokenizes a tract's description block into lots and
// quarter-quarter leaves, per §4.F/§4.G.
func Parse(desc string, opts Options) Result {
	res := Result{LotAcres: map[string]float64{}}

	matches := tokens.FindAliquotsAndLots(desc, opts.CleanQQ)

	seenLots := map[int]bool{}
	var lotOrder []int
	var nonLot []tokens.AliquotMatch

	for _, m := range matches {
		switch m.Tag {
		case tokens.TagLot:
			appendLots(&res, seenLots, &lotOrder, m, "")
		case tokens.TagLotDivision:
			// include_lot_divisions only gates whether the qualifier is kept
			// ("N2 of L1") or collapsed to the plain lot ("L1") — the lot
			// itself always appears, per §6.
			qualifier := ""
			if opts.IncludeLotDivisions {
				qualifier = lotDivisionLabel(m.Direction)
			}
			appendLots(&res, seenLots, &lotOrder, m, qualifier)
		default:
			nonLot = append(nonLot, m)
		}
	}
	if !isAscendingInts(lotOrder) {
		res.Warnings = append(res.Warnings, Warning{Kind: KindNonSequentialLots, Context: desc})
	}

	lower := strings.ToLower(desc)
	for _, phrase := range limitingPhrases {
		if strings.Contains(lower, phrase) {
			res.Warnings = append(res.Warnings, Warning{Kind: KindLimitingLanguage, Context: phrase})
		}
	}

	phrases := groupPhrases(desc, nonLot)
	qqSeen := map[string]bool{}
	for _, phrase := range phrases {
		leaves, collapsed := expand(phrase, opts)
		if collapsed {
			res.Warnings = append(res.Warnings, Warning{Kind: KindQQDepthCollapsed, Context: strings.Join(phrase, "")})
		}
		for _, leaf := range leaves {
			if qqSeen[leaf] {
				continue
			}
			qqSeen[leaf] = true
			res.QQs = append(res.QQs, leaf)
		}
	}

	return res
}

// groupPhrases splits a run of quarter/half/ALL matches into independent
// aliquot phrases: a comma or "and"/"&" between two matches starts a new
// phrase unless the gap also contains "of", which signals the matches are
// still nested within the same containment chain ("NE/4 of the SE/4").
// ALL is always its own phrase with no components (empty), since it names
// the whole section rather than nesting into anything.
func groupPhrases(desc string, matches []tokens.AliquotMatch) [][]string {
	var phrases [][]string
	var current []string

	flush := func() {
		if len(current) > 0 {
			phrases = append(phrases, current)
			current = nil
		}
	}

	prevEnd := -1
	for _, m := range matches {
		if m.Tag == tokens.TagAll {
			flush()
			phrases = append(phrases, []string{})
			prevEnd = m.End
			continue
		}
		if prevEnd >= 0 {
			gap := strings.ToLower(desc[prevEnd:m.Start])
			breaksPhrase := (strings.Contains(gap, ",") || strings.Contains(gap, "&") || strings.Contains(gap, " and ")) &&
				!strings.Contains(gap, "of")
			if breaksPhrase {
				flush()
			}
		}
		current = append(current, m.Direction)
		prevEnd = m.End
	}
	flush()
	return phrases
}

// appendLots records every lot number in m against res.Lots, rendering the
// label as "<qualifier> of L<n>" when qualifier is non-empty, or the plain
// "L<n>" otherwise. Duplicate lot numbers (across any mix of plain and
// lot-division mentions) are flagged and skipped.
func appendLots(res *Result, seenLots map[int]bool, lotOrder *[]int, m tokens.AliquotMatch, qualifier string) {
	for _, n := range m.LotNumbers {
		if seenLots[n] {
			res.Warnings = append(res.Warnings, Warning{Kind: KindDupLot, Context: m.Text})
			continue
		}
		seenLots[n] = true
		*lotOrder = append(*lotOrder, n)
		plain := "L" + strconv.Itoa(n)
		label := plain
		if qualifier != "" {
			label = qualifier + " of " + plain
		}
		res.Lots = append(res.Lots, label)
		if m.HasAcres {
			res.LotAcres[label] = m.LotAcres
		}
	}
}

// lotDivisionLabel turns a lot-division match's direction qualifier into its
// compound-token fraction suffix: a quarter ("NE") takes "4", a half ("N")
// takes "2".
func lotDivisionLabel(direction string) string {
	if len(direction) == 2 {
		return direction + "4"
	}
	return direction + "2"
}

func isAscendingInts(nums []int) bool {
	return sort.IntsAreSorted(nums)
}
