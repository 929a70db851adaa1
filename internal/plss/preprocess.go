package plss

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"

	"goplss/pkg/tokens"
)

// keyword is a literal PLSS keyword the OCR scrub fuzzy-recovers. Per the
// Open Question in spec §9 ("exact set of OCR substitutions... must be
// enumerated"), the narrow set this implementation applies is:
//   - digit-context O/0 confusion (scoped to runs that are otherwise all
//     digits, so it never touches prose),
//   - ASCII transliteration of stray non-ASCII glyphs via unidecode,
//   - Levenshtein-distance-<=2 recovery of these four keywords, which cover
//     every introducer the Token Library depends on.
var ocrKeywords = []string{"township", "range", "section", "lot"}

var wordPattern = regexp.MustCompile(`[A-Za-z]{4,}`)
var digitRunWithLetterO = regexp.MustCompile(`(?i)\b[0-9oO]{2,}\b`)

// Preprocess runs the full ordered pipeline from §4.B: OCR scrub (if
// enabled), Twp/Rge direction completion, and whitespace/punctuation
// canonicalization. It is idempotent in its text output — feeding
// Preprocess's own output back through Preprocess with the same Config
// produces byte-identical text, though flag re-emission for
// already-applied completions is suppressed (the already-preprocessed
// input carries explicit directions, so there is nothing left to fix).
func Preprocess(raw string, cfg Config, store *FlagStore) string {
	text := raw

	if cfg.OCRScrub {
		text = ocrScrub(text, store)
	}

	text = completeTwpRgeDirections(text, cfg, store)
	text = canonicalizeWhitespace(text)

	return text
}

// ocrScrub applies the narrow, enumerated OCR corrections: digit-context
// O/0 folding, stray-glyph ASCII transliteration via unidecode, and
// Levenshtein-bounded keyword recovery.
func ocrScrub(text string, store *FlagStore) string {
	text = digitRunWithLetterO.ReplaceAllStringFunc(text, func(run string) string {
		if !strings.ContainsAny(run, "oO") {
			return run
		}
		fixed := strings.NewReplacer("o", "0", "O", "0").Replace(run)
		if fixed != run {
			store.Warn(FlagOCRFix, fmt.Sprintf("%s->%s", run, fixed))
		}
		return fixed
	})

	transliterated := unidecode.Unidecode(text)
	if transliterated != text {
		store.Warn(FlagOCRFix, "unidecode: stray diacritics/smart-quotes normalized")
		text = transliterated
	}

	text = wordPattern.ReplaceAllStringFunc(text, func(word string) string {
		lower := strings.ToLower(word)
		for _, kw := range ocrKeywords {
			if lower == kw {
				return word
			}
			if levenshtein.ComputeDistance(lower, kw) <= 2 {
				store.Warn(FlagOCRFix, fmt.Sprintf("%s->%s", word, kw))
				return matchCase(word, kw)
			}
		}
		return word
	})

	return text
}

// matchCase title-cases the replacement if the original word was
// capitalized, otherwise lower-cases it — a minor cosmetic fidelity so OCR
// correction doesn't silently downcase "Township".
func matchCase(original, replacement string) string {
	if original == "" {
		return replacement
	}
	if original[0] >= 'A' && original[0] <= 'Z' {
		return strings.ToUpper(replacement[:1]) + replacement[1:]
	}
	return replacement
}

// completeTwpRgeDirections finds every Twp/Rge match missing a direction
// letter and rewrites it in place with the configured default, emitting a
// TR_fixed flag per completion. Matches that already carry an explicit
// direction are left untouched (and emit nothing), which is what makes
// Preprocess idempotent and what gives the "default-filling locality"
// property in §8: an explicit N/S/E/W in the input is never second-guessed.
func completeTwpRgeDirections(text string, cfg Config, store *FlagStore) string {
	matches := tokens.FindTwpRge(text)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])
		segment := m.Text
		if m.TwpDir == "" {
			segment = insertTwpDir(segment, cfg.DefaultNS)
			store.Warn(FlagTRFixed, fmt.Sprintf("twp=%s filled with %s", m.TwpNumber, cfg.DefaultNS))
		}
		if m.RgeDir == "" {
			segment = insertRgeDir(segment, cfg.DefaultEW)
			store.Warn(FlagTRFixed, fmt.Sprintf("rge=%s filled with %s", m.RgeNumber, cfg.DefaultEW))
		}
		b.WriteString(segment)
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// insertTwpDir appends a direction letter immediately after the township's
// digit run when the match's own text had none — a conservative rewrite
// that assumes the Twp digits are the first number in the matched segment.
func insertTwpDir(segment, dir string) string {
	for i, r := range segment {
		if r >= '0' && r <= '9' {
			j := i
			for j < len(segment) && segment[j] >= '0' && segment[j] <= '9' {
				j++
			}
			return segment[:j] + dir + segment[j:]
		}
	}
	return segment
}

// insertRgeDir appends a direction letter after the range's digit run,
// i.e. the LAST digit run in the matched segment.
func insertRgeDir(segment, dir string) string {
	lastDigitEnd := -1
	inRun := false
	for i, r := range segment {
		if r >= '0' && r <= '9' {
			inRun = true
			lastDigitEnd = i + 1
		} else if inRun {
			inRun = false
		}
	}
	if lastDigitEnd == -1 {
		return segment
	}
	return segment[:lastDigitEnd] + dir + segment[lastDigitEnd:]
}

var multiSpace = regexp.MustCompile(`[ \t]{2,}`)
var multiNewline = regexp.MustCompile(`\n{3,}`)

// fractionGlyphs maps the precomposed fraction glyphs the Token Library
// matches literally to their ASCII spelling. NFKC's own compatibility
// decomposition of ¼/½ lands on "1⁄4"/"1⁄2" (U+2044 FRACTION SLASH, not
// ASCII `/`), which none of the aliquot patterns recognize, so these are
// rewritten before NFKC ever sees them.
var fractionGlyphs = strings.NewReplacer("¼", "/4", "½", "/2")

// canonicalizeWhitespace normalizes Unicode forms (NFKC, folding fullwidth
// forms the way they'll be matched downstream) and collapses runs of
// horizontal whitespace / blank lines.
func canonicalizeWhitespace(text string) string {
	text = fractionGlyphs.Replace(text)
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = multiSpace.ReplaceAllString(text, " ")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
