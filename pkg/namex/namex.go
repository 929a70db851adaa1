// Package namex sanitizes arbitrary strings into safe column/field
// identifiers for the tabular exporter, memoizing repeat lookups with a
// bounded LRU cache.
package namex

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"
)

// blacklist holds identifiers that collide with common CSV/SQL tooling
// conventions when used as a bare column header: SQL reserved words (a
// header later loaded into a database as-is would otherwise need
// quoting). None of the exporter's own Field names is in the list.
var blacklist = map[string]struct{}{
	"add": {}, "alter": {}, "and": {}, "between": {}, "by": {}, "column": {},
	"create": {}, "delete": {}, "drop": {}, "exists": {}, "for": {}, "from": {},
	"group": {}, "having": {}, "in": {}, "insert": {}, "into": {}, "is": {},
	"like": {}, "not": {}, "null": {}, "or": {}, "order": {}, "select": {},
	"set": {}, "table": {}, "update": {}, "values": {}, "where": {},
	"index": {}, "key": {}, "primary": {}, "foreign": {}, "default": {},
}

// DefaultMaxNameLength is the longest sanitized header this package
// produces (0 would mean no truncation).
const DefaultMaxNameLength = 52

const cacheSize = 1024

var sanitizeCache, _ = lru.New[string, string](cacheSize)

// Sanitize turns an arbitrary file name, layer name, or caller-supplied
// header hint into a safe identifier: letters, digits, and underscores
// only, never starting with a digit, never equal (case-insensitively) to
// a blacklisted reserved word, and
// made unique against providedUsed when supplied. Results for a given
// input (ignoring providedUsed, which is inherently call-specific) are
// memoized.
func Sanitize(hint string, providedUsed map[string]struct{}) string {
	normalized := sanitizeCached(hint)

	if providedUsed == nil {
		return normalized
	}
	if _, exists := providedUsed[normalized]; !exists {
		providedUsed[normalized] = struct{}{}
		return normalized
	}
	for i := 1; ; i++ {
		cand := fmt.Sprintf("%s_%d", normalized, i)
		if _, exists := providedUsed[cand]; !exists {
			providedUsed[cand] = struct{}{}
			return cand
		}
	}
}

func sanitizeCached(hint string) string {
	if cached, ok := sanitizeCache.Get(hint); ok {
		return cached
	}
	result := sanitize(hint)
	sanitizeCache.Add(hint, result)
	return result
}

func sanitize(hint string) string {
	name := strings.TrimSpace(hint)
	if name == "" {
		return "unnamed"
	}
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = base
	}

	normalized := normalizeAndFold(stem)
	if normalized == "" {
		normalized = "unnamed"
	}

	lower := strings.ToLower(normalized)
	_, blacklisted := blacklist[lower]
	r, _ := utf8.DecodeRuneInString(normalized)
	if blacklisted || unicode.IsDigit(r) {
		normalized = "_" + normalized
	}

	if DefaultMaxNameLength > 0 {
		normalized = truncateRunes(normalized, DefaultMaxNameLength)
		normalized = strings.TrimRight(normalized, "_")
		if normalized == "" {
			normalized = "unnamed"
		}
	}

	return normalized
}

// normalizeAndFold applies Unicode NFKC folding, keeps only letters,
// digits, and underscore, collapses illegal runs into a single
// underscore, and trims leading/trailing underscores.
func normalizeAndFold(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	prevUnderscore := false
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	out := b.String()
	out = strings.Trim(out, "_")
	return out
}

// truncateRunes truncates s to at most max runes without allocating a
// rune slice.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runeCount := 0
	for i := range s {
		if runeCount == max {
			return s[:i]
		}
		runeCount++
	}
	return s
}
