package plss

import "fmt"

// TRS is the normalized Township/Range/Section identifier, composed as
// <twp><rge><sec> (e.g. "154n97w14"). Each component independently carries
// one of three states: well-formed, undefined (never seen), or error
// (seen but unparseable) — never more than one at a time, per §3.
const (
	undefinedTwpRge = "___z"
	errorTwpRge     = "XXXz"
	undefinedSec    = "__"
	errorSec        = "XX"
)

// TRS holds the three normalized components plus their precomputed
// composed string, matching the data model in spec §3.
type TRS struct {
	Twp string // e.g. "154n", sentinel "___z" or "XXXz"
	Rge string // e.g. "97w", sentinel "___z" or "XXXz"
	Sec string // e.g. "14", sentinel "__" or "XX"
}

// String returns the composed TRS form.
func (t TRS) String() string {
	return t.Twp + t.Rge + t.Sec
}

// IsError reports whether any component is in its error state.
func (t TRS) IsError() bool {
	return t.Twp == errorTwpRge || t.Rge == errorTwpRge || t.Sec == errorSec
}

// NewTwp composes a well-formed township component.
func NewTwp(number string, dir string) string {
	if number == "" {
		return undefinedTwpRge
	}
	if dir != "n" && dir != "s" {
		return errorTwpRge
	}
	return fmt.Sprintf("%s%s", number, dir)
}

// NewRge composes a well-formed range component.
func NewRge(number string, dir string) string {
	if number == "" {
		return undefinedTwpRge
	}
	if dir != "e" && dir != "w" {
		return errorTwpRge
	}
	return fmt.Sprintf("%s%s", number, dir)
}

// NewSec composes a well-formed, zero-padded section component.
func NewSec(number int) string {
	if number <= 0 {
		return undefinedSec
	}
	return fmt.Sprintf("%02d", number)
}

// ErrorTRS is the fatal-condition sentinel TRS: every component in its
// error state, used when no tract could be produced at all (§7).
func ErrorTRS() TRS {
	return TRS{Twp: errorTwpRge, Rge: errorTwpRge, Sec: errorSec}
}

// UndefinedTRS is an all-undefined TRS, used as a safe zero value distinct
// from the fatal ErrorTRS.
func UndefinedTRS() TRS {
	return TRS{Twp: undefinedTwpRge, Rge: undefinedTwpRge, Sec: undefinedSec}
}
