package plss

// FlagKind is a closed-ish but extensible tag for a diagnostic flag.
// Warnings are conventionally prefixed "w_" or descriptive camel/snake
// names; errors carry the structural-failure names from spec §7. Kind is a
// plain string (not a further-closed enum) so that the aliquot package's
// Warning kinds can be cast to it directly. Every kind raised is one of the
// constants below; per-occurrence detail (such as which Twp/Rge a TR_fixed
// completion filled) is carried in Flag.Context, never in the Kind.
type FlagKind string

const (
	// Structural / fatal.
	FlagNoTR      FlagKind = "no_tr"
	FlagNoSection FlagKind = "no_section"
	FlagNoText    FlagKind = "no_text"

	// Interpretive / warning.
	FlagTRFixed                FlagKind = "TR_fixed"
	FlagMultiSecFound          FlagKind = "multiSec_found"
	FlagNonSequentialSection   FlagKind = "nonSequen_sec"
	FlagNonSequentialLots      FlagKind = "nonSequen_lots"
	FlagPulledSecWithoutColon  FlagKind = "pulled_sec_without_colon"
	FlagSecNotPulled           FlagKind = "sec_not_pulled"
	FlagTRNotPulled            FlagKind = "TR_not_pulled"
	FlagUnusedDesc             FlagKind = "unused_desc"
	FlagDupLot                 FlagKind = "dup_lot"
	FlagLimitingLanguage       FlagKind = "limiting_language"
	FlagLayoutChangeInSegment  FlagKind = "layout_change_in_segment"
	FlagOCRFix                 FlagKind = "ocr_fix"
	FlagQQDepthMinMaxCollapsed FlagKind = "qq_depth_collapsed"
	FlagSegmented              FlagKind = "segmented"
	FlagSecWithin              FlagKind = "sec_within"

	// Configuration.
	FlagConfigIgnored FlagKind = "config_ignored"
)

// fatalKinds is the set of kinds that set Description.DescIsFlawed.
var fatalKinds = map[FlagKind]struct{}{
	FlagNoTR:      {},
	FlagNoSection: {},
	FlagNoText:    {},
}

// Flag is a tagged (kind, context) pair. Flags are additive and never
// erased once emitted (§3).
type Flag struct {
	Kind    FlagKind
	Context string
}

// IsError reports whether this flag kind is a structural/fatal one.
func (f Flag) IsError() bool {
	_, ok := fatalKinds[f.Kind]
	return ok
}

// FlagStore collects warnings and errors in chronological emission order,
// per §4.H / §5 ("Flag ordering within a description equals the
// chronological order of stage emission"). A store's flags are copied (not
// referenced) into every Tract at emission time; later writes to the store
// never retroactively change an already-emitted Tract's copy.
type FlagStore struct {
	flags []Flag
}

// Warn appends a warning-class flag.
func (s *FlagStore) Warn(kind FlagKind, context string) {
	s.flags = append(s.flags, Flag{Kind: kind, Context: context})
}

// Error appends an error-class flag.
func (s *FlagStore) Error(kind FlagKind, context string) {
	s.flags = append(s.flags, Flag{Kind: kind, Context: context})
}

// All returns every flag emitted so far, in emission order. The returned
// slice is a copy; mutating it does not affect the store.
func (s *FlagStore) All() []Flag {
	out := make([]Flag, len(s.flags))
	copy(out, s.flags)
	return out
}

// HasErrors reports whether any fatal/structural flag has been recorded.
func (s *FlagStore) HasErrors() bool {
	for _, f := range s.flags {
		if f.IsError() {
			return true
		}
	}
	return false
}

// Snapshot returns an independent copy of the store suitable for handing to
// a child Tract — a value copy, never a back-reference, per §3's ownership
// invariant and §9's "back-references... replaced by explicit value
// copies" design note.
func (s *FlagStore) Snapshot() []Flag {
	return s.All()
}
