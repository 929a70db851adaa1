package plss

import (
	"goplss/internal/aliquot"
)

// Parse runs the full pipeline (§4.A-H: preprocess, detect layout,
// optionally segment, extract tracts, tokenize/expand each tract's
// aliquot description) over raw input, returning the owning Description.
// If cfg.WaitToParse is set, parsing is deferred: the returned Description
// holds the raw input, source, normalized Config and any configuration
// flags, but no Tracts, and must be driven later with Run.
func Parse(raw string, source Source, cfg Config) *Description {
	var pre FlagStore
	cfg = cfg.normalize(&pre)

	d := NewDescription(raw, source, cfg)
	d.Flags = pre

	if cfg.WaitToParse {
		return d
	}
	d.Run()
	return d
}

// Run executes the pipeline on a Description created with WaitToParse set.
// It does not clear Tracts or flags already present: running it again on a
// Description that has already been parsed appends a second set of Tracts
// and flags after the first. Callers that want a clean re-parse should
// construct a fresh Description instead.
func (d *Description) Run() {
	store := &d.Flags

	d.PPDesc = Preprocess(d.OrigDesc, d.Config, store)

	segments := []Segment{{Text: d.PPDesc, Layout: DetectLayout(d.PPDesc, d.Config.Layout), Offset: 0}}
	if d.Config.Segment {
		segments = SegmentText(d.PPDesc, d.Config.Layout, store)
	}

	for _, seg := range segments {
		raws := ExtractTracts(seg.Text, seg.Layout, d.Config, store)
		for _, rt := range raws {
			t := NewTract(rt.TRS, rt.Desc, d.Source)
			t.PPDesc = rt.Desc
			if d.Config.ParseQQ {
				applyAliquot(t, d.Config, store)
			}
			d.emitTract(t)
		}
	}

	d.finalize()
}

// applyAliquot runs the aliquot tokenizer/tree-expander (§4.F/§4.G) over a
// tract's description block and folds the result into the tract, replaying
// the tokenizer's warnings into the Description's shared flag store. The
// aliquot package has no knowledge of plss.FlagKind, so its Warning.Kind
// strings — chosen to match the FlagKind constants of the same name — are
// cast directly rather than translated through a lookup table.
func applyAliquot(t *Tract, cfg Config, store *FlagStore) {
	res := aliquot.ParseCached(t.PPDesc, aliquot.Options{
		IncludeLotDivisions: cfg.IncludeLotDivisions,
		CleanQQ:             cfg.CleanQQ,
		BreakHalves:         cfg.BreakHalves,
		QQDepthMin:          cfg.QQDepthMin,
		QQDepthMax:          cfg.QQDepthMax,
	})

	t.Lots = res.Lots
	t.LotAcres = res.LotAcres
	t.QQs = res.QQs
	t.setLotsQQs()

	for _, w := range res.Warnings {
		store.Warn(FlagKind(w.Kind), w.Context)
	}
}
