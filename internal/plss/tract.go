package plss

// Source is an opaque caller-supplied annotation (e.g. a document ID, a
// file path) copied verbatim from Description to every child Tract. The
// parser never inspects it.
type Source any

// Tract is the atomic output of the parser: one (TRS, description-block)
// pair plus everything derived from parsing that block, per §3.
type Tract struct {
	TRS  TRS
	Desc string // description block as extracted; Parse takes it from the preprocessed text, not the raw input
	PPDesc string // preprocessed description block; Parse and NewTract set it equal to Desc

	OrigIndex int    // dense, strictly increasing creation order within its Description
	Source    Source
	OrigDesc  string // copy of the parent Description's full OrigDesc, inherited at emission time

	Lots    []string // e.g. "L1", "L2"
	QQs     []string // e.g. "NENE", "SWNE"
	LotAcres map[string]float64
	LotsQQs  []string // invariant: LotsQQs == append(Lots, QQs...)

	Flags         []Flag // inherited copy from the parent Description at emission time
	DescIsFlawed  bool   // inherited copy of the parent's flawed bit at emission time
}

// NewTract directly constructs a standalone Tract (the "direct
// construction" lifecycle path from §3, as opposed to extraction from a
// Description).
func NewTract(trs TRS, desc string, source Source) *Tract {
	return &Tract{
		TRS:      trs,
		Desc:     desc,
		PPDesc:   desc,
		Source:   source,
		LotAcres: map[string]float64{},
	}
}

// setLotsQQs recomputes the LotsQQs invariant from Lots/QQs. Must be called
// any time either slice changes.
func (t *Tract) setLotsQQs() {
	t.LotsQQs = make([]string, 0, len(t.Lots)+len(t.QQs))
	t.LotsQQs = append(t.LotsQQs, t.Lots...)
	t.LotsQQs = append(t.LotsQQs, t.QQs...)
}

// Description is the original raw input of a full PLSS description plus
// its derived preprocessed form and the ordered Tracts extracted from it.
// Every Tract in Tracts is owned by this Description (§3's ownership rule):
// deriving a Tract copies the Description's OrigDesc/Source/flags into it
// rather than keeping a back-reference.
type Description struct {
	OrigDesc string
	PPDesc   string
	Source   Source

	Config Config
	Flags  FlagStore

	Tracts []*Tract

	DescIsFlawed bool
}

// NewDescription constructs a Description ready for parsing (or, if
// cfg.WaitToParse is set, ready for a later explicit Run call).
func NewDescription(raw string, source Source, cfg Config) *Description {
	return &Description{
		OrigDesc: raw,
		Source:   source,
		Config:   cfg,
	}
}

// emitTract appends a newly extracted tract, assigning it the next dense
// OrigIndex and copying (never referencing) the Description's current
// source annotation and OrigDesc, per §3/§9's value-copy ownership design.
// It does NOT copy flags or descIsFlawed — finalize does that immediately
// before Tracts are returned to the caller, once every stage has run.
func (d *Description) emitTract(t *Tract) {
	t.OrigIndex = len(d.Tracts)
	t.Source = d.Source
	t.OrigDesc = d.OrigDesc
	d.Tracts = append(d.Tracts, t)
}

// finalize copies the description-level flaw bit and full flag snapshot
// into every already-emitted tract. Called once, after every parsing stage
// has finished appending flags — this is the single point where "emission
// time" inheritance actually happens, since flags accumulate across B
// through G before any tract can be considered final.
func (d *Description) finalize() {
	d.DescIsFlawed = d.Flags.HasErrors()
	snapshot := d.Flags.Snapshot()
	for _, t := range d.Tracts {
		t.Flags = snapshot
		t.DescIsFlawed = d.DescIsFlawed
	}
}
