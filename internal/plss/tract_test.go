package plss

import "testing"

func TestNewTractDirectConstruction(t *testing.T) {
	tr := NewTract(TRS{Twp: "154n", Rge: "97w", Sec: "14"}, "NE/4", "src-1")
	if tr.Desc != tr.PPDesc {
		t.Errorf("a directly constructed Tract must start with PPDesc == Desc")
	}
	if tr.LotAcres == nil {
		t.Errorf("LotAcres must be initialized, never nil")
	}
}

func TestSetLotsQQsInvariant(t *testing.T) {
	tr := NewTract(TRS{}, "", nil)
	tr.Lots = []string{"L1", "L2"}
	tr.QQs = []string{"NENE"}
	tr.setLotsQQs()

	want := []string{"L1", "L2", "NENE"}
	if !equalStrings(tr.LotsQQs, want) {
		t.Errorf("got %v, want %v", tr.LotsQQs, want)
	}
}

func TestEmitTractAssignsDenseOrigIndexAndCopiesSource(t *testing.T) {
	cfg := NewConfig()
	d := NewDescription("T154N-R97W Sec 14: NE/4", "doc-src", cfg)

	d.emitTract(NewTract(TRS{Sec: "14"}, "a", nil))
	d.emitTract(NewTract(TRS{Sec: "15"}, "b", nil))

	if d.Tracts[0].OrigIndex != 0 || d.Tracts[1].OrigIndex != 1 {
		t.Errorf("got indices %d, %d, want 0, 1", d.Tracts[0].OrigIndex, d.Tracts[1].OrigIndex)
	}
	if d.Tracts[0].Source != "doc-src" || d.Tracts[1].Source != "doc-src" {
		t.Errorf("emitTract must copy the Description's current Source onto every tract")
	}
	for i, tr := range d.Tracts {
		if tr.OrigDesc != d.OrigDesc {
			t.Errorf("tract %d: OrigDesc = %q, want the Description's OrigDesc %q", i, tr.OrigDesc, d.OrigDesc)
		}
	}
}

func TestFinalizeCopiesFlawedBitAndFlagsToEveryTract(t *testing.T) {
	cfg := NewConfig()
	d := NewDescription("x", nil, cfg)
	d.emitTract(NewTract(TRS{}, "a", nil))
	d.Flags.Error(FlagNoTR, "boom")
	d.emitTract(NewTract(TRS{}, "b", nil))

	d.finalize()

	if !d.DescIsFlawed {
		t.Errorf("expected DescIsFlawed true after an error-class flag")
	}
	for i, tr := range d.Tracts {
		if !tr.DescIsFlawed {
			t.Errorf("tract %d: expected inherited DescIsFlawed true", i)
		}
		if len(tr.Flags) != 1 {
			t.Errorf("tract %d: expected 1 inherited flag, got %d", i, len(tr.Flags))
		}
	}
}
