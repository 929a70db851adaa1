package plss

import "testing"

func TestParseTwoSectionsOneTwpRge(t *testing.T) {
	cfg := NewConfig()
	cfg.ParseQQ = true

	d := Parse("T154N-R97W Sec 14: NE/4, Sec 15: W/2", "doc-1", cfg)
	if len(d.Tracts) != 2 {
		t.Fatalf("got %d tracts, want 2", len(d.Tracts))
	}

	t0, t1 := d.Tracts[0], d.Tracts[1]
	if t0.TRS.String() != "154n97w14" {
		t.Errorf("tract 0 TRS: got %q", t0.TRS.String())
	}
	if want := []string{"NENE", "NWNE", "SENE", "SWNE"}; !equalStrings(t0.QQs, want) {
		t.Errorf("tract 0 QQs: got %v, want %v", t0.QQs, want)
	}

	if t1.TRS.String() != "154n97w15" {
		t.Errorf("tract 1 TRS: got %q", t1.TRS.String())
	}
	want1 := []string{"NENW", "NWNW", "SENW", "SWNW", "NESW", "NWSW", "SESW", "SWSW"}
	if !equalStrings(t1.QQs, want1) {
		t.Errorf("tract 1 QQs: got %v, want %v", t1.QQs, want1)
	}

	if t0.OrigIndex != 0 || t1.OrigIndex != 1 {
		t.Errorf("OrigIndex must be dense and increasing: got %d, %d", t0.OrigIndex, t1.OrigIndex)
	}
	if d.DescIsFlawed {
		t.Errorf("a clean description must not be flawed")
	}
}

func TestParseLiteralFractionGlyph(t *testing.T) {
	cfg := NewConfig()
	cfg.ParseQQ = true

	d := Parse("T154N-R97W Sec 14: NE¼", "doc-glyph", cfg)
	if len(d.Tracts) != 1 {
		t.Fatalf("got %d tracts, want 1", len(d.Tracts))
	}
	want := []string{"NENE", "NWNE", "SENE", "SWNE"}
	if !equalStrings(d.Tracts[0].QQs, want) {
		t.Errorf("got %v, want %v: a literal ¼ glyph must tokenize the same as the ASCII spelling", d.Tracts[0].QQs, want)
	}
}

func TestParseFatalNoTwpRge(t *testing.T) {
	cfg := NewConfig()
	d := Parse("-R97W Sec 14: NE/4", "doc-2", cfg)

	if len(d.Tracts) != 1 {
		t.Fatalf("got %d tracts, want 1", len(d.Tracts))
	}
	if got := d.Tracts[0].TRS.String(); got != "XXXz97w14" {
		t.Errorf("got TRS %q, want %q", got, "XXXz97w14")
	}
	if !d.DescIsFlawed {
		t.Errorf("expected DescIsFlawed for a no_tr fatal condition")
	}
	if !d.Tracts[0].DescIsFlawed {
		t.Errorf("flawed bit must be inherited by the tract at emission time")
	}
}

func TestParseSegmentedTrailingLayout(t *testing.T) {
	cfg := NewConfig()
	cfg.Segment = true

	d := Parse("Sec 14: NE/4, T154N-R97W\nSec 22: ALL, T155N-R97W", nil, cfg)
	if len(d.Tracts) != 2 {
		t.Fatalf("got %d tracts, want 2: %+v", len(d.Tracts), d.Tracts)
	}
	if got := d.Tracts[0].TRS.String(); got != "154n97w14" {
		t.Errorf("tract 0 TRS: got %q", got)
	}
	if d.Tracts[0].Desc != "NE/4" {
		t.Errorf("tract 0 Desc: got %q", d.Tracts[0].Desc)
	}
	if got := d.Tracts[1].TRS.String(); got != "155n97w22" {
		t.Errorf("tract 1 TRS: got %q", got)
	}
	if d.Tracts[1].Desc != "ALL" {
		t.Errorf("tract 1 Desc: got %q", d.Tracts[1].Desc)
	}
}

func TestParseCleanQQGating(t *testing.T) {
	base := "T154N-R97W Sec 14: NE"

	cfg := NewConfig()
	cfg.ParseQQ = true
	cfg.CleanQQ = false
	d := Parse(base, nil, cfg)
	if len(d.Tracts[0].QQs) != 0 {
		t.Errorf("clean_qq=false: expected no QQs for a bare quarter, got %v", d.Tracts[0].QQs)
	}

	cfg2 := NewConfig()
	cfg2.ParseQQ = true
	cfg2.CleanQQ = true
	d2 := Parse(base, nil, cfg2)
	want := []string{"NENE", "NWNE", "SENE", "SWNE"}
	if !equalStrings(d2.Tracts[0].QQs, want) {
		t.Errorf("clean_qq=true: got %v, want %v", d2.Tracts[0].QQs, want)
	}
}

func TestParseWaitToParse(t *testing.T) {
	cfg := NewConfig()
	cfg.WaitToParse = true

	d := Parse("T154N-R97W Sec 14: NE/4", nil, cfg)
	if len(d.Tracts) != 0 {
		t.Errorf("wait_to_parse must defer extraction entirely, got %d tracts", len(d.Tracts))
	}
	if d.OrigDesc == "" {
		t.Errorf("OrigDesc must still be recorded")
	}

	d.Run()
	if len(d.Tracts) != 1 {
		t.Errorf("an explicit Run() after wait_to_parse must still parse, got %d tracts", len(d.Tracts))
	}
}
