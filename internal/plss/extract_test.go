package plss

import "testing"

func trsStrings(tracts []rawTract) []string {
	out := make([]string, len(tracts))
	for i, t := range tracts {
		out[i] = t.TRS.String()
	}
	return out
}

func TestExtractTractsMultiSectionRange(t *testing.T) {
	var store FlagStore
	cfg := NewConfig()
	text := "T154N-R97W Sections 14 - 17: NE/4"

	tracts := ExtractTracts(text, LayoutTRSDesc, cfg, &store)
	if len(tracts) != 4 {
		t.Fatalf("got %d tracts, want 4: %+v", len(tracts), tracts)
	}
	for i, want := range []string{"154n97w14", "154n97w15", "154n97w16", "154n97w17"} {
		if got := tracts[i].TRS.String(); got != want {
			t.Errorf("tract %d: got TRS %q, want %q", i, got, want)
		}
		if tracts[i].Desc != "NE/4" {
			t.Errorf("tract %d: got Desc %q, want %q", i, tracts[i].Desc, "NE/4")
		}
	}

	foundMultiSec := false
	for _, f := range store.All() {
		if f.Kind == FlagMultiSecFound {
			foundMultiSec = true
		}
		if f.Kind == FlagNonSequentialSection {
			t.Errorf("ascending range must not raise %s", FlagNonSequentialSection)
		}
	}
	if !foundMultiSec {
		t.Errorf("expected %s to be raised for a multi-section range", FlagMultiSecFound)
	}
}

func TestExtractTractsNonSequentialSection(t *testing.T) {
	var store FlagStore
	cfg := NewConfig()
	text := "T154N-R97W Sec 9 to 7: ALL"

	tracts := ExtractTracts(text, LayoutTRSDesc, cfg, &store)
	if got := trsStrings(tracts); len(got) != 3 {
		t.Fatalf("got %v, want 3 descending tracts", got)
	}
	if got, want := trsStrings(tracts), []string{"154n97w09", "154n97w08", "154n97w07"}; !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	var found bool
	for _, f := range store.All() {
		if f.Kind == FlagNonSequentialSection {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s for a descending section range", FlagNonSequentialSection)
	}
}

func TestExtractTractsFatalPartialRecovery(t *testing.T) {
	var store FlagStore
	cfg := NewConfig()
	text := "-R97W Sec 14: NE/4"

	tracts := ExtractTracts(text, LayoutCopyAll, cfg, &store)
	if len(tracts) != 1 {
		t.Fatalf("got %d tracts, want 1", len(tracts))
	}
	if got := tracts[0].TRS.String(); got != "XXXz97w14" {
		t.Errorf("got TRS %q, want %q", got, "XXXz97w14")
	}
	if tracts[0].Desc != text {
		t.Errorf("fatal path must keep the whole input as Desc: got %q", tracts[0].Desc)
	}

	var foundNoTR bool
	for _, f := range store.All() {
		if f.Kind == FlagNoTR {
			foundNoTR = true
		}
	}
	if !foundNoTR {
		t.Errorf("expected %s to be raised", FlagNoTR)
	}
}

func TestExtractTractsLeadingTRSingleSection(t *testing.T) {
	var store FlagStore
	cfg := NewConfig()
	text := "T154N-R97W Sec 14: NE/4, Sec 15: W/2"

	tracts := ExtractTracts(text, LayoutTRSDesc, cfg, &store)
	if got := trsStrings(tracts); !equalStrings(got, []string{"154n97w14", "154n97w15"}) {
		t.Fatalf("got %v", got)
	}
	if tracts[0].Desc != "NE/4" {
		t.Errorf("tract 0 Desc: got %q, want %q", tracts[0].Desc, "NE/4")
	}
	if tracts[1].Desc != "W/2" {
		t.Errorf("tract 1 Desc: got %q, want %q", tracts[1].Desc, "W/2")
	}
}

func TestExtractTractsTrailingTR(t *testing.T) {
	var store FlagStore
	cfg := NewConfig()
	text := "Sec 14: NE/4, T154N-R97W"

	tracts := ExtractTracts(text, LayoutSDescTR, cfg, &store)
	if len(tracts) != 1 {
		t.Fatalf("got %d tracts, want 1", len(tracts))
	}
	if got := tracts[0].TRS.String(); got != "154n97w14" {
		t.Errorf("got TRS %q", got)
	}
	if tracts[0].Desc != "NE/4" {
		t.Errorf("got Desc %q, want %q", tracts[0].Desc, "NE/4")
	}
}

func TestExtractTractsRequireColonRejectsColonlessOnFirstPass(t *testing.T) {
	var store FlagStore
	cfg := NewConfig()
	text := "T154N-R97W Sec 14 NE/4, Sec 15: W/2"

	tracts := ExtractTracts(text, LayoutTRSDesc, cfg, &store)
	if got := trsStrings(tracts); !equalStrings(got, []string{"154n97w15"}) {
		t.Fatalf("got %v, want only the colon-bearing section accepted", got)
	}
	for _, f := range store.All() {
		if f.Kind == FlagPulledSecWithoutColon {
			t.Errorf("a block with a colon-bearing section must not raise %s for the colonless one", FlagPulledSecWithoutColon)
		}
	}
}

func TestExtractTractsRequireColonRelaxedWhenNoneHaveColon(t *testing.T) {
	var store FlagStore
	cfg := NewConfig()
	text := "T154N-R97W Sec 14 NE/4"

	tracts := ExtractTracts(text, LayoutTRSDesc, cfg, &store)
	if got := trsStrings(tracts); !equalStrings(got, []string{"154n97w14"}) {
		t.Fatalf("got %v, want the colonless section accepted on the relaxed second pass", got)
	}
	var found bool
	for _, f := range store.All() {
		if f.Kind == FlagPulledSecWithoutColon {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s when no section in the block carries a colon", FlagPulledSecWithoutColon)
	}
}

func TestExtractTractsSecWithin(t *testing.T) {
	var store FlagStore
	cfg := NewConfig()
	cfg.SecWithin = true
	text := "T154N-R97W NE/4, T155N-R97W Sec 22: ALL"

	tracts := ExtractTracts(text, LayoutTRSDesc, cfg, &store)
	if got := trsStrings(tracts); !equalStrings(got, []string{"154n97w__", "155n97w22"}) {
		t.Fatalf("got %v", got)
	}
	if tracts[0].Desc != "NE/4" {
		t.Errorf("got Desc %q, want %q", tracts[0].Desc, "NE/4")
	}

	var found bool
	for _, f := range store.All() {
		if f.Kind == FlagSecWithin {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s to be raised for the section-less block", FlagSecWithin)
	}
}

func TestExtractTractsSecWithinDisabledLeavesBlockUnpulled(t *testing.T) {
	var store FlagStore
	cfg := NewConfig()
	text := "T154N-R97W NE/4, T155N-R97W Sec 22: ALL"

	tracts := ExtractTracts(text, LayoutTRSDesc, cfg, &store)
	if got := trsStrings(tracts); !equalStrings(got, []string{"155n97w22"}) {
		t.Fatalf("got %v, want the section-less block dropped", got)
	}
	var found bool
	for _, f := range store.All() {
		if f.Kind == FlagTRNotPulled {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s for the section-less block when sec_within is off", FlagTRNotPulled)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
