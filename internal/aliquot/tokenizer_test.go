package aliquot

import "testing"

func defaultOpts() Options {
	return Options{
		IncludeLotDivisions: true,
		CleanQQ:             false,
		QQDepthMin:          2,
		QQDepthMax:          6,
	}
}

func hasWarning(warnings []Warning, kind string) bool {
	for _, w := range warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

func TestParseLotsAndQuarter(t *testing.T) {
	res := Parse("Lots 1 - 3, SE/4NE/4, Lot 2", defaultOpts())

	wantLots := []string{"L1", "L2", "L3"}
	if len(res.Lots) != len(wantLots) {
		t.Fatalf("got lots %v, want %v", res.Lots, wantLots)
	}
	for i, want := range wantLots {
		if res.Lots[i] != want {
			t.Errorf("lot %d: got %q, want %q", i, res.Lots[i], want)
		}
	}

	if !hasWarning(res.Warnings, KindDupLot) {
		t.Errorf("expected %s for the repeated Lot 2, got %+v", KindDupLot, res.Warnings)
	}

	wantQQs := []string{"SENE"}
	if len(res.QQs) != len(wantQQs) || res.QQs[0] != wantQQs[0] {
		t.Errorf("got QQs %v, want %v", res.QQs, wantQQs)
	}
}

func TestParseNonSequentialLots(t *testing.T) {
	res := Parse("Lot 3, Lot 1", defaultOpts())
	if !hasWarning(res.Warnings, KindNonSequentialLots) {
		t.Errorf("expected %s, got %+v", KindNonSequentialLots, res.Warnings)
	}
}

func TestParseLimitingLanguage(t *testing.T) {
	res := Parse("NE/4 except the east 10 acres", defaultOpts())
	if !hasWarning(res.Warnings, KindLimitingLanguage) {
		t.Errorf("expected %s, got %+v", KindLimitingLanguage, res.Warnings)
	}
}

func TestParseNestedOfPhrase(t *testing.T) {
	res := Parse("NE/4 of the SE/4", defaultOpts())
	want := []string{"NESE"}
	if len(res.QQs) != 1 || res.QQs[0] != want[0] {
		t.Errorf("got %v, want %v", res.QQs, want)
	}
}

func TestParseCommaSeparatedPhrasesStayIndependent(t *testing.T) {
	res := Parse("NE/4, SW/4", defaultOpts())
	want := []string{"NENE", "NWNE", "SENE", "SWNE", "NESW", "NWSW", "SESW", "SWSW"}
	if len(res.QQs) != len(want) {
		t.Fatalf("got %v, want %v", res.QQs, want)
	}
	for i := range want {
		if res.QQs[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, res.QQs[i], want[i])
		}
	}
}

func TestParseIncludeLotDivisionsTrueRendersCompoundToken(t *testing.T) {
	res := Parse("N/2 of Lot 1, Lot 3", defaultOpts())
	want := []string{"N2 of L1", "L3"}
	if len(res.Lots) != len(want) {
		t.Fatalf("got lots %v, want %v", res.Lots, want)
	}
	for i := range want {
		if res.Lots[i] != want[i] {
			t.Errorf("lot %d: got %q, want %q", i, res.Lots[i], want[i])
		}
	}
}

func TestParseIncludeLotDivisionsFalseKeepsPlainLot(t *testing.T) {
	opts := defaultOpts()
	opts.IncludeLotDivisions = false
	res := Parse("N/2 of Lot 1, Lot 3", opts)
	want := []string{"L1", "L3"}
	if len(res.Lots) != len(want) {
		t.Fatalf("include_lot_divisions=false must still keep the plain lot, got %v want %v", res.Lots, want)
	}
	for i := range want {
		if res.Lots[i] != want[i] {
			t.Errorf("lot %d: got %q, want %q", i, res.Lots[i], want[i])
		}
	}
}

func TestParseLotDivisionQuarter(t *testing.T) {
	res := Parse("NE/4 of Lot 2", defaultOpts())
	want := []string{"NE4 of L2"}
	if len(res.Lots) != 1 || res.Lots[0] != want[0] {
		t.Errorf("got %v, want %v", res.Lots, want)
	}
}
