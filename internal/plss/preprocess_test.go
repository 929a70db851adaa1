package plss

import "testing"

func TestPreprocessIdempotent(t *testing.T) {
	cfg := NewConfig()
	inputs := []string{
		"T154N-R97W Sec 14: NE/4",
		"T154-R97 Sec 14: NE/4",
		"  T154N - R97W   Sec   14:   NE/4  ",
	}

	for _, in := range inputs {
		var s1, s2 FlagStore
		once := Preprocess(in, cfg, &s1)
		twice := Preprocess(once, cfg, &s2)
		if once != twice {
			t.Errorf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestPreprocessFillsDefaultDirections(t *testing.T) {
	cfg := NewConfig()
	cfg.DefaultNS = "s"
	cfg.DefaultEW = "e"

	var store FlagStore
	out := Preprocess("T154-R97 Sec 14: NE/4", cfg, &store)

	if out != "T154s-R97e Sec 14: NE/4" {
		t.Errorf("got %q", out)
	}
	if len(store.All()) != 2 {
		t.Errorf("expected 2 TR_fixed flags, got %d: %+v", len(store.All()), store.All())
	}
}

func TestPreprocessDefaultFillingLocality(t *testing.T) {
	cfg := NewConfig()
	cfg.DefaultNS = "s"

	var store FlagStore
	out := Preprocess("T154N-R97 Sec 14: NE/4", cfg, &store)

	if out != "T154N-R97w Sec 14: NE/4" {
		t.Errorf("explicit N must survive default_ns change: got %q", out)
	}
}
