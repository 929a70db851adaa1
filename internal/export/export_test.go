package export

import (
	"strings"
	"testing"

	"goplss/internal/plss"
)

func sampleTract() *plss.Tract {
	return plss.NewTract(plss.TRS{Twp: "154n", Rge: "97w", Sec: "14"}, "NE/4", "doc-1")
}

func TestSinkWriteOverwriteIncludesHeader(t *testing.T) {
	t1 := sampleTract()
	t1.Lots = []string{"L1"}
	t1.QQs = []string{"NENE", "NWNE"}

	var buf strings.Builder
	sink := NewSink()
	if err := sink.Write(&buf, []*plss.Tract{t1}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (header + 1 row): %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "trs,twp,rge,sec,desc,lots,qqs") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "154n97w14") || !strings.Contains(lines[1], "NENE;NWNE") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestSinkWriteAppendOmitsHeader(t *testing.T) {
	t1 := sampleTract()

	var buf strings.Builder
	sink := NewSink()
	sink.Mode = ModeAppend
	if err := sink.Write(&buf, []*plss.Tract{t1}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("append mode must omit the header, got %d lines: %q", len(lines), buf.String())
	}
}

func TestSinkHeaderSanitizesAndDedupes(t *testing.T) {
	sink := Sink{Fields: []Field{FieldTwp, FieldRge}, Headers: map[Field]string{
		FieldTwp: "order",
		FieldRge: "order",
	}}

	header := sink.header(sink.Fields)
	if header[0] != "_order" {
		t.Errorf("got %q, want %q", header[0], "_order")
	}
	if header[1] != "_order_1" {
		t.Errorf("expected the second identical override to be de-duplicated, got %q", header[1])
	}
}

func TestFieldValueFlawedAndFlags(t *testing.T) {
	tr := sampleTract()
	tr.DescIsFlawed = true
	tr.Flags = []plss.Flag{{Kind: plss.FlagNoTR, Context: "x"}, {Kind: plss.FlagNoSection, Context: "y"}}

	if got := FieldFlawed.Value(tr); got != "true" {
		t.Errorf("got %q, want %q", got, "true")
	}
	if got := FieldFlags.Value(tr); got != "no_tr;no_section" {
		t.Errorf("got %q, want %q", got, "no_tr;no_section")
	}
}
