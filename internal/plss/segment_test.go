package plss

import "testing"

func TestSegmentTextLeadingConvention(t *testing.T) {
	var store FlagStore
	text := "T154N-R97W Sec 14: NE/4 T155N-R97W Sec 22: ALL"

	segs := SegmentText(text, LayoutAuto, &store)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segs), segs)
	}
	if segs[0].Text != "T154N-R97W Sec 14: NE/4 " {
		t.Errorf("segment 0: got %q", segs[0].Text)
	}
	if segs[1].Text != "T155N-R97W Sec 22: ALL" {
		t.Errorf("segment 1: got %q", segs[1].Text)
	}
}

func TestSegmentTextTrailingConvention(t *testing.T) {
	var store FlagStore
	text := "Sec 14: NE/4, T154N-R97W\nSec 22: ALL, T155N-R97W"

	segs := SegmentText(text, LayoutAuto, &store)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segs), segs)
	}
	if segs[0].Text != "Sec 14: NE/4, T154N-R97W" {
		t.Errorf("segment 0: got %q", segs[0].Text)
	}
	if segs[1].Text != "\nSec 22: ALL, T155N-R97W" {
		t.Errorf("segment 1: got %q", segs[1].Text)
	}
}
