package timedtext

import (
	"math"
	"testing"
)

func TestParse_WellFormedTranscript(t *testing.T) {
	raw := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0" dur="1.5">hello there</text>
  <text start="1.5" dur="2.25">second line</text>
  <text start="3.75" dur="0.8">third</text>
</transcript>`

	segs := Parse(raw)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}

	want := []Segment{
		{Start: 0, Dur: 1.5, End: 1.5, Text: "hello there"},
		{Start: 1.5, Dur: 2.25, End: 3.75, Text: "second line"},
		{Start: 3.75, Dur: 0.8, End: 4.55, Text: "third"},
	}
	for i, w := range want {
		got := segs[i]
		if got.Start != w.Start || got.Dur != w.Dur || got.Text != w.Text {
			t.Errorf("segment[%d]: expected %+v, got %+v", i, w, got)
		}
		if math.Abs(got.End-(got.Start+got.Dur)) > 1e-9 {
			t.Errorf("segment[%d]: end %v != start+dur %v", i, got.End, got.Start+got.Dur)
		}
	}
}

func TestParse_MissingAttributesDefaultToZero(t *testing.T) {
	raw := `<transcript><text>no timing</text><text start="oops" dur="x">bad timing</text></transcript>`
	segs := Parse(raw)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	for i, s := range segs {
		if s.Start != 0 || s.Dur != 0 || s.End != 0 {
			t.Errorf("segment[%d]: expected zero timing, got %+v", i, s)
		}
	}
}

func TestParse_EmptyPayload(t *testing.T) {
	segs := Parse(`<transcript><text start="1" dur="2"></text></transcript>`)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != "" {
		t.Errorf("expected empty text, got %q", segs[0].Text)
	}
}

func TestParse_CollapsesNewlines(t *testing.T) {
	segs := Parse("<transcript><text start=\"0\" dur=\"1\">line one\nline two</text></transcript>")
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != "line one line two" {
		t.Errorf("expected collapsed newline, got %q", segs[0].Text)
	}
}

func TestParse_UnescapesEntities(t *testing.T) {
	segs := Parse(`<transcript><text start="0" dur="1">Tom &amp; Jerry &quot;forever&quot;</text></transcript>`)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != `Tom & Jerry "forever"` {
		t.Errorf("expected unescaped entities, got %q", segs[0].Text)
	}
}

func TestParse_MalformedReturnsNil(t *testing.T) {
	inputs := []string{
		"",
		"not xml at all",
		"<transcript><text start=\"0\" dur=\"1\">unclosed",
		"<transcript><text></transcript>",
	}
	for _, in := range inputs {
		if segs := Parse(in); len(segs) != 0 {
			t.Errorf("Parse(%q): expected no segments, got %d", in, len(segs))
		}
	}
}

func TestParse_DocumentOrderPreserved(t *testing.T) {
	// Source order wins even when timestamps are out of order; the
	// parser does not re-sort.
	raw := `<transcript><text start="10" dur="1">later</text><text start="0" dur="1">earlier</text></transcript>`
	segs := Parse(raw)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Text != "later" || segs[1].Text != "earlier" {
		t.Errorf("expected document order, got %q then %q", segs[0].Text, segs[1].Text)
	}
}
