// Package timedtext parses YouTube timedtext caption XML into ordered,
// time-aligned segments.
package timedtext

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Segment is one timed caption line. End is always Start+Dur.
type Segment struct {
	Start float64 `json:"start"`
	Dur   float64 `json:"duration"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Parse converts raw timedtext markup into segments in document order.
// Elements look like <text start="1.2" dur="3.4">caption line</text>;
// missing or unparseable attributes default to zero, and embedded
// newlines in the payload are collapsed to spaces.
//
// A document that is not well-formed XML yields nil rather than an
// error: a missing or broken transcript is a normal outcome, not a
// defect, and callers treat it the same as no captions at all.
func Parse(raw string) []Segment {
	dec := xml.NewDecoder(strings.NewReader(raw))

	var segments []Segment
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "text" {
			continue
		}

		var payload string
		if err := dec.DecodeElement(&payload, &start); err != nil {
			return nil
		}

		s := attrFloat(start, "start")
		d := attrFloat(start, "dur")
		segments = append(segments, Segment{
			Start: s,
			Dur:   d,
			End:   s + d,
			Text:  strings.ReplaceAll(payload, "\n", " "),
		})
	}
	return segments
}

func attrFloat(el xml.StartElement, name string) float64 {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			v, err := strconv.ParseFloat(a.Value, 64)
			if err != nil {
				return 0
			}
			return v
		}
	}
	return 0
}
