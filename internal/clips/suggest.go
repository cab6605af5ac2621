// Package clips turns an ordered caption segment sequence into ranked,
// non-overlapping highlight clip suggestions.
package clips

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/dgallion1/clipsuggest/internal/timedtext"
)

// Options control window sizing and how many clips a call may return.
type Options struct {
	MinLen float64 // shortest acceptable clip, seconds
	MaxLen float64 // longest acceptable clip, seconds
	TopK   int     // maximum clips returned
}

// DefaultOptions returns the standard short-clip window settings.
func DefaultOptions() Options {
	return Options{MinLen: 20, MaxLen: 60, TopK: 3}
}

// Scoring is the heuristic policy for closing and ranking windows. The
// values are deliberate policy constants, kept in named fields so tests
// can substitute their own.
type Scoring struct {
	// Keywords are engagement-signaling terms matched as
	// case-insensitive substrings of a window's combined text.
	Keywords []string
	// KeywordWeight is the score contribution per matched keyword.
	KeywordWeight float64
	// PenaltyDivisor scales the distance from the midpoint duration
	// into a score penalty.
	PenaltyDivisor float64
	// PauseGap is the silence, in seconds, between adjacent segments
	// that closes a window on its own.
	PauseGap float64
	// BreakPunct lists the terminal punctuation characters that close
	// a window once it is long enough.
	BreakPunct string
}

var defaultKeywords = []string{
	"secret", "tips", "hack", "mistake", "story", "crazy", "insane", "unexpected",
	"how to", "why", "what", "this is", "you need", "stop", "start", "learn",
	"viral", "trick", "strategy", "trend", "money", "growth", "win", "best",
}

// DefaultScoring returns the standard scoring policy.
func DefaultScoring() Scoring {
	return Scoring{
		Keywords:       defaultKeywords,
		KeywordWeight:  2,
		PenaltyDivisor: 10,
		PauseGap:       0.6,
		BreakPunct:     ".!?",
	}
}

// Candidate is one scored clip window. Start, End and Duration are
// rounded to two decimals; Score is left unrounded.
type Candidate struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
}

// Clip is a selected candidate together with the caption lines whose
// time range falls fully inside it.
type Clip struct {
	Candidate
	Lines []timedtext.Segment `json:"lines"`
}

// Suggest scans segments for candidate windows, scores them, and greedily
// selects up to opts.TopK non-overlapping clips in descending score
// order. An empty segment sequence, or one in which no window ever
// closes, yields no clips; neither is an error.
func Suggest(segments []timedtext.Segment, opts Options, pol Scoring) []Clip {
	if len(segments) == 0 {
		return nil
	}

	candidates := buildCandidates(segments, opts, pol)

	// Stable sort keeps first-encountered order for equal scores.
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	var selected []Clip
	for _, c := range candidates {
		if len(selected) >= opts.TopK {
			break
		}
		if overlapsAny(c, selected) {
			continue
		}
		selected = append(selected, Clip{Candidate: c, Lines: linesWithin(segments, c)})
	}
	return selected
}

// buildCandidates walks the segment sequence with an outer window-start
// cursor and an inner cursor that extends the window until it is long
// enough and a break fires, or the span would exceed MaxLen.
func buildCandidates(segments []timedtext.Segment, opts Options, pol Scoring) []Candidate {
	midpoint := (opts.MinLen + opts.MaxLen) / 2

	var out []Candidate
	n := len(segments)
	i := 0
	for i < n {
		j := i
		start := segments[i].Start
		var window []string
		for j < n && segments[j].End-start < opts.MaxLen {
			window = append(window, segments[j].Text)
			span := segments[j].End - start
			if span >= opts.MinLen && breaksWindow(segments, j, pol) {
				combined := strings.Join(window, " ")
				score := pol.KeywordWeight*float64(countKeywords(combined, pol.Keywords)) -
					math.Abs(span-midpoint)/pol.PenaltyDivisor
				out = append(out, Candidate{
					Start:    round2(start),
					End:      round2(segments[j].End),
					Duration: round2(span),
					Text:     strings.TrimSpace(combined),
					Score:    score,
				})
				break
			}
			j++
		}
		// Jump past a consumed window so adjacent starts do not emit
		// near-duplicate candidates, while always making progress.
		i = max(i+1, j)
	}
	return out
}

// breaksWindow reports whether segment j closes the window: its text
// carries terminal punctuation, or a long enough silence follows it.
func breaksWindow(segments []timedtext.Segment, j int, pol Scoring) bool {
	if strings.ContainsAny(segments[j].Text, pol.BreakPunct) {
		return true
	}
	return j+1 < len(segments) && segments[j+1].Start-segments[j].End > pol.PauseGap
}

// countKeywords counts how many distinct keywords occur in text. A
// keyword appearing more than once still counts once.
func countKeywords(text string, keywords []string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			hits++
		}
	}
	return hits
}

// overlapsAny uses half-open interval semantics: clips that share exactly
// one boundary instant do not overlap.
func overlapsAny(c Candidate, selected []Clip) bool {
	for _, s := range selected {
		if !(c.End <= s.Start || c.Start >= s.End) {
			return true
		}
	}
	return false
}

func linesWithin(segments []timedtext.Segment, c Candidate) []timedtext.Segment {
	var lines []timedtext.Segment
	for _, s := range segments {
		if s.Start >= c.Start && s.End <= c.End {
			lines = append(lines, s)
		}
	}
	return lines
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
