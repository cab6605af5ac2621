package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/clipsuggest/internal/clips"
	"github.com/dgallion1/clipsuggest/internal/timedtext"
	"github.com/dgallion1/clipsuggest/internal/youtube"
)

// transcriptResponse is the payload for GET /api/transcript.
type transcriptResponse struct {
	VideoID   string              `json:"video_id"`
	Available bool                `json:"available"`
	Segments  []timedtext.Segment `json:"segments"`
}

// clipEntry is one suggested clip in the GET /api/suggest_clips payload.
// The internal score stays internal.
type clipEntry struct {
	Start    float64             `json:"start"`
	End      float64             `json:"end"`
	Duration float64             `json:"duration"`
	Text     string              `json:"text"`
	Lines    []timedtext.Segment `json:"lines"`
}

type suggestResponse struct {
	VideoID   string      `json:"video_id"`
	Available bool        `json:"available"`
	Clips     []clipEntry `json:"clips"`
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	videoID, ok := s.requestVideoID(w, r)
	if !ok {
		return
	}
	lang := langParam(r)

	raw, err := s.yt.FetchTimedText(r.Context(), videoID, lang)
	if err != nil {
		if errors.Is(err, youtube.ErrNotAvailable) {
			writeJSON(w, transcriptResponse{VideoID: videoID, Available: false, Segments: []timedtext.Segment{}})
			return
		}
		jsonError(w, "failed to fetch captions: "+err.Error(), http.StatusBadGateway)
		return
	}

	segments := timedtext.Parse(raw)
	if segments == nil {
		// Malformed markup is indistinguishable from absence.
		writeJSON(w, transcriptResponse{VideoID: videoID, Available: false, Segments: []timedtext.Segment{}})
		return
	}
	writeJSON(w, transcriptResponse{VideoID: videoID, Available: true, Segments: segments})
}

func (s *Server) handleSuggestClips(w http.ResponseWriter, r *http.Request) {
	videoID, ok := s.requestVideoID(w, r)
	if !ok {
		return
	}

	suggestions, available, err := s.suggestForVideo(r, videoID)
	if err != nil {
		jsonError(w, "failed to fetch captions: "+err.Error(), http.StatusBadGateway)
		return
	}

	entries := make([]clipEntry, 0, len(suggestions))
	for _, c := range suggestions {
		lines := c.Lines
		if lines == nil {
			lines = []timedtext.Segment{}
		}
		entries = append(entries, clipEntry{
			Start:    c.Start,
			End:      c.End,
			Duration: c.Duration,
			Text:     c.Text,
			Lines:    lines,
		})
	}
	writeJSON(w, suggestResponse{VideoID: videoID, Available: available, Clips: entries})
}

func (s *Server) handleSuggestClipsReport(w http.ResponseWriter, r *http.Request) {
	videoID, ok := s.requestVideoID(w, r)
	if !ok {
		return
	}

	suggestions, _, err := s.suggestForVideo(r, videoID)
	if err != nil {
		jsonError(w, "failed to fetch captions: "+err.Error(), http.StatusBadGateway)
		return
	}

	html, err := clips.RenderReport(videoID, suggestions)
	if err != nil {
		jsonError(w, "failed to render report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// suggestForVideo fetches captions and runs the suggestion core. When
// captions are unavailable (or unparseable) it reports available=false
// with no suggestions and performs no candidate generation.
func (s *Server) suggestForVideo(r *http.Request, videoID string) ([]clips.Clip, bool, error) {
	raw, err := s.yt.FetchTimedText(r.Context(), videoID, langParam(r))
	if err != nil {
		if errors.Is(err, youtube.ErrNotAvailable) {
			return nil, false, nil
		}
		return nil, false, err
	}

	segments := timedtext.Parse(raw)
	if segments == nil {
		return nil, false, nil
	}

	return clips.Suggest(segments, s.suggestOptions(r), clips.DefaultScoring()), true, nil
}

// suggestOptions applies per-request overrides on top of the configured
// defaults; malformed or non-positive values are ignored.
func (s *Server) suggestOptions(r *http.Request) clips.Options {
	opts := clips.Options{
		MinLen: s.cfg.MinClipSec,
		MaxLen: s.cfg.MaxClipSec,
		TopK:   s.cfg.DefaultTopK,
	}
	q := r.URL.Query()
	if v := q.Get("top_k"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.TopK = n
		}
	}
	if v := q.Get("min_len"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			opts.MinLen = f
		}
	}
	if v := q.Get("max_len"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= opts.MinLen {
			opts.MaxLen = f
		}
	}
	return opts
}

func (s *Server) handleScrapeLinks(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		jsonError(w, "url query parameter is required", http.StatusBadRequest)
		return
	}

	links, err := s.yt.ScrapeLinks(r.Context(), pageURL)
	if err != nil {
		jsonError(w, "failed to fetch url: "+err.Error(), http.StatusBadRequest)
		return
	}

	total := len(links)
	if total > s.cfg.MaxScrapeLinks {
		links = links[:s.cfg.MaxScrapeLinks]
	}
	writeJSON(w, map[string]any{"count": total, "links": links})
}

func (s *Server) handleOEmbed(w http.ResponseWriter, r *http.Request) {
	videoURL := r.URL.Query().Get("url")
	if videoURL == "" {
		jsonError(w, "url query parameter is required", http.StatusBadRequest)
		return
	}

	meta, err := s.yt.OEmbed(r.Context(), videoURL)
	if err != nil {
		jsonError(w, "failed to fetch metadata", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(meta)
}

func (s *Server) handleFetchStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "fetch stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]any{"fetch": s.stats.Snapshot()})
}

// requestVideoID resolves the video id from the video_id or url query
// parameters, writing a client error and returning false when neither
// yields one. This happens before any fetch or parse work.
func (s *Server) requestVideoID(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := r.URL.Query()
	videoID := q.Get("video_id")
	rawURL := q.Get("url")

	if videoID == "" && rawURL == "" {
		jsonError(w, "provide video_id or url", http.StatusBadRequest)
		return "", false
	}
	if videoID == "" {
		id, ok := youtube.ExtractVideoID(rawURL)
		if !ok {
			jsonError(w, "unable to extract video id", http.StatusBadRequest)
			return "", false
		}
		videoID = id
	}
	return videoID, true
}

func langParam(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return "en"
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
