package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/clipsuggest/internal/config"
	"github.com/dgallion1/clipsuggest/internal/youtube"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the HTTP API for the clip suggestion service.
type Server struct {
	router chi.Router
	yt     *youtube.Client
	stats  *youtube.FetchStats
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil if
// fetch latency tracking is disabled.
func NewServer(yt *youtube.Client, stats *youtube.FetchStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		yt:    yt,
		stats: stats,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	// The service is consumed directly by browser frontends on other
	// origins, so CORS is wide open.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", s.handleHealth)

	r.Get("/api/transcript", s.handleTranscript)
	r.Get("/api/suggest_clips", s.handleSuggestClips)
	r.Get("/api/suggest_clips/report", s.handleSuggestClipsReport)
	r.Get("/api/scrape_links", s.handleScrapeLinks)
	r.Get("/api/oembed", s.handleOEmbed)
	r.Get("/api/stats/fetch", s.handleFetchStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
