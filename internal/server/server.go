// Package server exposes the cleaned dataset and its derived analytics
// as JSON for the dashboard front end. The server owns an immutable
// dataset snapshot; every derived table is recomputed from it on demand.
package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"clipsight/internal/analytics"
	"clipsight/internal/graphlayout"
	"clipsight/internal/metrics"
	"clipsight/internal/model"
)

// Options carries analysis policy into the handlers.
type Options struct {
	TopK       int
	TopPairs   int
	LayoutSeed int64
}

// Server serves analytics for one loaded dataset.
type Server struct {
	ds     model.Dataset
	opts   Options
	layout graphlayout.Engine
	router *chi.Mux
}

func New(ds model.Dataset, layout graphlayout.Engine, opts Options) *Server {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.TopPairs <= 0 {
		opts.TopPairs = analytics.DefaultTopPairs
	}
	s := &Server{ds: ds, opts: opts, layout: layout}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(countRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/rankings/{metric}", s.handleRanking)
		r.Get("/engagement", s.handleEngagement)
		r.Get("/authors", s.handleAuthors)
		r.Get("/timeseries/{metric}", s.handleTimeseries)
		r.Get("/pairs", s.handlePairs)
		r.Get("/graph", s.handleGraph)
		r.Get("/wordcloud/{kind}", s.handleWordcloud)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		metrics.APIRequests.WithLabelValues(r.URL.Path, strconv.Itoa(ww.Status())).Inc()
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, analytics.Summarize(s.ds))
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	metric := chi.URLParam(r, "metric")
	k := s.opts.TopK
	if q := r.URL.Query().Get("k"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid k %q", q))
			return
		}
		k = n
	}
	ranking, err := analytics.Rank(s.ds, metric, k)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

func (s *Server) handleEngagement(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, analytics.EngagementTable(s.ds))
}

func (s *Server) handleAuthors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, analytics.AuthorLeaderboard(s.ds, s.opts.TopK))
}

func (s *Server) handleTimeseries(w http.ResponseWriter, r *http.Request) {
	metric := chi.URLParam(r, "metric")
	window := analytics.Window(r.URL.Query().Get("window"))
	if window == "" {
		window = analytics.WindowAll
	}
	var (
		series model.BucketSeries
		err    error
	)
	if metric == "volume" {
		series, err = analytics.VolumeSeries(s.ds, window)
	} else {
		series, err = analytics.MetricSeries(s.ds, window, metric)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	n := s.opts.TopPairs
	if q := r.URL.Query().Get("n"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid n %q", q))
			return
		}
		n = v
	}
	writeJSON(w, http.StatusOK, analytics.TopPairs(s.ds, n))
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	pairs := analytics.TopPairs(s.ds, s.opts.TopPairs)
	writeJSON(w, http.StatusOK, s.layout.Layout(pairs, s.opts.LayoutSeed))
}

func (s *Server) handleWordcloud(w http.ResponseWriter, r *http.Request) {
	switch kind := chi.URLParam(r, "kind"); kind {
	case "captions":
		writeJSON(w, http.StatusOK, analytics.CaptionWordCounts(s.ds))
	case "hashtags":
		writeJSON(w, http.StatusOK, analytics.HashtagCounts(s.ds))
	case "emoji":
		writeJSON(w, http.StatusOK, analytics.EmojiCounts(s.ds))
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown wordcloud kind %q", kind))
	}
}
