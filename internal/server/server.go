package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/runmap/marathon-map/internal/marathon"
	"github.com/runmap/marathon-map/internal/site"
)

// Server previews the generated site and answers filter and summary queries
// over the loaded dataset.
type Server struct {
	dataset   *site.Dataset
	outputDir string
	logger    *slog.Logger
	now       func() time.Time
}

func New(dataset *site.Dataset, outputDir string, logger *slog.Logger) *Server {
	return &Server{dataset, outputDir, logger, time.Now}
}

type eventResponse struct {
	*marathon.Event
	Effort float64 `json:"effort"`
	Prev   *int    `json:"prev"`
	Next   *int    `json:"next"`
}

type summaryResponse struct {
	Count           int                  `json:"count"`
	TotalDistanceKm float64              `json:"total_distance_km"`
	TotalAscentM    float64              `json:"total_ascent_m"`
	TotalTime       string               `json:"total_time"`
	Longest         *int                 `json:"longest"`
	Highest         *int                 `json:"highest"`
	Lowest          *int                 `json:"lowest"`
	Types           []marathon.TypeCount `json:"types"`
	Averages        map[string]float64   `json:"averages"`
	Efforts         map[string]float64   `json:"efforts"`
	TotalEffort     float64              `json:"total_effort"`
}

type countdownResponse struct {
	Index    int                   `json:"index"`
	Count    int                   `json:"count"`
	Event    *marathon.FutureEvent `json:"event"`
	Date     string                `json:"date,omitempty"`
	TimeLeft marathon.Countdown    `json:"time_left"`
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", s.handleEvents)
		r.Get("/events/{id}", s.handleEvent)
		r.Get("/tags", s.handleTags)
		r.Get("/summary", s.handleSummary)
		r.Get("/countdown", s.handleCountdown)
	})
	r.Handle("/*", http.FileServer(http.Dir(s.outputDir)))

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe runs until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("-- serving", "addr", addr, "dir", s.outputDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) filtered(r *http.Request) ([]*marathon.Event, error) {
	selection, err := marathon.ParseSelection(r.URL.Query())
	if err != nil {
		return nil, err
	}
	return marathon.Filter(s.dataset.Events, selection), nil
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func idOf(event *marathon.Event) *int {
	if event == nil {
		return nil
	}
	id := event.ID
	return &id
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}
	event := marathon.FindEvent(s.dataset.Events, id)
	if event == nil {
		writeError(w, http.StatusNotFound, errors.New("event not found"))
		return
	}
	events, err := s.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	prev, next := marathon.Neighbors(events, id)
	writeJSON(w, http.StatusOK, eventResponse{event, marathon.EffortScore(event), idOf(prev), idOf(next)})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, marathon.AllTagOptions(s.dataset.Events))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	events, err := s.filtered(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	summary := marathon.Summarize(events)

	resp := summaryResponse{
		Count:           summary.Count,
		TotalDistanceKm: summary.TotalDistanceKm,
		TotalAscentM:    summary.TotalAscentM,
		TotalTime:       summary.TimeF(),
		Longest:         idOf(summary.Longest),
		Highest:         idOf(summary.Highest),
		Lowest:          idOf(summary.Lowest),
		Types:           summary.Types,
		Averages: map[string]float64{
			"exertion":           summary.Averages.Exertion,
			"event_organisation": summary.Averages.EventOrganisation,
			"location":           summary.Averages.Location,
			"enjoyment":          summary.Averages.Enjoyment,
		},
		Efforts:     make(map[string]float64),
		TotalEffort: summary.TotalEffort,
	}
	for _, e := range summary.Efforts {
		resp.Efforts[e.Event.Slug()] = e.Score
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	upcoming := marathon.Upcoming(s.dataset.Future, now)

	index := 0
	if v := r.URL.Query().Get("index"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid index"))
			return
		}
		index = i
	}
	index = marathon.ClampIndex(index, len(upcoming))

	resp := countdownResponse{Index: index, Count: len(upcoming)}
	if len(upcoming) > 0 {
		e := upcoming[index]
		resp.Event = &e.FutureEvent
		resp.Date = e.When.Format("2006-01-02")
		resp.TimeLeft = marathon.TimeLeft(e.When, now)
	}
	writeJSON(w, http.StatusOK, resp)
}
