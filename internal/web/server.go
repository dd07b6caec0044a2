// Package web serves itinerary searches over HTTP as JSON.
//
// The server keeps no per-user state. A response carries the full result
// list; a client that wants a different itinerary's route sends the same
// query back with another "selected" number, and the cached search answers
// it.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bluele/gcache"

	"github.com/derekprior/roadtrip/internal/itinerary"
	"github.com/derekprior/roadtrip/internal/route"
	"github.com/derekprior/roadtrip/internal/schedule"
)

// Options configures a Server.
type Options struct {
	Distances  *route.Distances
	Stadiums   map[string]route.Stadium
	CacheSize  int
	MaxSpanCap int
	Logger     *slog.Logger
}

// Server answers itinerary queries against one loaded schedule.
type Server struct {
	apps       []schedule.Appearance
	teams      []string
	distances  *route.Distances
	stadiums   map[string]route.Stadium
	maxSpanCap int
	cache      gcache.Cache
	logger     *slog.Logger
}

// NewServer wraps apps, which must not be modified afterwards.
func NewServer(apps []schedule.Appearance, opts Options) *Server {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 256
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{
		apps:       apps,
		teams:      schedule.Teams(apps),
		distances:  opts.Distances,
		stadiums:   opts.Stadiums,
		maxSpanCap: opts.MaxSpanCap,
		cache:      gcache.New(opts.CacheSize).LRU().Expiration(time.Hour).Build(),
		logger:     opts.Logger,
	}
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /teams", s.getTeams)
	mux.HandleFunc("POST /itineraries", s.postItineraries)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) getTeams(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"teams": s.teams})
}

func (s *Server) postItineraries(w http.ResponseWriter, r *http.Request) {
	var req Query
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding query: %w", err))
		return
	}

	c, err := req.Constraints()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if s.maxSpanCap > 0 && c.Span() > s.maxSpanCap {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("max span %d is over the %d day limit", c.Span(), s.maxSpanCap))
		return
	}

	results, err := s.search(c)
	if errors.Is(err, itinerary.ErrInvalidConstraints) {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		s.logger.Error("search failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := Response{Count: len(results), Itineraries: make([]ItineraryJSON, 0, len(results))}
	if len(results) == 0 {
		resp.Message = "No itineraries found. Try loosening filters."
	}
	for i, it := range results {
		resp.Itineraries = append(resp.Itineraries, newItineraryJSON(i+1, it))
	}

	if len(results) > 0 {
		n := req.Selected
		if n == 0 {
			n = 1
		}
		if n < 1 || n > len(results) {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("selected itinerary %d is not between 1 and %d", n, len(results)))
			return
		}
		resp.Selected = s.detail(n, results[n-1])
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// search runs or recalls the query.
func (s *Server) search(c itinerary.Constraints) ([]itinerary.Itinerary, error) {
	key := c.Key()
	if v, err := s.cache.Get(key); err == nil {
		return v.([]itinerary.Itinerary), nil
	}

	start := time.Now()
	results, err := itinerary.Find(s.apps, c)
	if err != nil {
		return nil, err
	}
	s.logger.Info("search",
		"teams", c.Teams,
		"span", c.Span(),
		"results", len(results),
		"duration", time.Since(start))

	if err := s.cache.Set(key, results); err != nil {
		s.logger.Warn("caching search results", "error", err)
	}
	return results, nil
}

func (s *Server) detail(n int, it itinerary.Itinerary) *Detail {
	d := &Detail{Number: n}
	for _, g := range it.ByDate() {
		d.Games = append(d.Games, newGameJSON(g))
	}
	legs := route.Plan(it, s.distances)
	for _, l := range legs {
		d.Legs = append(d.Legs, LegJSON{From: l.From, To: l.To, Miles: l.Miles, Known: l.Known})
	}
	d.TotalMiles = route.Total(legs)
	for _, st := range route.Stops(it, s.stadiums) {
		d.Stops = append(d.Stops, StopJSON{
			Team: st.Team, Stadium: st.Stadium, Lat: st.Lat, Lon: st.Lon,
			Tooltip: st.Tooltip, Found: st.Found,
		})
	}
	return d
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing response", "status", status, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
