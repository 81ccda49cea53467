// Package web serves the landing page and a small JSON API describing the
// game variants.
package web

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tomz197/linedrop/internal/game"
)

// Server bundles the router and the rendered landing page.
type Server struct {
	r    *chi.Mux
	page string
	log  zerolog.Logger
}

// New constructs a Server, installs middleware and registers routes. page is
// the landing page template; {{.SSHHost}} is replaced with sshHost.
func New(page, sshHost string, logger zerolog.Logger) *Server {
	s := &Server{
		r:    chi.NewRouter(),
		page: strings.ReplaceAll(page, "{{.SSHHost}}", sshHost),
		log:  logger,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))

	s.r.Get("/", s.handleIndex)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/variants", s.handleVariants)
		r.Get("/score", s.handleScore)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.r }

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.page))
}

// thresholdsRes mirrors game.Thresholds in JSON.
type thresholdsRes struct {
	Perfect float64 `json:"perfect"`
	Great   float64 `json:"great"`
	Good    float64 `json:"good"`
	Close   float64 `json:"close"`
}

// variantRes is one entry of GET /api/variants.
type variantRes struct {
	Name            string        `json:"name"`
	Target          float64       `json:"target"`
	Step            float64       `json:"step"`
	OvershootMargin float64       `json:"overshootMargin"`
	Limit           float64       `json:"limit"`
	TicksToTarget   int           `json:"ticksToTarget"`
	Thresholds      thresholdsRes `json:"thresholds"`
	Default         bool          `json:"default,omitempty"`
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	variants := game.Variants()
	out := make([]variantRes, 0, len(variants))
	for _, v := range variants {
		out = append(out, variantRes{
			Name:            v.Name,
			Target:          v.Target,
			Step:            v.Step,
			OvershootMargin: v.OvershootMargin,
			Limit:           v.Limit(),
			TicksToTarget:   v.TicksToTarget(),
			Thresholds: thresholdsRes{
				Perfect: v.Thresholds.Perfect,
				Great:   v.Thresholds.Great,
				Good:    v.Thresholds.Good,
				Close:   v.Thresholds.Close,
			},
			Default: v.Name == game.DefaultVariant,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// scoreRes is the body of GET /api/score.
type scoreRes struct {
	Variant   string  `json:"variant"`
	Position  float64 `json:"position"`
	Distance  float64 `json:"distance"`
	Points    int     `json:"points"`
	Label     string  `json:"label"`
	Overshoot bool    `json:"overshoot"`
}

// handleScore reports what stopping at a position would award.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	v, err := game.LookupVariant(r.URL.Query().Get("variant"))
	if err != nil {
		s.log.Debug().Err(err).Msg("score lookup")
		writeError(w, http.StatusNotFound, "unknown_variant")
		return
	}

	raw := r.URL.Query().Get("position")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing_position")
		return
	}
	pos, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(pos) || math.IsInf(pos, 0) || pos < 0 {
		writeError(w, http.StatusBadRequest, "invalid_position")
		return
	}

	res := scoreRes{
		Variant:  v.Name,
		Position: pos,
		Distance: game.Distance(pos, v.Target),
	}
	if pos >= v.Limit() {
		// The marker never rests at or past the limit; the round is a miss.
		res.Overshoot = true
		res.Points, res.Label = game.PointsMiss, game.LabelMiss
	} else {
		res.Points, res.Label = v.Thresholds.Score(res.Distance)
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
