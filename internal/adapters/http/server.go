package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/aretw0/dicejourney"
	"github.com/aretw0/dicejourney/internal/codec"
	"github.com/aretw0/dicejourney/internal/logging"
	"github.com/aretw0/dicejourney/internal/presentation/graph"
	"github.com/aretw0/dicejourney/internal/validator"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/aretw0/dicejourney/pkg/history"
	"github.com/aretw0/dicejourney/pkg/journey"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds request bodies, imports included.
const maxBodyBytes = 4 << 20

// Engine defines what the server needs from the dice journey core.
type Engine interface {
	Journeys() *journey.Storage
	History() *history.Store
	Roll(ctx context.Context, rollIDs ...string) (dicejourney.Outcome, error)
}

// Server exposes an Engine over a JSON API.
type Server struct {
	Engine  Engine
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine, Logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Route("/journeys", func(r chi.Router) {
		r.Get("/", s.ListJourneys)
		r.Post("/", s.CreateJourney)

		r.Route("/current", func(r chi.Router) {
			r.Get("/", s.GetCurrent)
			r.Put("/", s.SetCurrent)
			r.Get("/validate", s.ValidateCurrent)

			r.Post("/rolls", s.AddRoll)
			r.Patch("/rolls/{rollID}", s.UpdateRoll)
			r.Put("/rolls/{rollID}/position", s.MoveRoll)
			r.Delete("/rolls/{rollID}", s.DeleteRoll)

			r.Post("/rolls/{rollID}/dice", s.AddDie)
			r.Patch("/rolls/{rollID}/dice/{dieID}", s.UpdateDie)
			r.Delete("/rolls/{rollID}/dice/{dieID}", s.DeleteDie)
		})

		r.Get("/{journeyID}", s.GetJourney)
		r.Patch("/{journeyID}", s.RenameJourney)
		r.Delete("/{journeyID}", s.DeleteJourney)
	})

	r.Post("/roll", s.Roll)

	r.Route("/history/{journeyID}", func(r chi.Router) {
		r.Get("/", s.ListHistory)
		r.Delete("/", s.ClearHistory)
		r.Get("/{sessionID}", s.GetSession)
		r.Delete("/{sessionID}", s.DeleteSession)
	})

	r.Get("/export", s.Export)
	r.Post("/import", s.Import)
	r.Get("/graph", s.GetGraph)

	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	return r
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "dicejourney-http",
		"version": dicejourney.Version,
	})
}

type journeyList struct {
	CurrentJourneyID string            `json:"currentJourneyId"`
	Journeys         []journey.Summary `json:"journeys"`
}

// ListJourneys handles GET /journeys.
func (s *Server) ListJourneys(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, journeyList{
		CurrentJourneyID: s.Engine.Journeys().CurrentID(),
		Journeys:         s.Engine.Journeys().List(),
	})
}

type nameRequest struct {
	Name string `json:"name"`
}

// CreateJourney handles POST /journeys.
func (s *Server) CreateJourney(w http.ResponseWriter, r *http.Request) {
	var body nameRequest
	if !s.decode(w, r, &body) {
		return
	}
	id, err := s.Engine.Journeys().Create(r.Context(), body.Name)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetCurrent handles GET /journeys/current.
func (s *Server) GetCurrent(w http.ResponseWriter, r *http.Request) {
	j, ok := s.Engine.Journeys().Current()
	if !ok {
		http.Error(w, "no current journey", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, j)
}

type currentRequest struct {
	ID string `json:"id"`
}

// SetCurrent handles PUT /journeys/current.
func (s *Server) SetCurrent(w http.ResponseWriter, r *http.Request) {
	var body currentRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.Engine.Journeys().SetCurrent(r.Context(), body.ID); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateCurrent handles GET /journeys/current/validate.
func (s *Server) ValidateCurrent(w http.ResponseWriter, r *http.Request) {
	j, ok := s.Engine.Journeys().Current()
	if !ok {
		http.Error(w, "no current journey", http.StatusNotFound)
		return
	}
	issues := validator.ValidateJourney(j.Strip())
	if issues == nil {
		issues = []validator.Issue{}
	}
	s.writeJSON(w, http.StatusOK, issues)
}

// GetJourney handles GET /journeys/{journeyID}.
func (s *Server) GetJourney(w http.ResponseWriter, r *http.Request) {
	j, ok := s.Engine.Journeys().Get(chi.URLParam(r, "journeyID"))
	if !ok {
		http.Error(w, "journey not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, j)
}

// RenameJourney handles PATCH /journeys/{journeyID}.
func (s *Server) RenameJourney(w http.ResponseWriter, r *http.Request) {
	var body nameRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.Engine.Journeys().Rename(r.Context(), chi.URLParam(r, "journeyID"), body.Name); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteJourney handles DELETE /journeys/{journeyID}.
func (s *Server) DeleteJourney(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Journeys().Delete(r.Context(), chi.URLParam(r, "journeyID")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddRoll handles POST /journeys/current/rolls.
func (s *Server) AddRoll(w http.ResponseWriter, r *http.Request) {
	var roll domain.PositionedRoll
	if !s.decode(w, r, &roll) {
		return
	}
	s.noContent(w, s.Engine.Journeys().AddRoll(r.Context(), roll))
}

// UpdateRoll handles PATCH /journeys/current/rolls/{rollID}.
func (s *Server) UpdateRoll(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if !s.decode(w, r, &patch) {
		return
	}
	s.noContent(w, s.Engine.Journeys().UpdateRoll(r.Context(), chi.URLParam(r, "rollID"), patch))
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MoveRoll handles PUT /journeys/current/rolls/{rollID}/position.
func (s *Server) MoveRoll(w http.ResponseWriter, r *http.Request) {
	var body positionRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.noContent(w, s.Engine.Journeys().MoveRoll(r.Context(), chi.URLParam(r, "rollID"), body.X, body.Y))
}

// DeleteRoll handles DELETE /journeys/current/rolls/{rollID}.
func (s *Server) DeleteRoll(w http.ResponseWriter, r *http.Request) {
	s.noContent(w, s.Engine.Journeys().DeleteRoll(r.Context(), chi.URLParam(r, "rollID")))
}

// AddDie handles POST /journeys/current/rolls/{rollID}/dice.
func (s *Server) AddDie(w http.ResponseWriter, r *http.Request) {
	var die domain.Die
	if !s.decode(w, r, &die) {
		return
	}
	s.noContent(w, s.Engine.Journeys().AddDie(r.Context(), chi.URLParam(r, "rollID"), die))
}

// UpdateDie handles PATCH /journeys/current/rolls/{rollID}/dice/{dieID}.
func (s *Server) UpdateDie(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if !s.decode(w, r, &patch) {
		return
	}
	s.noContent(w, s.Engine.Journeys().UpdateDie(r.Context(), chi.URLParam(r, "rollID"), chi.URLParam(r, "dieID"), patch))
}

// DeleteDie handles DELETE /journeys/current/rolls/{rollID}/dice/{dieID}.
func (s *Server) DeleteDie(w http.ResponseWriter, r *http.Request) {
	s.noContent(w, s.Engine.Journeys().DeleteDie(r.Context(), chi.URLParam(r, "rollID"), chi.URLParam(r, "dieID")))
}

type rollRequest struct {
	RollIDs []string `json:"rollIds"`
}

// Roll handles POST /roll. An empty body rolls every roll of the current journey.
func (s *Server) Roll(w http.ResponseWriter, r *http.Request) {
	var body rollRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	out, err := s.Engine.Roll(r.Context(), body.RollIDs...)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

// ListHistory handles GET /history/{journeyID}.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	sessions := s.Engine.History().Sessions(chi.URLParam(r, "journeyID"))
	if sessions == nil {
		sessions = []domain.HistorySession{}
	}
	s.writeJSON(w, http.StatusOK, sessions)
}

// GetSession handles GET /history/{journeyID}/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.Engine.History().Get(chi.URLParam(r, "journeyID"), chi.URLParam(r, "sessionID"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, session)
}

// ClearHistory handles DELETE /history/{journeyID}.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	s.noContent(w, s.Engine.History().ClearJourney(r.Context(), chi.URLParam(r, "journeyID")))
}

// DeleteSession handles DELETE /history/{journeyID}/{sessionID}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	s.noContent(w, s.Engine.History().Remove(r.Context(), chi.URLParam(r, "journeyID"), chi.URLParam(r, "sessionID")))
}

// Export handles GET /export?format=json|yaml&all=true.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	format, err := codec.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var cfg *domain.Config
	if all, _ := strconv.ParseBool(r.URL.Query().Get("all")); all {
		cfg = s.Engine.Journeys().ExportAll()
	} else {
		var ok bool
		if cfg, ok = s.Engine.Journeys().Export(); !ok {
			http.Error(w, "no current journey", http.StatusNotFound)
			return
		}
	}

	data, err := codec.Encode(cfg, format)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Import handles POST /import?x=&y=. YAML bodies are recognised by Content-Type.
func (s *Server) Import(w http.ResponseWriter, r *http.Request) {
	x, y := journey.DefaultImportX, journey.DefaultImportY
	for name, dst := range map[string]*float64{"x": &x, "y": &y} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "invalid "+name, http.StatusBadRequest)
			return
		}
		*dst = v
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	format := codec.JSON
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && (mt == "application/yaml" || mt == "text/yaml" || mt == "application/x-yaml") {
		format = codec.YAML
	}

	cfg, err := codec.Decode(data, format)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.Engine.Journeys().Import(r.Context(), cfg, x, y); err != nil {
		s.fail(w, err)
		return
	}

	ids := make([]string, 0, cfg.Len())
	for pair := cfg.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"imported": ids})
}

// GetGraph handles GET /graph?session=. It returns Mermaid text of the current journey.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	j, ok := s.Engine.Journeys().Current()
	if !ok {
		http.Error(w, "no current journey", http.StatusNotFound)
		return
	}

	var overlay *graph.GraphOverlay
	if sessionID := r.URL.Query().Get("session"); sessionID != "" {
		session, found := s.Engine.History().Get(j.ID, sessionID)
		if !found {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		overlay = graph.OverlayFromSession(session)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(j.Strip(), overlay))
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "err", err)
	}
}

func (s *Server) noContent(w http.ResponseWriter, err error) {
	if err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidConfig) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Logger.Error("request failed", "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func contentType(f codec.Format) string {
	if f == codec.YAML {
		return "application/yaml"
	}
	return "application/json"
}
