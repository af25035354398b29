// Package dashboard serves the journal UI and JSON API over HTTP.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/optforge/legbook/internal/engine"
	"github.com/optforge/legbook/internal/models"
	"github.com/optforge/legbook/internal/storage"
)

//go:embed web/templates/*
var templateFS embed.FS

//go:embed web/static/*
var staticFS embed.FS

// Server hosts the journal dashboard and API.
type Server struct {
	router    *chi.Mux
	server    *http.Server
	storage   storage.Interface
	logger    *logrus.Logger
	port      int
	authToken string
}

// Config holds the server settings.
type Config struct {
	Port      int
	AuthToken string
}

// TradeView is a trade decorated with its derived classification for
// display. The classification is recomputed on every render; only the legs
// are authoritative.
type TradeView struct {
	ID             string                `json:"id"`
	Symbol         string                `json:"symbol"`
	Label          string                `json:"label"`
	LegsDisplay    string                `json:"legs_display"`
	Notes          string                `json:"notes,omitempty"`
	Classification models.Classification `json:"classification"`
	LegCount       int                   `json:"leg_count"`
	OpenedAt       time.Time             `json:"opened_at"`
	// VolatilityWarning flags short time spreads for the editor to surface
	VolatilityWarning bool `json:"volatility_warning"`
}

// NewServer creates a dashboard server with routes configured.
func NewServer(cfg Config, store storage.Interface, logger *logrus.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		storage:   store,
		logger:    logger,
		port:      cfg.Port,
		authToken: cfg.AuthToken,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	if s.authToken != "" {
		s.router.Use(s.authMiddleware)
	}

	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.Get("/", s.handleDashboard)
	s.router.Get("/api/trades", s.handleListTrades)
	s.router.Post("/api/trades", s.handleCreateTrade)
	s.router.Get("/api/trades/{id}", s.handleGetTrade)
	s.router.Delete("/api/trades/{id}", s.handleDeleteTrade)
	s.router.Post("/api/classify", s.handleClassify)
	s.router.Get("/api/stats", s.handleGetStats)
	s.router.Get("/health", s.handleHealth)

	s.router.Get("/partials/trades", s.handleTradesPartial)
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			token = r.URL.Query().Get("token")
		}

		if token != s.authToken {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Infof("Starting journal dashboard on port %d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(templateFS, "web/templates/dashboard.html")
	if err != nil {
		s.logger.WithError(err).Error("Failed to parse dashboard template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := struct {
		Trades     []TradeView
		Stats      Statistics
		LastUpdate time.Time
	}{
		Trades:     s.tradeViews(),
		Stats:      s.calculateStatistics(),
		LastUpdate: time.Now(),
	}

	if err := tmpl.Execute(w, data); err != nil {
		s.logger.WithError(err).Error("Failed to execute dashboard template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.tradeViews())
}

// createTradeRequest is the POST /api/trades payload.
type createTradeRequest struct {
	Symbol   string       `json:"symbol"`
	Legs     []models.Leg `json:"legs"`
	Notes    string       `json:"notes"`
	OpenedAt time.Time    `json:"opened_at"`
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var req createTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	trade := models.NewTrade(uuid.New().String(), req.Symbol, req.Legs)
	trade.Notes = req.Notes
	if !req.OpenedAt.IsZero() {
		trade.OpenedAt = req.OpenedAt
	}

	if err := trade.Validate(); err != nil {
		s.logger.WithError(err).Warn("Rejected invalid trade")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := s.storage.SaveTrade(*trade); err != nil {
		s.logger.WithError(err).Error("Failed to save trade")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusCreated, s.tradeView(*trade))
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trade, found := s.storage.GetTradeByID(id)
	if !found {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	s.writeJSON(w, http.StatusOK, s.tradeView(trade))
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.storage.DeleteTrade(id); err != nil {
		if errors.Is(err, storage.ErrTradeNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		s.logger.WithError(err).Error("Failed to delete trade")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// classifyRequest is the POST /api/classify payload: the editor sends the
// current leg set on every mutation and gets the derived identity back.
type classifyRequest struct {
	Legs []models.Leg `json:"legs"`
}

type classifyResponse struct {
	Classification models.Classification `json:"classification"`
	LegsDisplay    string                `json:"legs_display"`
	Label          string                `json:"label"`
	// VolatilityWarning flags short calendars and diagonals
	VolatilityWarning bool `json:"volatility_warning"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	// The engine is total: whatever the editor holds mid-keystroke, this
	// always answers 200 with at worst a custom classification.
	c := engine.Classify(req.Legs)
	s.writeJSON(w, http.StatusOK, classifyResponse{
		Classification:    c,
		LegsDisplay:       engine.FormatLegs(req.Legs),
		Label:             engine.FormatPositionLabel(c.Type, c.Direction, req.Legs),
		VolatilityWarning: c.Type.IsTimeSpread() && c.Direction == models.DirectionShort,
	})
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.calculateStatistics())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleTradesPartial(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(templateFS, "web/templates/trades.html")
	if err != nil {
		s.logger.WithError(err).Error("Failed to parse trades template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, s.tradeViews()); err != nil {
		s.logger.WithError(err).Error("Failed to execute trades template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) tradeViews() []TradeView {
	trades := s.storage.GetTrades()
	views := make([]TradeView, 0, len(trades))
	for _, trade := range trades {
		views = append(views, s.tradeView(trade))
	}
	return views
}

func (s *Server) tradeView(trade models.Trade) TradeView {
	c := engine.Classify(trade.Legs)
	return TradeView{
		ID:                trade.ID,
		Symbol:            trade.Symbol,
		Label:             engine.FormatPositionLabel(c.Type, c.Direction, trade.Legs),
		LegsDisplay:       engine.FormatLegs(trade.Legs),
		Notes:             trade.Notes,
		Classification:    c,
		LegCount:          len(trade.Legs),
		OpenedAt:          trade.OpenedAt,
		VolatilityWarning: c.Type.IsTimeSpread() && c.Direction == models.DirectionShort,
	}
}
