// Package server exposes generated levels for inspection: a JSON endpoint
// for one-shot requests and a WebSocket stream for interactive preview.
// The generation core stays transport-agnostic; this layer only reads it.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tileforge/tileforge/internal/core/level"
	"github.com/tileforge/tileforge/internal/core/observability/log"
)

// Config holds preview server configuration. BaseLevel is the generation
// config every request starts from; request parameters override individual
// fields of it. Loading a designer preset here makes it the base for the
// whole process.
type Config struct {
	ListenAddr      string
	ShutdownTimeout time.Duration
	LogLevel        log.Level
	BaseLevel       level.Config
}

// DefaultConfig returns the default preview server configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8080",
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        log.LevelInfo,
		BaseLevel:       level.DefaultConfig(),
	}
}

// Server serves generated levels over HTTP and WebSocket.
type Server struct {
	config Config
	logger log.Log
	cache  *level.Cache

	httpServer *http.Server
	running    int32 // atomic bool
}

// New creates a preview server with a fresh level cache.
func New(config Config) *Server {
	return &Server{
		config: config,
		logger: log.New(config.LogLevel),
		cache:  level.NewCache(),
	}
}

// Start begins listening. It returns once the listener goroutine is
// launched; serve errors other than a clean close are logged.
func (s *Server) Start() error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/level", s.handleLevel)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:    s.config.ListenAddr,
		Handler: mux,
	}

	go func() {
		s.logger.Info("preview server listening", log.String("addr", s.config.ListenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("preview server stopped", log.Error(err))
		}
	}()
	return nil
}

// Stop shuts the listener down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleLevel serves GET /level?seed=N with optional config overrides
// (mode, width, height, min_room_size, max_room_size, fill_percent,
// cave_iterations).
func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := requestFromQuery(r, s.config.BaseLevel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lvl, err := s.cache.Get(req.Seed, req.Config)
	if err != nil {
		s.logger.Warn("generation failed",
			log.Uint64("seed", req.Seed), log.Error(err))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(levelResponse(lvl)); err != nil {
		s.logger.Error("encode level response", log.Error(err))
	}
}

// GenerateRequest is one level request, over either transport.
type GenerateRequest struct {
	Seed   uint64       `json:"seed"`
	Config level.Config `json:"config"`
}

func requestFromQuery(r *http.Request, base level.Config) (GenerateRequest, error) {
	q := r.URL.Query()

	req := GenerateRequest{Config: base}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return req, fmt.Errorf("%w: seed %q", ErrBadRequest, raw)
		}
		req.Seed = seed
	}
	if raw := q.Get("mode"); raw != "" {
		req.Config.Mode = level.Mode(raw)
	}

	intParams := map[string]*int{
		"width":           &req.Config.Width,
		"height":          &req.Config.Height,
		"min_room_size":   &req.Config.MinRoomSize,
		"max_room_size":   &req.Config.MaxRoomSize,
		"fill_percent":    &req.Config.FillPercent,
		"cave_iterations": &req.Config.CaveIterations,
	}
	for name, dst := range intParams {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("%w: %s %q", ErrBadRequest, name, raw)
		}
		*dst = v
	}
	return req, nil
}

// LevelResponse is the wire form of a generated level.
type LevelResponse struct {
	Seed   uint64       `json:"seed"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Tiles  []uint8      `json:"tiles"`
	Start  point        `json:"start"`
	Exit   point        `json:"exit"`
	Spawns []spawnPoint `json:"spawns"`
	Hash   string       `json:"hash"`
}

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type spawnPoint struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Difficulty float64 `json:"difficulty"`
}

func levelResponse(lvl *level.Level) LevelResponse {
	tiles := make([]uint8, len(lvl.Grid.Cells))
	for i, c := range lvl.Grid.Cells {
		tiles[i] = uint8(c)
	}
	spawns := make([]spawnPoint, len(lvl.Spawns))
	for i, sp := range lvl.Spawns {
		spawns[i] = spawnPoint{X: sp.Pos.X, Y: sp.Pos.Y, Difficulty: sp.Difficulty}
	}
	return LevelResponse{
		Seed:   lvl.Seed,
		Width:  lvl.Grid.Width,
		Height: lvl.Grid.Height,
		Tiles:  tiles,
		Start:  point{X: lvl.Start.X, Y: lvl.Start.Y},
		Exit:   point{X: lvl.Exit.X, Y: lvl.Exit.Y},
		Spawns: spawns,
		Hash:   fmt.Sprintf("%016x", lvl.Hash()),
	}
}
