// Package server exposes the control panel over HTTP and websockets so a
// browser can drive the galaxy running in the native viewer.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"galaxygenerator/config"
	"galaxygenerator/core"
	"galaxygenerator/panel"
)

//go:embed static
var staticFiles embed.FS

const writeTimeout = 2 * time.Second

// Server forwards client edits to the render thread through a panel.Queue
// and broadcasts the committed galaxy back to every connected client.
type Server struct {
	cfg      config.ServerSettings
	queue    *panel.Queue
	limiter  *RateLimiter
	upgrader websocket.Upgrader
	logger   *slog.Logger

	statusMu sync.RWMutex
	status   Status

	clients   map[*websocket.Conn]*sync.Mutex
	clientsMu sync.RWMutex
}

func New(cfg config.ServerSettings, queue *panel.Queue, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		queue:   queue,
		limiter: NewRateLimiter(cfg.RateLimit),
		logger:  logger.With("component", "panel_server"),
		status:  Status{Type: "params", Params: core.DefaultParameters(), State: "empty"},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// Handler returns the routes wrapped in CORS handling
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	static, _ := fs.Sub(staticFiles, "static")
	mux.Handle("GET /", http.FileServer(http.FS(static)))
	mux.HandleFunc("GET /api/bindings", s.handleBindings)
	mux.HandleFunc("GET /api/params", s.handleGetParams)
	mux.Handle("POST /api/params", s.limiter.Middleware(http.HandlerFunc(s.handlePostParams)))
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

// ListenAndServe runs until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				s.closeClients()
				srv.Shutdown(shutdownCtx)
				return
			case now := <-ticker.C:
				s.limiter.Prune(now)
			}
		}
	}()

	s.logger.Info("Panel server listening", "addr", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Publish records the galaxy now on screen and broadcasts it
func (s *Server) Publish(status Status) {
	status.Type = "params"
	s.statusMu.Lock()
	s.status = status
	s.statusMu.Unlock()
	s.broadcast(status)
}

func (s *Server) currentStatus() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

func (s *Server) handleBindings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, panel.Bindings())
}

func (s *Server) handleGetParams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentStatus())
}

func (s *Server) handlePostParams(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorReply{Type: "error", Error: "malformed JSON: " + err.Error()})
		return
	}
	// a POST is a finished edit
	msg.Commit = true

	edit, err := msg.toEdit()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorReply(err))
		return
	}
	if !s.queue.Submit(edit) {
		writeJSON(w, http.StatusServiceUnavailable, ErrorReply{Type: "error", Error: "edit queue full"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"queued": true})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade error", "error", err)
		return
	}
	defer conn.Close()

	ip := clientIP(r)
	logger := s.logger.With("client_ip", ip)
	logger.Debug("Panel client connected")

	connMu := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMu
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		logger.Debug("Panel client disconnected")
	}()

	s.send(conn, connMu, s.currentStatus())

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("WebSocket read error", "error", err)
			}
			return
		}

		edit, err := msg.toEdit()
		if err != nil {
			s.send(conn, connMu, errorReply(err))
			continue
		}
		// only commits trigger regeneration, so only they are limited
		if edit.Commit && !s.limiter.Allow(ip) {
			s.send(conn, connMu, ErrorReply{Type: "error", Error: "rate limit exceeded"})
			continue
		}
		if !s.queue.Submit(edit) {
			s.send(conn, connMu, ErrorReply{Type: "error", Error: "edit queue full"})
		}
	}
}

func (s *Server) send(conn *websocket.Conn, mu *sync.Mutex, v interface{}) error {
	mu.Lock()
	defer mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}

func (s *Server) broadcast(v interface{}) {
	s.clientsMu.RLock()
	var failed []*websocket.Conn
	for conn, mu := range s.clients {
		if err := s.send(conn, mu, v); err != nil {
			s.logger.Debug("WebSocket write error", "error", err)
			failed = append(failed, conn)
		}
	}
	s.clientsMu.RUnlock()

	if len(failed) > 0 {
		s.clientsMu.Lock()
		for _, conn := range failed {
			conn.Close()
			delete(s.clients, conn)
		}
		s.clientsMu.Unlock()
	}
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
